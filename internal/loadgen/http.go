package loadgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/okian/marketnames/pkg/logger"
)

const (
	healthMaxElapsed = 30 * time.Second
	reportInterval   = time.Second
)

// HTTPClient wraps http.Client with JSON helpers.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// getJSON performs a GET and decodes a 200 response into v.
func (c *HTTPClient) getJSON(ctx context.Context, path string, v any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if v == nil {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to parse response: %w", err)
	}
	return resp.StatusCode, nil
}

// postJSON posts body and decodes the response into v.
func (c *HTTPClient) postJSON(ctx context.Context, path string, body, v any) (int, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_ = json.NewDecoder(resp.Body).Decode(v)
	return resp.StatusCode, nil
}

// waitHealthy polls /healthz with exponential backoff.
func waitHealthy(ctx context.Context, c *HTTPClient) error {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = healthMaxElapsed
	return backoff.Retry(func() error {
		status, err := c.getJSON(ctx, "/healthz", nil)
		if err != nil {
			return err
		}
		if status != http.StatusOK {
			return fmt.Errorf("health check returned %d", status)
		}
		return nil
	}, backoff.WithContext(b, ctx))
}

// submitObservations posts observations using a pool of workers.
func submitObservations(ctx context.Context, config *Config, c *HTTPClient, obs []Observation, stats *Stats) {
	log := logger.Get()
	log.Info(ctx, "submitting observations", logger.Int("count", len(obs)), logger.Int("workers", config.Workers))

	var (
		accepted  atomic.Int64
		duplicate atomic.Int64
		failed    atomic.Int64
		submitted atomic.Int64
	)

	items := make(chan Observation, config.Workers*2)
	var wg sync.WaitGroup
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for o := range items {
				var ack AckResponse
				status, err := c.postJSON(ctx, "/observations", o, &ack)
				submitted.Add(1)
				switch {
				case err != nil:
					failed.Add(1)
				case status == http.StatusAccepted:
					accepted.Add(1)
				case status == http.StatusOK && ack.Duplicate:
					duplicate.Add(1)
				default:
					failed.Add(1)
					if config.Verbose {
						log.Warn(ctx, "observation rejected", logger.String("observationID", o.ObservationID), logger.Int("status", status))
					}
				}
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(reportInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				log.Info(ctx, "progress", logger.Int64("submitted", submitted.Load()), logger.Int("total", len(obs)))
			}
		}
	}()

send:
	for _, o := range obs {
		select {
		case <-ctx.Done():
			break send
		case items <- o:
		}
	}
	close(items)
	wg.Wait()
	close(done)

	stats.ObservationsSubmitted = int(submitted.Load())
	stats.ObservationsAccepted = int(accepted.Load())
	stats.ObservationsDuplicate = int(duplicate.Load())
	stats.ObservationsFailed = int(failed.Load())
	log.Info(ctx, "submission completed",
		logger.Int("accepted", stats.ObservationsAccepted),
		logger.Int("duplicate", stats.ObservationsDuplicate),
		logger.Int("failed", stats.ObservationsFailed))
}

// storedNames fetches the names stored for eventID. An unknown event has none.
func storedNames(ctx context.Context, c *HTTPClient, eventID string) ([]RenderedName, error) {
	var names []RenderedName
	status, err := c.getJSON(ctx, "/names/event/"+url.PathEscape(eventID), &names)
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusOK:
		return names, nil
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("names of %s: HTTP %d", eventID, status)
	}
}
