// Package sportsapi fetches localized profiles from the sports API over
// HTTP and XML.
package sportsapi

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/text/language"

	"github.com/okian/marketnames/internal/adapters/profile"
	"github.com/okian/marketnames/internal/domain/urn"
	"github.com/okian/marketnames/pkg/logger"
	"github.com/okian/marketnames/pkg/metrics"
)

// Config controls how the client reaches the sports API.
type Config struct {
	BaseURL         string
	APIKey          string
	HTTPClient      *http.Client
	Timeout         time.Duration
	MaxRetries      int           // negative selects the default
	InitialInterval time.Duration // first retry delay
	Logger          logger.Logger
}

// Client implements profile.Fetcher.
type Client struct {
	baseURL         string
	apiKey          string
	httpClient      httpDoer
	maxRetries      uint64
	initialInterval time.Duration
	logger          logger.Logger
}

var _ profile.Fetcher = (*Client)(nil)

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	l := cfg.Logger
	if l == nil {
		l = logger.Nop()
	}
	return &Client{
		baseURL:         normalizeBaseURL(cfg.BaseURL),
		apiKey:          cfg.APIKey,
		httpClient:      resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		maxRetries:      resolveMaxRetries(cfg.MaxRetries),
		initialInterval: resolveInterval(cfg.InitialInterval),
		logger:          l,
	}
}

// FetchCompetitor implements profile.Fetcher.
func (c *Client) FetchCompetitor(ctx context.Context, id urn.URN, lang language.Tag) (*profile.CompetitorProfile, error) {
	var payload xmlCompetitorProfile
	if err := c.get(ctx, c.path(lang, "competitors", id, "profile.xml"), &payload); err != nil {
		return nil, err
	}
	return mapCompetitor(payload)
}

// FetchPlayer implements profile.Fetcher.
func (c *Client) FetchPlayer(ctx context.Context, id urn.URN, lang language.Tag) (*profile.Entity, error) {
	var payload xmlPlayerProfile
	if err := c.get(ctx, c.path(lang, "players", id, "profile.xml"), &payload); err != nil {
		return nil, err
	}
	return mapPlayer(payload)
}

// FetchEventSummary implements profile.Fetcher.
func (c *Client) FetchEventSummary(ctx context.Context, id urn.URN, lang language.Tag) (*profile.EventSummary, error) {
	var payload xmlSummary
	if err := c.get(ctx, c.path(lang, "sport_events", id, "summary.xml"), &payload); err != nil {
		return nil, err
	}
	return mapSummary(payload)
}

func (c *Client) path(lang language.Tag, collection string, id urn.URN, resource string) string {
	return fmt.Sprintf("%s/sports/%s/%s/%s/%s", c.baseURL, lang, collection, id, resource)
}

// get fetches url into v, retrying transport failures and 5xx responses
// with exponential backoff. Other statuses are final.
func (c *Client) get(ctx context.Context, url string, v any) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.initialInterval
	policy.MaxInterval = defaultMaxInterval
	retry := backoff.WithContext(backoff.WithMaxRetries(policy, c.maxRetries), ctx)

	op := func() error {
		body, err := c.do(ctx, url)
		if err != nil {
			return err
		}
		if err := xml.Unmarshal(body, v); err != nil {
			return backoff.Permanent(fmt.Errorf("%w: decode %s: %v", ErrUnexpected, url, err))
		}
		return nil
	}
	notify := func(err error, wait time.Duration) {
		metrics.RecordSportsAPIRetry()
		c.logger.Warn(ctx, "sports api retry",
			logger.String("url", url), logger.Int64("waitMs", wait.Milliseconds()), logger.Error(err))
	}
	return backoff.RetryNotify(op, retry, notify)
}

func (c *Client) do(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/xml")
	if c.apiKey != "" {
		req.Header.Set(accessTokenHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return io.ReadAll(resp.Body)
	case resp.StatusCode == http.StatusNotFound:
		return nil, backoff.Permanent(fmt.Errorf("%w: %s", ErrNotFound, url))
	case resp.StatusCode >= http.StatusInternalServerError:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: status %d: %s", ErrUnexpected, resp.StatusCode, strings.TrimSpace(string(body)))
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, backoff.Permanent(fmt.Errorf("%w: status %d: %s", ErrUnexpected, resp.StatusCode, strings.TrimSpace(string(body))))
	}
}
