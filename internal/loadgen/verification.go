package loadgen

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/marketnames/pkg/logger"
)

const pollInterval = 250 * time.Millisecond

// verifyStored polls the stored names until every expected one is present
// or the settle timeout passes. It returns the keys still missing.
func verifyStored(ctx context.Context, config *Config, c *HTTPClient, expected map[string]struct{}, stats *Stats) ([]string, error) {
	stats.NamesExpected = len(expected)
	deadline := time.Now().Add(config.SettleTimeout)

	for {
		found, err := collectStored(ctx, config, c)
		if err != nil {
			return nil, err
		}
		var missing []string
		present := 0
		for k := range expected {
			if _, ok := found[k]; ok {
				present++
			} else {
				missing = append(missing, k)
			}
		}
		stats.NamesStored = present
		stats.NamesMissing = len(missing)

		if len(missing) == 0 || time.Now().After(deadline) {
			return missing, nil
		}
		logger.Get().Debug(ctx, "waiting for names", logger.Int("missing", len(missing)))
		select {
		case <-ctx.Done():
			return missing, fmt.Errorf("verification interrupted: %w", ctx.Err())
		case <-time.After(pollInterval):
		}
	}
}

func collectStored(ctx context.Context, config *Config, c *HTTPClient) (map[string]string, error) {
	found := make(map[string]string)
	for _, eventID := range config.EventIDs {
		names, err := storedNames(ctx, c, eventID)
		if err != nil {
			return nil, err
		}
		for _, n := range names {
			if n.Name == "" {
				continue
			}
			found[nameKey(n.EventID, n.MarketID, n.Specifiers, n.OutcomeID, n.Language)] = n.Name
		}
	}
	return found, nil
}
