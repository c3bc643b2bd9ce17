// Package loadgen drives a running service with generated market
// observations and checks that every name was rendered in the background.
package loadgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/okian/marketnames/pkg/logger"
)

const (
	directoryPermission = 0750
	maxMissingReported  = 10
	percent             = 100
)

// ErrNamesMissing reports that background rendering left names out.
var ErrNamesMissing = errors.New("rendered names missing")

// Run executes a complete load run.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	log := logger.Get()
	stats := &Stats{StartTime: time.Now()}
	if len(config.EventIDs) == 0 {
		return stats, errors.New("no event ids configured")
	}
	if config.Workers < 1 {
		config.Workers = 1
	}

	log.Info(ctx, "starting load run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("observations", config.Observations),
		logger.Int("workers", config.Workers),
		logger.Any("languages", config.Languages))

	client := newHTTPClient(config.BaseURL, config.Timeout)
	if err := waitHealthy(ctx, client); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	obs := generateObservations(config.Observations, config.EventIDs, config.Seed)
	stats.ObservationsGenerated = len(obs)

	submitObservations(ctx, config, client, obs, stats)

	missing, err := verifyStored(ctx, config, client, expectedNames(obs, config.Languages), stats)
	if err != nil {
		return stats, err
	}

	if config.OutputFile != "" {
		if err := saveObservations(config.OutputFile, obs); err != nil {
			log.Warn(ctx, "failed to save observations", logger.Error(err))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if len(missing) > 0 {
		sort.Strings(missing)
		if len(missing) > maxMissingReported {
			missing = missing[:maxMissingReported]
		}
		return stats, fmt.Errorf("%w: %d of %d, e.g. %v", ErrNamesMissing, stats.NamesMissing, stats.NamesExpected, missing)
	}
	log.Info(ctx, "load run completed successfully")
	return stats, nil
}

// saveObservations writes the generated observations as a JSON array.
func saveObservations(filename string, obs []Observation) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(obs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal observations: %w", err)
	}
	return os.WriteFile(filename, data, 0o600)
}

func displayFinalStats(ctx context.Context, stats *Stats) {
	var acceptRate, perSecond float64
	if stats.ObservationsSubmitted > 0 {
		acceptRate = float64(stats.ObservationsAccepted) / float64(stats.ObservationsSubmitted) * percent
	}
	if stats.Duration > 0 {
		perSecond = float64(stats.ObservationsSubmitted) / stats.Duration.Seconds()
	}
	logger.Get().Info(ctx, "final statistics",
		logger.Int("observationsGenerated", stats.ObservationsGenerated),
		logger.Int("observationsSubmitted", stats.ObservationsSubmitted),
		logger.Int("observationsAccepted", stats.ObservationsAccepted),
		logger.Int("observationsDuplicate", stats.ObservationsDuplicate),
		logger.Int("observationsFailed", stats.ObservationsFailed),
		logger.Int("namesExpected", stats.NamesExpected),
		logger.Int("namesStored", stats.NamesStored),
		logger.Int("namesMissing", stats.NamesMissing),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("acceptRate", acceptRate),
		logger.Float64("observationsPerSecond", perSecond))
}
