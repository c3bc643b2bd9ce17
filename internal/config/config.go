// Package config defines service configuration structures and loading hooks.
package config

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Languages lists the BCP-47 tags names are rendered in, comma separated.
	// The first one is the default for requests without lang.
	Languages string `koanf:"languages"`

	// CataloguePath points to a YAML market catalogue. Empty uses the
	// embedded catalogue.
	CataloguePath string `koanf:"catalogue_path"`

	// SportsAPIURL is the base URL of the profile API. Empty serves the
	// built-in demo profiles.
	SportsAPIURL string `koanf:"sports_api_url"`

	// SportsAPIKey is sent as the access token.
	SportsAPIKey string `koanf:"sports_api_key"`

	// SportsAPITimeoutMS bounds one HTTP round trip.
	SportsAPITimeoutMS int `koanf:"sports_api_timeout_ms"`

	// SportsAPIMaxRetries bounds retries of transient failures.
	SportsAPIMaxRetries int `koanf:"sports_api_max_retries"`

	// ProfileCacheSize bounds cached profile names.
	ProfileCacheSize int `koanf:"profile_cache_size"`

	// QueueSize bounds the in-memory observation queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of rendering workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize bounds remembered observation ids.
	DedupeSize int `koanf:"dedupe_size"`
}

// New creates a Config with defaults. Context is accepted first to follow
// the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		Languages:           "en",
		SportsAPITimeoutMS:  5000,
		SportsAPIMaxRetries: 3,
		ProfileCacheSize:    100_000,
		QueueSize:           10_000,
		WorkerCount:         runtime.NumCPU() * 2,
		DedupeSize:          500_000,
	}
}

// LanguageTags parses Languages. Duplicates are dropped, order is kept.
func (c *Config) LanguageTags() ([]language.Tag, error) {
	var (
		out  []language.Tag
		seen = map[language.Tag]bool{}
	)
	for _, raw := range strings.Split(c.Languages, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		tag, err := language.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: language %q: %v", ErrInvalidConfig, raw, err)
		}
		if !seen[tag] {
			seen[tag] = true
			out = append(out, tag)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: languages must not be empty", ErrInvalidConfig)
	}
	return out, nil
}

// SportsAPITimeout returns SportsAPITimeoutMS as a duration.
func (c *Config) SportsAPITimeout() time.Duration {
	return time.Duration(c.SportsAPITimeoutMS) * time.Millisecond
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.QueueSize <= 0:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.WorkerCount <= 0:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	case c.SportsAPITimeoutMS < 0:
		return fmt.Errorf("%w: sports_api_timeout_ms must not be negative", ErrInvalidConfig)
	}
	_, err := c.LanguageTags()
	return err
}
