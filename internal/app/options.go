package service

import (
	"golang.org/x/text/language"

	"github.com/okian/marketnames/internal/adapters/profile"
	"github.com/okian/marketnames/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of rendering workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum number of queued observations.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets how many observation ids are remembered.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithProfileCacheSize bounds the profile name cache.
func WithProfileCacheSize(size int) Option {
	return func(s *Service) {
		s.profileCacheSize = size
	}
}

// WithLanguages sets the languages observations are rendered in. The first
// one is the default for on-demand requests.
func WithLanguages(langs ...language.Tag) Option {
	return func(s *Service) {
		if len(langs) > 0 {
			s.languages = langs
		}
	}
}

// WithCataloguePath loads market descriptions from a YAML file instead of
// the embedded catalogue.
func WithCataloguePath(path string) Option {
	return func(s *Service) {
		s.cataloguePath = path
	}
}

// WithFetcher sets where profiles come from. Defaults to the demo fixtures.
func WithFetcher(f profile.Fetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.fetcher = f
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}
