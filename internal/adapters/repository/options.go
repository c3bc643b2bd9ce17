package repository

import "time"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithMetricsUpdateInterval sets the interval for background metrics updates.
func WithMetricsUpdateInterval(interval time.Duration) Option {
	return func(s *MemoryStore) {
		if interval > 0 {
			s.metricsUpdateInterval = interval
		}
	}
}

// WithMaxEvents bounds the number of events kept; the event written least
// recently is dropped first. Zero or less keeps everything.
func WithMaxEvents(n int) Option {
	return func(s *MemoryStore) {
		s.maxEvents = n
	}
}
