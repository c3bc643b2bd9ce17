package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// defaultLatencyBuckets cover a cached render (sub-millisecond) up to a
// render waiting on retried sports API calls.
var defaultLatencyBuckets = []float64{0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000} //nolint:gochecknoglobals // read-only defaults

// Option configures a Manager.
type Option func(*Manager)

// WithNamespace overrides the "marketnames" namespace.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithSubsystem overrides the "naming" subsystem.
func WithSubsystem(subsystem string) Option {
	return func(m *Manager) {
		if subsystem != "" {
			m.subsystem = subsystem
		}
	}
}

// WithLatencyBuckets sets the histogram buckets, in milliseconds, of every
// latency series.
func WithLatencyBuckets(ms ...float64) Option {
	return func(m *Manager) {
		if len(ms) > 0 {
			m.histogramBuckets = ms
		}
	}
}

// WithRegistry registers the metrics on registry instead of the default
// registerer.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}
