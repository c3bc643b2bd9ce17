package worker

import (
	"golang.org/x/text/language"

	"github.com/okian/marketnames/pkg/logger"
)

// Option applies a configuration option to the InMemoryWorker.
type Option func(*InMemoryWorker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *InMemoryWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(logger logger.Logger) Option {
	return func(w *InMemoryWorker) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithLanguages sets the languages every observation is rendered in.
func WithLanguages(langs ...language.Tag) Option {
	return func(w *InMemoryWorker) {
		if len(langs) > 0 {
			w.languages = langs
		}
	}
}
