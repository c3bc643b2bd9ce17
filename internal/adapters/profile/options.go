package profile

import (
	"golang.org/x/text/language"

	"github.com/okian/marketnames/pkg/logger"
)

// Option applies a configuration option to the Resolver.
type Option func(*Resolver)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithCacheSize bounds the number of cached names. Values <= 0 disable
// eviction.
func WithCacheSize(size int) Option {
	return func(r *Resolver) {
		r.cacheSize = size
	}
}

// WithSummaryLanguage sets the language used when an event summary is
// fetched only to learn its competitors.
func WithSummaryLanguage(lang language.Tag) Option {
	return func(r *Resolver) {
		if lang != language.Und {
			r.summaryLang = lang
		}
	}
}
