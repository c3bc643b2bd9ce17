package api

import (
	"golang.org/x/text/language"

	"github.com/okian/marketnames/pkg/logger"
)

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithDefaultLanguage sets the language used when a request names none.
func WithDefaultLanguage(lang language.Tag) Option {
	return func(s *Server) {
		if lang != language.Und {
			s.defaultLang = lang
		}
	}
}

// WithLogger sets the logger used by handlers.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}
