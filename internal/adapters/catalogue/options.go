package catalogue

import "github.com/okian/marketnames/pkg/logger"

// Option applies a configuration option to the Catalogue.
type Option func(*Catalogue)

// WithPath loads the catalogue from a YAML file instead of the embedded one.
// An empty path keeps the embedded catalogue.
func WithPath(path string) Option {
	return func(c *Catalogue) {
		c.path = path
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Catalogue) {
		if l != nil {
			c.logger = l
		}
	}
}
