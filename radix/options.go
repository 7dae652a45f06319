package radix

import (
	"io"
	"log/slog"
)

// Option configures how routes are compiled.
type Option func(*config)

type config struct {
	separator      byte
	staticFastPath bool
	logger         *slog.Logger
}

func newConfig(opts []Option) config {
	cfg := config{
		separator: DefaultSeparator,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithSeparator sets the byte a variable capture never crosses.
// Default: '/'.
func WithSeparator(sep byte) Option {
	return func(c *config) {
		c.separator = sep
	}
}

// WithStaticFastPath folds rules made only of literal text out of the tree
// into a flat lookup table that is consulted first.
func WithStaticFastPath(enabled bool) Option {
	return func(c *config) {
		c.staticFastPath = enabled
	}
}

// WithLogger sets the logger used while compiling. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
