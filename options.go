package sb1

import (
	"github.com/wippyai/sb1/squeak"
	"go.uber.org/zap"
)

// Option configures Open.
type Option func(*options)

type options struct {
	logger *zap.Logger
	strict bool
}

// WithStrict makes impossible lengths and exhausted sound data errors
// instead of best-effort results.
func WithStrict(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

// WithLogger sets the logger for this file's framing and decode events.
// Use SetLogger to route the decoding packages' own debug output.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = Logger()
	}
	return o
}

func (o options) config() squeak.Config {
	return squeak.Config{Strict: o.strict}
}
