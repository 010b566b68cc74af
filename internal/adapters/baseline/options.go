package baseline

import (
	"time"

	"github.com/okian/wordlebench/pkg/logger"
)

// Option applies a configuration option to a store.
type Option func(*options)

type options struct {
	logger   logger.Logger
	now      func() time.Time
	inMemory bool
}

func newOptions(opts []Option) *options {
	o := &options{
		logger: logger.Get().Named("baseline"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock overrides the time source stamped on saved envelopes.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithInMemory keeps a badger store entirely in memory.
func WithInMemory() Option {
	return func(o *options) {
		o.inMemory = true
	}
}
