package tracker

import (
	"time"

	"github.com/okian/monetizer/pkg/logger"
)

// Option applies a configuration option to the Tracker.
type Option func(*Tracker)

// WithLogger sets the logger used by the tracker.
func WithLogger(l logger.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithInterval sets how often a sample is taken.
func WithInterval(interval time.Duration) Option {
	return func(t *Tracker) {
		if interval > 0 {
			t.interval = interval
		}
	}
}

// WithSampler replaces the default process sampler.
func WithSampler(s Sampler) Option {
	return func(t *Tracker) {
		if s != nil {
			t.sampler = s
		}
	}
}

// WithRetention bounds the number of points kept per metric.
func WithRetention(n int) Option {
	return func(t *Tracker) {
		if n > 0 {
			t.retention = n
		}
	}
}
