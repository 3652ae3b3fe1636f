package ttlcache

import (
	"context"

	"ttlcache/internal/logs"
	"ttlcache/internal/metrics"
)

// LoaderFunc fetches a value from a backing source on cache miss.
type LoaderFunc func(ctx context.Context, key string) (any, error)

type config struct {
	clock     Clock
	logger    *logs.Logger
	metrics   *metrics.Registry
	loader    LoaderFunc
	loaderTTL int64
}

func defaultConfig() config {
	return config{
		clock:     realClock{},
		logger:    logs.NewLogger(256, logs.INFO),
		metrics:   metrics.NewRegistry(),
		loaderTTL: TTLNever,
	}
}

// Option configures a Cache.
type Option func(*config)

// WithClock sets a custom clock for time operations.
// Useful for testing TTL behavior.
func WithClock(clk Clock) Option {
	return func(c *config) {
		c.clock = clk
	}
}

// WithLogger sets the logger the cache records events to.
func WithLogger(l *logs.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics sets the metrics registry the cache reports into.
func WithMetrics(r *metrics.Registry) Option {
	return func(c *config) {
		if r != nil {
			c.metrics = r
		}
	}
}

// WithLoader sets a function to load values on cache miss.
// Concurrent loads for the same key are deduplicated.
func WithLoader(fn LoaderFunc) Option {
	return func(c *config) {
		c.loader = fn
	}
}

// WithLoaderTTL sets the TTL, in seconds, applied to loaded values.
// Defaults to TTLNever.
func WithLoaderTTL(seconds int64) Option {
	return func(c *config) {
		if seconds > 0 || seconds == TTLNever {
			c.loaderTTL = seconds
		}
	}
}
