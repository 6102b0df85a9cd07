package middleware

import (
	"context"
	"reflect"
	"time"

	"github.com/felixgeelhaar/fortify/ratelimit"

	"github.com/felixgeelhaar/arri-go/protocol"
	"github.com/felixgeelhaar/arri-go/schema"
)

// RateLimitOption configures the rate limiter.
type RateLimitOption func(*rateLimitConfig)

type rateLimitConfig struct {
	keyFunc func(context.Context, reflect.Type) string
	logger  Logger
}

// WithRateLimitKeyFunc sets a function to extract a rate limit key from an export.
// This allows per-type or per-caller rate limiting.
func WithRateLimitKeyFunc(fn func(context.Context, reflect.Type) string) RateLimitOption {
	return func(o *rateLimitConfig) {
		o.keyFunc = fn
	}
}

// WithRateLimitLogger sets the logger for rate limit events.
func WithRateLimitLogger(l Logger) RateLimitOption {
	return func(o *rateLimitConfig) {
		o.logger = l
	}
}

// RateLimit returns middleware that limits export rate using a token bucket algorithm.
// The rate is specified as exports per second.
// Burst allows short bursts above the rate limit.
func RateLimit(rate int, burst int, opts ...RateLimitOption) Middleware {
	cfg := &rateLimitConfig{
		keyFunc: func(context.Context, reflect.Type) string { return "global" },
	}
	for _, opt := range opts {
		opt(cfg)
	}

	limiter := ratelimit.New(&ratelimit.Config{
		Rate:     rate,
		Burst:    burst,
		Interval: time.Second,
	})

	return func(next ExportFunc) ExportFunc {
		return func(ctx context.Context, t reflect.Type) (schema.Node, error) {
			key := cfg.keyFunc(ctx, t)

			if !limiter.Allow(ctx, key) {
				if cfg.logger != nil {
					cfg.logger.Warn("rate limit exceeded",
						Field{Key: "type", Value: typeName(t)},
						Field{Key: "key", Value: key},
					)
				}
				return nil, protocol.NewRateLimited(typeName(t))
			}

			return next(ctx, t)
		}
	}
}

// RateLimitByType returns rate limiting middleware that applies per-type limits.
func RateLimitByType(rate int, burst int, opts ...RateLimitOption) Middleware {
	allOpts := append([]RateLimitOption{
		WithRateLimitKeyFunc(func(_ context.Context, t reflect.Type) string {
			return typeName(t)
		}),
	}, opts...)
	return RateLimit(rate, burst, allOpts...)
}

// RateLimitByRequest returns rate limiting middleware keyed by the request ID
// stored in the context, falling back to a shared bucket.
func RateLimitByRequest(rate int, burst int, opts ...RateLimitOption) Middleware {
	allOpts := append([]RateLimitOption{
		WithRateLimitKeyFunc(func(ctx context.Context, _ reflect.Type) string {
			if id := RequestIDFromContext(ctx); id != "" {
				return id
			}
			return "global"
		}),
	}, opts...)
	return RateLimit(rate, burst, allOpts...)
}
