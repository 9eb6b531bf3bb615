package middleware

import (
	"net"
	"strconv"

	"github.com/relaykit/relay/core/httperr"
	"github.com/relaykit/relay/core/router"
	"github.com/relaykit/relay/pkg/ratelimiter"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx *router.Context) bool
	// Limiter is the rate limiting backend to use (required)
	Limiter ratelimiter.RateLimiter
	// KeyExtractor derives the rate limiting key from a request
	// (default: client IP)
	KeyExtractor func(ctx *router.Context) string
	// SetHeaders includes X-RateLimit-* and Retry-After headers in responses
	SetHeaders bool
}

// RateLimit creates a rate limiting middleware. Requests over the limit are
// rejected with a 429 error carrying retry-after details. Panics if no
// limiter is provided.
func RateLimit(cfg RateLimitConfig) router.Middleware {
	if cfg.Limiter == nil {
		panic("ratelimit middleware: limiter is required")
	}
	if cfg.KeyExtractor == nil {
		cfg.KeyExtractor = clientAddr
	}

	return func(ctx *router.Context, next router.Next) error {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return next()
		}

		res, err := cfg.Limiter.Allow(ctx, cfg.KeyExtractor(ctx))
		if err != nil {
			return httperr.Internal(err)
		}

		if cfg.SetHeaders {
			ctx.SetHeader("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			ctx.SetHeader("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		}

		if !res.Allowed {
			if cfg.SetHeaders && res.RetryAfter > 0 {
				ctx.SetHeader("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds()+1)))
			}
			return httperr.RateLimited(res.RetryAfter, res.Limit)
		}

		return next()
	}
}

// clientAddr extracts the remote IP, falling back to the raw address.
func clientAddr(ctx *router.Context) string {
	host, _, err := net.SplitHostPort(ctx.Request().RemoteAddr)
	if err != nil {
		return ctx.Request().RemoteAddr
	}
	return host
}
