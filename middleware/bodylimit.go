package middleware

import (
	"net/http"

	"github.com/relaykit/relay/core/httperr"
	"github.com/relaykit/relay/core/router"
)

// BodyLimitConfig configures the request body size limit middleware.
type BodyLimitConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx *router.Context) bool
	// MaxSize is the maximum allowed body size in bytes (default: 4MB)
	MaxSize int64
}

// BodyLimit creates a body size limit middleware with a 4MB default.
func BodyLimit() router.Middleware {
	return BodyLimitWithConfig(BodyLimitConfig{})
}

// BodyLimitWithConfig creates a body size limit middleware with custom
// configuration. Requests declaring an oversized Content-Length are rejected
// up front with a 413 error; bodies without a declared length are capped
// while being read.
func BodyLimitWithConfig(cfg BodyLimitConfig) router.Middleware {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 4 << 20
	}

	return func(ctx *router.Context, next router.Next) error {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return next()
		}

		r := ctx.Request()
		if r.ContentLength > cfg.MaxSize {
			return httperr.PayloadTooLarge(cfg.MaxSize, r.ContentLength)
		}
		r.Body = http.MaxBytesReader(ctx.ResponseWriter(), r.Body, cfg.MaxSize)

		return next()
	}
}
