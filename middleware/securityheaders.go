package middleware

import (
	"strconv"

	"github.com/relaykit/relay/core/router"
)

// SecurityHeadersConfig configures the security headers middleware.
type SecurityHeadersConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx *router.Context) bool
	// ContentSecurityPolicy sets the Content-Security-Policy header (empty: omitted)
	ContentSecurityPolicy string
	// FrameOptions sets X-Frame-Options (default: "DENY")
	FrameOptions string
	// HSTSMaxAge sets Strict-Transport-Security max-age in seconds
	// (default: 31536000; 0 omits the header)
	HSTSMaxAge int
	// ReferrerPolicy sets the Referrer-Policy header
	// (default: "strict-origin-when-cross-origin")
	ReferrerPolicy string
}

// SecurityHeaders creates a security headers middleware with sensible
// hardening defaults.
func SecurityHeaders() router.Middleware {
	return SecurityHeadersWithConfig(SecurityHeadersConfig{HSTSMaxAge: 31536000})
}

// SecurityHeadersWithConfig creates a security headers middleware with
// custom configuration.
func SecurityHeadersWithConfig(cfg SecurityHeadersConfig) router.Middleware {
	if cfg.FrameOptions == "" {
		cfg.FrameOptions = "DENY"
	}
	if cfg.ReferrerPolicy == "" {
		cfg.ReferrerPolicy = "strict-origin-when-cross-origin"
	}

	return func(ctx *router.Context, next router.Next) error {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return next()
		}

		ctx.SetHeader("X-Content-Type-Options", "nosniff")
		ctx.SetHeader("X-Frame-Options", cfg.FrameOptions)
		ctx.SetHeader("Referrer-Policy", cfg.ReferrerPolicy)
		if cfg.HSTSMaxAge > 0 {
			ctx.SetHeader("Strict-Transport-Security", "max-age="+strconv.Itoa(cfg.HSTSMaxAge))
		}
		if cfg.ContentSecurityPolicy != "" {
			ctx.SetHeader("Content-Security-Policy", cfg.ContentSecurityPolicy)
		}

		return next()
	}
}
