package middleware_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relaykit/relay/core/router"
	"github.com/relaykit/relay/middleware"
)

func TestSecurityHeadersDefaults(t *testing.T) {
	t.Parallel()

	r := newApp(func(ctx *router.Context) error {
		return ctx.String("ok")
	}, middleware.SecurityHeaders())

	w := get(r, "/test")
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
	assert.Equal(t, "max-age=31536000", w.Header().Get("Strict-Transport-Security"))
	assert.Empty(t, w.Header().Get("Content-Security-Policy"))
}

func TestSecurityHeadersCustom(t *testing.T) {
	t.Parallel()

	r := newApp(func(ctx *router.Context) error {
		return ctx.String("ok")
	}, middleware.SecurityHeadersWithConfig(middleware.SecurityHeadersConfig{
		FrameOptions:          "SAMEORIGIN",
		ContentSecurityPolicy: "default-src 'self'",
	}))

	w := get(r, "/test")
	assert.Equal(t, "SAMEORIGIN", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "default-src 'self'", w.Header().Get("Content-Security-Policy"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}
