package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaykit/relay/core/router"
	"github.com/relaykit/relay/middleware"
)

func TestRequestIDGeneratesUUID(t *testing.T) {
	t.Parallel()

	var captured string
	r := newApp(func(ctx *router.Context) error {
		id, ok := middleware.GetRequestID(ctx)
		require.True(t, ok)
		captured = id
		return ctx.NoContent()
	}, middleware.RequestID())

	w := get(r, "/test")
	require.NotEmpty(t, captured)
	_, err := uuid.Parse(captured)
	assert.NoError(t, err)
	assert.Equal(t, captured, w.Header().Get("X-Request-ID"))
}

func TestRequestIDUseExisting(t *testing.T) {
	t.Parallel()

	r := newApp(func(ctx *router.Context) error {
		return ctx.NoContent()
	}, middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		UseExisting: true,
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Request-ID", "incoming-id")
	w := perform(r, req)
	assert.Equal(t, "incoming-id", w.Header().Get("X-Request-ID"))
}

func TestRequestIDIgnoresIncomingByDefault(t *testing.T) {
	t.Parallel()

	r := newApp(func(ctx *router.Context) error {
		return ctx.NoContent()
	}, middleware.RequestID())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Request-ID", "spoofed")
	w := perform(r, req)
	assert.NotEqual(t, "spoofed", w.Header().Get("X-Request-ID"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestIDCustomGeneratorAndHeader(t *testing.T) {
	t.Parallel()

	r := newApp(func(ctx *router.Context) error {
		return ctx.NoContent()
	}, middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		HeaderName: "X-Trace-ID",
		Generator:  func() string { return "fixed" },
	}))

	w := get(r, "/test")
	assert.Equal(t, "fixed", w.Header().Get("X-Trace-ID"))
}
