package simple_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaykit/relay/app/simple"
	"github.com/relaykit/relay/core/router"
)

func TestNewAppServesRoutes(t *testing.T) {
	app, err := simple.NewApp()
	require.NoError(t, err)

	app.Router().Get("/ping", func(ctx *router.Context) error {
		return ctx.String("pong")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	app.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	// Default stack: request IDs and hardening headers on every response.
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestNewAppErrorEnvelope(t *testing.T) {
	app, err := simple.NewApp()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	w := httptest.NewRecorder()
	app.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestNewAppCustomRouter(t *testing.T) {
	custom := router.New()
	app, err := simple.NewApp(simple.WithRouter(custom))
	require.NoError(t, err)
	assert.Equal(t, custom, app.Router())
}

func TestAppOptionValidation(t *testing.T) {
	_, err := simple.NewApp(simple.WithLogger(nil))
	assert.Error(t, err)

	_, err = simple.NewApp(simple.WithRouter(nil))
	assert.Error(t, err)

	_, err = simple.NewApp(simple.WithServer(nil))
	assert.Error(t, err)
}
