package middleware_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/relaykit/relay/core/router"
	"github.com/relaykit/relay/middleware"
)

func TestLoggingSuccessEntry(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	r := newApp(func(ctx *router.Context) error {
		return ctx.String("ok")
	},
		middleware.RequestID(),
		middleware.LoggingWithConfig(middleware.LoggingConfig{
			Logger:    logger,
			Component: "api",
		}),
	)

	get(r, "/test")

	out := buf.String()
	assert.Contains(t, out, "request completed")
	assert.Contains(t, out, "method=GET")
	assert.Contains(t, out, "path=/test")
	assert.Contains(t, out, "status=200")
	assert.Contains(t, out, "route=/test")
	assert.Contains(t, out, "request_id=")
	assert.Contains(t, out, "component=api")
}

func TestLoggingErrorEntry(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	r := newApp(func(ctx *router.Context) error {
		return errors.New("downstream broke")
	},
		middleware.ErrorBoundaryWithConfig(middleware.ErrorBoundaryConfig{Logger: discard()}),
		middleware.LoggingWithConfig(middleware.LoggingConfig{Logger: logger}),
	)

	get(r, "/test")

	out := buf.String()
	assert.Contains(t, out, "request failed")
	assert.Contains(t, out, "downstream broke")
}

func TestLoggingSlowRequestWarns(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	r := newApp(func(ctx *router.Context) error {
		time.Sleep(5 * time.Millisecond)
		return ctx.NoContent()
	}, middleware.LoggingWithConfig(middleware.LoggingConfig{
		Logger:               logger,
		SlowRequestThreshold: time.Millisecond,
	}))

	get(r, "/test")
	assert.Contains(t, buf.String(), "slow request")
}

func TestLoggingSkip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	r := newApp(func(ctx *router.Context) error {
		return ctx.NoContent()
	}, middleware.LoggingWithConfig(middleware.LoggingConfig{
		Logger: logger,
		Skip: func(ctx *router.Context) bool {
			return ctx.Request().URL.Path == "/test"
		},
	}))

	get(r, "/test")
	assert.Empty(t, buf.String())
}
