package middleware

import (
	"log/slog"
	"net/http"

	"github.com/relaykit/relay/core/httperr"
	"github.com/relaykit/relay/core/router"
)

// ErrorBoundaryConfig configures the error boundary middleware.
type ErrorBoundaryConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx *router.Context) bool
	// Logger receives errors that cannot be rendered and all 5xx errors
	// (default: slog.Default())
	Logger *slog.Logger
	// ExposeInternal includes the original message and stack trace of
	// internal errors in responses. Diagnostics only; never enable in
	// production.
	ExposeInternal bool
}

// ErrorBoundary creates an error boundary middleware with default configuration.
// Install it as the first global middleware so every downstream failure is
// observed.
func ErrorBoundary() router.Middleware {
	return ErrorBoundaryWithConfig(ErrorBoundaryConfig{})
}

// ErrorBoundaryWithConfig creates an error boundary with custom configuration.
// It converts errors and panics raised anywhere in the chain into the
// structured JSON envelope {error, status, code, timestamp, details?}. Errors
// raised after the response was finalized cannot be rendered and are logged
// instead; they never propagate further.
func ErrorBoundaryWithConfig(cfg ErrorBoundaryConfig) router.Middleware {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return func(ctx *router.Context, next router.Next) error {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return next()
		}

		err := func() (err error) {
			defer func() {
				if p := recover(); p != nil {
					err = httperr.Recovered(p)
				}
			}()
			return next()
		}()
		if err == nil {
			return nil
		}

		r := ctx.Request()

		if ctx.Written() {
			// Cannot un-send bytes; the error is dropped to the log.
			cfg.Logger.Error("error after response finalized",
				"error", err,
				"method", r.Method,
				"path", r.URL.Path,
				"status", ctx.StatusCode(),
			)
			return nil
		}

		e := httperr.From(err)

		if e.Status >= http.StatusInternalServerError {
			attrs := []any{
				"error", err,
				"method", r.Method,
				"path", r.URL.Path,
				"status", e.Status,
			}
			var perr *httperr.PanicError
			if pe, ok := err.(*httperr.PanicError); ok {
				perr = pe
				attrs = append(attrs, "stack", string(pe.Stack()))
			}
			cfg.Logger.Error("request failed", attrs...)

			if cfg.ExposeInternal {
				details := map[string]any{"cause": err.Error()}
				if perr != nil {
					details["stack"] = string(perr.Stack())
				}
				e = e.WithDetails(details)
				e.Expose = true
			}
		}

		return httperr.Write(ctx.ResponseWriter(), e)
	}
}
