package middleware

import (
	"log/slog"
	"time"

	"github.com/relaykit/relay/core/router"
)

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx *router.Context) bool
	// Logger is the slog logger to use (default: slog.Default())
	Logger *slog.Logger
	// LogLevel for request completion entries (default: slog.LevelInfo)
	LogLevel slog.Level
	// SlowRequestThreshold logs slower requests at warning level (default: 5s)
	SlowRequestThreshold time.Duration
	// Component name attached to every entry
	Component string
}

// Logging creates a request logging middleware with default configuration.
func Logging() router.Middleware {
	return LoggingWithConfig(LoggingConfig{})
}

// LoggingWithConfig creates a request logging middleware with custom
// configuration. One entry is written per request once the chain below it
// finishes; errors still propagate to the error boundary untouched.
func LoggingWithConfig(cfg LoggingConfig) router.Middleware {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}

	return func(ctx *router.Context, next router.Next) error {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return next()
		}

		r := ctx.Request()
		start := time.Now()

		err := next()
		elapsed := time.Since(start)

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", ctx.StatusCode(),
			"duration", elapsed.String(),
		}
		if pattern := ctx.RoutePattern(); pattern != "" {
			attrs = append(attrs, "route", pattern)
		}
		if id, ok := GetRequestID(ctx); ok {
			attrs = append(attrs, "request_id", id)
		}
		if cfg.Component != "" {
			attrs = append(attrs, "component", cfg.Component)
		}
		if err != nil {
			attrs = append(attrs, "error", err.Error())
		}

		switch {
		case err != nil:
			cfg.Logger.Error("request failed", attrs...)
		case elapsed > cfg.SlowRequestThreshold:
			cfg.Logger.Warn("slow request", attrs...)
		default:
			cfg.Logger.Log(ctx, cfg.LogLevel, "request completed", attrs...)
		}

		return err
	}
}
