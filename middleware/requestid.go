package middleware

import (
	"github.com/google/uuid"

	"github.com/relaykit/relay/core/router"
)

// requestIDStateKey is the state bag key for the request ID.
const requestIDStateKey = "request_id"

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx *router.Context) bool
	// Generator creates new request IDs (default: UUID v4)
	Generator func() string
	// HeaderName specifies the header used for the request ID (default: "X-Request-ID")
	HeaderName string
	// UseExisting reuses a request ID arriving on the incoming request
	UseExisting bool
}

// RequestID creates a request ID middleware with default configuration.
// It generates a new UUID for each request and includes it in both the
// context state and response headers.
func RequestID() router.Middleware {
	return RequestIDWithConfig(RequestIDConfig{})
}

// RequestIDWithConfig creates a request ID middleware with custom configuration.
func RequestIDWithConfig(cfg RequestIDConfig) router.Middleware {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Request-ID"
	}
	if cfg.Generator == nil {
		cfg.Generator = func() string {
			return uuid.New().String()
		}
	}

	return func(ctx *router.Context, next router.Next) error {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return next()
		}

		var requestID string
		if cfg.UseExisting {
			requestID = ctx.Request().Header.Get(cfg.HeaderName)
		}
		if requestID == "" {
			requestID = cfg.Generator()
		}

		ctx.Set(requestIDStateKey, requestID)
		ctx.SetHeader(cfg.HeaderName, requestID)

		return next()
	}
}

// GetRequestID retrieves the request ID from the context state bag.
func GetRequestID(ctx *router.Context) (string, bool) {
	v, ok := ctx.Get(requestIDStateKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
