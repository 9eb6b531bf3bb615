package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/relaykit/relay/core/router"
)

// CORSConfig defines configuration options for CORS middleware.
type CORSConfig struct {
	// Skip allows bypassing CORS handling for specific requests
	Skip func(ctx *router.Context) bool

	// AllowOrigins specifies allowed origins. Use "*" for all origins.
	// If empty, defaults to allowing all origins ("*")
	AllowOrigins []string

	// AllowMethods specifies allowed HTTP methods.
	// If empty, defaults to GET, HEAD, PUT, PATCH, POST, DELETE
	AllowMethods []string

	// AllowHeaders specifies allowed request headers.
	// If empty, defaults to Accept, Content-Type and Authorization
	AllowHeaders []string

	// ExposeHeaders specifies which headers are exposed to the client
	ExposeHeaders []string

	// AllowCredentials indicates whether credentials are allowed.
	// Incompatible with wildcard origins.
	AllowCredentials bool

	// MaxAge specifies how long preflight responses can be cached (seconds)
	MaxAge int
}

// CORS returns a CORS middleware with default configuration: all origins,
// common methods and headers, no credentials.
func CORS() router.Middleware {
	return CORSWithConfig(CORSConfig{})
}

// CORSWithConfig returns a CORS middleware with custom configuration.
// Preflight requests are answered with 204 without calling next, which
// short-circuits the synthesized OPTIONS pipeline.
func CORSWithConfig(cfg CORSConfig) router.Middleware {
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowOrigins = []string{"*"}
	}
	if len(cfg.AllowMethods) == 0 {
		cfg.AllowMethods = []string{
			http.MethodGet, http.MethodHead, http.MethodPut,
			http.MethodPatch, http.MethodPost, http.MethodDelete,
		}
	}
	if len(cfg.AllowHeaders) == 0 {
		cfg.AllowHeaders = []string{"Accept", "Content-Type", "Authorization"}
	}

	wildcard := slices.Contains(cfg.AllowOrigins, "*")
	allowMethods := strings.Join(cfg.AllowMethods, ", ")
	allowHeaders := strings.Join(cfg.AllowHeaders, ", ")
	exposeHeaders := strings.Join(cfg.ExposeHeaders, ", ")

	return func(ctx *router.Context, next router.Next) error {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return next()
		}

		r := ctx.Request()
		origin := r.Header.Get("Origin")
		if origin == "" {
			return next()
		}

		allowed := ""
		switch {
		case wildcard && cfg.AllowCredentials:
			// Credentials require an exact origin echo.
			allowed = origin
		case wildcard:
			allowed = "*"
		case slices.Contains(cfg.AllowOrigins, origin):
			allowed = origin
		}
		if allowed == "" {
			return next()
		}

		ctx.SetHeader("Access-Control-Allow-Origin", allowed)
		if allowed != "*" {
			ctx.SetHeader("Vary", "Origin")
		}
		if cfg.AllowCredentials {
			ctx.SetHeader("Access-Control-Allow-Credentials", "true")
		}

		// Preflight: answer and halt the chain.
		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			ctx.SetHeader("Access-Control-Allow-Methods", allowMethods)
			ctx.SetHeader("Access-Control-Allow-Headers", allowHeaders)
			if cfg.MaxAge > 0 {
				ctx.SetHeader("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
			}
			return ctx.NoContent()
		}

		if exposeHeaders != "" {
			ctx.SetHeader("Access-Control-Expose-Headers", exposeHeaders)
		}
		return next()
	}
}
