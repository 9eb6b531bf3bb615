// Package middleware provides the error boundary and a set of reusable
// middleware for the relay router: request IDs, structured request logging,
// CORS, rate limiting, timeouts, body size limits, JWT authentication,
// Prometheus metrics, and security headers.
//
// All middleware follow the same conventions: a zero-config constructor with
// sensible defaults, a WithConfig variant for customization, and an optional
// Skip predicate to bypass the middleware for specific requests.
//
// The error boundary should always be the first global middleware so it
// observes every failure in the chain:
//
//	r := router.New()
//	r.Use(middleware.ErrorBoundary())
//	r.Use(middleware.RequestID())
//	r.Use(middleware.Logging())
package middleware
