package router

import "log/slog"

// Option configures a Router during creation.
type Option func(*mux)

// WithErrorHandler sets a custom fallback error handler for the router.
func WithErrorHandler(h ErrorHandler) Option {
	return func(m *mux) {
		if h != nil {
			m.errorHandler = h
		}
	}
}

// WithMiddleware adds global middleware to the router.
func WithMiddleware(mws ...Middleware) Option {
	return func(m *mux) {
		m.middlewares = append(m.middlewares, mws...)
	}
}

// WithLogger sets the logger used for errors that can no longer be turned
// into a response (panics or errors after the response was finalized).
func WithLogger(logger *slog.Logger) Option {
	return func(m *mux) {
		if logger != nil {
			m.logger = logger
		}
	}
}
