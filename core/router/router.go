package router

import "net/http"

// HandlerFunc is the terminal unit of a request pipeline. It is expected to
// finalize a response, either directly through the context helpers or by
// returning an error for the error boundary to render.
type HandlerFunc func(ctx *Context) error

// Next continues the middleware chain. Not calling it halts the chain at the
// current unit, which is the intended way to answer from cache, reject an
// unauthenticated request, or finish a CORS preflight.
type Next func() error

// Middleware is a unit of the request pipeline. It runs around the rest of
// the chain and decides whether to continue by invoking next.
type Middleware func(ctx *Context, next Next) error

// ErrorHandler renders errors that escape the middleware chain. It is the
// router's fallback; installing an error boundary as the first global
// middleware is the recommended way to handle errors.
type ErrorHandler func(ctx *Context, err error)

// Router dispatches HTTP requests to registered handlers. Registration must
// complete before traffic begins; the routing tree is read-only while
// serving.
type Router interface {
	http.Handler
	Routes

	// HTTP method handlers
	Get(pattern string, h HandlerFunc, mws ...Middleware)
	Post(pattern string, h HandlerFunc, mws ...Middleware)
	Put(pattern string, h HandlerFunc, mws ...Middleware)
	Delete(pattern string, h HandlerFunc, mws ...Middleware)
	Patch(pattern string, h HandlerFunc, mws ...Middleware)
	Head(pattern string, h HandlerFunc, mws ...Middleware)
	Options(pattern string, h HandlerFunc, mws ...Middleware)

	// Handle registers a handler for an explicit HTTP method.
	Handle(method, pattern string, h HandlerFunc, mws ...Middleware)

	// Use appends global middleware. On the root router it must be called
	// before any route is registered; inside a group it appends middleware
	// that applies to the group's routes only.
	Use(mws ...Middleware)

	// Group registers routes under a shared path prefix with shared
	// middleware.
	Group(prefix string, fn func(r Router))
}

// Routes provides route introspection capabilities.
type Routes interface {
	Routes() []Route
}

// Route describes a single registered route.
type Route struct {
	Method  string
	Pattern string
}

// New creates a new router with the given options.
func New(opts ...Option) Router {
	return newMux(opts...)
}
