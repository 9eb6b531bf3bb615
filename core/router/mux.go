package router

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/relaykit/relay/core/httperr"
)

// mux is the private implementation of the Router interface. Groups share
// the parent's tree and differ only in prefix and accumulated middleware.
type mux struct {
	tree         *node
	middlewares  []Middleware
	errorHandler ErrorHandler
	logger       *slog.Logger
	parent       *mux
	prefix       string       // group path prefix
	groupMws     []Middleware // group-level route middleware
	routed       bool         // set once the first route is registered
}

// newMux creates a new router instance.
func newMux(opts ...Option) *mux {
	m := &mux{
		tree:         &node{},
		errorHandler: defaultErrorHandler,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)), // No-op logger by default
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ServeHTTP implements http.Handler. It resolves the route, builds the
// request context, and runs global middleware, route middleware, and the
// handler through the chain executor.
func (m *mux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := newResponseWriter(w)

	path := r.URL.Path
	if path == "" {
		path = "/"
	}
	segs := splitPath(path)

	params := make(map[string]string)
	rt := m.tree.findRoute(r.Method, segs, params)

	var (
		ctx      *Context
		chain    []Middleware
		terminal HandlerFunc
	)

	switch {
	case rt != nil:
		ctx = newContext(ww, r, params)
		ctx.pattern = rt.pattern
		chain = concat(m.middlewares, rt.middlewares)
		terminal = rt.handler

	case r.Method == http.MethodOptions:
		// No explicit OPTIONS route: synthesize one from every route
		// reachable on this path under other methods. Its middleware list is
		// the concatenation of the discovered routes' middleware in
		// discovery order, and its terminal defaults to 200 unless a
		// middleware (e.g. a CORS preflight) finalizes something else first.
		found := m.tree.routesOnPath(segs, nil)
		if len(found) == 0 {
			ctx, chain, terminal = m.notFoundPipeline(ww, r)
			break
		}
		ctx = newContext(ww, r, nil)
		chain = concat(m.middlewares, nil)
		for _, frt := range found {
			chain = append(chain, frt.middlewares...)
		}
		allow := allowedMethods(found)
		terminal = func(c *Context) error {
			c.SetHeader("Allow", allow)
			return c.Status(http.StatusOK).Send(nil, "")
		}

	default:
		ctx, chain, terminal = m.notFoundPipeline(ww, r)
	}

	// Safety net for panics that escape the chain, including ones raised
	// before an error boundary is installed. Cannot un-send bytes: once the
	// response is finalized the panic only goes to the log.
	defer func() {
		if p := recover(); p != nil {
			perr := httperr.Recovered(p)
			if ww.Written() {
				m.logger.Error("panic after response written",
					"error", perr.Error(),
					"stack", string(perr.Stack()),
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
				)
				return
			}
			m.errorHandler(ctx, perr)
		}
	}()

	if err := execute(ctx, chain, terminal); err != nil {
		if ww.Written() {
			m.logger.Error("error after response written",
				"error", err,
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
			)
			return
		}
		m.errorHandler(ctx, err)
	}
}

// notFoundPipeline runs only global middleware before a terminal that raises
// a route-not-found error, producing the 404 envelope.
func (m *mux) notFoundPipeline(ww *responseWriter, r *http.Request) (*Context, []Middleware, HandlerFunc) {
	ctx := newContext(ww, r, nil)
	terminal := func(*Context) error {
		return httperr.ErrNotFound
	}
	return ctx, concat(m.middlewares, nil), terminal
}

// Get registers a handler for GET requests.
func (m *mux) Get(pattern string, h HandlerFunc, mws ...Middleware) {
	m.handle(http.MethodGet, pattern, h, mws)
}

// Post registers a handler for POST requests.
func (m *mux) Post(pattern string, h HandlerFunc, mws ...Middleware) {
	m.handle(http.MethodPost, pattern, h, mws)
}

// Put registers a handler for PUT requests.
func (m *mux) Put(pattern string, h HandlerFunc, mws ...Middleware) {
	m.handle(http.MethodPut, pattern, h, mws)
}

// Delete registers a handler for DELETE requests.
func (m *mux) Delete(pattern string, h HandlerFunc, mws ...Middleware) {
	m.handle(http.MethodDelete, pattern, h, mws)
}

// Patch registers a handler for PATCH requests.
func (m *mux) Patch(pattern string, h HandlerFunc, mws ...Middleware) {
	m.handle(http.MethodPatch, pattern, h, mws)
}

// Head registers a handler for HEAD requests.
func (m *mux) Head(pattern string, h HandlerFunc, mws ...Middleware) {
	m.handle(http.MethodHead, pattern, h, mws)
}

// Options registers an explicit handler for OPTIONS requests, disabling
// synthesis for the pattern.
func (m *mux) Options(pattern string, h HandlerFunc, mws ...Middleware) {
	m.handle(http.MethodOptions, pattern, h, mws)
}

// Handle registers a handler for an explicit HTTP method. Re-registering the
// same (method, pattern) replaces the previous handler.
func (m *mux) Handle(method, pattern string, h HandlerFunc, mws ...Middleware) {
	method = strings.ToUpper(method)
	if _, ok := knownMethods[method]; !ok {
		panic(fmt.Errorf("%w: %s", ErrInvalidMethod, method))
	}
	m.handle(method, pattern, h, mws)
}

// Use appends middleware. On the root router the global list must be
// complete before the first route is registered; after that the pipeline is
// frozen. Inside a group, middleware applies to the group's routes only.
func (m *mux) Use(mws ...Middleware) {
	if m.parent != nil {
		m.groupMws = append(m.groupMws, mws...)
		return
	}
	if m.routed {
		panic("relay: all global middlewares must be defined before routes")
	}
	m.middlewares = append(m.middlewares, mws...)
}

// Group registers routes under a shared path prefix. Middleware added via
// Use inside the group applies to those routes as route middleware.
func (m *mux) Group(prefix string, fn func(r Router)) {
	if fn == nil {
		panic("relay: nil group function")
	}
	if prefix == "" || prefix[0] != '/' {
		panic(fmt.Errorf("%w: '%s'", ErrInvalidPattern, prefix))
	}
	g := &mux{
		tree:         m.tree,
		errorHandler: m.errorHandler,
		logger:       m.logger,
		parent:       m,
		prefix:       m.prefix + prefix,
		groupMws:     concat(m.groupMws, nil),
	}
	fn(g)
}

// Routes returns all registered routes.
func (m *mux) Routes() []Route {
	var rts []Route
	m.tree.walk(func(rt *route) {
		rts = append(rts, Route{Method: rt.method, Pattern: rt.pattern})
	})
	return rts
}

// handle registers a handler in the routing tree.
func (m *mux) handle(method, pattern string, h HandlerFunc, mws []Middleware) {
	if len(pattern) == 0 || pattern[0] != '/' {
		panic(fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern))
	}
	if h == nil {
		panic(fmt.Errorf("%w: '%s %s'", ErrNilHandler, method, pattern))
	}

	root := m
	for root.parent != nil {
		root.parent.routed = true
		root = root.parent
	}
	root.routed = true

	full := m.prefix + pattern
	root.tree.insertRoute(method, full, h, concat(m.groupMws, mws))
}

// concat copies a ++ b into a fresh slice so shared middleware lists are
// never aliased across routes.
func concat(a, b []Middleware) []Middleware {
	out := make([]Middleware, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// allowedMethods renders the Allow header for a set of discovered routes.
func allowedMethods(found []*route) string {
	seen := make(map[string]struct{}, len(found)+1)
	methods := make([]string, 0, len(found)+1)
	for _, rt := range found {
		if _, ok := seen[rt.method]; ok {
			continue
		}
		seen[rt.method] = struct{}{}
		methods = append(methods, rt.method)
	}
	if _, ok := seen[http.MethodOptions]; !ok {
		methods = append(methods, http.MethodOptions)
	}
	return strings.Join(methods, ", ")
}

// defaultErrorHandler renders the error taxonomy's JSON envelope.
func defaultErrorHandler(ctx *Context, err error) {
	if ctx.Written() {
		return
	}
	_ = httperr.Write(ctx.ResponseWriter(), httperr.From(err))
}
