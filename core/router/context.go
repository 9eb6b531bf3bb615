package router

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"
)

// Context is the per-request record passed through the middleware chain.
// It carries the transport handles, bound path parameters, the parsed query,
// an optional decoded body, and a free-form state bag for cross-middleware
// data. Each request owns exactly one Context and its chain executes
// sequentially, so the state bag needs no synchronization.
//
// Context implements context.Context by delegating to the request's context,
// so it can be passed directly to code expecting one.
type Context struct {
	w       *responseWriter
	r       *http.Request
	params  map[string]string
	pattern string
	query   url.Values
	body    any
	state   map[string]any
	status  int // pending status for the next response write
}

func newContext(w *responseWriter, r *http.Request, params map[string]string) *Context {
	return &Context{w: w, r: r, params: params}
}

// Deadline delegates to the request's context.
func (c *Context) Deadline() (time.Time, bool) { return c.r.Context().Deadline() }

// Done delegates to the request's context.
func (c *Context) Done() <-chan struct{} { return c.r.Context().Done() }

// Err delegates to the request's context.
func (c *Context) Err() error { return c.r.Context().Err() }

// Value delegates to the request's context.
func (c *Context) Value(key any) any { return c.r.Context().Value(key) }

// Request returns the *http.Request associated with the context.
func (c *Context) Request() *http.Request { return c.r }

// SetRequest replaces the request, e.g. after deriving a new context.
func (c *Context) SetRequest(r *http.Request) { c.r = r }

// ResponseWriter returns the http.ResponseWriter associated with the context.
// WriteHeader through it is guarded against double sends, but body writes
// bypass the finalization check so streaming keeps working; single-shot
// responses should go through the context helpers, which finalize
// atomically.
func (c *Context) ResponseWriter() http.ResponseWriter { return c.w }

// Param returns the value of the named path parameter, or "" if absent.
func (c *Context) Param(key string) string {
	return c.params[key]
}

// Params returns all bound path parameters.
func (c *Context) Params() map[string]string {
	return c.params
}

// RoutePattern returns the registration pattern of the matched route, or ""
// when no route matched (404 and synthesized OPTIONS pipelines).
func (c *Context) RoutePattern() string {
	return c.pattern
}

// Query returns the first query value for the given key.
func (c *Context) Query(key string) string {
	return c.QueryValues().Get(key)
}

// QueryValues returns the decoded query string, parsing it on first use.
func (c *Context) QueryValues() url.Values {
	if c.query == nil {
		c.query = c.r.URL.Query()
	}
	return c.query
}

// Body returns the decoded request body previously stored with SetBody,
// or nil if no decoder ran.
func (c *Context) Body() any { return c.body }

// SetBody stores the decoded request body. Body decoding itself is the job
// of a middleware or handler, not the router.
func (c *Context) SetBody(v any) { c.body = v }

// DecodeJSON decodes the request body as JSON into dst and stores it as the
// context body.
func (c *Context) DecodeJSON(dst any) error {
	if err := json.NewDecoder(c.r.Body).Decode(dst); err != nil {
		return err
	}
	c.body = dst
	return nil
}

// Set stores a value in the request-scoped state bag.
func (c *Context) Set(key string, val any) {
	if c.state == nil {
		c.state = make(map[string]any)
	}
	c.state[key] = val
}

// Get retrieves a value from the request-scoped state bag.
func (c *Context) Get(key string) (any, bool) {
	v, ok := c.state[key]
	return v, ok
}

// Written reports whether the response has been finalized. All response
// helpers are no-ops once this returns true: whoever writes first wins.
func (c *Context) Written() bool { return c.w.Written() }

// StatusCode mirrors the status code sent to the client, or 0 before the
// response is written.
func (c *Context) StatusCode() int { return c.w.Status() }

// Status sets the status code for the next response write. Fluent:
//
//	return ctx.Status(http.StatusCreated).JSON(user)
func (c *Context) Status(code int) *Context {
	c.status = code
	return c
}

// SetHeader sets a response header. No-op once the response is finalized.
func (c *Context) SetHeader(key, value string) *Context {
	if !c.w.Written() {
		c.w.Header().Set(key, value)
	}
	return c
}

// SetCookie adds a Set-Cookie header. No-op once the response is finalized.
func (c *Context) SetCookie(cookie *http.Cookie) *Context {
	if !c.w.Written() {
		http.SetCookie(c.w, cookie)
	}
	return c
}

// JSON writes the payload as application/json using the pending status
// (default 200). No-op once the response is finalized.
func (c *Context) JSON(v any) error {
	if !c.w.claim(c.pendingStatus(http.StatusOK), "Content-Type", "application/json; charset=utf-8") {
		return nil
	}
	return json.NewEncoder(c.w).Encode(v)
}

// JSONStatus writes the payload as application/json with an explicit status
// code. Shorthand for Status(code).JSON(v).
func (c *Context) JSONStatus(code int, v any) error {
	return c.Status(code).JSON(v)
}

// String writes a text/plain response. No-op once the response is finalized.
func (c *Context) String(s string) error {
	return c.Send([]byte(s), "text/plain; charset=utf-8")
}

// Send writes raw bytes with the given content type using the pending
// status. No-op once the response is finalized.
func (c *Context) Send(b []byte, contentType string) error {
	var headers []string
	if contentType != "" {
		headers = []string{"Content-Type", contentType}
	}
	if !c.w.claim(c.pendingStatus(http.StatusOK), headers...) {
		return nil
	}
	if len(b) == 0 {
		return nil
	}
	_, err := c.w.Write(b)
	return err
}

// NoContent finalizes the response with 204 and no body.
func (c *Context) NoContent() error {
	c.w.claim(http.StatusNoContent)
	return nil
}

// Redirect finalizes the response with a redirect to url. The code defaults
// to 302 when outside the 3xx range.
func (c *Context) Redirect(code int, url string) error {
	if code < http.StatusMultipleChoices || code > http.StatusPermanentRedirect {
		code = http.StatusFound
	}
	c.w.claim(code, "Location", url)
	return nil
}

func (c *Context) pendingStatus(fallback int) int {
	if c.status != 0 {
		return c.status
	}
	return fallback
}
