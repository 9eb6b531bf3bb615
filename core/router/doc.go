// Package router implements the request dispatch core: a prefix trie that
// resolves (method, path) to a handler with bound path parameters, and a
// cooperative middleware chain executed around that handler.
//
// Patterns use ':name' for single-segment captures and a trailing '*' for a
// catch-all. Matching precedence is literal > parameter > wildcard, with
// backtracking, so registering both /users/active and /users/:id resolves
// /users/active to the literal route. Trailing and duplicate slashes collapse
// during compilation; no redirects are issued.
//
// Middleware has the signature func(*Context, Next) error. Calling next
// continues the chain; returning without calling it short-circuits. Errors
// propagate to the first middleware that interprets them, conventionally the
// error boundary installed as the first global middleware:
//
//	r := router.New()
//	r.Use(middleware.ErrorBoundary())
//	r.Use(middleware.RequestID())
//	r.Get("/users/:id", func(ctx *router.Context) error {
//		return ctx.JSON(map[string]string{"id": ctx.Param("id")})
//	})
//	http.ListenAndServe(":8080", r)
//
// Registration must complete before traffic begins; the routing tree is
// read-only while serving. An OPTIONS request with no explicit route is
// answered by a synthesized pipeline built from every route registered on the
// path, defaulting to 200 unless a middleware finalizes first.
package router
