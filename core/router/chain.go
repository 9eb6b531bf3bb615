package router

// execute runs an ordered middleware list plus a terminal handler via
// continuation passing. A cursor tracks the position in the chain; each call
// to next advances it, and the terminal handler runs once the list is
// exhausted. Once the response is finalized next returns immediately without
// running further units, which is both the headers-sent guard and the
// implicit cancellation signal for work that is already answered.
//
// A middleware that never calls next legitimately halts the chain. Errors
// are propagated to the caller untouched; interpretation is the error
// boundary's job.
func execute(ctx *Context, middlewares []Middleware, terminal HandlerFunc) error {
	var i int
	var next Next
	next = func() error {
		if ctx.Written() {
			return nil
		}
		if i > len(middlewares) {
			// The terminal handler already ran; repeated calls are no-ops.
			return nil
		}
		idx := i
		i++
		if idx == len(middlewares) {
			return terminal(ctx)
		}
		return middlewares[idx](ctx, next)
	}
	return next()
}
