// Package httperr defines the error taxonomy shared by the router and
// middleware: a single structured error type carrying an HTTP status, a
// machine-readable code, a human-readable message, optional details, and an
// exposure flag that controls what reaches the client.
//
// Errors created by this package flow through handlers and middleware
// unchanged; only the error boundary (or the router's fallback handler)
// interprets them and renders the JSON envelope:
//
//	{"error": "Not Found", "status": 404, "code": "not_found", "timestamp": "..."}
//
// Unknown errors are normalized to a 500 internal error via From. The
// original cause is retained for logging but never serialized to the client
// unless exposure is explicitly enabled.
//
// Basic usage:
//
//	func getUser(ctx *router.Context) error {
//		user, err := store.Find(ctx.Param("id"))
//		if err != nil {
//			return httperr.NotFound("user not found")
//		}
//		return ctx.JSON(user)
//	}
package httperr
