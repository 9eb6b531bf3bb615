package httperr

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// Error is a structured HTTP error. It is a value type: the With* methods
// return modified copies, so the predefined errors below stay immutable.
type Error struct {
	Status  int            `json:"status"`            // HTTP status code
	Code    string         `json:"code"`              // Machine-readable error code
	Message string         `json:"error"`             // Human-readable message
	Details map[string]any `json:"details,omitempty"` // Optional structured context
	Expose  bool           `json:"-"`                 // Whether message/details are safe for clients

	cause error
}

// New creates an Error with the given status, code and message.
// The error is exposed to clients by default.
func New(status int, code, message string) Error {
	return Error{Status: status, Code: code, Message: message, Expose: true}
}

// Error implements the error interface.
func (e Error) Error() string {
	return e.Message
}

// Unwrap returns the wrapped cause, if any, for errors.Is/As chains.
func (e Error) Unwrap() error {
	return e.cause
}

// StatusCode returns the HTTP status code for the error.
func (e Error) StatusCode() int {
	return e.Status
}

// WithMessage returns a copy of the error with a custom message.
func (e Error) WithMessage(message string) Error {
	e.Message = message
	return e
}

// WithDetails returns a copy of the error with additional details.
// Existing details are preserved unless overwritten by key.
func (e Error) WithDetails(details map[string]any) Error {
	if e.Details == nil {
		e.Details = details
		return e
	}
	merged := make(map[string]any, len(e.Details)+len(details))
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	e.Details = merged
	return e
}

// WithError returns a copy of the error with the given cause attached.
// The cause is available via Unwrap and Cause but is never serialized.
func (e Error) WithError(err error) Error {
	e.cause = err
	return e
}

// Cause returns the wrapped cause, if any.
func (e Error) Cause() error {
	return e.cause
}

// statusCode is an unexported interface that foreign errors can implement
// to carry a custom HTTP status code through normalization.
type statusCode interface {
	StatusCode() int
}

// From normalizes any error into an Error. Typed errors pass through
// unchanged; errors implementing StatusCode() int map to the predefined
// error for that status; everything else becomes an internal error whose
// original message is retained as the cause but hidden from clients.
func From(err error) Error {
	var e Error
	if errors.As(err, &e) {
		return e
	}

	status := http.StatusInternalServerError
	if sc, ok := err.(statusCode); ok {
		status = sc.StatusCode()
	}

	base, ok := errorsByStatus[status]
	if !ok {
		base = ErrInternalServerError
	}
	return base.WithError(err)
}

// envelope is the wire shape produced by Write.
type envelope struct {
	Error
	Timestamp time.Time `json:"timestamp"`
}

// Write renders the error as the standard JSON envelope. Errors that are not
// marked for exposure are scrubbed to the generic status text with no details
// before serialization.
func Write(w http.ResponseWriter, e Error) error {
	if !e.Expose {
		e.Message = http.StatusText(e.Status)
		e.Details = nil
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.Status)
	return json.NewEncoder(w).Encode(envelope{Error: e, Timestamp: time.Now().UTC()})
}
