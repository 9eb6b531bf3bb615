package httperr

import (
	"fmt"
	"net/http"
	"time"
)

// Predefined HTTP errors using http.StatusText for default messages.
// Use the With* methods to derive customized copies.
var (
	ErrBadRequest = Error{
		Status:  http.StatusBadRequest,
		Code:    "bad_request",
		Message: http.StatusText(http.StatusBadRequest),
		Expose:  true,
	}

	ErrUnauthorized = Error{
		Status:  http.StatusUnauthorized,
		Code:    "unauthorized",
		Message: http.StatusText(http.StatusUnauthorized),
		Expose:  true,
	}

	ErrForbidden = Error{
		Status:  http.StatusForbidden,
		Code:    "forbidden",
		Message: http.StatusText(http.StatusForbidden),
		Expose:  true,
	}

	ErrNotFound = Error{
		Status:  http.StatusNotFound,
		Code:    "not_found",
		Message: http.StatusText(http.StatusNotFound),
		Expose:  true,
	}

	ErrRequestTimeout = Error{
		Status:  http.StatusRequestTimeout,
		Code:    "request_timeout",
		Message: http.StatusText(http.StatusRequestTimeout),
		Expose:  true,
	}

	ErrConflict = Error{
		Status:  http.StatusConflict,
		Code:    "conflict",
		Message: http.StatusText(http.StatusConflict),
		Expose:  true,
	}

	ErrPayloadTooLarge = Error{
		Status:  http.StatusRequestEntityTooLarge,
		Code:    "payload_too_large",
		Message: http.StatusText(http.StatusRequestEntityTooLarge),
		Expose:  true,
	}

	ErrTooManyRequests = Error{
		Status:  http.StatusTooManyRequests,
		Code:    "too_many_requests",
		Message: http.StatusText(http.StatusTooManyRequests),
		Expose:  true,
	}

	ErrInternalServerError = Error{
		Status:  http.StatusInternalServerError,
		Code:    "internal_server_error",
		Message: http.StatusText(http.StatusInternalServerError),
		Expose:  false,
	}

	ErrServiceUnavailable = Error{
		Status:  http.StatusServiceUnavailable,
		Code:    "service_unavailable",
		Message: http.StatusText(http.StatusServiceUnavailable),
		Expose:  true,
	}
)

// errorsByStatus lets From map foreign status-carrying errors onto the taxonomy.
var errorsByStatus = map[int]Error{
	http.StatusBadRequest:            ErrBadRequest,
	http.StatusUnauthorized:          ErrUnauthorized,
	http.StatusForbidden:             ErrForbidden,
	http.StatusNotFound:              ErrNotFound,
	http.StatusRequestTimeout:        ErrRequestTimeout,
	http.StatusConflict:              ErrConflict,
	http.StatusRequestEntityTooLarge: ErrPayloadTooLarge,
	http.StatusTooManyRequests:       ErrTooManyRequests,
	http.StatusInternalServerError:   ErrInternalServerError,
	http.StatusServiceUnavailable:    ErrServiceUnavailable,
}

// BadRequest creates a 400 error with a custom message.
func BadRequest(message string) Error {
	return ErrBadRequest.WithMessage(message)
}

// Validation creates a 400 error carrying field-level validation details.
func Validation(message string, fields map[string]any) Error {
	e := ErrBadRequest.WithMessage(message)
	e.Code = "validation_failed"
	if len(fields) > 0 {
		e = e.WithDetails(map[string]any{"fields": fields})
	}
	return e
}

// Unauthorized creates a 401 error with a custom message.
func Unauthorized(message string) Error {
	return ErrUnauthorized.WithMessage(message)
}

// Forbidden creates a 403 error listing the roles or permissions the caller lacks.
func Forbidden(message string, required ...string) Error {
	e := ErrForbidden.WithMessage(message)
	if len(required) > 0 {
		e = e.WithDetails(map[string]any{"required": required})
	}
	return e
}

// NotFound creates a 404 error with a custom message.
func NotFound(message string) Error {
	return ErrNotFound.WithMessage(message)
}

// Conflict creates a 409 error identifying the conflicting resource.
func Conflict(message, resource string) Error {
	e := ErrConflict.WithMessage(message)
	if resource != "" {
		e = e.WithDetails(map[string]any{"resource": resource})
	}
	return e
}

// Timeout creates a 408 error reporting the elapsed deadline.
func Timeout(after time.Duration) Error {
	return ErrRequestTimeout.WithDetails(map[string]any{
		"timeout": after.String(),
	})
}

// PayloadTooLarge creates a 413 error reporting the limit and received size.
func PayloadTooLarge(limit, received int64) Error {
	return ErrPayloadTooLarge.WithDetails(map[string]any{
		"limit":    limit,
		"received": received,
	})
}

// RateLimited creates a 429 error with retry-after information.
func RateLimited(retryAfter time.Duration, limit int) Error {
	return ErrTooManyRequests.WithDetails(map[string]any{
		"retry_after": fmt.Sprintf("%.0f", retryAfter.Seconds()),
		"limit":       limit,
	})
}

// Unavailable creates a 503 error with retry-after information.
func Unavailable(retryAfter time.Duration) Error {
	return ErrServiceUnavailable.WithDetails(map[string]any{
		"retry_after": fmt.Sprintf("%.0f", retryAfter.Seconds()),
	})
}

// Internal creates a 500 error wrapping the given cause. The cause is kept
// for logging only; clients always receive the generic status text.
func Internal(err error) Error {
	return ErrInternalServerError.WithError(err)
}
