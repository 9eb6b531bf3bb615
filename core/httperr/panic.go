package httperr

import (
	"fmt"
	"runtime/debug"
)

// PanicError wraps a recovered panic value together with the stack trace
// captured at the recovery point. From normalizes it to a 500 error.
type PanicError struct {
	value any
	stack []byte
}

// Recovered wraps a value recovered from a panic, capturing the current stack.
func Recovered(v any) *PanicError {
	return &PanicError{value: v, stack: debug.Stack()}
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

// Value returns the original panic value.
func (e *PanicError) Value() any {
	return e.value
}

// Stack returns the stack trace captured at the recovery point.
func (e *PanicError) Stack() []byte {
	return e.stack
}

// Unwrap allows errors.Is/As to reach an error that was panicked with.
func (e *PanicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
