package router

import (
	"net/http"
	"sync"
)

// responseWriter wraps http.ResponseWriter to track whether and how the
// response was finalized. The mutex makes the finalized state safe to
// inspect when a timeout middleware leaves downstream work running in
// another goroutine.
type responseWriter struct {
	http.ResponseWriter
	mu      sync.Mutex
	status  int
	size    int
	written bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w}
}

func (w *responseWriter) WriteHeader(status int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.written {
		return
	}
	w.status = status
	w.written = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	if !w.written {
		w.status = http.StatusOK
		w.written = true
		w.ResponseWriter.WriteHeader(http.StatusOK)
	}
	w.mu.Unlock()

	n, err := w.ResponseWriter.Write(b)
	w.mu.Lock()
	w.size += n
	w.mu.Unlock()
	return n, err
}

// claim atomically finalizes the header section: it sets the given header
// pairs, sends the status, and reports whether this caller won the write.
// A losing caller must not write a body. The context's terminal helpers go
// through claim so that two racing finalizers (e.g. a timeout response and
// a late handler) can never interleave header and body writes.
func (w *responseWriter) claim(status int, headers ...string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.written {
		return false
	}
	h := w.ResponseWriter.Header()
	for i := 0; i+1 < len(headers); i += 2 {
		h.Set(headers[i], headers[i+1])
	}
	w.status = status
	w.written = true
	w.ResponseWriter.WriteHeader(status)
	return true
}

// Written reports whether the response headers have been sent.
func (w *responseWriter) Written() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// Status returns the HTTP status code sent to the client, or 0 if the
// response has not been written yet.
func (w *responseWriter) Status() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Size returns the number of body bytes written so far.
func (w *responseWriter) Size() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// Flush implements http.Flusher when the underlying writer supports it.
func (w *responseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
