// Package middleware holds the inbound HTTP pipeline. The router installs it
// in this order:
//
//	Recovery, RequestID, CorrelationID, AppContext, OpenTelemetry, Logging, Timeout
//
// OpenTelemetry and Logging read the matched chi route pattern after the
// handler returns, so they must be registered on the router itself.
package middleware

import "net/http"

// recorder remembers the status and body size of a response. Nested
// middleware share one recorder instead of stacking wrappers.
type recorder struct {
	http.ResponseWriter
	status  int
	bytes   int64
	started bool
}

func record(w http.ResponseWriter) *recorder {
	if rec, ok := w.(*recorder); ok {
		return rec
	}
	return &recorder{ResponseWriter: w, status: http.StatusOK}
}

func (rec *recorder) WriteHeader(code int) {
	if rec.started {
		return
	}
	rec.status, rec.started = code, true
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *recorder) Write(b []byte) (int, error) {
	rec.started = true
	n, err := rec.ResponseWriter.Write(b)
	rec.bytes += int64(n)
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rec *recorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}
