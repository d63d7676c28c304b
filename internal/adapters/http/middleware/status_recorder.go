// Package middleware holds the inbound HTTP middleware. The router installs
// them with chi's Use in this order:
//
//	Recovery → RequestID → CorrelationID → OpenTelemetry → Logging →
//	SecurityHeaders → CORS → RateLimit → Timeout → handler
package middleware

import "net/http"

// statusRecorder remembers the status and body size a handler produced, for
// Recovery, OpenTelemetry and Logging.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	bytes       int64
}

func recordStatus(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader forwards the first status code and ignores later ones.
func (sr *statusRecorder) WriteHeader(code int) {
	if sr.wroteHeader {
		return
	}
	sr.status, sr.wroteHeader = code, true
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	sr.wroteHeader = true
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += int64(n)
	return n, err
}

// Unwrap exposes the wrapped writer to http.ResponseController.
func (sr *statusRecorder) Unwrap() http.ResponseWriter {
	return sr.ResponseWriter
}
