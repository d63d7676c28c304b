package middleware

import (
	"net/http"
	"slices"

	"github.com/go-chi/cors"
)

const corsMaxAgeSeconds = 300

// CORS returns middleware that answers preflight requests and sets the
// Access-Control headers for the given origins. "*" allows any origin.
// extraHeaders are request headers clients may send in addition to the
// defaults, such as the admin token header.
func CORS(allowedOrigins []string, extraHeaders ...string) func(http.Handler) http.Handler {
	headers := slices.Concat(
		[]string{"Accept", "Content-Type", headerRequestID, headerCorrelationID},
		extraHeaders,
	)
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: headers,
		ExposedHeaders: []string{headerRequestID, headerCorrelationID},
		MaxAge:         corsMaxAgeSeconds,
	})
}
