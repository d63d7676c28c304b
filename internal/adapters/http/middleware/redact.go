package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/jsamuelsen11/portfolio-service/internal/platform/logging"
)

const redacted = "[REDACTED]"

// RedactHeaders renders h as a "headers" group with names in sorted order.
// Values of logging.SensitiveHeaders are replaced and repeated values are
// joined with a comma.
func RedactHeaders(h http.Header) slog.Attr {
	names := slices.Sorted(func(yield func(string) bool) {
		for name := range h {
			if !yield(name) {
				return
			}
		}
	})

	attrs := make([]any, 0, len(names))
	for _, name := range names {
		value := redacted
		if !logging.SensitiveHeaders[strings.ToLower(name)] {
			value = strings.Join(h[name], ",")
		}
		attrs = append(attrs, slog.String(name, value))
	}
	return slog.Group("headers", attrs...)
}
