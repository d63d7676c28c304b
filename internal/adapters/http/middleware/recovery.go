package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/jsamuelsen11/portfolio-service/internal/adapters/http/dto"
)

// Recovery converts a handler panic into an error log with the stack and,
// when nothing has been written yet, a bare 500 problem document. The panic
// value is logged through the redacting handler and never sent to the
// client. http.ErrAbortHandler propagates so net/http can drop the
// connection.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := recordStatus(w)
			defer func() {
				v := recover()
				switch {
				case v == nil:
					return
				case isAbort(v):
					panic(v)
				}

				logPanic(logger, r, v)
				if !rw.wroteHeader {
					dto.WriteProblem(rw, r, http.StatusInternalServerError, "")
				}
			}()

			next.ServeHTTP(rw, r)
		})
	}
}

func isAbort(v any) bool {
	err, ok := v.(error)
	return ok && errors.Is(err, http.ErrAbortHandler)
}

func logPanic(logger *slog.Logger, r *http.Request, v any) {
	logger.LogAttrs(r.Context(), slog.LevelError, "panic recovered",
		slog.String("panic", fmt.Sprint(v)),
		slog.String("panic_type", fmt.Sprintf("%T", v)),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("request_id", RequestIDFromContext(r.Context())),
		slog.String("stack", string(debug.Stack())),
	)
}
