package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/jsamuelsen11/portfolio-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/portfolio-service/internal/platform/logging"
)

// Timeout returns middleware that enforces a request deadline. The handler
// runs in its own goroutine with a context carrying the deadline, so store
// calls inherit it. If the deadline passes first, a 504 problem response is
// written and anything the handler writes afterwards is discarded. If the
// client goes away first, nothing is written.
//
// A panic in the handler goroutine is re-raised on the serving goroutine so
// that Recovery still sees it.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			held := &deferredResponse{}
			done := make(chan struct{})
			panicked := make(chan any, 1)

			go func() {
				defer func() {
					if v := recover(); v != nil {
						panicked <- v
					}
				}()
				next.ServeHTTP(held, r.WithContext(ctx))
				close(done)
			}()

			select {
			case v := <-panicked:
				panic(v)
			case <-done:
				held.mu.Lock()
				defer held.mu.Unlock()
				held.deliver(w)
			case <-ctx.Done():
				held.mu.Lock()
				defer held.mu.Unlock()
				held.dropped = true

				if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
					return
				}
				logging.FromContext(r.Context()).WarnContext(r.Context(), "request timed out",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Duration("timeout", timeout),
				)
				dto.WriteProblem(w, r, http.StatusGatewayTimeout, "")
			}
		})
	}
}

// deferredResponse holds the handler's response until Timeout decides
// whether it is delivered. The handler goroutine and the serving goroutine
// share it under mu; once dropped, further writes fail.
type deferredResponse struct {
	mu      sync.Mutex
	header  http.Header
	body    bytes.Buffer
	status  int
	dropped bool
}

func (d *deferredResponse) Header() http.Header {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.header == nil {
		d.header = http.Header{}
	}
	return d.header
}

func (d *deferredResponse) WriteHeader(code int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.status == 0 {
		d.status = code
	}
}

func (d *deferredResponse) Write(b []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.dropped {
		return 0, http.ErrHandlerTimeout
	}
	if d.status == 0 {
		d.status = http.StatusOK
	}
	return d.body.Write(b)
}

// deliver sends the held response to w. The caller holds d.mu.
func (d *deferredResponse) deliver(w http.ResponseWriter) {
	maps.Copy(w.Header(), d.header)
	if d.status != 0 {
		w.WriteHeader(d.status)
	}
	if d.body.Len() > 0 {
		_, _ = w.Write(d.body.Bytes())
	}
}
