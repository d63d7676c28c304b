package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/portfolio-service/internal/platform/telemetry"
)

const (
	tracerName = "github.com/jsamuelsen11/portfolio-service/internal/adapters/http/middleware"

	// unmatchedRoute labels requests that matched no registered route, so raw
	// paths never reach span names or metric labels.
	unmatchedRoute = "unmatched"
)

// OpenTelemetry starts a server span per request, continuing any W3C trace
// context in the inbound headers, and records server request metrics.
//
// The span is named "HTTP <method> <route>" once routing has run, using the
// chi pattern (e.g. /projects/{slug}). A nil metrics skips recording.
func OpenTelemetry(metrics *telemetry.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := otel.Tracer(tracerName).Start(ctx, "HTTP "+r.Method,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					semconv.HTTPRequestMethodKey.String(r.Method),
					semconv.URLPath(r.URL.Path),
				),
			)
			defer span.End()

			rw := recordStatus(w)
			next.ServeHTTP(rw, r.WithContext(ctx))

			route := routePattern(r)
			finishServerSpan(span, r.Method, route, rw.status)
			recordServerMetrics(ctx, metrics, r.Method, route, start, rw.status)
		})
	}
}

func finishServerSpan(span trace.Span, method, route string, status int) {
	span.SetName("HTTP " + method + " " + route)
	span.SetAttributes(
		semconv.HTTPRoute(route),
		semconv.HTTPResponseStatusCode(status),
	)
	if status >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, http.StatusText(status))
	}
}

// routePattern returns the matched chi pattern, or unmatchedRoute.
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.RoutePattern() == "" {
		return unmatchedRoute
	}
	return rctx.RoutePattern()
}

func recordServerMetrics(ctx context.Context, metrics *telemetry.Metrics, method, route string, start time.Time, status int) {
	if metrics == nil {
		return
	}

	result := telemetry.ResultSuccess
	if status >= http.StatusBadRequest {
		result = telemetry.ResultError
	}

	attrs := metric.WithAttributes(
		telemetry.AttrHTTPMethod.String(method),
		telemetry.AttrHTTPRoute.String(route),
		telemetry.AttrHTTPStatus.Int(status),
		telemetry.AttrResult.String(result),
	)
	metrics.ServerRequestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	metrics.ServerRequestTotal.Add(ctx, 1, attrs)
}
