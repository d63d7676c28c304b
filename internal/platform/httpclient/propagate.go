package httpclient

import (
	"context"
	"net/http"
)

// Outbound header names for the inbound request identifiers.
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"
)

type (
	requestIDKey     struct{}
	correlationIDKey struct{}
)

// WithRequestID stores the inbound request ID for outbound calls made with ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// WithCorrelationID stores the inbound correlation ID for outbound calls made
// with ctx.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

func propagateIDs(ctx context.Context, h http.Header) {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		h.Set(HeaderRequestID, id)
	}
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok && id != "" {
		h.Set(HeaderCorrelationID, id)
	}
}
