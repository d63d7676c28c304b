package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Attribute keys for metric labels.
var (
	AttrHTTPMethod  = attribute.Key("http.method")
	AttrHTTPRoute   = attribute.Key("http.route")
	AttrHTTPStatus  = attribute.Key("http.status_code")
	AttrPeerService = attribute.Key("peer.service")
	AttrResult      = attribute.Key("result")
	AttrOperation   = attribute.Key("operation")
)

// Result label values.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Metrics holds the service's instruments.
type Metrics struct {
	ServerRequestDuration metric.Float64Histogram
	ServerRequestTotal    metric.Int64Counter
	ClientRequestDuration metric.Float64Histogram
	ClientRequestTotal    metric.Int64Counter
	StoreOperationTotal   metric.Int64Counter
}

// NewMetrics registers the instruments on a meter named scope.
func NewMetrics(mp metric.MeterProvider, scope string) (*Metrics, error) {
	meter := mp.Meter(scope)
	m := &Metrics{}

	histograms := []struct {
		dst  *metric.Float64Histogram
		name string
		desc string
	}{
		{&m.ServerRequestDuration, "http.server.request.duration", "Duration of inbound project API requests"},
		{&m.ClientRequestDuration, "http.client.request.duration", "Duration of REST gateway calls"},
	}
	for _, h := range histograms {
		inst, err := meter.Float64Histogram(h.name, metric.WithDescription(h.desc), metric.WithUnit("s"))
		if err != nil {
			return nil, fmt.Errorf("creating %s: %w", h.name, err)
		}
		*h.dst = inst
	}

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
		unit string
	}{
		{&m.ServerRequestTotal, "http.server.request.total", "Inbound project API requests", "{request}"},
		{&m.ClientRequestTotal, "http.client.request.total", "REST gateway calls", "{request}"},
		{&m.StoreOperationTotal, "store.operation.total", "Project store operations", "{operation}"},
	}
	for _, c := range counters {
		inst, err := meter.Int64Counter(c.name, metric.WithDescription(c.desc), metric.WithUnit(c.unit))
		if err != nil {
			return nil, fmt.Errorf("creating %s: %w", c.name, err)
		}
		*c.dst = inst
	}

	return m, nil
}

// RecordStoreOperation counts one store call by operation and result. It is
// a no-op on a nil receiver.
func (m *Metrics) RecordStoreOperation(ctx context.Context, operation string, err error) {
	if m == nil || m.StoreOperationTotal == nil {
		return
	}
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	m.StoreOperationTotal.Add(ctx, 1, metric.WithAttributes(
		AttrOperation.String(operation),
		AttrResult.String(result),
	))
}
