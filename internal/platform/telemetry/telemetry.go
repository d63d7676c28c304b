// Package telemetry wires OpenTelemetry tracing and metrics for the service.
//
//	p, err := telemetry.Setup(ctx, telemetry.Settings{
//	    ServiceName: "portfolio-service",
//	    Environment: "dev",
//	    Exporter:    telemetry.ExporterOTLP,
//	    Endpoint:    "http://otel-collector:4318",
//	})
//	defer p.Shutdown(ctx)
//
//	p.Metrics.RecordStoreOperation(ctx, "ListProjects", err)
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
)

// Supported exporter names.
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

var (
	errUnsupportedExporter = errors.New("unsupported exporter")
	errMissingEndpoint     = errors.New("otlp exporter requires an endpoint")
)

// Settings selects where spans and metrics go.
type Settings struct {
	ServiceName string
	// Environment is recorded as deployment.environment.name when set.
	Environment string
	Exporter    string
	Endpoint    string
}

// Providers holds the installed SDK providers and the service's instruments.
// The zero value has nil Metrics, which every recorder accepts.
type Providers struct {
	Tracer  *sdktrace.TracerProvider
	Meter   *sdkmetric.MeterProvider
	Metrics *Metrics
}

// Setup installs global tracer and meter providers plus the W3C trace-context
// and baggage propagators, and registers the service instruments.
func Setup(ctx context.Context, s Settings) (*Providers, error) {
	res, err := newResource(s)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	tp, err := newTracerProvider(ctx, res, s)
	if err != nil {
		return nil, err
	}

	mp, err := newMeterProvider(ctx, res, s)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}

	metrics, err := NewMetrics(mp, s.ServiceName)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return &Providers{Tracer: tp, Meter: mp, Metrics: metrics}, nil
}

// Shutdown flushes and stops both providers. Safe on a nil or zero value.
func (p *Providers) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}

	var errs []error
	if p.Tracer != nil {
		if err := p.Tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if p.Meter != nil {
		if err := p.Meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func newResource(s Settings) (*resource.Resource, error) {
	attrs := []attribute.KeyValue{semconv.ServiceName(s.ServiceName)}
	if s.Environment != "" {
		attrs = append(attrs, attribute.String("deployment.environment.name", s.Environment))
	}
	return resource.Merge(resource.Default(), resource.NewWithAttributes(semconv.SchemaURL, attrs...))
}

func newTracerProvider(ctx context.Context, res *resource.Resource, s Settings) (*sdktrace.TracerProvider, error) {
	var (
		exp sdktrace.SpanExporter
		err error
	)
	switch s.Exporter {
	case ExporterOTLP:
		if s.Endpoint == "" {
			return nil, fmt.Errorf("creating span exporter: %w", errMissingEndpoint)
		}
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(hostPort(s.Endpoint))}
		if !isHTTPS(s.Endpoint) {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		exp, err = otlptracehttp.New(ctx, opts...)
	case ExporterStdout:
		exp, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
	default:
		err = fmt.Errorf("%w: %q", errUnsupportedExporter, s.Exporter)
	}
	if err != nil {
		return nil, fmt.Errorf("creating span exporter: %w", err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	), nil
}

func newMeterProvider(ctx context.Context, res *resource.Resource, s Settings) (*sdkmetric.MeterProvider, error) {
	var (
		exp sdkmetric.Exporter
		err error
	)
	switch s.Exporter {
	case ExporterOTLP:
		if s.Endpoint == "" {
			return nil, fmt.Errorf("creating metric exporter: %w", errMissingEndpoint)
		}
		opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(hostPort(s.Endpoint))}
		if !isHTTPS(s.Endpoint) {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		exp, err = otlpmetrichttp.New(ctx, opts...)
	case ExporterStdout:
		exp, err = stdoutmetric.New()
	default:
		err = fmt.Errorf("%w: %q", errUnsupportedExporter, s.Exporter)
	}
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	), nil
}

// hostPort turns "http://otel-collector:4318" into "otel-collector:4318".
func hostPort(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return endpoint
	}
	return u.Host
}

func isHTTPS(endpoint string) bool {
	u, err := url.Parse(endpoint)
	return err == nil && u.Scheme == "https"
}
