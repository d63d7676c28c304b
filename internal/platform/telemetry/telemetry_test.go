package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/jsamuelsen11/portfolio-service/internal/platform/telemetry"
)

// Setup replaces process-wide providers, so these tests run serially.

func TestSetup_Stdout(t *testing.T) {
	ctx := context.Background()

	p, err := telemetry.Setup(ctx, telemetry.Settings{
		ServiceName: "portfolio-service",
		Environment: "local",
		Exporter:    telemetry.ExporterStdout,
	})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, p.Shutdown(ctx)) })

	require.NotNil(t, p.Tracer)
	require.NotNil(t, p.Meter)
	require.NotNil(t, p.Metrics)
	assert.Same(t, p.Tracer, otel.GetTracerProvider())
	assert.Same(t, p.Meter, otel.GetMeterProvider())

	fields := otel.GetTextMapPropagator().Fields()
	assert.Contains(t, fields, "traceparent")
	assert.Contains(t, fields, "baggage")
}

func TestSetup_OTLP(t *testing.T) {
	ctx := context.Background()

	p, err := telemetry.Setup(ctx, telemetry.Settings{
		ServiceName: "portfolio-service",
		Exporter:    telemetry.ExporterOTLP,
		Endpoint:    "http://localhost:4318",
	})
	require.NoError(t, err)
	// No collector runs during tests, so the final flush may fail.
	t.Cleanup(func() { _ = p.Shutdown(ctx) })

	assert.NotNil(t, p.Metrics)
}

func TestSetup_Errors(t *testing.T) {
	tests := []struct {
		name     string
		settings telemetry.Settings
		want     string
	}{
		{
			name:     "unsupported exporter",
			settings: telemetry.Settings{ServiceName: "svc", Exporter: "zipkin"},
			want:     `creating span exporter: unsupported exporter: "zipkin"`,
		},
		{
			name:     "otlp without endpoint",
			settings: telemetry.Settings{ServiceName: "svc", Exporter: telemetry.ExporterOTLP},
			want:     "creating span exporter: otlp exporter requires an endpoint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := telemetry.Setup(context.Background(), tt.settings)
			assert.Nil(t, p)
			require.EqualError(t, err, tt.want)
		})
	}
}

func TestProviders_ShutdownZeroValue(t *testing.T) {
	t.Parallel()

	var nilProviders *telemetry.Providers
	assert.NoError(t, nilProviders.Shutdown(context.Background()))
	assert.NoError(t, (&telemetry.Providers{}).Shutdown(context.Background()))
}

func TestNewMetrics_RegistersInstruments(t *testing.T) {
	t.Parallel()

	m, err := telemetry.NewMetrics(sdkmetric.NewMeterProvider(), "portfolio-service")
	require.NoError(t, err)

	assert.NotNil(t, m.ServerRequestDuration)
	assert.NotNil(t, m.ServerRequestTotal)
	assert.NotNil(t, m.ClientRequestDuration)
	assert.NotNil(t, m.ClientRequestTotal)
	assert.NotNil(t, m.StoreOperationTotal)
}

func TestMetrics_RecordStoreOperation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	m, err := telemetry.NewMetrics(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)), "portfolio-service")
	require.NoError(t, err)

	m.RecordStoreOperation(ctx, "ListProjects", nil)
	m.RecordStoreOperation(ctx, "ListProjects", nil)
	m.RecordStoreOperation(ctx, "ListProjects", errors.New("gateway down"))
	m.RecordStoreOperation(ctx, "DeleteProject", nil)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	got := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, metric := range sm.Metrics {
			if metric.Name != "store.operation.total" {
				continue
			}
			sum, ok := metric.Data.(metricdata.Sum[int64])
			require.True(t, ok, "data = %T", metric.Data)
			for _, dp := range sum.DataPoints {
				op, _ := dp.Attributes.Value(telemetry.AttrOperation)
				result, _ := dp.Attributes.Value(telemetry.AttrResult)
				got[op.AsString()+"/"+result.AsString()] = dp.Value
			}
		}
	}

	assert.Equal(t, map[string]int64{
		"ListProjects/success":  2,
		"ListProjects/error":    1,
		"DeleteProject/success": 1,
	}, got)
}

func TestMetrics_RecordStoreOperationNilReceiver(t *testing.T) {
	t.Parallel()

	var m *telemetry.Metrics
	assert.NotPanics(t, func() {
		m.RecordStoreOperation(context.Background(), "ListProjects", nil)
	})
}
