package infrastructure

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikepulse/internal/config"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInitializeOTel_Defaults(t *testing.T) {
	providers, err := InitializeOTel(nil, quietLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	// Default config exports metrics only
	assert.Nil(t, providers.TracerProvider)
	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.MeterProvider)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.PrometheusHTTP)
}

func TestInitializeOTel_AllDisabled(t *testing.T) {
	providers, err := InitializeOTel(&OTelConfig{
		ServiceName:    "test",
		TraceExporter:  "none",
		MetricExporter: "none",
	}, quietLogger())
	require.NoError(t, err)

	assert.Nil(t, providers.MeterProvider)
	assert.Nil(t, providers.PrometheusHTTP)

	// No-op instruments still work
	metrics, err := NewMetrics(providers.Meter)
	require.NoError(t, err)
	metrics.RecordPipeline(context.Background(), "daily", 3, time.Millisecond, nil)

	assert.NoError(t, providers.Shutdown(context.Background()))
}

func TestInitializeOTel_UnsupportedExporter(t *testing.T) {
	_, err := InitializeOTel(&OTelConfig{TraceExporter: "jaeger", MetricExporter: "none"}, quietLogger())
	assert.Error(t, err)

	_, err = InitializeOTel(&OTelConfig{TraceExporter: "none", MetricExporter: "statsd"}, quietLogger())
	assert.Error(t, err)
}

func TestNewOTelConfig(t *testing.T) {
	telemetry := config.Default().Telemetry
	telemetry.Environment = "production"
	telemetry.SampleRatio = 0.25

	cfg := NewOTelConfig(telemetry)
	assert.Equal(t, "bikepulse", cfg.ServiceName)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 0.25, cfg.SampleRatio)
	assert.NotEmpty(t, cfg.ServiceVersion)
}

func TestTraceCorrelation(t *testing.T) {
	providers, err := InitializeOTel(&OTelConfig{
		ServiceName:    "test",
		TraceExporter:  "stdout",
		MetricExporter: "none",
		SampleRatio:    1,
	}, quietLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	ctx, span := providers.Tracer.Start(context.Background(), "dashboard.build")
	defer span.End()

	assert.True(t, span.IsRecording())
	assert.Equal(t, span.SpanContext().TraceID().String(), TraceIDFromContext(ctx))

	RecordError(ctx, errors.New("boom"))
	RecordError(ctx, nil)
}

func TestTraceIDFromContext_NoSpan(t *testing.T) {
	assert.Empty(t, TraceIDFromContext(context.Background()))
}

func TestPrometheusEndpoint(t *testing.T) {
	providers, err := InitializeOTel(DefaultOTelConfig(), quietLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	metrics, err := NewMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordPipeline(ctx, "seasons", 12, 3*time.Millisecond, nil)
	metrics.RecordInvalidRange(ctx, "start_after_end")
	metrics.RecordDatasetLoad(ctx, "days.csv", 731, nil)
	metrics.RecordHTTPRequest(ctx, http.MethodGet, "/api/dashboard", http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	providers.PrometheusHTTP.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "dashboard_pipeline_runs_total")
	assert.Contains(t, body, "dashboard_invalid_ranges_total")
	assert.Contains(t, body, "dataset_rows")
	assert.Contains(t, body, "http_requests_total")
	assert.Contains(t, body, "go_goroutines")
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordHTTPRequest(ctx, http.MethodGet, "/", 200, time.Millisecond)
		m.AddActiveRequests(ctx, 1)
		m.RecordPipeline(ctx, "daily", 1, time.Millisecond, errors.New("x"))
		m.RecordInvalidRange(ctx, "out_of_bounds")
		m.RecordDatasetLoad(ctx, "x", 0, nil)
	})
}
