package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikepulse/internal/config"
	apperrors "bikepulse/internal/errors"
	"bikepulse/internal/shared/testutil"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Dataset.Path = testutil.WriteCSV(t, t.TempDir(), testutil.SampleRecords())
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config) *Application {
	t.Helper()
	application, err := NewApplication(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.OTelProviders.Shutdown(context.Background()) })
	return application
}

func serve(app *Application, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestNewApplication_RequiresConfig(t *testing.T) {
	_, err := NewApplication(nil, nil)
	assert.Error(t, err)
}

func TestNewApplication_RejectsBadTelemetry(t *testing.T) {
	cfg := testConfig(t)
	cfg.Telemetry.TraceExporter = "jaeger"

	_, err := NewApplication(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}

func TestRouter_Endpoints(t *testing.T) {
	app := newTestApp(t, testConfig(t))

	ready := serve(app, "/api/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, ready.Code, "dataset is loaded lazily")

	tests := []struct {
		name        string
		target      string
		wantStatus  int
		contentType string
		contains    string
	}{
		{"dashboard", "/api/dashboard", http.StatusOK, "application/json", `"total":27953`},
		{"summary", "/api/dashboard/seasons?start=2011-01-01&end=2011-12-31", http.StatusOK, "application/json", `"label":"Spring"`},
		{"dataset", "/api/dataset", http.StatusOK, "application/json", `"rows":8`},
		{"unknown summary", "/api/dashboard/hourly", http.StatusNotFound, "application/problem+json", `"NOT_FOUND"`},
		{"reversed range", "/api/dashboard?start=2012-01-02&end=2012-01-01", http.StatusBadRequest, "application/problem+json", `"INVALID_RANGE"`},
		{"out of bounds", "/api/dashboard?start=2010-01-01", http.StatusBadRequest, "application/problem+json", `"min_start":"2011-01-01"`},
		{"bad date", "/api/dashboard/daily?end=2012-02-30", http.StatusBadRequest, "application/problem+json", `"VALIDATION_FAILED"`},
		{"unknown route", "/nope", http.StatusNotFound, "application/problem+json", `"/errors/not-found"`},
		{"html page", "/?start=2011-01-01&end=2011-07-04", http.StatusOK, "text/html; charset=utf-8", "Bike Rental Company"},
		{"readiness after load", "/api/health/ready", http.StatusOK, "application/json", `"ready"`},
		{"version", "/api/version", http.StatusOK, "application/json", `"api_version":"v1"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(app, tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), tt.contains)
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
			assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
		})
	}
}

func TestRouter_ProblemCarriesRequestID(t *testing.T) {
	app := newTestApp(t, testConfig(t))

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard?start=2012-01-02&end=2012-01-01", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "req-42", problem["trace_id"])
	assert.Equal(t, "/api/dashboard", problem["instance"])
}

func TestRouter_Metrics(t *testing.T) {
	app := newTestApp(t, testConfig(t))

	require.Equal(t, http.StatusOK, serve(app, "/api/dashboard").Code)

	rec := serve(app, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "dashboard_pipeline_runs")
	assert.Contains(t, body, "http_requests")
	assert.Contains(t, body, "dataset_rows")
}

func TestRouter_MetricsDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Telemetry.MetricExporter = "none"
	app := newTestApp(t, cfg)

	assert.Equal(t, http.StatusNotFound, serve(app, "/metrics").Code)
}

func TestStart_MissingDatasetIsFatal(t *testing.T) {
	cfg := testConfig(t)
	cfg.Dataset.Path = filepath.Join(t.TempDir(), "missing.csv")
	app := newTestApp(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := app.Start(ctx, cancel)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeLoad))
}

func TestStartStop(t *testing.T) {
	app := newTestApp(t, testConfig(t))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, app.Start(ctx, cancel))
	assert.True(t, app.Dataset.Loaded())

	resp, err := http.Get("http://" + app.Addr() + "/api/health/ready")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, app.Stop(ctx))

	_, err = http.Get("http://" + app.Addr() + "/api/health")
	assert.Error(t, err)
}
