package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the application instruments. All Record methods are safe on
// a nil receiver.
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter

	// Dashboard pipeline
	PipelineRunsTotal metric.Int64Counter
	PipelineDuration  metric.Float64Histogram
	FilteredRows      metric.Int64Histogram
	InvalidRanges     metric.Int64Counter

	// Dataset
	DatasetLoadsTotal metric.Int64Counter
	DatasetRows       metric.Int64Gauge
}

// NewMetrics creates the application instruments on meter
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	if m.HTTPRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	); err != nil {
		return nil, err
	}

	if m.HTTPRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	if m.HTTPActiveRequests, err = meter.Int64UpDownCounter(
		"http_active_requests",
		metric.WithDescription("Number of active HTTP requests"),
	); err != nil {
		return nil, err
	}

	if m.PipelineRunsTotal, err = meter.Int64Counter(
		"dashboard_pipeline_runs_total",
		metric.WithDescription("Total number of dashboard pipeline runs"),
	); err != nil {
		return nil, err
	}

	if m.PipelineDuration, err = meter.Float64Histogram(
		"dashboard_pipeline_duration_seconds",
		metric.WithDescription("Dashboard pipeline duration in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	if m.FilteredRows, err = meter.Int64Histogram(
		"dashboard_filtered_rows",
		metric.WithDescription("Rows remaining after the date filter"),
	); err != nil {
		return nil, err
	}

	if m.InvalidRanges, err = meter.Int64Counter(
		"dashboard_invalid_ranges_total",
		metric.WithDescription("Total number of rejected date ranges"),
	); err != nil {
		return nil, err
	}

	if m.DatasetLoadsTotal, err = meter.Int64Counter(
		"dataset_loads_total",
		metric.WithDescription("Total number of dataset load attempts"),
	); err != nil {
		return nil, err
	}

	if m.DatasetRows, err = meter.Int64Gauge(
		"dataset_rows",
		metric.WithDescription("Rows in the loaded rental table"),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RecordHTTPRequest records a finished HTTP request
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", status),
	)
	m.HTTPRequestsTotal.Add(ctx, 1, attrs)
	m.HTTPRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// AddActiveRequests adjusts the in-flight request gauge by delta
func (m *Metrics) AddActiveRequests(ctx context.Context, delta int64) {
	if m == nil {
		return
	}
	m.HTTPActiveRequests.Add(ctx, delta)
}

// RecordPipeline records one dashboard computation
func (m *Metrics) RecordPipeline(ctx context.Context, summary string, rows int, duration time.Duration, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	attrs := metric.WithAttributes(
		attribute.String("summary", summary),
		attribute.String("status", status),
	)
	m.PipelineRunsTotal.Add(ctx, 1, attrs)
	m.PipelineDuration.Record(ctx, duration.Seconds(), attrs)
	if err == nil {
		m.FilteredRows.Record(ctx, int64(rows), metric.WithAttributes(attribute.String("summary", summary)))
	}
}

// RecordInvalidRange counts a rejected date range
func (m *Metrics) RecordInvalidRange(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.InvalidRanges.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// RecordDatasetLoad records a load attempt and, on success, the row count
func (m *Metrics) RecordDatasetLoad(ctx context.Context, source string, rows int, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.DatasetLoadsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	if err == nil {
		m.DatasetRows.Record(ctx, int64(rows), metric.WithAttributes(attribute.String("source", source)))
	}
}
