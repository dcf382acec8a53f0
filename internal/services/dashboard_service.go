package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"bikepulse/internal/config"
	"bikepulse/internal/dataprocessing"
	apperrors "bikepulse/internal/errors"
	"bikepulse/internal/infrastructure"
	api "bikepulse/pkg/contracts/api/v1"
	"bikepulse/pkg/contracts/domain"
)

// TableSource provides the shared base table
type TableSource interface {
	Table(ctx context.Context) (*domain.RentalTable, error)
}

// DashboardService resolves date selections and runs the dashboard pipeline
type DashboardService struct {
	tables       TableSource
	strictBounds bool
	metrics      *infrastructure.Metrics
	tracer       trace.Tracer
	logger       *slog.Logger
}

// DashboardOption configures a DashboardService
type DashboardOption func(*DashboardService)

// WithMetrics records pipeline runs and rejected ranges on m
func WithMetrics(m *infrastructure.Metrics) DashboardOption {
	return func(s *DashboardService) { s.metrics = m }
}

// WithTracer replaces the global tracer
func WithTracer(t trace.Tracer) DashboardOption {
	return func(s *DashboardService) { s.tracer = t }
}

// NewDashboardService creates a dashboard service over tables. With
// cfg.StrictBounds, selections reaching outside the dataset are rejected.
func NewDashboardService(tables TableSource, cfg config.DatasetConfig, logger *slog.Logger, opts ...DashboardOption) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &DashboardService{
		tables:       tables,
		strictBounds: cfg.StrictBounds,
		tracer:       otel.Tracer(infrastructure.InstrumentationName),
		logger:       infrastructure.WithComponent(logger, "dashboard_service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dashboard computes every summary for the requested range
func (s *DashboardService) Dashboard(ctx context.Context, req api.DashboardRequest) (*domain.Dashboard, error) {
	return s.build(ctx, req, "all")
}

// Summary computes the dashboard and returns the part named by req.Summary
func (s *DashboardService) Summary(ctx context.Context, req api.SummaryRequest) (domain.DateRange, any, error) {
	kind := domain.SummaryKind(strings.ToLower(strings.TrimSpace(req.Summary)))
	if !slices.Contains(domain.SummaryKinds, kind) {
		err := apperrors.NewNotFoundError(fmt.Sprintf("summary %q", req.Summary)).
			WithContext("summary", req.Summary)
		err.Cause = ErrUnknownSummary
		return domain.DateRange{}, nil, err
	}

	dash, err := s.build(ctx, req.DashboardRequest, string(kind))
	if err != nil {
		return domain.DateRange{}, nil, err
	}

	data, _ := dash.Summary(kind)
	return dash.Range, data, nil
}

// Dataset describes the loaded base table
func (s *DashboardService) Dataset(ctx context.Context) (domain.DatasetInfo, error) {
	table, err := s.tables.Table(ctx)
	if err != nil {
		return domain.DatasetInfo{}, err
	}
	return table.Info(), nil
}

func (s *DashboardService) build(ctx context.Context, req api.DashboardRequest, summary string) (*domain.Dashboard, error) {
	table, err := s.tables.Table(ctx)
	if err != nil {
		return nil, err
	}

	r, err := s.resolveRange(ctx, table, req)
	if err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "dashboard.build", trace.WithAttributes(
		attribute.String("dashboard.summary", summary),
		attribute.String("dashboard.range", r.String()),
	))
	defer span.End()

	start := time.Now()
	dash, err := dataprocessing.Build(table, r)
	duration := time.Since(start)

	if err != nil {
		s.metrics.RecordPipeline(ctx, summary, 0, duration, err)
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	s.metrics.RecordPipeline(ctx, summary, dash.Metrics.Days, duration, nil)
	span.SetAttributes(attribute.Int("dashboard.rows", dash.Metrics.Days))

	s.logger.DebugContext(ctx, "dashboard built",
		slog.String("summary", summary),
		slog.String("range", r.String()),
		slog.Int("rows", dash.Metrics.Days),
		slog.Duration("duration", duration))

	return dash, nil
}

// resolveRange parses the requested ends, defaulting each to the dataset
// bounds, and rejects ranges that are reversed or, in strict mode, outside
// the dataset.
func (s *DashboardService) resolveRange(ctx context.Context, table *domain.RentalTable, req api.DashboardRequest) (domain.DateRange, error) {
	bounds, hasBounds := table.Bounds()
	r := bounds

	if strings.TrimSpace(req.Start) != "" {
		d, err := domain.ParseDate(req.Start)
		if err != nil {
			return r, apperrors.NewAppValidationError("start must be a date in YYYY-MM-DD format").
				WithContext("field", "start").
				WithContext("value", req.Start)
		}
		r.Start = d
	}
	if strings.TrimSpace(req.End) != "" {
		d, err := domain.ParseDate(req.End)
		if err != nil {
			return r, apperrors.NewAppValidationError("end must be a date in YYYY-MM-DD format").
				WithContext("field", "end").
				WithContext("value", req.End)
		}
		r.End = d
	}

	if !r.Ordered() {
		s.metrics.RecordInvalidRange(ctx, "start_after_end")
		return r, &apperrors.AppError{
			Type:    apperrors.ErrTypeInvalidRange,
			Message: fmt.Sprintf("start %s is after end %s", r.Start, r.End),
			Cause:   ErrStartAfterEnd,
			Context: map[string]interface{}{"start": r.Start.String(), "end": r.End.String()},
		}
	}

	if s.strictBounds && hasBounds && !r.Within(bounds) {
		s.metrics.RecordInvalidRange(ctx, "out_of_bounds")
		return r, &apperrors.AppError{
			Type:    apperrors.ErrTypeInvalidRange,
			Message: fmt.Sprintf("range %s is outside the dataset bounds %s", r, bounds),
			Cause:   ErrOutOfBounds,
			Context: map[string]interface{}{
				"start":     r.Start.String(),
				"end":       r.End.String(),
				"min_start": bounds.Start.String(),
				"max_end":   bounds.End.String(),
			},
		}
	}

	return r, nil
}
