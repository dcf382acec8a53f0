package http

import (
	"context"

	api "bikepulse/pkg/contracts/api/v1"
	"bikepulse/pkg/contracts/domain"
)

// DashboardServiceInterface defines the dashboard operations used by the handlers
type DashboardServiceInterface interface {
	Dashboard(ctx context.Context, req api.DashboardRequest) (*domain.Dashboard, error)
	Summary(ctx context.Context, req api.SummaryRequest) (domain.DateRange, any, error)
	Dataset(ctx context.Context) (domain.DatasetInfo, error)
}
