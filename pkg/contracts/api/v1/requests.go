// Package api contains the HTTP request and response contracts.
// Version v1 represents the current stable API version.
package api

import (
	"reflect"

	"bikepulse/pkg/contracts/domain"
)

// DashboardRequest carries the optional date selection of a dashboard query.
// Missing ends default to the dataset bounds.
type DashboardRequest struct {
	Start string `json:"start" query:"start" validate:"omitempty,datetime=2006-01-02"`
	End   string `json:"end" query:"end" validate:"omitempty,datetime=2006-01-02"`
}

// SummaryRequest selects a single summary of the dashboard.
// Unknown summary names are reported as not found rather than invalid.
type SummaryRequest struct {
	DashboardRequest
	Summary string `json:"summary" param:"summary" validate:"required"`
}

// DashboardResponse is the success envelope of the dashboard endpoints
type DashboardResponse struct {
	Status string            `json:"status"`
	Data   *domain.Dashboard `json:"data"`
}

// SummaryResponse is the success envelope of a single summary
type SummaryResponse struct {
	Status  string           `json:"status"`
	Summary string           `json:"summary"`
	Range   domain.DateRange `json:"range"`
	Data    any              `json:"data"`
	Count   int              `json:"count,omitempty"`
}

// DatasetResponse is the success envelope of the dataset endpoint
type DatasetResponse struct {
	Status string             `json:"status"`
	Data   domain.DatasetInfo `json:"data"`
}

// NewSummaryResponse wraps one summary. Count is the number of rows for list
// summaries and omitted for the headline metrics.
func NewSummaryResponse(summary string, rng domain.DateRange, data any) SummaryResponse {
	resp := SummaryResponse{Status: "success", Summary: summary, Range: rng, Data: data}
	if v := reflect.ValueOf(data); v.Kind() == reflect.Slice {
		resp.Count = v.Len()
	}
	return resp
}
