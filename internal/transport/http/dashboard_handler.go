package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apperrors "bikepulse/internal/errors"
	"bikepulse/internal/middleware"
	api "bikepulse/pkg/contracts/api/v1"
)

// DashboardHandler serves the JSON dashboard API
type DashboardHandler struct {
	service      DashboardServiceInterface
	validator    *middleware.Validator
	logger       *slog.Logger
	errorHandler *apperrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardServiceInterface, validator *middleware.Validator, logger *slog.Logger, errorHandler *apperrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		validator:    validator,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard routes, mounted under /api
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/dataset", h.GetDataset)
	r.Get("/dashboard", h.GetDashboard)
	r.Get("/dashboard/{summary}", h.GetSummary)

	return r
}

// GetDashboard handles GET /api/dashboard?start=&end=
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	req := parseDashboardRequest(r)
	if err := h.validator.ValidateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	dash, err := h.service.Dashboard(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, api.DashboardResponse{Status: "success", Data: dash})
}

// GetSummary handles GET /api/dashboard/{summary}?start=&end=
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	req := api.SummaryRequest{
		DashboardRequest: parseDashboardRequest(r),
		Summary:          chi.URLParam(r, "summary"),
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	rng, data, err := h.service.Summary(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.DebugContext(r.Context(), "summary served",
		slog.String("summary", req.Summary),
		slog.String("range", rng.String()))

	render.JSON(w, r, api.NewSummaryResponse(req.Summary, rng, data))
}

// GetDataset handles GET /api/dataset
func (h *DashboardHandler) GetDataset(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.Dataset(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, api.DatasetResponse{Status: "success", Data: info})
}

func parseDashboardRequest(r *http.Request) api.DashboardRequest {
	q := r.URL.Query()
	return api.DashboardRequest{
		Start: q.Get("start"),
		End:   q.Get("end"),
	}
}
