package http

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	apperrors "bikepulse/internal/errors"
	"bikepulse/internal/middleware"
	"bikepulse/internal/presentation"
	"bikepulse/pkg/contracts"
	api "bikepulse/pkg/contracts/api/v1"
	"bikepulse/pkg/contracts/domain"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var dashboardTemplate = template.Must(template.New("dashboard.html").Funcs(template.FuncMap{
	"count":   presentation.FormatCount,
	"percent": presentation.Percent,
	"mean":    presentation.FormatMean,
}).ParseFS(templateFS, "templates/dashboard.html"))

// dashboardPage is the view model of the HTML dashboard
type dashboardPage struct {
	Title     string
	Start     string
	End       string
	Bounds    *domain.DateRange
	Source    string
	Error     string
	Dashboard *domain.Dashboard
	Headline  presentation.Headline
	Sections  []presentation.Section
	Grid      presentation.Grid
	Version   string
}

// PageHandler renders the HTML dashboard
type PageHandler struct {
	service      DashboardServiceInterface
	validator    *middleware.Validator
	errorHandler *apperrors.ErrorHandler
	title        string
	logger       *slog.Logger
}

// NewPageHandler creates the HTML dashboard handler
func NewPageHandler(service DashboardServiceInterface, validator *middleware.Validator, errorHandler *apperrors.ErrorHandler, title string, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		service:      service,
		validator:    validator,
		errorHandler: errorHandler,
		title:        title,
		logger:       logger.With(slog.String("component", "page_handler")),
	}
}

// ServeDashboard handles GET /?start=&end=. Rejected selections re-render the
// form with the problem detail and the matching status code.
func (h *PageHandler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	req := parseDashboardRequest(r)
	page := dashboardPage{
		Title:   h.title,
		Start:   req.Start,
		End:     req.End,
		Version: "v" + contracts.Version,
	}

	status := http.StatusOK
	if info, err := h.service.Dataset(r.Context()); err == nil {
		page.Bounds = &info.Bounds
		page.Source = info.Source
	}

	dash, err := h.dashboard(r, req)
	if err != nil {
		problem := h.errorHandler.ErrorToProblem(err, r)
		status = problem.Status
		page.Error = problem.Detail
		h.logger.WarnContext(r.Context(), "dashboard page rejected",
			slog.String("error", err.Error()),
			slog.Int("status", status))
	} else {
		page.Dashboard = dash
		page.Headline = presentation.NewHeadline(dash.Metrics)
		page.Sections = append([]presentation.Section{presentation.DailySection(dash)}, presentation.Sections(dash)...)
		page.Grid = presentation.BucketGrid(dash)
		if page.Start == "" {
			page.Start = dash.Range.Start.String()
		}
		if page.End == "" {
			page.End = dash.Range.End.String()
		}
	}

	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, page); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *PageHandler) dashboard(r *http.Request, req api.DashboardRequest) (*domain.Dashboard, error) {
	if err := h.validator.ValidateStruct(req); err != nil {
		var apiErr *apperrors.APIError
		if errors.As(err, &apiErr) {
			if details, ok := apiErr.Details.(apperrors.ValidationErrors); ok && len(details.Errors) > 0 {
				return nil, apperrors.NewAppValidationError(details.Errors[0].Message)
			}
		}
		return nil, err
	}
	return h.service.Dashboard(r.Context(), req)
}
