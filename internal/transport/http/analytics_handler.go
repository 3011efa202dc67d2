package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "loanpulse/internal/errors"
	"loanpulse/internal/middleware"
	v1 "loanpulse/pkg/contracts/api/v1"
)

// AnalyticsHandler handles portfolio analysis HTTP requests.
type AnalyticsHandler struct {
	service      AnalyticsServiceInterface
	validator    *middleware.ValidationMiddleware
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	reportsDir   string
}

// NewAnalyticsHandler creates an analytics handler. Exports are written
// under reportsDir.
func NewAnalyticsHandler(service AnalyticsServiceInterface, reportsDir string, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *AnalyticsHandler {
	return &AnalyticsHandler{
		service:      service,
		validator:    middleware.NewValidationMiddleware(logger),
		logger:       logger.With(slog.String("component", "analytics_handler")),
		errorHandler: errorHandler,
		reportsDir:   reportsDir,
	}
}

// Routes returns the analytics routes.
func (h *AnalyticsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/upload", h.AnalyzeUpload)
	r.Post("/inline", h.AnalyzeInline)
	r.Post("/export", h.Export)

	return r
}

// AnalyzeUpload handles POST /api/analytics/upload. The portfolio
// arrives either as a multipart "file" part or as a raw text body.
func (h *AnalyticsHandler) AnalyzeUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filename := ""
	size := r.ContentLength
	body := r.Body

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, header, err := r.FormFile("file")
		if err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", "Multipart upload requires a \"file\" part"))
			return
		}
		defer file.Close()
		filename = header.Filename
		size = header.Size
		body = file
	}

	result, err := h.service.AnalyzeUpload(ctx, filename, size, body)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "upload analyzed",
		slog.String("filename", filename),
		slog.Int("loan_count", result.KPIs.LoanCount))

	render.JSON(w, r, result)
}

// AnalyzeInline handles POST /api/analytics/inline with a JSON body
// carrying the delimited text.
func (h *AnalyticsHandler) AnalyzeInline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req v1.AnalyzeInlineRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result := h.service.AnalyzeWithMode(ctx, req.CSV, req.StrictSchema)

	render.JSON(w, r, result)
}

// Export handles POST /api/analytics/export: analyze inline text and
// write the report in the requested format.
func (h *AnalyticsHandler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req v1.ExportRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result := h.service.AnalyzeWithMode(ctx, req.CSV, req.StrictSchema)

	paths, err := h.service.Export(ctx, h.reportsDir, result, []string{req.Format})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "report exported",
		slog.String("format", req.Format),
		slog.Int("files", len(paths[req.Format])))

	render.JSON(w, r, v1.ExportResponse{
		Format: req.Format,
		Paths:  paths[req.Format],
	})
}
