package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	v1 "loanpulse/pkg/contracts/api/v1"
)

// HealthHandler handles liveness probes.
type HealthHandler struct {
	logger  *slog.Logger
	version string
}

// NewHealthHandler creates a health handler reporting the given version.
func NewHealthHandler(logger *slog.Logger, version string) *HealthHandler {
	return &HealthHandler{
		logger:  logger.With(slog.String("handler", "health")),
		version: version,
	}
}

// HealthCheck handles GET /api/health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, v1.HealthResponse{
		Status:  "ok",
		Version: h.version,
	})
}
