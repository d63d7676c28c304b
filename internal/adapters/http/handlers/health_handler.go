package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/portfolio-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/portfolio-service/internal/platform/health"
	"github.com/jsamuelsen11/portfolio-service/internal/platform/logging"
	"github.com/jsamuelsen11/portfolio-service/internal/ports"
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	registry ports.HealthRegistry
}

// NewHealthHandler creates a HealthHandler backed by registry.
func NewHealthHandler(registry ports.HealthRegistry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Liveness handles GET /health/live. The process answering is enough.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dto.LivenessResponse{Status: dto.StatusOK})
}

// Readiness handles GET /health/ready: 200 when every registered dependency
// passes, 503 otherwise.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	results := h.registry.CheckAll(r.Context())
	resp := dto.ToReadinessResponse(results)
	if !health.Healthy(results) {
		for _, c := range resp.Checks {
			if c.Error != "" {
				logging.FromContext(r.Context()).WarnContext(r.Context(), "readiness check failed",
					slog.String("check", c.Name),
					slog.String("error", c.Error),
				)
			}
		}
		writeJSON(w, r, http.StatusServiceUnavailable, resp)
		return
	}
	writeJSON(w, r, http.StatusOK, resp)
}
