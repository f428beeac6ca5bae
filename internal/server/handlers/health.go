package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/notesync/pkg/api"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler обрабатывает health check запросы
type HealthHandler struct {
	logger  *slog.Logger
	checks  map[string]Pinger
	version string
}

// NewHealthHandler создает новый handler для health check.
// checks maps a dependency name to its pinger; nil entries are skipped.
func NewHealthHandler(logger *slog.Logger, version string, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{
		logger:  logger,
		version: version,
		checks:  checks,
	}
}

// Health обрабатывает GET /api/v1/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := api.HealthResponse{Status: "ok", Version: h.version}
	status := http.StatusOK

	for name, p := range h.checks {
		if p == nil {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			h.logger.Error("health check failed", "dependency", name, "error", err)
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, h.logger, status, resp)
}
