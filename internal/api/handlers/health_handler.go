package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/staybook/backend/internal/infrastructure/observability"
)

// Pinger is implemented by the postgres and redis clients
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports whether the service's dependencies are reachable
type HealthHandler struct {
	checks map[string]Pinger
}

// NewHealthHandler creates a health handler over named dependencies
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			observability.LoggerFromContext(ctx).Error().Err(err).Str("dependency", name).Msg("health check failed")
			results[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}

	respondWithJSON(w, status, map[string]interface{}{
		"status": overall,
		"checks": results,
	})
}
