package handlers

import (
	"net/http"
	"time"

	"qr-service/internal/core/domain"
)

// HealthHandler serves GET /api/v1/health. startedAt is written once at
// construction and read-only thereafter.
type HealthHandler struct {
	startedAt time.Time
}

func NewHealthHandler(startedAt time.Time) *HealthHandler {
	return &HealthHandler{startedAt: startedAt}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, domain.HealthStatus{
		Status:        "ok",
		UptimeSeconds: time.Since(h.startedAt).Seconds(),
	}, http.StatusOK)
}
