package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"qr-service/internal/core/domain"
	"qr-service/internal/core/ports"
)

// TrackedHandler exposes the tracked-QR subsystem: create is open, stats and
// delete require the capability guard middleware to have already authorized
// the request.
type TrackedHandler struct {
	trackedService ports.TrackedService
}

func NewTrackedHandler(trackedService ports.TrackedService) *TrackedHandler {
	return &TrackedHandler{trackedService: trackedService}
}

func (h *TrackedHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.TrackedCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError(domain.KindBadFormat, "invalid JSON body"))
		return
	}

	resp, err := h.trackedService.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, resp, http.StatusOK)
}

// Stats requires RequireCapability to have run first; it re-fetches full
// stats through the service rather than trusting the context record alone,
// since the guard only needed the manage_token match, not recent scans.
func (h *TrackedHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := h.trackedService.Stats(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, resp, http.StatusOK)
}

func (h *TrackedHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.trackedService.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]bool{"deleted": true}, http.StatusOK)
}
