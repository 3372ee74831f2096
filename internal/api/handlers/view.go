package handlers

import (
	"net/http"

	"qr-service/internal/core/domain"
	"qr-service/internal/core/ports"
)

// ViewHandler serves GET /qr/view, the stateless share-URL rendering
// endpoint.
type ViewHandler struct {
	qrService ports.QRService
}

func NewViewHandler(qrService ports.QRService) *ViewHandler {
	return &ViewHandler{qrService: qrService}
}

func (h *ViewHandler) View(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Get("data") == "" {
		writeError(w, domain.NewValidationError(domain.KindEmptyData, "data is required"))
		return
	}

	imageBytes, contentType, err := h.qrService.RenderShareURL(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(imageBytes)
}
