package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"qr-service/internal/core/domain"
	"qr-service/internal/core/ports"
	"qr-service/internal/qrcode"
)

// QRHandler exposes the stateless generate/decode/batch/template surface,
// backed by a single stateless QRService.
type QRHandler struct {
	qrService ports.QRService
}

func NewQRHandler(qrService ports.QRService) *QRHandler {
	return &QRHandler{qrService: qrService}
}

func (h *QRHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var spec domain.QRSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		writeError(w, domain.NewValidationError(domain.KindBadFormat, "invalid JSON body"))
		return
	}

	resp, err := h.qrService.Generate(r.Context(), spec)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, resp, http.StatusOK)
}

func (h *QRHandler) Decode(w http.ResponseWriter, r *http.Request) {
	var req domain.DecodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError(domain.KindBadFormat, "invalid JSON body"))
		return
	}

	imageBytes, err := decodeImagePayload(req.Image)
	if err != nil {
		writeError(w, domain.NewValidationError(domain.KindNotAQR, "image is not valid base64"))
		return
	}

	data, err := h.qrService.Decode(r.Context(), imageBytes)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, domain.DecodeResponse{Data: data}, http.StatusOK)
}

func (h *QRHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req domain.BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError(domain.KindBadFormat, "invalid JSON body"))
		return
	}

	resp, err := h.qrService.Batch(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, resp, http.StatusOK)
}

// Template handles POST /api/v1/qr/template/{type}, composing a payload
// string from structured fields before forwarding to the generator.
func (h *QRHandler) Template(w http.ResponseWriter, r *http.Request) {
	switch chi.URLParam(r, "type") {
	case "wifi":
		h.wifiTemplate(w, r)
	case "vcard":
		h.vcardTemplate(w, r)
	case "url":
		h.urlTemplate(w, r)
	default:
		writeError(w, domain.NewValidationError(domain.KindBadFormat, "type must be one of wifi, vcard, url"))
	}
}

func (h *QRHandler) wifiTemplate(w http.ResponseWriter, r *http.Request) {
	var req domain.WiFiTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError(domain.KindBadFormat, "invalid JSON body"))
		return
	}
	payload, err := qrcode.ComposeWiFi(req)
	if err != nil {
		writeError(w, err)
		return
	}
	h.generateFromPayload(w, r, req.StyleOptions.ToSpec(payload))
}

func (h *QRHandler) vcardTemplate(w http.ResponseWriter, r *http.Request) {
	var req domain.VCardTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError(domain.KindBadFormat, "invalid JSON body"))
		return
	}
	payload, err := qrcode.ComposeVCard(req)
	if err != nil {
		writeError(w, err)
		return
	}
	h.generateFromPayload(w, r, req.StyleOptions.ToSpec(payload))
}

func (h *QRHandler) urlTemplate(w http.ResponseWriter, r *http.Request) {
	var req domain.URLTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError(domain.KindBadFormat, "invalid JSON body"))
		return
	}
	payload, err := qrcode.ComposeURL(req)
	if err != nil {
		writeError(w, err)
		return
	}
	h.generateFromPayload(w, r, req.StyleOptions.ToSpec(payload))
}

func (h *QRHandler) generateFromPayload(w http.ResponseWriter, r *http.Request, spec domain.QRSpec) {
	resp, err := h.qrService.Generate(r.Context(), spec)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp, http.StatusOK)
}

func decodeImagePayload(raw string) ([]byte, error) {
	return qrcode.DecodeDataURIOrBase64(raw)
}
