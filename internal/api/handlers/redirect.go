package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"qr-service/internal/core/ports"
)

// RedirectHandler serves GET /r/{code}, the short-URL redirect prefix
// mounted at the HTTP root, never under /api/v1.
type RedirectHandler struct {
	trackedService ports.TrackedService
}

func NewRedirectHandler(trackedService ports.TrackedService) *RedirectHandler {
	return &RedirectHandler{trackedService: trackedService}
}

func (h *RedirectHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	userAgent := r.Header.Get("User-Agent")
	referrer := r.Header.Get("Referer")
	ip := clientIP(r)

	targetURL, err := h.trackedService.Resolve(r.Context(), code, userAgent, referrer, ip)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	http.Redirect(w, r, targetURL, http.StatusFound)
}

func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}
