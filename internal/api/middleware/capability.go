package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"qr-service/internal/api/response"
	"qr-service/internal/core/domain"
	"qr-service/internal/core/ports"
)

type trackedQRKey struct{}

// RequireCapability guards a tracked QR's stats or delete endpoint: the
// request must present the matching manage_token via Authorization: Bearer,
// X-API-Key, or ?key=. The authorized record is stashed in the request
// context for the handler.
func RequireCapability(svc ports.TrackedService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "id")
			token := extractToken(r)

			tracked, err := svc.Authorize(r.Context(), id, token)
			if err != nil {
				response.Error(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), trackedQRKey{}, tracked)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TrackedQRFromContext retrieves the record RequireCapability authorized.
func TrackedQRFromContext(ctx context.Context) (*domain.TrackedQR, bool) {
	tracked, ok := ctx.Value(trackedQRKey{}).(*domain.TrackedQR)
	return tracked, ok
}

func extractToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if key := r.Header.Get("X-API-Key"); key != "" {
		return key
	}
	return r.URL.Query().Get("key")
}
