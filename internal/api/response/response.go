// Package response centralizes the JSON envelope and error-body shape so
// handlers and middleware never diverge on how an error reaches the wire.
package response

import (
	"encoding/json"
	"net/http"

	"qr-service/internal/core/domain"
	"qr-service/internal/core/ports"
)

// JSON encodes data as the response body with the given status code.
func JSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		w.Write([]byte(`{"error":"internal_error"}`))
	}
}

// Error maps any error to its stable HTTP status and JSON body. Validation
// kinds (400) surface their descriptive message as the `error` string; every
// other kind surfaces its stable kind string, per the error taxonomy.
func Error(w http.ResponseWriter, err error) {
	de := domain.AsDomainError(err)
	status := domain.StatusCode(de.Kind)

	body := map[string]string{"error": de.Kind}
	if status == http.StatusBadRequest && de.Message != "" {
		body["error"] = de.Message
	}

	JSON(w, body, status)
}

// RateLimited writes the 429 body: the stable rate_limited kind plus
// retry_after_secs, limit, and remaining, mirroring the X-RateLimit-* headers.
func RateLimited(w http.ResponseWriter, result ports.RateLimitResult) {
	JSON(w, map[string]interface{}{
		"error":            domain.KindRateLimited,
		"retry_after_secs": result.RetryAfterSecs,
		"limit":            result.Limit,
		"remaining":        result.Remaining,
	}, http.StatusTooManyRequests)
}
