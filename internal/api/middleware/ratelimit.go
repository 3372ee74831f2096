package middleware

import (
	"net"
	"net/http"
	"strconv"

	"qr-service/internal/api/response"
	"qr-service/internal/core/ports"
)

type RateLimitConfig struct {
	Limiter   ports.RateLimiter
	SkipPaths []string
}

type RateLimitMiddleware struct {
	config *RateLimitConfig
}

// NewRateLimitMiddleware wraps an injected ports.RateLimiter, setting
// X-RateLimit-* response headers and skipping configured paths entirely.
func NewRateLimitMiddleware(config *RateLimitConfig) *RateLimitMiddleware {
	return &RateLimitMiddleware{config: config}
}

func (m *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.shouldSkipPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		result := m.config.Limiter.Allow(clientIP(r))

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.Itoa(result.ResetSecs))

		if !result.Allowed {
			w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfterSecs))
			response.RateLimited(w, result)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *RateLimitMiddleware) shouldSkipPath(path string) bool {
	for _, skip := range m.config.SkipPaths {
		if path == skip {
			return true
		}
	}
	return false
}

// RateLimit builds the default rate-limiting middleware, skipping the health
// check so liveness probes are never throttled.
func RateLimit(limiter ports.RateLimiter) func(http.Handler) http.Handler {
	m := NewRateLimitMiddleware(&RateLimitConfig{
		Limiter:   limiter,
		SkipPaths: []string{"/api/v1/health"},
	})
	return m.Handler
}

func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
