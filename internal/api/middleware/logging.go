package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

type requestIDKey struct{}

type LoggingConfig struct {
	Logger          *slog.Logger
	SkipPaths       []string
	SkipSuccessLogs bool
}

type LoggingMiddleware struct {
	config *LoggingConfig
}

func NewLoggingMiddleware(config *LoggingConfig) *LoggingMiddleware {
	if config == nil {
		config = &LoggingConfig{}
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &LoggingMiddleware{
		config: config,
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *responseWriter) Write(data []byte) (int, error) {
	if rw.statusCode == 0 {
		rw.statusCode = http.StatusOK
	}
	size, err := rw.ResponseWriter.Write(data)
	rw.size += size
	return size, err
}

func (m *LoggingMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.shouldSkipPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		requestID := m.generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		w.Header().Set("X-Request-ID", requestID)

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     0,
			size:           0,
		}

		start := time.Now()

		m.logRequest(r, requestID)

		next.ServeHTTP(rw, r.WithContext(ctx))

		duration := time.Since(start)

		m.logResponse(r, rw, requestID, duration)
	})
}

func (m *LoggingMiddleware) logRequest(r *http.Request, requestID string) {
	userAgent := r.Header.Get("User-Agent")
	if userAgent == "" {
		userAgent = "unknown"
	}

	m.config.Logger.Debug("http request",
		"request_id", requestID,
		"method", r.Method,
		"path", r.URL.Path,
		"query", r.URL.RawQuery,
		"remote_addr", r.RemoteAddr,
		"user_agent", userAgent,
		"content_length", r.ContentLength,
	)
}

func (m *LoggingMiddleware) logResponse(r *http.Request, rw *responseWriter, requestID string, duration time.Duration) {
	statusCode := rw.statusCode
	if statusCode == 0 {
		statusCode = http.StatusOK
	}

	if m.config.SkipSuccessLogs && statusCode < 400 {
		return
	}

	args := []interface{}{
		"request_id", requestID,
		"method", r.Method,
		"path", r.URL.Path,
		"status_code", statusCode,
		"response_size", rw.size,
		"duration_ms", duration.Milliseconds(),
	}

	switch {
	case statusCode >= 500:
		m.config.Logger.Error("http response", args...)
	case statusCode >= 400:
		m.config.Logger.Warn("http response", args...)
	default:
		m.config.Logger.Info("http response", args...)
	}
}

func (m *LoggingMiddleware) shouldSkipPath(path string) bool {
	for _, skipPath := range m.config.SkipPaths {
		if path == skipPath {
			return true
		}
	}
	return false
}

func (m *LoggingMiddleware) generateRequestID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

// GetRequestIDFromContext returns the request ID stashed by the logging
// middleware, or "" if none was set (e.g. the path was skipped).
func GetRequestIDFromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return requestID
	}
	return ""
}

// Logging wires a structured request/response logger using the given slog
// logger, skipping the health check path.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	config := &LoggingConfig{
		Logger: logger,
		SkipPaths: []string{
			"/api/v1/health",
			"/favicon.ico",
		},
	}

	middleware := NewLoggingMiddleware(config)
	return middleware.Handler
}

// RequestLogging wires request logging using the default slog logger.
func RequestLogging() func(http.Handler) http.Handler {
	return Logging(slog.Default())
}
