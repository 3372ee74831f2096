package ports

import (
	"context"
	"net/url"

	"qr-service/internal/core/domain"
)

// QRService renders stateless QR codes and decodes images back to payloads.
type QRService interface {
	Generate(ctx context.Context, spec domain.QRSpec) (*domain.GenerateResponse, error)
	Decode(ctx context.Context, imageBytes []byte) (string, error)
	Batch(ctx context.Context, req domain.BatchRequest) (*domain.BatchResponse, error)

	// RenderShareURL decodes and revalidates a /qr/view query, returning the
	// rendered image bytes and its content type.
	RenderShareURL(ctx context.Context, query url.Values) (imageBytes []byte, contentType string, err error)
}

// TrackedService orchestrates the tracked-QR subsystem: short-code
// allocation, capability tokens, redirection, and scan bookkeeping.
type TrackedService interface {
	Create(ctx context.Context, req domain.TrackedCreateRequest) (*domain.TrackedCreateResponse, error)
	Stats(ctx context.Context, id string) (*domain.TrackedStatsResponse, error)
	Delete(ctx context.Context, id string) error
	Authorize(ctx context.Context, id, presentedToken string) (*domain.TrackedQR, error)

	// Resolve looks up a short code, records the scan unless the record is
	// expired, and returns the target URL to redirect to.
	Resolve(ctx context.Context, shortCode, userAgent, referrer, ip string) (targetURL string, err error)
}

// RateLimiter enforces a fixed-window per-key request limit.
type RateLimiter interface {
	Allow(ip string) RateLimitResult
}

// RateLimitResult is the outcome of one RateLimiter.Allow call.
type RateLimitResult struct {
	Allowed         bool
	Limit           int
	Remaining       int
	ResetSecs       int
	RetryAfterSecs  int
}
