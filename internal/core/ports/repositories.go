package ports

import (
	"context"

	"qr-service/internal/core/domain"
)

// TrackedQRRepository persists tracked QR codes and their scan events.
type TrackedQRRepository interface {
	Create(ctx context.Context, tracked *domain.TrackedQR) error
	GetByID(ctx context.Context, id string) (*domain.TrackedQR, error)
	GetByShortCode(ctx context.Context, shortCode string) (*domain.TrackedQR, error)
	ExistsByShortCode(ctx context.Context, shortCode string) (bool, error)
	Delete(ctx context.Context, id string) error

	// RecordScan atomically inserts a ScanEvent for trackedID and increments
	// the owning row's scan_count inside a single transaction.
	RecordScan(ctx context.Context, trackedID string, event *domain.ScanEvent) error

	// RecentScans returns up to limit scan events for trackedID, newest first.
	RecentScans(ctx context.Context, trackedID string, limit int) ([]domain.ScanEvent, error)
}
