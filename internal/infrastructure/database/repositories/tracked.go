package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"qr-service/internal/core/domain"
	"qr-service/internal/core/ports"
)

type trackedQRRepository struct {
	db *gorm.DB
}

// NewTrackedQRRepository returns a gorm-backed repository for tracked QR
// codes and their scan events.
func NewTrackedQRRepository(db *gorm.DB) ports.TrackedQRRepository {
	return &trackedQRRepository{db: db}
}

func (r *trackedQRRepository) Create(ctx context.Context, tracked *domain.TrackedQR) error {
	if err := r.db.WithContext(ctx).Create(tracked).Error; err != nil {
		if isDuplicateKeyError(err) {
			return domain.NewConflictError("short_code is already taken")
		}
		return fmt.Errorf("create tracked qr: %w", err)
	}
	return nil
}

func (r *trackedQRRepository) GetByID(ctx context.Context, id string) (*domain.TrackedQR, error) {
	var tracked domain.TrackedQR
	if err := r.db.WithContext(ctx).First(&tracked, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError()
		}
		return nil, fmt.Errorf("get tracked qr by id: %w", err)
	}
	return &tracked, nil
}

func (r *trackedQRRepository) GetByShortCode(ctx context.Context, shortCode string) (*domain.TrackedQR, error) {
	var tracked domain.TrackedQR
	if err := r.db.WithContext(ctx).Where("short_code = ?", shortCode).First(&tracked).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError()
		}
		return nil, fmt.Errorf("get tracked qr by short code: %w", err)
	}
	return &tracked, nil
}

func (r *trackedQRRepository) ExistsByShortCode(ctx context.Context, shortCode string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.TrackedQR{}).
		Where("short_code = ?", shortCode).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check short code existence: %w", err)
	}
	return count > 0, nil
}

func (r *trackedQRRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&domain.TrackedQR{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete tracked qr: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError()
	}
	return nil
}

// RecordScan inserts event and increments the parent's scan_count inside a
// single transaction, so concurrent scans against the same tracked QR never
// lose an increment.
func (r *trackedQRRepository) RecordScan(ctx context.Context, trackedID string, event *domain.ScanEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event.TrackedQRID = trackedID
		if err := tx.Create(event).Error; err != nil {
			return fmt.Errorf("insert scan event: %w", err)
		}
		if err := tx.Model(&domain.TrackedQR{}).
			Where("id = ?", trackedID).
			Update("scan_count", gorm.Expr("scan_count + ?", 1)).Error; err != nil {
			return fmt.Errorf("increment scan count: %w", err)
		}
		return nil
	})
}

func (r *trackedQRRepository) RecentScans(ctx context.Context, trackedID string, limit int) ([]domain.ScanEvent, error) {
	var events []domain.ScanEvent
	if err := r.db.WithContext(ctx).
		Where("tracked_qr_id = ?", trackedID).
		Order("scanned_at DESC").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list recent scans: %w", err)
	}
	return events, nil
}

func isDuplicateKeyError(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
