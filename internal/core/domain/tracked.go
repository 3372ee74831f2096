package domain

import "time"

// TrackedQR is a persistent short-URL redirector whose scans are counted.
// ShortCode is unique across non-deleted rows; ManageToken is the capability
// string required to read stats or delete.
type TrackedQR struct {
	ID          string     `gorm:"primaryKey;type:text" json:"id"`
	ShortCode   string     `gorm:"uniqueIndex;type:text;size:32;not null" json:"short_code"`
	TargetURL   string     `gorm:"type:text;not null" json:"target_url"`
	ManageToken string     `gorm:"type:text;not null" json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	ScanCount   int64      `gorm:"not null;default:0" json:"scan_count"`

	ScanEvents []ScanEvent `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (TrackedQR) TableName() string {
	return "tracked_qr"
}

// IsExpired reports whether the tracked QR's expiry, if any, has passed.
func (t *TrackedQR) IsExpired(now time.Time) bool {
	return t.ExpiresAt != nil && !t.ExpiresAt.After(now)
}

// ScanEvent records a single successful resolution of a tracked QR's short
// code. It never outlives its owning TrackedQR (FK cascade on delete).
type ScanEvent struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TrackedQRID string    `gorm:"index;type:text;not null" json:"-"`
	ScannedAt   time.Time `json:"scanned_at"`
	UserAgent   string    `gorm:"size:512" json:"user_agent,omitempty"`
	Referrer    string    `gorm:"size:512" json:"referrer,omitempty"`
	IP          string    `gorm:"size:64" json:"ip,omitempty"`
}

func (ScanEvent) TableName() string {
	return "scan_events"
}
