package database

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"qr-service/internal/core/domain"
)

// Database wraps the embedded relational store. sqlite is not multi-writer
// safe, so the pool is capped to a single connection: a serialized-writer
// discipline enforced at the handle layer rather than inside each query.
type Database struct {
	DB *gorm.DB
}

// NewSQLiteConnection opens path (creating it if absent), enabling
// write-ahead journaling, and connects with a bounded retry loop to ride
// out a store that isn't accepting connections yet.
func NewSQLiteConnection(path string, isDevelopment bool, log *slog.Logger) (*Database, error) {
	var gormLogger logger.Interface
	if isDevelopment {
		gormLogger = logger.Default.LogMode(logger.Info)
	} else {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	gormConfig := &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_foreign_keys=on", path)

	var db *gorm.DB
	var err error
	const maxRetries = 5
	for i := 0; i < maxRetries; i++ {
		db, err = gorm.Open(sqlite.Open(dsn), gormConfig)
		if err == nil {
			break
		}
		log.Warn("failed to open database", "attempt", i+1, "max_attempts", maxRetries, "error", err)
		if i < maxRetries-1 {
			time.Sleep(time.Duration(i+1) * time.Second)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("open database after %d attempts: %w", maxRetries, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying sql.DB: %w", err)
	}

	// sqlite's single-writer limitation makes a connection pool actively
	// harmful: a second goroutine's writer would otherwise wait behind a
	// SQLITE_BUSY retry loop instead of database/sql's wait for the single
	// pooled connection.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info("connected to sqlite store", "path", path)

	return &Database{DB: db}, nil
}

// AutoMigrate creates the tracked_qr and scan_events tables and their
// indexes.
func (d *Database) AutoMigrate() error {
	return d.DB.AutoMigrate(
		&domain.TrackedQR{},
		&domain.ScanEvent{},
	)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) Health() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (d *Database) GetStats() map[string]interface{} {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return map[string]interface{}{"error": err.Error()}
	}

	stats := sqlDB.Stats()
	return map[string]interface{}{
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
		"idle":             stats.Idle,
		"wait_count":       stats.WaitCount,
		"wait_duration":    stats.WaitDuration.String(),
	}
}
