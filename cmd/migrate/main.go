package main

import (
	"log/slog"
	"os"

	"qr-service/internal/config"
	"qr-service/internal/infrastructure/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, err := database.NewSQLiteConnection(cfg.Database.Path, cfg.IsDevelopment(), logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	logger.Info("database migration completed", "path", cfg.Database.Path)
}
