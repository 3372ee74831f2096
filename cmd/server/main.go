package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"qr-service/internal/api/handlers"
	"qr-service/internal/api/middleware"
	"qr-service/internal/api/routes"
	"qr-service/internal/config"
	"qr-service/internal/core/services"
	"qr-service/internal/infrastructure/database"
	"qr-service/internal/infrastructure/database/repositories"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	db, err := database.NewSQLiteConnection(cfg.Database.Path, cfg.IsDevelopment(), logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		logger.Error("failed to run auto migrations", "error", err)
		os.Exit(1)
	}

	trackedRepo := repositories.NewTrackedQRRepository(db.DB)

	qrService := services.NewQRService()
	trackedService := services.NewTrackedService(trackedRepo, cfg.App.BaseURL)
	rateLimiter := services.NewFixedWindowLimiter(cfg.Rate.Requests, cfg.RateLimitWindow())

	router := routes.NewRouter(&routes.Config{
		QRHandler:       handlers.NewQRHandler(qrService),
		ViewHandler:     handlers.NewViewHandler(qrService),
		TrackedHandler:  handlers.NewTrackedHandler(trackedService),
		RedirectHandler: handlers.NewRedirectHandler(trackedService),
		HealthHandler:   handlers.NewHealthHandler(time.Now()),

		CORSMiddleware: middleware.NewCORSMiddleware(middleware.DefaultCORSConfig()),
		Logger:         middleware.NewLoggingMiddleware(&middleware.LoggingConfig{Logger: logger}),
		RateLimiter:    rateLimiter,
		TrackedService: trackedService,
	})

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", "address", cfg.GetServerAddress(), "env", cfg.Server.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
