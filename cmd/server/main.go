package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dsny-backend/internal/config"
	"dsny-backend/internal/database"
	"dsny-backend/internal/dsny"
	"dsny-backend/internal/handlers"
	"dsny-backend/internal/logging"
)

func main() {
	settings, envLoaded := config.LoadSettings()
	logger := logging.MustNew(os.Stderr, settings.LogLevel, "dsny")

	logger.Info("🚀 DSNY backend server starting")
	if !envLoaded {
		logger.Warn("⚠️  .env file not found, using environment variables from system")
	}

	// Reference data and engine
	engine, file, err := config.LoadEngine(settings, logger)
	if err != nil {
		if errors.Is(err, dsny.ErrInvalidConfiguration) {
			logger.Error("❌ Reference data failed strict validation; fix it or set DSNY_STRICT_VALIDATION=false")
		}
		logger.Fatal("❌ Failed to load DSNY engine", "err", err)
	}
	logger.Info("📍 Calendar configured", "timezone", engine.Calendar().Location().String(), "today", engine.Today())

	if settings.DatabaseURL == "" {
		logger.Fatal("❌ DATABASE_URL environment variable is required")
	}
	if settings.JWTSecret == "" {
		logger.Warn("⚠️  APP_JWT_SECRET not set, authenticated routes will fail")
	}

	db, err := database.Connect(settings.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("❌ Database connection failed", "err", err)
	}
	defer db.Close()

	if err := database.Migrate(db, logger); err != nil {
		logger.Fatal("❌ Database migrations failed", "err", err)
	}

	cfg, err := file.EngineConfig()
	if err != nil {
		logger.Fatal("❌ Failed to read roster", "err", err)
	}
	ctx := context.Background()
	if err := database.SeedUsers(ctx, db, cfg.Workers, settings.SeedWorkerPassword, settings.SeedAdminPassword, logger); err != nil {
		logger.Fatal("❌ User seeding failed", "err", err)
	}

	store := database.NewStore(db)
	router := handlers.NewRouter(handlers.RouterConfig{
		Engine:    engine,
		Store:     store,
		Users:     store,
		JWTSecret: settings.JWTSecret,
		Logger:    logger,
	})

	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("🚀 Server listening", "addr", "http://localhost:"+settings.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("❌ Server failed to start", "port", settings.Port, "err", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("🛑 Shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("❌ Graceful shutdown failed", "err", err)
	}
}
