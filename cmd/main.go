package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/markjakearzadon/vapecenter-gobackend/internal/config"
	"github.com/markjakearzadon/vapecenter-gobackend/internal/db"
	"github.com/markjakearzadon/vapecenter-gobackend/internal/handlers"
	"github.com/markjakearzadon/vapecenter-gobackend/internal/logging"
	"github.com/markjakearzadon/vapecenter-gobackend/internal/services"
	"github.com/markjakearzadon/vapecenter-gobackend/internal/storage"
)

func main() {
	// Load .env
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Error loading .env: %s", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := logging.New("vapecenter", logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: os.Stdout,
	})
	if err != nil {
		log.Fatalf("Invalid logging configuration: %v", err)
	}
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := cfg.StorageOptions()
	if cfg.StorageBackend == storage.KindMongo {
		client, err := db.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return err
		}
		defer func() {
			if err := db.Disconnect(client, cfg.ShutdownTimeout); err != nil {
				logger.Error("error disconnecting from MongoDB", "error", err)
			}
		}()
		logger.Info("successfully connected to MongoDB", "database", cfg.MongoDatabase)
		opts.MongoDatabase = client.Database(cfg.MongoDatabase)
	}

	backend, err := storage.Open(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Error("error closing storage", "error", err)
		}
	}()
	logger.Info("storage ready", "backend", cfg.StorageBackend)

	// Initialize services and handlers
	announcementService, err := services.NewAnnouncementService(ctx, backend, services.WithLogger(logger))
	if err != nil {
		return err
	}
	reviewService, err := services.NewReviewService(ctx, backend, services.WithLogger(logger))
	if err != nil {
		return err
	}

	router := handlers.NewRouter(
		handlers.NewAnnouncementHandler(announcementService, logger),
		handlers.NewReviewHandler(reviewService, logger),
		handlers.NewSiteHandler(cfg.SiteDir, logger),
		logger,
	)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running",
			"port", cfg.Port,
			"site", "http://localhost:"+cfg.Port,
			"admin", "http://localhost:"+cfg.Port+"/admin",
			"api", "http://localhost:"+cfg.Port+"/api",
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
