package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yashovardan8harit/caption-backend/internal/api"
	"github.com/yashovardan8harit/caption-backend/internal/auth"
	"github.com/yashovardan8harit/caption-backend/internal/config"
	"github.com/yashovardan8harit/caption-backend/internal/logger"
	"github.com/yashovardan8harit/caption-backend/internal/repository"
	"github.com/yashovardan8harit/caption-backend/internal/service"
	"github.com/yashovardan8harit/caption-backend/internal/storage"
)

func main() {
	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.SetDefaultLogger(logger.NewDefault())
	defer logger.Sync()

	log := logger.GetDefault()

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize database")
	}

	historyRepo := repository.NewHistoryRepository(db)

	ctx := context.Background()

	// Initialize identity verifier. A missing credentials file downgrades
	// to a verifier that rejects everything so public routes still work.
	var verifier auth.Verifier
	verifier, err = auth.NewFirebaseVerifier(ctx, cfg.Auth.CredentialsFile)
	if err != nil {
		log.WithError(err).Warn("Identity verifier unavailable, authenticated routes will fail")
		verifier = auth.Disabled{}
	}

	// Initialize optional archive storage
	var archive storage.ObjectStorage
	if cfg.Archive.Enabled {
		archive, err = storage.NewS3Storage(&storage.S3Config{
			Endpoint:  cfg.Archive.Endpoint,
			AccessKey: cfg.Archive.AccessKey,
			SecretKey: cfg.Archive.SecretKey,
			UseSSL:    cfg.Archive.UseSSL,
			Bucket:    cfg.Archive.Bucket,
			Region:    cfg.Archive.Region,
			PublicURL: cfg.Archive.PublicURL,
		})
		if err != nil {
			log.WithError(err).Fatal("Failed to initialize archive storage")
		}
		if err := archive.EnsureBucket(ctx); err != nil {
			log.WithError(err).Fatal("Failed to ensure archive bucket")
		}
	}

	// Initialize services
	fetcher := service.NewImageFetcher(&cfg.Fetch)
	inference := service.NewInferenceService(&cfg.Inference)
	enhancer := service.NewEnhanceService(&cfg.Enhance)

	captionService := service.NewCaptionService(
		fetcher,
		inference,
		enhancer,
		historyRepo,
		archive,
		log,
		service.NewCaptionServiceConfig(cfg),
	)

	historyService := service.NewHistoryService(
		historyRepo,
		archive,
		log,
		&service.HistoryServiceConfig{
			DefaultLimit: cfg.History.DefaultLimit,
			MaxLimit:     cfg.History.MaxLimit,
		},
	)

	signatureService := service.NewSignatureService(&cfg.Cloudinary)
	if !signatureService.Configured() {
		log.Warn("Cloudinary credentials missing, upload signatures disabled")
	}

	// Setup router
	router := api.SetupRouter(captionService, historyService, signatureService, verifier, cfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.WithField("port", cfg.Server.Port).WithField("mode", cfg.Server.Mode).
			Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("Server forced to shutdown")
	}

	log.Info("Server exited")
}
