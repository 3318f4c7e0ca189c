package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joelmeaders/LibraFoto-sub006/internal/api"
	"github.com/joelmeaders/LibraFoto-sub006/internal/config"
	"github.com/joelmeaders/LibraFoto-sub006/internal/controllers"
	"github.com/joelmeaders/LibraFoto-sub006/internal/models"
	"github.com/joelmeaders/LibraFoto-sub006/internal/scheduler"
	"github.com/joelmeaders/LibraFoto-sub006/internal/services/library"
	"github.com/joelmeaders/LibraFoto-sub006/internal/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Setup logger
	logger := utils.NewLogger(cfg.LogLevel)
	logger.Info("Starting LibraFoto")
	logger.WithField("config_dir", filepath.Dir(cfg.DatabaseFile)).Info("Configuration loaded")

	// 3. Initialize database
	db, err := models.NewDatabase(cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()
	logger.Info("Database initialized")

	// 4. Initialize library scanner (only when a media directory is configured)
	var libraryCtrl *controllers.LibraryController
	if cfg.MediaDir != "" {
		ignore, err := utils.LoadIgnoreList(cfg.IgnoreFile)
		if err != nil {
			logger.WithError(err).Warn("Failed to load ignore list, continuing without it")
			ignore = &utils.IgnoreList{}
		}

		scanner, err := library.NewScanner(cfg.MediaDir, ignore, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize library scanner: %w", err)
		}

		libraryCtrl = controllers.NewLibraryController(db, scanner, logger)
		logger.WithField("media_dir", cfg.MediaDir).Info("Library scanner initialized")
	} else {
		logger.Info("No media directory configured, catalog is API-managed only")
	}

	// 5. Initialize slideshow facade
	slideshowCtrl := controllers.NewSlideshowController(
		db,
		time.Duration(cfg.PhotoDurationSeconds)*time.Second,
		time.Duration(cfg.SnapshotCacheSeconds)*time.Second,
		logger,
	)
	logger.Info("Slideshow controller initialized")

	// 6. Initialize scheduler
	sched := scheduler.NewScheduler(libraryCtrl, db, cfg.ScanIntervalMinutes, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	// 7. Initialize HTTP server
	server := api.NewServer(cfg, db, slideshowCtrl, libraryCtrl, logger)

	// Start server in goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			serverErrChan <- err
		}
	}()

	// 8. Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("LibraFoto is running")

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.WithError(err).Error("Error during server shutdown")
		}
	}

	logger.Info("LibraFoto stopped")
	return nil
}
