package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/joelmeaders/LibraFoto-sub006/internal/api/handlers"
	"github.com/joelmeaders/LibraFoto-sub006/internal/api/middleware"
	"github.com/joelmeaders/LibraFoto-sub006/internal/config"
	"github.com/joelmeaders/LibraFoto-sub006/internal/controllers"
	"github.com/joelmeaders/LibraFoto-sub006/internal/models"
	"github.com/sirupsen/logrus"
)

// Server represents the HTTP server
type Server struct {
	server        *http.Server
	db            *models.Database
	slideshowCtrl *controllers.SlideshowController
	libraryCtrl   *controllers.LibraryController
	logger        *logrus.Logger
}

// NewServer creates a new HTTP server. libraryCtrl may be nil when no
// media directory is configured.
func NewServer(cfg *config.Config, db *models.Database, slideshowCtrl *controllers.SlideshowController, libraryCtrl *controllers.LibraryController, logger *logrus.Logger) *Server {
	s := &Server{
		db:            db,
		slideshowCtrl: slideshowCtrl,
		libraryCtrl:   libraryCtrl,
		logger:        logger,
	}

	mux := http.NewServeMux()
	s.setupRoutes(mux)

	s.server = &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      middleware.Logging(mux, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(mux *http.ServeMux) {
	// Health check
	healthHandler := handlers.NewHealthHandler(s.logger)
	mux.HandleFunc("/health", healthHandler.ServeHTTP)

	// Status endpoint
	statusHandler := handlers.NewStatusHandler(s.db, s.logger)
	mux.HandleFunc("/status", statusHandler.ServeHTTP)

	// Device poll endpoint
	currentHandler := handlers.NewCurrentHandler(s.slideshowCtrl, s.logger)
	mux.HandleFunc("/api/devices/{deviceID}/current", currentHandler.ServeHTTP)

	// Device admin
	deviceListHandler := handlers.NewDeviceListHandler(s.db, s.logger)
	mux.HandleFunc("/api/devices", deviceListHandler.ServeHTTP)

	settingsHandler := handlers.NewDeviceSettingsHandler(s.db, s.logger)
	mux.HandleFunc("/api/devices/{deviceID}/settings", settingsHandler.ServeHTTP)

	deviceHandler := handlers.NewDeviceHandler(s.db, s.logger)
	mux.HandleFunc("/api/devices/{deviceID}", deviceHandler.ServeHTTP)

	// Catalog admin
	mediaHandler := handlers.NewMediaHandler(s.db, s.logger)
	mux.HandleFunc("/api/media", mediaHandler.ServeHTTP)

	mediaItemHandler := handlers.NewMediaItemHandler(s.db, s.logger)
	mux.HandleFunc("/api/media/{mediaID}", mediaItemHandler.ServeHTTP)

	// Manual library scan
	scanHandler := handlers.NewScanHandler(s.libraryCtrl, s.logger)
	mux.HandleFunc("/api/library/scan", scanHandler.ServeHTTP)
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("port", s.server.Addr).Info("Starting HTTP server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
