package scheduler

import (
	"context"
	"fmt"

	"github.com/joelmeaders/LibraFoto-sub006/internal/controllers"
	"github.com/joelmeaders/LibraFoto-sub006/internal/models"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler manages scheduled tasks
type Scheduler struct {
	cron                *cron.Cron
	libraryCtrl         *controllers.LibraryController
	db                  *models.Database
	scanIntervalMinutes int
	logger              *logrus.Logger
}

// NewScheduler creates a new scheduler. libraryCtrl may be nil when no
// media directory is configured; the rescan job is skipped in that case.
func NewScheduler(libraryCtrl *controllers.LibraryController, db *models.Database, scanIntervalMinutes int, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:                cron.New(),
		libraryCtrl:         libraryCtrl,
		db:                  db,
		scanIntervalMinutes: scanIntervalMinutes,
		logger:              logger,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.logger.Info("Starting scheduler")

	if s.libraryCtrl != nil {
		spec := fmt.Sprintf("@every %dm", s.scanIntervalMinutes)
		if _, err := s.cron.AddFunc(spec, func() {
			s.runScan()
		}); err != nil {
			return fmt.Errorf("failed to add scan job: %w", err)
		}
	} else {
		s.logger.Info("No media directory configured, skipping library scan job")
	}

	// Every hour: prune epoch records for deleted devices
	if _, err := s.cron.AddFunc("0 * * * *", func() {
		s.runEpochCleanup()
	}); err != nil {
		return fmt.Errorf("failed to add epoch cleanup job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Scheduler started")

	// Run initial scan immediately
	if s.libraryCtrl != nil {
		go s.runScan()
	}

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	s.cron.Stop()
}

// runScan executes the library scan job
func (s *Scheduler) runScan() {
	s.logger.Info("Running scheduled library scan")
	ctx := context.Background()

	if err := s.libraryCtrl.ScanLibrary(ctx); err != nil {
		s.logger.WithError(err).Error("Library scan job failed")
	}
}

// runEpochCleanup executes the epoch cleanup job
func (s *Scheduler) runEpochCleanup() {
	s.logger.Debug("Running epoch cleanup")

	removed, err := s.db.DeleteEpochsWithoutDevice()
	if err != nil {
		s.logger.WithError(err).Error("Epoch cleanup failed")
		return
	}
	if removed > 0 {
		s.logger.WithField("count", removed).Info("Removed orphaned epoch records")
	}
}
