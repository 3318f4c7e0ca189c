package controllers

import (
	"context"
	"fmt"

	"github.com/joelmeaders/LibraFoto-sub006/internal/models"
	"github.com/joelmeaders/LibraFoto-sub006/internal/services/library"
	"github.com/sirupsen/logrus"
)

// LibraryController keeps the media catalog in sync with the files on
// disk. Adding or pruning items changes the catalog fingerprint, which
// restarts affected slideshows on their next poll.
type LibraryController struct {
	db      *models.Database
	scanner *library.Scanner
	logger  *logrus.Logger
}

// NewLibraryController creates a new library controller
func NewLibraryController(db *models.Database, scanner *library.Scanner, logger *logrus.Logger) *LibraryController {
	return &LibraryController{
		db:      db,
		scanner: scanner,
		logger:  logger,
	}
}

// ScanLibrary walks the media directory, adds newly discovered files to
// the catalog and prunes records whose files have vanished
func (c *LibraryController) ScanLibrary(ctx context.Context) error {
	c.logger.Info("Starting library scan")

	entries, err := c.scanner.Scan(ctx)
	if err != nil {
		return fmt.Errorf("library scan failed: %w", err)
	}

	existing, err := c.db.GetAllMedia()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	byPath := make(map[string]*models.MediaItem, len(existing))
	for _, item := range existing {
		byPath[item.Path] = item
	}

	added := 0
	updated := 0
	seen := make(map[string]bool, len(entries))

	for _, entry := range entries {
		seen[entry.Path] = true

		item, ok := byPath[entry.Path]
		if !ok {
			item = &models.MediaItem{
				Path:    entry.Path,
				Kind:    entry.Kind,
				Album:   entry.Album,
				TakenAt: entry.TakenAt,
			}
			if err := c.db.CreateMedia(item); err != nil {
				c.logger.WithError(err).WithField("path", entry.Path).Error("Failed to add media item")
				continue
			}
			added++
			c.logger.WithFields(logrus.Fields{
				"path": entry.Path,
				"kind": entry.Kind,
			}).Info("Added media item")
			continue
		}

		if item.Album != entry.Album || !item.TakenAt.Equal(entry.TakenAt) {
			item.Album = entry.Album
			item.TakenAt = entry.TakenAt
			if err := c.db.UpdateMedia(item); err != nil {
				c.logger.WithError(err).WithField("path", entry.Path).Error("Failed to update media item")
				continue
			}
			updated++
		}
	}

	pruned := 0
	for _, item := range existing {
		if seen[item.Path] {
			continue
		}
		if err := c.db.DeleteMedia(item.ID); err != nil {
			c.logger.WithError(err).WithField("path", item.Path).Error("Failed to prune media item")
			continue
		}
		pruned++
		c.logger.WithField("path", item.Path).Info("Pruned media item")
	}

	c.logger.WithFields(logrus.Fields{
		"scanned": len(entries),
		"added":   added,
		"updated": updated,
		"pruned":  pruned,
	}).Info("Library scan completed")

	return nil
}
