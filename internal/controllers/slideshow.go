package controllers

import (
	"fmt"
	"time"

	"github.com/joelmeaders/LibraFoto-sub006/internal/models"
	"github.com/joelmeaders/LibraFoto-sub006/internal/slideshow"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"github.com/timshannon/bolthold"
)

// SlideshowController answers the one question frames keep asking:
// what should this device be showing right now. It loads the device's
// catalog and config, reconciles the timeline epoch, and delegates the
// actual scheduling math to the slideshow engine.
type SlideshowController struct {
	db                   *models.Database
	defaultPhotoDuration time.Duration
	snapshots            *cache.Cache
	logger               *logrus.Logger
}

// snapshot bundles a device's loaded catalog and resolved config so a
// burst of polls from a large fleet does not re-read the store on every
// request
type snapshot struct {
	catalog []*models.MediaItem
	cfg     slideshow.Config
}

// NewSlideshowController creates a new slideshow controller.
// snapshotTTL of zero disables the snapshot cache.
func NewSlideshowController(db *models.Database, defaultPhotoDuration, snapshotTTL time.Duration, logger *logrus.Logger) *SlideshowController {
	var snapshots *cache.Cache
	if snapshotTTL > 0 {
		snapshots = cache.New(snapshotTTL, 2*snapshotTTL)
	}

	return &SlideshowController{
		db:                   db,
		defaultPhotoDuration: defaultPhotoDuration,
		snapshots:            snapshots,
		logger:               logger,
	}
}

// GetCurrent resolves the playback window for a device at an instant.
// The epoch is established on the first resolution and reset whenever
// the catalog or config fingerprint has drifted since it was recorded;
// a content or settings change restarts the slideshow rather than
// splicing a new timeline onto an old one.
func (c *SlideshowController) GetCurrent(deviceID string, now time.Time) (*slideshow.PlaybackWindow, error) {
	snap, err := c.loadSnapshot(deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load device snapshot: %w", err)
	}

	catalogFP := slideshow.CatalogFingerprint(snap.catalog)
	configFP := slideshow.ConfigFingerprint(snap.cfg)

	record, err := c.db.GetEpoch(deviceID)
	switch {
	case err == bolthold.ErrNotFound:
		record = nil
	case err != nil:
		return nil, fmt.Errorf("failed to load epoch: %w", err)
	}

	if record == nil || record.CatalogFingerprint != catalogFP || record.ConfigFingerprint != configFP {
		if record != nil {
			c.logger.WithFields(logrus.Fields{
				"device_id": deviceID,
				"old_epoch": record.Epoch,
			}).Info("Catalog or config changed, restarting slideshow")
		}

		record = &models.EpochRecord{
			DeviceID:           deviceID,
			Epoch:              now,
			CatalogFingerprint: catalogFP,
			ConfigFingerprint:  configFP,
		}
		if err := c.db.SetEpoch(record); err != nil {
			return nil, fmt.Errorf("failed to store epoch: %w", err)
		}
	}

	window, err := slideshow.Resolve(snap.catalog, snap.cfg, record.Epoch, now)
	if err != nil {
		return nil, err
	}

	if window.FallbackDuration {
		c.logger.WithFields(logrus.Fields{
			"device_id": deviceID,
			"media_id":  window.Item.ID,
			"path":      window.Item.Path,
		}).Warn("Video has no known duration, using photo duration")
	}

	if err := c.db.TouchDeviceSeen(deviceID, now); err != nil {
		c.logger.WithError(err).Warn("Failed to update device last-seen time")
	}

	return window, nil
}

// loadSnapshot loads the device's filtered catalog and resolved config,
// consulting the snapshot cache when enabled
func (c *SlideshowController) loadSnapshot(deviceID string) (*snapshot, error) {
	if c.snapshots != nil {
		if cached, found := c.snapshots.Get(deviceID); found {
			return cached.(*snapshot), nil
		}
	}

	cfg, filter, err := c.loadConfig(deviceID)
	if err != nil {
		return nil, err
	}

	catalog, err := c.db.GetEligibleMedia(filter)
	if err != nil {
		return nil, err
	}

	snap := &snapshot{catalog: catalog, cfg: cfg}
	if c.snapshots != nil {
		c.snapshots.SetDefault(deviceID, snap)
	}
	return snap, nil
}

// loadConfig merges the device's stored settings with server defaults.
// Unknown devices poll with the default config; they are registered
// through the settings endpoint, not by polling.
func (c *SlideshowController) loadConfig(deviceID string) (slideshow.Config, models.CatalogFilter, error) {
	device, err := c.db.GetDevice(deviceID)
	if err == bolthold.ErrNotFound {
		cfg := models.DefaultSlideshowConfig()
		return slideshow.Config{
			Ordering:      cfg.Ordering,
			PhotoDuration: c.defaultPhotoDuration,
		}, cfg.Filter(), nil
	}
	if err != nil {
		return slideshow.Config{}, models.CatalogFilter{}, err
	}

	photoDuration := c.defaultPhotoDuration
	if device.Slideshow.PhotoDurationSeconds != 0 {
		// A negative override is a configuration error; pass it through
		// so the engine rejects it rather than silently defaulting
		photoDuration = time.Duration(device.Slideshow.PhotoDurationSeconds) * time.Second
	}

	return slideshow.Config{
		Ordering:      device.Slideshow.Ordering,
		PhotoDuration: photoDuration,
	}, device.Slideshow.Filter(), nil
}
