package models

import "time"

// SlideshowConfig holds per-device playback settings. It is stored as
// part of the device record and carried verbatim in the settings API.
type SlideshowConfig struct {
	Ordering OrderingMode `json:"ordering"`

	// PhotoDurationSeconds overrides the server default when positive;
	// 0 inherits the server default
	PhotoDurationSeconds int `json:"photo_duration_seconds"`

	// Catalog filters
	Album         string     `json:"album,omitempty"`
	FavoritesOnly bool       `json:"favorites_only,omitempty"`
	TakenAfter    *time.Time `json:"taken_after,omitempty"`
	TakenBefore   *time.Time `json:"taken_before,omitempty"`
}

// Filter returns the catalog filter implied by the config
func (c SlideshowConfig) Filter() CatalogFilter {
	return CatalogFilter{
		Album:         c.Album,
		FavoritesOnly: c.FavoritesOnly,
		TakenAfter:    c.TakenAfter,
		TakenBefore:   c.TakenBefore,
	}
}

// DefaultSlideshowConfig returns the config served to devices without
// stored settings
func DefaultSlideshowConfig() SlideshowConfig {
	return SlideshowConfig{
		Ordering: OrderingSequential,
	}
}

// Device represents a registered picture frame
type Device struct {
	ID   string `boltholdKey:"ID"`
	Name string

	Slideshow SlideshowConfig

	// LastSeenAt is updated each time the device polls
	LastSeenAt time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EpochRecord anchors a device's slideshow timeline. The fingerprints
// record the catalog and config the epoch was established against so a
// change to either can be detected and the timeline restarted.
type EpochRecord struct {
	DeviceID string `boltholdKey:"DeviceID"`

	Epoch              time.Time
	CatalogFingerprint uint64
	ConfigFingerprint  uint64

	UpdatedAt time.Time
}
