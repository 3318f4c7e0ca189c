package models

import "time"

// MediaItem represents a photo or video in the frame catalog.
// The bolthold sequence key doubles as the item's ordinal: it is assigned
// in insertion order and never reused, so it gives slideshows a stable
// tie-break and shuffle seed input.
type MediaItem struct {
	ID   uint64 `boltholdKey:"ID"`
	Path string `boltholdIndex:"Path"` // Library-relative file path, unique

	Kind            MediaKind
	DurationSeconds int // Intrinsic length for videos; 0 = unknown

	// Eligibility tags used by per-device filters
	Album    string `boltholdIndex:"Album"`
	Favorite bool
	TakenAt  time.Time

	// Metadata
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CatalogFilter narrows the catalog to the media a device is allowed to show
type CatalogFilter struct {
	Album         string // Empty = all albums
	FavoritesOnly bool
	TakenAfter    *time.Time
	TakenBefore   *time.Time
}

// Matches reports whether an item passes the filter
func (f CatalogFilter) Matches(item *MediaItem) bool {
	if f.Album != "" && item.Album != f.Album {
		return false
	}
	if f.FavoritesOnly && !item.Favorite {
		return false
	}
	if f.TakenAfter != nil && item.TakenAt.Before(*f.TakenAfter) {
		return false
	}
	if f.TakenBefore != nil && !item.TakenAt.Before(*f.TakenBefore) {
		return false
	}
	return true
}
