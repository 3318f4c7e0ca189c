package slideshow

import (
	"encoding/binary"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/joelmeaders/LibraFoto-sub006/internal/models"
)

// CatalogFingerprint computes a stable identity hash of a catalog:
// the member ordinals in catalog order. Any membership or ordering
// change yields a different fingerprint.
func CatalogFingerprint(catalog []*models.MediaItem) uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, item := range catalog {
		binary.BigEndian.PutUint64(buf[:], item.ID)
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// ConfigFingerprint computes a stable identity hash of the resolved
// playback configuration. Filter changes are not hashed here; they
// surface through the catalog fingerprint instead.
func ConfigFingerprint(cfg Config) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(string(cfg.Ordering))
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(cfg.PhotoDuration/time.Nanosecond))
	_, _ = d.Write(buf[:])
	return d.Sum64()
}
