package slideshow

import (
	"fmt"
	"time"

	"github.com/joelmeaders/LibraFoto-sub006/internal/models"
)

// Config is the fully-resolved configuration the engine works from.
// Per-device overrides and server defaults are already merged by the
// caller; PhotoDuration must be positive.
type Config struct {
	Ordering      models.OrderingMode
	PhotoDuration time.Duration
}

// Validate checks the config before any timeline math runs
func (c Config) Validate() error {
	if c.PhotoDuration <= 0 {
		return fmt.Errorf("%w: photo duration must be positive, got %v", ErrInvalidConfiguration, c.PhotoDuration)
	}
	if !c.Ordering.Valid() {
		return fmt.Errorf("%w: unknown ordering mode %q", ErrInvalidConfiguration, c.Ordering)
	}
	return nil
}

// ItemDuration computes how long an item stays on screen.
// Photos use the configured photo duration. Videos use their intrinsic
// length; a video with no known length falls back to the photo duration
// and the fallback is reported so the caller can log it (data-quality
// warning, not an error).
func ItemDuration(item *models.MediaItem, cfg Config) (duration time.Duration, fellBack bool, err error) {
	if cfg.PhotoDuration <= 0 {
		return 0, false, fmt.Errorf("%w: photo duration must be positive, got %v", ErrInvalidConfiguration, cfg.PhotoDuration)
	}

	if item.Kind == models.MediaKindVideo {
		if item.DurationSeconds > 0 {
			return time.Duration(item.DurationSeconds) * time.Second, false, nil
		}
		return cfg.PhotoDuration, true, nil
	}

	return cfg.PhotoDuration, false, nil
}
