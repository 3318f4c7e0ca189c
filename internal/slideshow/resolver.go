package slideshow

import (
	"fmt"
	"time"

	"github.com/joelmeaders/LibraFoto-sub006/internal/models"
)

// PlaybackWindow is the answer to "what is showing right now": the
// active item and the half-open interval [Start, End) it owns.
// NextPoll tells callers when the answer changes. All instants are
// absolute so client clock skew cannot accumulate across polls.
type PlaybackWindow struct {
	Item       models.MediaItem
	Start      time.Time
	End        time.Time
	PassLength time.Duration
	NextPoll   time.Time

	// FallbackDuration is set when the item is a video whose length is
	// unknown and the photo duration was used instead
	FallbackDuration bool
}

// Resolve maps a wall-clock instant to the item a device should be
// showing. Pure function of its arguments: it keeps no state, so
// repeated polls, concurrent devices and restarted processes all
// compute the same window for the same instant.
func Resolve(catalog []*models.MediaItem, cfg Config, epoch, now time.Time) (*PlaybackWindow, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(catalog) == 0 {
		return nil, ErrEmptyCatalog
	}

	// The engine never reports a time before the epoch
	if now.Before(epoch) {
		now = epoch
	}

	passLength, err := passLength(catalog, cfg)
	if err != nil {
		return nil, err
	}

	// Every pass is a permutation of the same catalog, so its total
	// length does not depend on the ordering and the pass index falls
	// out of integer division.
	elapsed := now.Sub(epoch)
	passIndex := uint64(elapsed / passLength)
	offset := elapsed % passLength
	passStart := epoch.Add(elapsed - offset)

	pass, err := BuildPass(catalog, cfg, passIndex)
	if err != nil {
		return nil, err
	}

	accumulated := time.Duration(0)
	for _, item := range pass {
		d, fellBack, err := ItemDuration(item, cfg)
		if err != nil {
			return nil, err
		}
		if offset < accumulated+d {
			start := passStart.Add(accumulated)
			return &PlaybackWindow{
				Item:             *item,
				Start:            start,
				End:              start.Add(d),
				PassLength:       passLength,
				NextPoll:         start.Add(d),
				FallbackDuration: fellBack,
			}, nil
		}
		accumulated += d
	}

	// offset < passLength by construction, so the walk above always
	// lands inside an item
	return nil, fmt.Errorf("offset %v exceeded pass length %v", offset, passLength)
}

// passLength sums the display durations of every catalog item
func passLength(catalog []*models.MediaItem, cfg Config) (time.Duration, error) {
	total := time.Duration(0)
	for _, item := range catalog {
		d, _, err := ItemDuration(item, cfg)
		if err != nil {
			return 0, err
		}
		total += d
	}
	return total, nil
}
