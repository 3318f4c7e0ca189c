package slideshow

import "errors"

var (
	// ErrEmptyCatalog indicates a device has no eligible media to show.
	// Recoverable: callers surface a "nothing to display" state.
	ErrEmptyCatalog = errors.New("no eligible media in catalog")

	// ErrInvalidConfiguration indicates a non-positive configured
	// duration or unknown ordering mode. Surfaced to the admin-facing
	// layer, never silently defaulted.
	ErrInvalidConfiguration = errors.New("invalid slideshow configuration")
)
