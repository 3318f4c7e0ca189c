package models

// MediaKind represents the type of a media item (photo or video)
type MediaKind string

const (
	MediaKindPhoto MediaKind = "photo"
	MediaKindVideo MediaKind = "video"
)

// OrderingMode represents how a device's slideshow orders its catalog
type OrderingMode string

const (
	OrderingSequential OrderingMode = "sequential"
	OrderingShuffle    OrderingMode = "shuffle"
)

// Valid reports whether the ordering mode is a known value
func (m OrderingMode) Valid() bool {
	return m == OrderingSequential || m == OrderingShuffle
}
