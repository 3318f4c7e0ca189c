package utils

import (
	"path/filepath"
	"strings"

	"github.com/joelmeaders/LibraFoto-sub006/internal/models"
)

var photoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".heic": true,
	".heif": true,
}

var videoExtensions = map[string]bool{
	".mp4":  true,
	".m4v":  true,
	".mov":  true,
	".mkv":  true,
	".webm": true,
	".avi":  true,
}

// DetectMediaKind determines the media kind from a file name.
// Returns (kind, true) for recognized media files, ("", false) otherwise.
func DetectMediaKind(path string) (models.MediaKind, bool) {
	ext := strings.ToLower(filepath.Ext(path))

	if photoExtensions[ext] {
		return models.MediaKindPhoto, true
	}
	if videoExtensions[ext] {
		return models.MediaKindVideo, true
	}

	return "", false
}
