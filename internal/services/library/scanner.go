package library

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/joelmeaders/LibraFoto-sub006/internal/models"
	"github.com/joelmeaders/LibraFoto-sub006/internal/utils"
	"github.com/sirupsen/logrus"
)

// Entry describes a media file discovered during a library scan
type Entry struct {
	Path    string // Library-relative path
	Kind    models.MediaKind
	Album   string
	TakenAt time.Time
}

// Scanner walks the media library directory and reports the photo and
// video files it contains. Video durations are not probed here; they
// stay unknown until an admin sets them, and the slideshow engine falls
// back to the photo duration in the meantime.
type Scanner struct {
	root   string
	ignore *utils.IgnoreList
	logger *logrus.Logger
}

// NewScanner creates a new library scanner
func NewScanner(root string, ignore *utils.IgnoreList, logger *logrus.Logger) (*Scanner, error) {
	if root == "" {
		return nil, fmt.Errorf("media directory is required")
	}

	return &Scanner{
		root:   root,
		ignore: ignore,
		logger: logger,
	}, nil
}

// Scan walks the library and returns every recognized media file
func (s *Scanner) Scan(ctx context.Context) ([]Entry, error) {
	var entries []Entry

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		// Skip hidden files and directories
		if strings.HasPrefix(d.Name(), ".") && path != s.root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		kind, ok := utils.DetectMediaKind(rel)
		if !ok {
			return nil
		}

		if s.ignore != nil {
			if ignored, pattern := s.ignore.IsIgnored(rel); ignored {
				s.logger.WithFields(logrus.Fields{
					"path":    rel,
					"pattern": pattern,
				}).Debug("Skipping ignored file")
				return nil
			}
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		entries = append(entries, Entry{
			Path:    rel,
			Kind:    kind,
			Album:   albumFor(rel),
			TakenAt: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("library walk failed: %w", err)
	}

	return entries, nil
}

// albumFor derives the album from the first path segment under the
// library root; files at the root belong to no album
func albumFor(rel string) string {
	dir := filepath.ToSlash(filepath.Dir(rel))
	if dir == "." {
		return ""
	}
	if i := strings.Index(dir, "/"); i >= 0 {
		return dir[:i]
	}
	return dir
}
