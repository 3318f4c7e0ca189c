package utils

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// IgnoreList holds filename patterns excluded from library scans
type IgnoreList struct {
	patterns []string
}

// LoadIgnoreList loads ignore patterns from a file, one per line
func LoadIgnoreList(path string) (*IgnoreList, error) {
	// If file doesn't exist, return empty ignore list
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &IgnoreList{patterns: []string{}}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var patterns []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		pattern := strings.TrimSpace(scanner.Text())
		if pattern != "" && !strings.HasPrefix(pattern, "#") {
			patterns = append(patterns, pattern)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &IgnoreList{patterns: patterns}, nil
}

// IsIgnored checks if a path matches any ignore pattern.
// A pattern matches when it glob-matches the base name or is contained
// in the path (case-insensitive).
// Returns (isIgnored, matchedPattern)
func (l *IgnoreList) IsIgnored(path string) (bool, string) {
	base := strings.ToLower(filepath.Base(path))
	pathLower := strings.ToLower(path)

	for _, pattern := range l.patterns {
		patternLower := strings.ToLower(pattern)
		if ok, _ := filepath.Match(patternLower, base); ok {
			return true, pattern
		}
		if strings.Contains(pathLower, patternLower) {
			return true, pattern
		}
	}

	return false, ""
}
