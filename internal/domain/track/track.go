// Package track provides the Track domain entity.
package track

import (
	"path/filepath"
	"strings"
)

// Track represents a playable audio file on the local filesystem.
type Track struct {
	Path  string // File path as discovered in the library directory
	Title string // Display title, derived from the file name
}

// New creates a Track for the given path.
func New(path string) Track {
	base := filepath.Base(path)
	return Track{
		Path:  path,
		Title: strings.TrimSuffix(base, filepath.Ext(base)),
	}
}

// Paths returns the paths of the given tracks, in order.
func Paths(tracks []Track) []string {
	paths := make([]string, len(tracks))
	for i, t := range tracks {
		paths[i] = t.Path
	}
	return paths
}
