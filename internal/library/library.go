// Package library discovers and shuffles the playable track set.
package library

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"shufflebox/internal/domain/track"
)

// DefaultExtensions lists the audio extensions scanned when the
// configuration does not name its own set.
var DefaultExtensions = []string{".mp3", ".wav", ".flac", ".ogg"}

// Scan lists the immediate entries of dir and returns the ones whose
// extension matches (case-insensitive). Subdirectories are not descended.
func Scan(dir string, extensions []string) ([]track.Track, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list directory %s", dir)
	}

	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	var tracks []track.Track
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !matchesExtension(entry.Name(), extensions) {
			zlog.Debug().Msgf("library: skipping non-audio entry: %s", entry.Name())
			continue
		}
		tracks = append(tracks, track.New(filepath.Join(dir, entry.Name())))
	}

	return tracks, nil
}

func matchesExtension(name string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// Shuffle permutes tracks uniformly at random, in place.
func Shuffle(tracks []track.Track) {
	rand.Shuffle(len(tracks), func(i, j int) {
		tracks[i], tracks[j] = tracks[j], tracks[i]
	})
}
