package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shufflebox/internal/domain/track"
)

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
}

func TestScan_FiltersNonAudioEntries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.mp3")
	writeFile(t, dir, "b.FLAC")
	writeFile(t, dir, "cover.jpg")
	writeFile(t, dir, "notes.txt")

	// Entries in subdirectories are not scanned.
	sub := filepath.Join(dir, "more")
	require.NoError(t, os.Mkdir(sub, 0755))
	writeFile(t, sub, "c.mp3")

	tracks, err := Scan(dir, nil)
	require.NoError(t, err)

	titles := make([]string, len(tracks))
	for i, tr := range tracks {
		titles[i] = tr.Title
	}
	assert.ElementsMatch(t, []string{"a", "b"}, titles)
}

func TestScan_CustomExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.mp3")
	writeFile(t, dir, "b.ogg")

	tracks, err := Scan(dir, []string{".ogg"})
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, "b", tracks[0].Title)
}

func TestScan_EmptyDirectory(t *testing.T) {
	tracks, err := Scan(t.TempDir(), nil)
	require.NoError(t, err)
	assert.Empty(t, tracks)
}

func TestScan_MissingDirectory(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"), nil)
	assert.Error(t, err)
}

func TestShuffle_IsPermutation(t *testing.T) {
	original := make([]track.Track, 10)
	for i := range original {
		original[i] = track.New(filepath.Join("m", string(rune('a'+i))+".mp3"))
	}

	shuffled := make([]track.Track, len(original))
	copy(shuffled, original)
	Shuffle(shuffled)

	assert.ElementsMatch(t, track.Paths(original), track.Paths(shuffled))
}

func TestShuffle_ChangesOrder(t *testing.T) {
	original := make([]track.Track, 10)
	for i := range original {
		original[i] = track.New(filepath.Join("m", string(rune('a'+i))+".mp3"))
	}

	// A uniform shuffle of 10 elements matching the input order 20 times
	// in a row is vanishingly unlikely.
	changed := false
	for trial := 0; trial < 20 && !changed; trial++ {
		shuffled := make([]track.Track, len(original))
		copy(shuffled, original)
		Shuffle(shuffled)
		if !assert.ObjectsAreEqual(track.Paths(original), track.Paths(shuffled)) {
			changed = true
		}
	}
	assert.True(t, changed, "shuffle never changed the order")
}

func TestShuffle_SmallInputs(t *testing.T) {
	Shuffle(nil)
	single := []track.Track{track.New("a.mp3")}
	Shuffle(single)
	assert.Equal(t, "a.mp3", single[0].Path)
}
