// Package engine provides the playback engine consumed by the player actor.
package engine

import "github.com/cockroachdb/errors"

// Errors
var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// Engine is the transport surface the player actor drives. Implementations
// own decode and hardware output; the caller owns queue policy.
type Engine interface {
	// Append decodes the file at path and adds it to the end of the queue.
	Append(path string) error
	// Play resumes output. Idempotent while already playing.
	Play()
	// Pause suspends output. Idempotent while already paused.
	Pause()
	// Stop suspends output and clears all pending tracks.
	Stop()
	// SkipOne drops the track at the head of the queue. No-op when the
	// queue is empty.
	SkipOne()
	// Len reports the number of pending tracks, including the one
	// currently audible.
	Len() int
	// Volume reports the current linear volume level (1.0 = unity gain).
	Volume() float64
	// SetVolume sets the linear volume level. Levels above 1.0 amplify;
	// range policy belongs to the caller.
	SetVolume(level float64)
	// Close releases output resources.
	Close() error
}
