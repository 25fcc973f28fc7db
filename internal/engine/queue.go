package engine

import (
	"io"

	"github.com/gopxl/beep/v2"
)

// entry couples a track's streamer with the file-backed closer behind it.
// The streamer may be a resampling wrapper, so the closer is kept
// separately.
type entry struct {
	streamer beep.Streamer
	closer   io.Closer
}

// queue streams its entries back to back and emits silence when empty, so
// the speaker never stops pulling. Access must be guarded by speaker.Lock
// once the queue is handed to the speaker.
type queue struct {
	entries []entry
}

func (q *queue) add(e entry) {
	q.entries = append(q.entries, e)
}

func (q *queue) len() int {
	return len(q.entries)
}

// skipOne drops and closes the head entry.
func (q *queue) skipOne() {
	if len(q.entries) == 0 {
		return
	}
	if q.entries[0].closer != nil {
		_ = q.entries[0].closer.Close()
	}
	q.entries = q.entries[1:]
}

// clear drops and closes every entry.
func (q *queue) clear() {
	for _, e := range q.entries {
		if e.closer != nil {
			_ = e.closer.Close()
		}
	}
	q.entries = nil
}

// Stream implements beep.Streamer. Drained entries are closed and dropped;
// remaining space is filled with silence.
func (q *queue) Stream(samples [][2]float64) (n int, ok bool) {
	filled := 0
	for filled < len(samples) {
		if len(q.entries) == 0 {
			for i := filled; i < len(samples); i++ {
				samples[i] = [2]float64{}
			}
			break
		}
		sn, sok := q.entries[0].streamer.Stream(samples[filled:])
		if !sok {
			q.skipOne()
		}
		filled += sn
	}
	return len(samples), true
}

// Err implements beep.Streamer. Per-track decode errors are surfaced at
// Append time, not here.
func (q *queue) Err() error {
	return nil
}
