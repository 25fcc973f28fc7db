package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// toneStreamer emits a fixed number of full-scale samples, then drains.
type toneStreamer struct {
	remaining int
}

func (s *toneStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.remaining <= 0 {
		return 0, false
	}
	n := len(samples)
	if n > s.remaining {
		n = s.remaining
	}
	for i := 0; i < n; i++ {
		samples[i] = [2]float64{1, 1}
	}
	s.remaining -= n
	return n, true
}

func (s *toneStreamer) Err() error { return nil }

type countingCloser struct {
	closes int
}

func (c *countingCloser) Close() error {
	c.closes++
	return nil
}

func TestQueue_StreamsEntriesBackToBack(t *testing.T) {
	q := &queue{}
	c1 := &countingCloser{}
	c2 := &countingCloser{}
	q.add(entry{streamer: &toneStreamer{remaining: 100}, closer: c1})
	q.add(entry{streamer: &toneStreamer{remaining: 100}, closer: c2})
	require.Equal(t, 2, q.len())

	samples := make([][2]float64, 256)
	n, ok := q.Stream(samples)

	assert.Equal(t, 256, n)
	assert.True(t, ok)
	for i := 0; i < 200; i++ {
		assert.Equal(t, [2]float64{1, 1}, samples[i], "sample %d", i)
	}
	for i := 200; i < 256; i++ {
		assert.Equal(t, [2]float64{}, samples[i], "sample %d", i)
	}

	// Both entries drained, both closed.
	assert.Equal(t, 0, q.len())
	assert.Equal(t, 1, c1.closes)
	assert.Equal(t, 1, c2.closes)
}

func TestQueue_SilentWhenEmpty(t *testing.T) {
	q := &queue{}

	samples := make([][2]float64, 64)
	samples[0] = [2]float64{1, 1} // stale data must be overwritten
	n, ok := q.Stream(samples)

	assert.Equal(t, 64, n)
	assert.True(t, ok, "an empty queue must keep the speaker pulling")
	for i, s := range samples {
		assert.Equal(t, [2]float64{}, s, "sample %d", i)
	}
}

func TestQueue_SkipOneClosesHead(t *testing.T) {
	q := &queue{}
	c1 := &countingCloser{}
	c2 := &countingCloser{}
	q.add(entry{streamer: &toneStreamer{remaining: 10}, closer: c1})
	q.add(entry{streamer: &toneStreamer{remaining: 10}, closer: c2})

	q.skipOne()
	assert.Equal(t, 1, q.len())
	assert.Equal(t, 1, c1.closes)
	assert.Equal(t, 0, c2.closes)

	// Skipping an empty queue is a no-op.
	q.skipOne()
	q.skipOne()
	assert.Equal(t, 0, q.len())
	assert.Equal(t, 1, c2.closes)
}

func TestQueue_ClearClosesAll(t *testing.T) {
	q := &queue{}
	closers := []*countingCloser{{}, {}, {}}
	for _, c := range closers {
		q.add(entry{streamer: &toneStreamer{remaining: 10}, closer: c})
	}

	q.clear()
	assert.Equal(t, 0, q.len())
	for i, c := range closers {
		assert.Equal(t, 1, c.closes, "closer %d", i)
	}
}

func TestLevelToVolume(t *testing.T) {
	tests := []struct {
		level    float64
		expected float64
	}{
		{1.0, 0},
		{0.5, -1},
		{0.25, -2},
		{2.0, 1},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.expected, levelToVolume(tt.level), 1e-9, "level %v", tt.level)
	}
}
