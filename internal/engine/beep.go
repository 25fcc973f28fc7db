package engine

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"
)

// Settings holds beep engine settings, decoded from the configuration's
// free-form engine settings map.
type Settings struct {
	SampleRate      int `mapstructure:"sample_rate"`      // Speaker sample rate (Hz)
	BufferMs        int `mapstructure:"buffer_ms"`        // Speaker buffer length
	ResampleQuality int `mapstructure:"resample_quality"` // beep resampler quality (1-64)
}

func (s *Settings) applyDefaults() {
	if s.SampleRate <= 0 {
		s.SampleRate = 44100
	}
	if s.BufferMs <= 0 {
		s.BufferMs = 100
	}
	if s.ResampleQuality <= 0 {
		s.ResampleQuality = 4
	}
}

// Beep is an Engine backed by the beep speaker. The master stream is a
// queue wrapped in a pause control and a volume effect; it plays silence
// while the queue is empty, so the speaker runs for the engine's lifetime.
type Beep struct {
	sampleRate beep.SampleRate
	quality    int
	queue      *queue
	ctrl       *beep.Ctrl
	volume     *effects.Volume
	level      float64
}

var _ Engine = (*Beep)(nil)

// NewBeep initializes the speaker and starts the master stream.
func NewBeep(settings map[string]any) (*Beep, error) {
	var s Settings
	if err := mapstructure.Decode(settings, &s); err != nil {
		return nil, errors.Wrap(err, "failed to decode engine settings")
	}
	s.applyDefaults()

	sr := beep.SampleRate(s.SampleRate)
	if err := speaker.Init(sr, sr.N(time.Duration(s.BufferMs)*time.Millisecond)); err != nil {
		return nil, errors.Wrap(err, "failed to initialize speaker")
	}

	q := &queue{}
	ctrl := &beep.Ctrl{Streamer: q}
	vol := &effects.Volume{Streamer: ctrl, Base: 2, Volume: 0}

	e := &Beep{
		sampleRate: sr,
		quality:    s.ResampleQuality,
		queue:      q,
		ctrl:       ctrl,
		volume:     vol,
		level:      1,
	}

	zlog.Debug().Msgf("engine: speaker initialized: sample_rate=%d buffer_ms=%d", s.SampleRate, s.BufferMs)
	speaker.Play(vol)
	return e, nil
}

// Append decodes the file at path and adds it to the end of the queue.
// The decoder is chosen by extension; tracks with a different sample rate
// are resampled to the speaker rate.
func (e *Beep) Append(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", path)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	default:
		_ = f.Close()
		return errors.Wrapf(ErrUnsupportedFormat, "extension %s", ext)
	}
	if err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "failed to decode %s", path)
	}

	var s beep.Streamer = streamer
	if format.SampleRate != e.sampleRate {
		s = beep.Resample(e.quality, format.SampleRate, e.sampleRate, streamer)
	}

	speaker.Lock()
	e.queue.add(entry{streamer: s, closer: streamer})
	speaker.Unlock()
	return nil
}

// Play resumes output.
func (e *Beep) Play() {
	speaker.Lock()
	e.ctrl.Paused = false
	speaker.Unlock()
}

// Pause suspends output.
func (e *Beep) Pause() {
	speaker.Lock()
	e.ctrl.Paused = true
	speaker.Unlock()
}

// Stop suspends output and clears all pending tracks.
func (e *Beep) Stop() {
	speaker.Lock()
	e.queue.clear()
	e.ctrl.Paused = true
	speaker.Unlock()
}

// SkipOne drops the track at the head of the queue.
func (e *Beep) SkipOne() {
	speaker.Lock()
	e.queue.skipOne()
	speaker.Unlock()
}

// Len reports the number of pending tracks.
func (e *Beep) Len() int {
	speaker.Lock()
	n := e.queue.len()
	speaker.Unlock()
	return n
}

// Volume reports the current linear volume level.
func (e *Beep) Volume() float64 {
	return e.level
}

// SetVolume sets the linear volume level.
func (e *Beep) SetVolume(level float64) {
	e.level = level
	speaker.Lock()
	if level <= 0 {
		e.volume.Silent = true
	} else {
		e.volume.Silent = false
		e.volume.Volume = levelToVolume(level)
	}
	speaker.Unlock()
}

// Close clears the queue and shuts the speaker down.
func (e *Beep) Close() error {
	speaker.Lock()
	e.queue.clear()
	speaker.Unlock()
	speaker.Clear()
	speaker.Close()
	return nil
}

// levelToVolume converts a linear level to beep's logarithmic Volume value
// (base 2): 1.0 -> 0, 0.5 -> -1, 2.0 -> +1.
func levelToVolume(level float64) float64 {
	return math.Log2(level)
}
