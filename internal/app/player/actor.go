// Package player implements the actor that owns playback state.
//
// The actor is the sole writer of the track queue and the only component
// that calls into the playback engine. All other actors reach it through
// the command channel; length answers travel back on per-origin reply
// channels.
package player

import (
	zlog "github.com/rs/zerolog/log"

	"shufflebox/internal/control"
	"shufflebox/internal/domain/track"
	"shufflebox/internal/engine"
	"shufflebox/internal/library"
)

// Config holds player actor configuration.
type Config struct {
	VolumeStep float64 // Linear volume change per VolumeUp/VolumeDown
}

// Actor owns the track set and the playback engine.
type Actor struct {
	engine     engine.Engine
	tracks     []track.Track
	volumeStep float64

	commands <-chan control.Message
	replies  map[control.Origin]chan<- int

	done chan struct{}
}

// New creates a player actor. The actor takes ownership of tracks; the
// slice must not be used by the caller afterwards.
func New(eng engine.Engine, tracks []track.Track, commands <-chan control.Message, cfg Config) *Actor {
	step := cfg.VolumeStep
	if step <= 0 {
		step = 0.1
	}
	return &Actor{
		engine:     eng,
		tracks:     tracks,
		volumeStep: step,
		commands:   commands,
		replies:    make(map[control.Origin]chan<- int),
		done:       make(chan struct{}),
	}
}

// RegisterReply binds a reply channel to an origin. Must be called before
// Run. Queries from an origin with no registered channel are answered by
// dropping the reply.
func (a *Actor) RegisterReply(origin control.Origin, ch chan<- int) {
	a.replies[origin] = ch
}

// Done is closed when the actor's loop has exited. The producing actors
// treat it as the terminal state signal.
func (a *Actor) Done() <-chan struct{} {
	return a.done
}

// Run queues the shuffled track set and processes commands until Stop is
// received or the command channel is closed.
func (a *Actor) Run() error {
	defer close(a.done)

	a.shuffleAndQueue()
	zlog.Info().Msgf("player: queue primed: tracks=%d pending=%d", len(a.tracks), a.engine.Len())

	for msg := range a.commands {
		if !a.handle(msg) {
			return nil
		}
	}

	// Command channel closed from the producing side: same as Stop.
	a.engine.Stop()
	zlog.Info().Msg("player: command channel closed, shutting down")
	return nil
}

// handle processes one message. It reports false when the loop must exit.
func (a *Actor) handle(msg control.Message) bool {
	zlog.Debug().Msgf("player: received command: command=%s origin=%s", msg.Command, msg.Origin)

	switch msg.Command {
	case control.Play:
		a.engine.Play()

	case control.Pause:
		a.engine.Pause()

	case control.Skip:
		a.engine.SkipOne()

	case control.Stop:
		a.engine.Stop()
		zlog.Info().Msg("player: stopped")
		return false

	case control.VolumeDown:
		level := a.engine.Volume() - a.volumeStep
		if level < 0 {
			level = 0
		}
		a.engine.SetVolume(level)

	case control.VolumeUp:
		a.engine.SetVolume(a.engine.Volume() + a.volumeStep)

	case control.Refill:
		zlog.Info().Msgf("player: refilling queue: tracks=%d", len(a.tracks))
		a.shuffleAndQueue()

	case control.QueryLength:
		a.reply(msg.Origin, a.engine.Len())
	}

	return true
}

// reply sends a queue length answer on the origin's reply channel. A
// missing channel or a full reply slot is a silent drop, never an error.
func (a *Actor) reply(origin control.Origin, length int) {
	ch, ok := a.replies[origin]
	if !ok {
		return
	}
	select {
	case ch <- length:
	default:
		zlog.Warn().Msgf("player: dropping length reply: origin=%s", origin)
	}
}

// shuffleAndQueue permutes the full track set and appends every track to
// the engine. A track that fails to queue is skipped with a warning.
func (a *Actor) shuffleAndQueue() {
	library.Shuffle(a.tracks)
	for _, t := range a.tracks {
		if err := a.engine.Append(t.Path); err != nil {
			zlog.Warn().Msgf("player: unable to queue track: path=%s err=%v", t.Path, err)
			continue
		}
		zlog.Debug().Msgf("player: queued track: title=%s", t.Title)
	}
}
