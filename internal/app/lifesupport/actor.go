// Package lifesupport implements the actor that keeps the playback queue
// from running dry.
package lifesupport

import (
	"time"

	zlog "github.com/rs/zerolog/log"

	"shufflebox/internal/control"
)

// Config holds the actor's polling parameters.
type Config struct {
	Interval     time.Duration // Pause between depth polls
	LowWater     int           // Depth at or below which a refill is issued
	ReplyTimeout time.Duration // How long to wait for a length reply
}

// Actor polls the queue depth on a fixed cadence and issues a Refill
// before the queue can reach empty.
type Actor struct {
	commands chan<- control.Message
	replies  <-chan int
	done     <-chan struct{}
	cfg      Config
}

// New creates a life-support actor. done is the player actor's
// termination signal.
func New(commands chan<- control.Message, replies <-chan int, done <-chan struct{}, cfg Config) *Actor {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.LowWater < 0 {
		cfg.LowWater = 1
	}
	if cfg.ReplyTimeout <= 0 {
		cfg.ReplyTimeout = 5 * time.Second
	}
	return &Actor{
		commands: commands,
		replies:  replies,
		done:     done,
		cfg:      cfg,
	}
}

// Run polls until the player actor terminates. Each cycle polls once,
// then sleeps for the configured interval regardless of the outcome.
func (a *Actor) Run() error {
	ticker := time.NewTicker(a.cfg.Interval)
	defer ticker.Stop()

	for {
		a.poll()

		select {
		case <-a.done:
			zlog.Debug().Msg("lifesupport: player terminated, exiting")
			return nil
		case <-ticker.C:
		}
	}
}

// poll performs one depth check. Send failures and reply timeouts are not
// retried within the cycle; the next cycle polls again.
func (a *Actor) poll() {
	if !a.send(control.QueryLength) {
		return
	}

	timer := time.NewTimer(a.cfg.ReplyTimeout)
	defer timer.Stop()

	var depth int
	select {
	case depth = <-a.replies:
	case <-timer.C:
		zlog.Warn().Msgf("lifesupport: no length reply within %v, skipping cycle", a.cfg.ReplyTimeout)
		return
	case <-a.done:
		return
	}

	zlog.Debug().Msgf("lifesupport: queue depth: %d", depth)
	if depth <= a.cfg.LowWater {
		zlog.Info().Msgf("lifesupport: queue depleting, requesting refill: depth=%d low_water=%d", depth, a.cfg.LowWater)
		a.send(control.Refill)
	}
}

// send forwards a command with Origin LifeSupport. It reports false when
// the player actor has terminated.
func (a *Actor) send(cmd control.Command) bool {
	select {
	case a.commands <- control.NewMessage(cmd, control.OriginLifeSupport):
		return true
	case <-a.done:
		return false
	}
}
