// Package input implements the actor bridging interactive line commands to
// the player actor.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"shufflebox/internal/control"
)

const menu = `actions:
  p     play
  =     pause
  s     skip
  stop  stop and quit
  +     volume up one step
  -     volume down one step (floor 0)
  q     tracks remaining before the next reshuffle
`

// Actor reads line-oriented commands and forwards them as messages with
// Origin Input.
type Actor struct {
	in       io.Reader
	out      io.Writer
	commands chan<- control.Message
	replies  <-chan int
	done     <-chan struct{}
}

// New creates an input actor. done is the player actor's termination
// signal; every send observes it.
func New(in io.Reader, out io.Writer, commands chan<- control.Message, replies <-chan int, done <-chan struct{}) *Actor {
	return &Actor{
		in:       in,
		out:      out,
		commands: commands,
		replies:  replies,
		done:     done,
	}
}

// Run prompts, reads and forwards commands until the player actor
// terminates or the input source ends. Neither is an error.
func (a *Actor) Run() error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go a.readLines(lines, readErr)

	for {
		a.showPrompt()

		select {
		case <-a.done:
			zlog.Debug().Msg("input: player terminated, exiting")
			return nil
		case err := <-readErr:
			return errors.Wrap(err, "failed to read input")
		case line, ok := <-lines:
			if !ok {
				zlog.Debug().Msg("input: source closed, exiting")
				return nil
			}
			if !a.dispatch(line) {
				return nil
			}
		}
	}
}

// readLines feeds trimmed input lines to the actor loop. It runs in its
// own goroutine because a blocking terminal read cannot be cancelled; it
// is abandoned mid-read when the process exits.
func (a *Actor) readLines(lines chan<- string, readErr chan<- error) {
	scanner := bufio.NewScanner(a.in)
	for scanner.Scan() {
		select {
		case lines <- strings.TrimSpace(scanner.Text()):
		case <-a.done:
			return
		}
	}
	if err := scanner.Err(); err != nil {
		readErr <- err
		return
	}
	close(lines)
}

// dispatch maps one input line to a command. It reports false when the
// actor must exit.
func (a *Actor) dispatch(line string) bool {
	switch line {
	case "p":
		return a.send(control.Play)
	case "=":
		return a.send(control.Pause)
	case "s":
		return a.send(control.Skip)
	case "stop":
		a.send(control.Stop)
		return false
	case "+":
		return a.send(control.VolumeUp)
	case "-":
		return a.send(control.VolumeDown)
	case "q":
		if !a.send(control.QueryLength) {
			return false
		}
		a.printLength()
		return true
	default:
		zlog.Warn().Msgf("input: unrecognized command: %q", line)
		fmt.Fprintf(a.out, "unrecognized command %q\n", line)
		return true
	}
}

// send forwards a command with Origin Input. It reports false when the
// player actor has terminated.
func (a *Actor) send(cmd control.Command) bool {
	select {
	case a.commands <- control.NewMessage(cmd, control.OriginInput):
		return true
	case <-a.done:
		return false
	}
}

// showPrompt displays the queue depth and the command menu.
func (a *Actor) showPrompt() {
	if a.send(control.QueryLength) {
		select {
		case n := <-a.replies:
			fmt.Fprintf(a.out, "%d tracks queued\n", n)
		case <-a.done:
			return
		}
	}
	fmt.Fprint(a.out, menu)
	fmt.Fprint(a.out, "(type): ")
}

// printLength displays the answer to an explicit q command.
func (a *Actor) printLength() {
	select {
	case n := <-a.replies:
		fmt.Fprintf(a.out, "there are %d tracks until the next reshuffle\n", n)
	case <-a.done:
	}
}
