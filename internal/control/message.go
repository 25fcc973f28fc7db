// Package control defines the message protocol connecting the actors.
package control

// Command identifies a playback control operation.
type Command int

const (
	Play        Command = iota // Resume playback
	Pause                      // Suspend playback
	Stop                       // Halt playback and terminate the player actor
	Skip                       // Drop the current track
	VolumeDown                 // Decrease volume by one step (floor 0)
	VolumeUp                   // Increase volume by one step (no ceiling)
	QueryLength                // Ask for the pending-track count
	Refill                     // Reshuffle and re-queue the known track set
)

// String returns the string representation of the command.
func (c Command) String() string {
	switch c {
	case Play:
		return "play"
	case Pause:
		return "pause"
	case Stop:
		return "stop"
	case Skip:
		return "skip"
	case VolumeDown:
		return "volume_down"
	case VolumeUp:
		return "volume_up"
	case QueryLength:
		return "query_length"
	case Refill:
		return "refill"
	default:
		return "unknown"
	}
}

// Origin identifies the logical sender of a message. For QueryLength it
// selects the reply channel that receives the answer.
type Origin int

const (
	OriginInput       Origin = iota // Interactive input actor
	OriginLifeSupport               // Queue keep-alive actor
	// OriginPlayer is reserved; the player actor never queries itself.
	OriginPlayer
)

// String returns the string representation of the origin.
func (o Origin) String() string {
	switch o {
	case OriginInput:
		return "input"
	case OriginLifeSupport:
		return "life_support"
	case OriginPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// Message pairs one command with the origin that sent it. A message is
// created by a producing actor and consumed exactly once by the player
// actor.
type Message struct {
	Command Command
	Origin  Origin
}

// NewMessage creates a message.
func NewMessage(cmd Command, origin Origin) Message {
	return Message{Command: cmd, Origin: origin}
}
