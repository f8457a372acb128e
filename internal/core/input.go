package core

// Command is an abstract steering intent, decoupled from physical keys.
// Input sources translate key presses into commands; the game maps commands
// onto direction vectors.
type Command int

const (
	CommandNone Command = iota
	CommandUp
	CommandDown
	CommandLeft
	CommandRight
)

// String returns a stable lowercase name, also used in the session journal.
func (c Command) String() string {
	switch c {
	case CommandUp:
		return "up"
	case CommandDown:
		return "down"
	case CommandLeft:
		return "left"
	case CommandRight:
		return "right"
	default:
		return "none"
	}
}

// ParseCommand is the inverse of String. Unknown names map to CommandNone.
func ParseCommand(s string) Command {
	switch s {
	case "up":
		return CommandUp
	case "down":
		return CommandDown
	case "left":
		return CommandLeft
	case "right":
		return CommandRight
	default:
		return CommandNone
	}
}

// Vector returns the unit direction for a steering command.
// ok is false for CommandNone and any unknown value.
func (c Command) Vector() (v Coord, ok bool) {
	switch c {
	case CommandUp:
		return Up, true
	case CommandDown:
		return Down, true
	case CommandLeft:
		return Left, true
	case CommandRight:
		return Right, true
	}
	return Coord{}, false
}
