package gcode

import (
	"errors"
	"fmt"
	"math"
)

// ErrExplicitRadius is returned when a motion command uses R. Arcs must
// be given by center offsets.
var ErrExplicitRadius = errors.New("interpolation with explicit radius is not supported")

// UnknownCommandError is returned for a block starting with a letter
// that is not a command.
type UnknownCommandError struct {
	Letter byte
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command '%c'", e.Letter)
}

// Command is one command from a block: the command word and its
// parameters. A bare coordinate command (e.g. `X1 Y2`) has a zero Word.
//
// For G and M the word value is the code, for S the raw spindle speed
// and for F the feed rate.
type Command struct {
	Word
	Args Block
}

// Bare returns true for a coordinate command without a G word.
func (c Command) Bare() bool { return c.W == 0 }

// Code returns the integer code of a G or M command.
func (c Command) Code() int { return int(c.Arg) }

// Whole returns false for a sub-coded command like G91.1.
func (c Command) Whole() bool { return c.Arg == math.Trunc(c.Arg) }

func (c Command) String() string {
	if c.Bare() {
		return c.Args.String()
	}
	return c.Word.String() + c.Args.String()
}
