// Package rml writes Roland RML-1 commands.
//
// The mill is kept in relative positioning mode (PR) for the whole
// program, so the origin is wherever the tool was at startup. Callers
// work in absolute millimeters; the Emitter converts every target to a
// relative move.
package rml

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/mastercactapus/gcode2rml/coord"
)

// UnitsPerMM is the number of device units in a millimeter.
const UnitsPerMM = 100

// Rounding selects how millimeters are converted to device units.
type Rounding int

const (
	// Truncate drops the fractional device unit.
	Truncate Rounding = iota
	// Nearest rounds to the nearest device unit.
	Nearest
)

// ParseRounding converts a configuration value ("truncate" or "nearest").
func ParseRounding(s string) (Rounding, error) {
	switch s {
	case "", "truncate":
		return Truncate, nil
	case "nearest":
		return Nearest, nil
	}
	return Truncate, errors.New("unknown rounding mode: " + s)
}

func (r Rounding) String() string {
	if r == Nearest {
		return "nearest"
	}
	return "truncate"
}

func (r Rounding) units(mm float64) int {
	v := mm * UnitsPerMM
	if r == Nearest {
		return int(math.Round(v))
	}
	return int(v)
}

// Position is an absolute device position in device units.
type Position struct{ X, Y, Z int }

// Emitter writes RML commands and tracks the position last sent to the device.
type Emitter struct {
	w     io.Writer
	round Rounding
	pos   Position
}

func NewEmitter(w io.Writer, round Rounding) *Emitter {
	return &Emitter{w: w, round: round}
}

// Position returns the position last sent to the device.
func (e *Emitter) Position() Position { return e.pos }

func (e *Emitter) command(cmd string) error {
	_, err := io.WriteString(e.w, cmd+";\r\n")
	return err
}

// MoveTo moves the tool to the absolute position p (millimeters).
func (e *Emitter) MoveTo(p coord.Point) error {
	next := Position{
		X: e.round.units(p.X),
		Y: e.round.units(p.Y),
		Z: e.round.units(p.Z),
	}
	dx, dy, dz := next.X-e.pos.X, next.Y-e.pos.Y, next.Z-e.pos.Z
	e.pos = next
	return e.command(fmt.Sprintf("Z%d,%d,%d", dx, dy, dz))
}

// Velocity sets the movement speed in mm/s.
func (e *Emitter) Velocity(mmPerSec float64) error {
	return e.command("V" + strconv.FormatFloat(mmPerSec, 'f', 1, 64))
}

// RelativeMode switches the device to relative positioning.
func (e *Emitter) RelativeMode() error { return e.command("PR") }

func (e *Emitter) SpindleOn() error  { return e.command("!MC1") }
func (e *Emitter) SpindleOff() error { return e.command("!MC0") }

// SpindleSpeed sets the spindle speed setting (not RPM).
func (e *Emitter) SpindleSpeed(setting int) error {
	return e.command("!RC" + strconv.Itoa(setting))
}

// Preamble configures the startup state of the device.
type Preamble struct {
	Velocity float64
	Spindle  int
}

// DefaultPreamble uses speed 60 and spindle setting 15, the 12000 RPM
// maximum of an MDX-540.
var DefaultPreamble = Preamble{Velocity: 60, Spindle: 15}

// Preamble puts the device into a known state: default speed, relative
// positioning, spindle stopped.
func (e *Emitter) Preamble(p Preamble) error {
	for _, fn := range []func() error{
		func() error { return e.Velocity(p.Velocity) },
		e.RelativeMode,
		e.SpindleOff,
		func() error { return e.SpindleSpeed(p.Spindle) },
	} {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}
