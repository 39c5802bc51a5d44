// Package vm interprets G-code blocks and drives an rml.Emitter.
package vm

import (
	"io"
	"log/slog"

	"github.com/mastercactapus/gcode2rml/coord"
	"github.com/mastercactapus/gcode2rml/rml"
)

const (
	mmPerInch = 25.4

	// DefaultResolution is the number of arc points per millimeter of
	// circumference.
	DefaultResolution = 10
)

// Direction is the winding direction of an arc in its plane.
type Direction float64

const (
	Clockwise        Direction = -1 // G2
	CounterClockwise Direction = 1  // G3
)

// Leveler adjusts motion for an uneven work surface.
type Leveler interface {
	// Split breaks a linear move into segments, ending with to.
	Split(from, to coord.Point) []coord.Point
	// Level returns the corrected physical position for p.
	Level(p coord.Point) coord.Point
}

// State is the persistent coordinate state of the machine.
type State struct {
	// Pos is the logical tool position in millimeters, without Offset.
	Pos coord.Point

	Relative bool

	// Scale converts program units to millimeters.
	Scale float64

	// Places is the number of implied decimal places for numbers
	// written without a decimal point.
	Places int

	// Offset is added to every position sent to the device.
	Offset coord.Point

	Plane coord.Plane

	// ArcDir is the direction of the last arc, used for bare
	// coordinate blocks with center offsets.
	ArcDir Direction
}

type Config struct {
	// Resolution is the number of arc points per millimeter. Defaults
	// to DefaultResolution.
	Resolution float64

	// WholeUnits disables implied decimal places, so X10 means 10
	// units instead of 0.010 mm.
	WholeUnits bool

	// Leveler is optional.
	Leveler Leveler

	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger
}

// Machine tracks G-code state and translates blocks into RML commands.
// It is not safe for concurrent use.
type Machine struct {
	State

	out *rml.Emitter
	cfg Config
	log *slog.Logger
}

func NewMachine(out *rml.Emitter, cfg Config) *Machine {
	if cfg.Resolution <= 0 {
		cfg.Resolution = DefaultResolution
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	m := &Machine{
		out: out,
		cfg: cfg,
		log: log,
	}
	m.State = State{
		Plane:  coord.PlaneXY,
		ArcDir: CounterClockwise,
	}
	m.setUnits(1)

	return m
}

// unitScale returns the unit scale selected by a G code.
func unitScale(code int) (float64, bool) {
	switch code {
	case 20:
		return 1, true
	case 21:
		return mmPerInch, true
	}
	return 0, false
}

func (m *Machine) places(scale float64) int {
	switch {
	case m.cfg.WholeUnits:
		return 0
	case scale == mmPerInch:
		return 4
	}
	return 3
}

func (m *Machine) setUnits(scale float64) {
	m.Scale = scale
	m.Places = m.places(scale)
}
