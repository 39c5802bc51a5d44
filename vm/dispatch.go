package vm

import (
	"errors"
	"io"
	"math"
	"strconv"

	"github.com/mastercactapus/gcode2rml/coord"
	"github.com/mastercactapus/gcode2rml/gcode"
)

// Speeds below this are likely spindle speed codes rather than RPM.
const minDirectRPM = 100

// spindleSetting maps an RPM value to the device's speed setting. The
// device steps in increments of roughly 772 RPM above 400 RPM
// (measured on an MDX-540). A setting of 0 would stop the spindle, so
// it is raised to 1.
func spindleSetting(rpm int) int {
	setting := int(math.Round(float64(rpm-400) / 772))
	if setting == 0 {
		setting = 1
	}
	return setting
}

// Run translates one block. The block is scanned in full first: if any
// of its commands uses an explicit radius, nothing in the block is
// executed.
//
// A *gcode.UnknownCommandError is returned for a command letter that is
// not understood, after the commands preceding it have run. Translation
// must stop there.
func (m *Machine) Run(line string) error {
	cmds, err := m.scan(line)
	if errors.Is(err, gcode.ErrExplicitRadius) {
		m.log.Warn("interpolation with explicit radius is not supported, ignoring block", "block", line)
		return nil
	}

	for _, cmd := range cmds {
		if e := m.exec(cmd); e != nil {
			return e
		}
	}

	return err
}

// scan reads all commands of line, following unit changes so later
// commands use the right implied decimal places.
func (m *Machine) scan(line string) ([]gcode.Command, error) {
	s := gcode.NewScanner(line)
	places := m.Places

	var cmds []gcode.Command
	for {
		cmd, err := s.Next(places)
		if err == io.EOF {
			return cmds, nil
		}
		if err != nil {
			return cmds, err
		}
		if cmd.W == 'G' && cmd.Whole() {
			if scale, ok := unitScale(cmd.Code()); ok {
				places = m.places(scale)
			}
		}
		cmds = append(cmds, cmd)
	}
}

func (m *Machine) exec(cmd gcode.Command) error {
	switch {
	case cmd.Bare():
		if cmd.Args.HasCenter() {
			return m.arc(cmd.Args, m.ArcDir)
		}
		return m.linear(cmd.Args)
	case cmd.W == 'G':
		return m.execG(cmd)
	case cmd.W == 'M':
		return m.execM(cmd.Code())
	case cmd.W == 'S':
		rpm := cmd.Code()
		if rpm < minDirectRPM && rpm != 0 {
			m.log.Warn("spindle speed codes are not supported, spindle speed will likely be very wrong", "speed", rpm)
		}
		return m.out.SpindleSpeed(spindleSetting(rpm))
	case cmd.W == 'F':
		// mm/min to mm/s
		return m.out.Velocity(cmd.Arg * m.Scale / 60)
	}

	return &gcode.UnknownCommandError{Letter: cmd.W}
}

func (m *Machine) execG(cmd gcode.Command) error {
	if !cmd.Whole() {
		m.log.Warn("command is not supported", "command", cmd.Word.String())
		return nil
	}

	switch code := cmd.Code(); code {
	case 0, 1:
		return m.linear(cmd.Args)
	case 2:
		m.ArcDir = Clockwise
		return m.arc(cmd.Args, m.ArcDir)
	case 3:
		m.ArcDir = CounterClockwise
		return m.arc(cmd.Args, m.ArcDir)
	case 10:
		for i, w := range axisWords {
			if ok, v := cmd.Args.Arg(w); ok {
				m.Offset = m.Offset.WithAxis(i, v*m.Scale)
			}
		}
	case 17:
		m.Plane = coord.PlaneXY
	case 18:
		m.Plane = coord.PlaneZY
	case 19:
		m.Plane = coord.PlaneYZ
	case 20, 21:
		scale, _ := unitScale(code)
		m.setUnits(scale)
	case 90:
		m.Relative = false
	case 91:
		m.Relative = true
	default:
		m.log.Warn("command is not supported", "command", cmd.Word.String())
	}

	return nil
}

func (m *Machine) execM(code int) error {
	switch code {
	case 0, 1, 2, 30:
		// program stop, optional stop, program end
	case 3, 4:
		return m.out.SpindleOn()
	case 5:
		return m.out.SpindleOff()
	default:
		m.log.Warn("command is not supported", "command", "M"+strconv.Itoa(code))
	}

	return nil
}
