package vm

import (
	"github.com/mastercactapus/gcode2rml/coord"
	"github.com/mastercactapus/gcode2rml/gcode"
)

var (
	axisWords   = []byte{'X', 'Y', 'Z'}
	centerWords = []byte{'I', 'J', 'K'}
)

// target resolves the axis words of args to an absolute logical
// position. Missing axes keep their current value.
func (m *Machine) target(args gcode.Block) coord.Point {
	p := m.Pos
	for i, w := range axisWords {
		ok, v := args.Arg(w)
		if !ok {
			continue
		}
		v *= m.Scale
		if m.Relative {
			v += m.Pos.Axis(i)
		}
		p = p.WithAxis(i, v)
	}
	return p
}

// center resolves I, J and K, which are always relative to the current
// position.
func (m *Machine) center(args gcode.Block) coord.Point {
	var off coord.Point
	for i, w := range centerWords {
		if ok, v := args.Arg(w); ok {
			off = off.WithAxis(i, v*m.Scale)
		}
	}
	return m.Pos.Add(off)
}

// emit sends the logical position p to the device.
func (m *Machine) emit(p coord.Point) error {
	p = m.Offset.Add(p)
	if m.cfg.Leveler != nil {
		p = m.cfg.Leveler.Level(p)
	}
	return m.out.MoveTo(p)
}

func (m *Machine) linear(args gcode.Block) error {
	end := m.target(args)

	path := []coord.Point{end}
	if m.cfg.Leveler != nil {
		path = m.cfg.Leveler.Split(m.Pos, end)
	}
	for _, p := range path {
		if err := m.emit(p); err != nil {
			return err
		}
	}

	m.Pos = end
	return nil
}

func (m *Machine) arc(args gcode.Block, dir Direction) error {
	a := Arc{
		Start:  m.Pos,
		End:    m.target(args),
		Center: m.center(args),
		Dir:    dir,
		Plane:  m.Plane,
	}
	m.log.Debug("arc",
		"start", a.Start,
		"end", a.End,
		"center", a.Center,
		"plane", a.Plane,
		"steps", a.Steps(m.cfg.Resolution),
	)

	if err := a.Each(m.cfg.Resolution, m.emit); err != nil {
		return err
	}

	m.Pos = a.End
	return nil
}
