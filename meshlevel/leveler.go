// Package meshlevel compensates motion for an uneven work surface using
// a mesh of probed heights.
package meshlevel

import (
	"math"

	"github.com/mastercactapus/gcode2rml/coord"
)

type Config struct {
	ZOffsetter ZOffsetter

	// Granularity is the longest XY distance moved before the surface
	// height is looked up again. 0 disables splitting.
	Granularity float64
}

// Leveler splits long moves and shifts Z by the surface height.
type Leveler struct {
	offsetter   ZOffsetter
	granularity float64
}

func New(cfg Config) *Leveler {
	l := &Leveler{
		offsetter:   cfg.ZOffsetter,
		granularity: cfg.Granularity,
	}
	if l.offsetter == nil {
		l.offsetter = flat{}
	}
	return l
}

// Split returns the points of a move from `from` to `to`, no two more
// than the granularity apart in XY. The last point is always `to`.
func (l *Leveler) Split(from, to coord.Point) []coord.Point {
	dist := from.DistanceXY(to.X, to.Y)
	if l.granularity <= 0 || dist <= l.granularity {
		return []coord.Point{to}
	}

	n := int(math.Ceil(dist / l.granularity))
	return from.Split(to, n)
}

// Level adds the surface height at p's XY position to p.Z. Points outside
// the mesh are left as-is.
func (l *Leveler) Level(p coord.Point) coord.Point {
	if ok, z := l.offsetter.OffsetZ(p.X, p.Y); ok {
		p.Z += z
	}
	return p
}
