package vm

import (
	"math"

	"github.com/mastercactapus/gcode2rml/coord"
)

const (
	// minArcSteps is the fewest segments an arc is split into.
	minArcSteps = 10

	// maxArcSteps bounds the segments of a single arc. At the default
	// resolution it is reached at a radius of about 4 m.
	maxArcSteps = 1 << 18
)

// Arc describes a circular (or helical) move.
//
// Angles are measured in the arc's plane from the second plane axis
// towards the first. If the start and end are at different distances
// from the center, the radius is blended linearly along the sweep.
type Arc struct {
	Start, End, Center coord.Point

	Dir   Direction
	Plane coord.Plane
}

func (a Arc) angle(p coord.Point) float64 {
	pl := a.Plane
	return math.Atan2(
		p.Axis(pl.A0)-a.Center.Axis(pl.A0),
		p.Axis(pl.A1)-a.Center.Axis(pl.A1),
	)
}

// Angles returns the start and end angle of the sweep. The end angle is
// adjusted so that it moves from start in Dir, a full turn when start
// and end coincide.
func (a Arc) Angles() (start, end float64) {
	start = a.angle(a.Start)
	end = a.angle(a.End)
	if (end-start)*float64(a.Dir) <= 0 {
		end += 2 * math.Pi * float64(a.Dir)
	}
	return start, end
}

// Sweep returns the signed angle covered by the arc.
func (a Arc) Sweep() float64 {
	start, end := a.Angles()
	return end - start
}

// Steps returns the number of interpolated segments for resolution
// points per millimeter of circumference.
func (a Arc) Steps(resolution float64) int {
	radius := a.Start.DistanceIn(a.Plane, a.Center)
	n := math.Round(radius * 2 * math.Pi * resolution)
	switch {
	case n > maxArcSteps:
		return maxArcSteps
	case n >= minArcSteps:
		return int(n)
	}
	// also catches NaN
	return minArcSteps
}

func lerp(a, b, t float64) float64 { return a*(1-t) + b*t }

// Each calls fn with every position to visit, Steps(resolution)+1 in
// all. The first is the start, the last is exactly End. It stops at the
// first error from fn.
func (a Arc) Each(resolution float64, fn func(coord.Point) error) error {
	startAngle, endAngle := a.Angles()
	startRadius := a.Start.DistanceIn(a.Plane, a.Center)
	endRadius := a.End.DistanceIn(a.Plane, a.Center)
	a0, a1 := a.Plane.A0, a.Plane.A1

	steps := a.Steps(resolution)
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps)
		r := lerp(startRadius, endRadius, t)
		angle := lerp(startAngle, endAngle, t)

		p := a.Start.Lerp(a.End, t).
			WithAxis(a0, math.Sin(angle)*r+a.Center.Axis(a0)).
			WithAxis(a1, math.Cos(angle)*r+a.Center.Axis(a1))
		if err := fn(p); err != nil {
			return err
		}
	}

	return fn(a.End)
}
