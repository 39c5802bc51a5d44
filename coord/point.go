package coord

import (
	"math"
)

// Axis indices used with Point.Axis and Plane.
const (
	AxisX = iota
	AxisY
	AxisZ
)

type Point struct{ X, Y, Z float64 }

// Axis returns the value of the axis with index i (AxisX, AxisY or AxisZ).
func (p Point) Axis(i int) float64 {
	switch i {
	case AxisX:
		return p.X
	case AxisY:
		return p.Y
	case AxisZ:
		return p.Z
	}
	panic("coord: invalid axis index")
}

// WithAxis returns a copy of p with axis i set to val.
func (p Point) WithAxis(i int, val float64) Point {
	switch i {
	case AxisX:
		p.X = val
	case AxisY:
		p.Y = val
	case AxisZ:
		p.Z = val
	default:
		panic("coord: invalid axis index")
	}
	return p
}

func (p Point) Mul(val float64) Point {
	p.X *= val
	p.Y *= val
	p.Z *= val
	return p
}

// Add will add the target values to p.
func (p Point) Add(target Point) Point {
	p.X += target.X
	p.Y += target.Y
	p.Z += target.Z
	return p
}

// Sub will subtract the target values from p.
func (p Point) Sub(target Point) Point {
	p.X -= target.X
	p.Y -= target.Y
	p.Z -= target.Z
	return p
}

// Lerp returns the point a fraction t of the way from p to target.
func (p Point) Lerp(target Point, t float64) Point {
	return Point{
		X: p.X*(1-t) + target.X*t,
		Y: p.Y*(1-t) + target.Y*t,
		Z: p.Z*(1-t) + target.Z*t,
	}
}

// Split will return a set of evenly spaced points
// from p to the target, ending with target itself.
func (p Point) Split(target Point, n int) []Point {
	step := target.Sub(p).Mul(1 / float64(n))

	res := make([]Point, n)
	for i := range res {
		res[i] = p.Add(step.Mul(float64(i + 1)))
	}
	// avoid accumulated error on the final point
	res[n-1] = target

	return res
}

// DistanceXY will return the 2D distance to p from (x,y).
func (p Point) DistanceXY(x, y float64) float64 {
	return math.Hypot(x-p.X, y-p.Y)
}

// DistanceIn returns the distance between p and target measured
// only along the two axes of pl.
func (p Point) DistanceIn(pl Plane, target Point) float64 {
	return math.Hypot(
		p.Axis(pl.A0)-target.Axis(pl.A0),
		p.Axis(pl.A1)-target.Axis(pl.A1),
	)
}
