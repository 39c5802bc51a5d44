package coord

const (
	// Epsilon is the max error when checking containment.
	Epsilon = 0.001
)

type Triangle struct{ A, B, C Point }

// barycentric returns the weights of A, B and C for the XY projection
// of (x,y). ok is false for a degenerate triangle.
func (t Triangle) barycentric(x, y float64) (wa, wb, wc float64, ok bool) {
	det := (t.B.Y-t.C.Y)*(t.A.X-t.C.X) + (t.C.X-t.B.X)*(t.A.Y-t.C.Y)
	if det == 0 {
		return 0, 0, 0, false
	}
	wa = ((t.B.Y-t.C.Y)*(x-t.C.X) + (t.C.X-t.B.X)*(y-t.C.Y)) / det
	wb = ((t.C.Y-t.A.Y)*(x-t.C.X) + (t.A.X-t.C.X)*(y-t.C.Y)) / det
	return wa, wb, 1 - wa - wb, true
}

// ContainsXY returns true if the 2D projection of the triangle
// has the point x,y. Points within Epsilon (in weight) of an edge count.
func (t Triangle) ContainsXY(x, y float64) bool {
	wa, wb, wc, ok := t.barycentric(x, y)
	if !ok {
		return false
	}
	return wa >= -Epsilon && wb >= -Epsilon && wc >= -Epsilon
}

// Z will give the Z-coordinate on the plane defined by the triangle
// where it intersects x,y.
func (t Triangle) Z(x, y float64) float64 {
	wa, wb, wc, ok := t.barycentric(x, y)
	if !ok {
		return t.A.Z
	}
	return wa*t.A.Z + wb*t.B.Z + wc*t.C.Z
}
