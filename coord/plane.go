package coord

// Plane selects the two axes used for circular interpolation.
//
// Angles in a plane are measured from A1 towards A0. The remaining
// axis moves linearly during a helical arc.
type Plane struct{ A0, A1 int }

var (
	PlaneXY = Plane{A0: AxisX, A1: AxisY} // G17
	PlaneZY = Plane{A0: AxisZ, A1: AxisY} // G18
	PlaneYZ = Plane{A0: AxisY, A1: AxisZ} // G19
)

func (pl Plane) String() string {
	const names = "XYZ"
	return string([]byte{names[pl.A0], names[pl.A1]})
}
