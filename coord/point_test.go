package coord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoint_Add(t *testing.T) {
	a := Point{X: 1, Y: 2, Z: 3}
	b := Point{X: 4, Y: 5, Z: 6}

	assert.Equal(t, Point{X: 5, Y: 7, Z: 9}, a.Add(b))
}

func TestPoint_Axis(t *testing.T) {
	p := Point{X: 1, Y: 2, Z: 3}
	assert.Equal(t, 1.0, p.Axis(AxisX))
	assert.Equal(t, 2.0, p.Axis(AxisY))
	assert.Equal(t, 3.0, p.Axis(AxisZ))

	assert.Equal(t, Point{X: 1, Y: 9, Z: 3}, p.WithAxis(AxisY, 9))
	assert.Equal(t, Point{X: 1, Y: 2, Z: 3}, p, "WithAxis must not modify the receiver")

	assert.Panics(t, func() { p.Axis(3) })
}

func TestPoint_Lerp(t *testing.T) {
	a := Point{X: 0, Y: 10, Z: -2}
	b := Point{X: 10, Y: 20, Z: 2}

	assert.Equal(t, a, a.Lerp(b, 0))
	assert.Equal(t, b, a.Lerp(b, 1))
	assert.Equal(t, Point{X: 5, Y: 15, Z: 0}, a.Lerp(b, .5))
}

func TestPoint_DistanceXY(t *testing.T) {
	dist := Point{X: 1, Y: 2, Z: 3}.DistanceXY(4, 5)
	assert.InEpsilon(t, 4.24264, dist, .01)
}

func TestPoint_DistanceIn(t *testing.T) {
	a := Point{X: 0, Y: 0, Z: 0}
	b := Point{X: 3, Y: 100, Z: 4}

	assert.Equal(t, 5.0, a.DistanceIn(Plane{A0: AxisX, A1: AxisZ}, b))
	assert.InDelta(t, 100.08, a.DistanceIn(PlaneYZ, b), .01)
}

func TestPoint_Split(t *testing.T) {
	var a Point //zero
	b := Point{X: 10, Y: 10, Z: 10}

	res := a.Split(b, 2)

	assert.Equal(t, []Point{{X: 5, Y: 5, Z: 5}, {X: 10, Y: 10, Z: 10}}, res)

	a = Point{X: 10, Y: 10, Z: 10}
	b = Point{X: 20, Y: 20, Z: 20}
	res = a.Split(b, 4)
	assert.Equal(t,
		[]Point{{X: 12.5, Y: 12.5, Z: 12.5}, {X: 15, Y: 15, Z: 15}, {X: 17.5, Y: 17.5, Z: 17.5}, {X: 20, Y: 20, Z: 20}},
		res,
	)
}

func TestPlane_String(t *testing.T) {
	assert.Equal(t, "XY", PlaneXY.String())
	assert.Equal(t, "ZY", PlaneZY.String())
	assert.Equal(t, "YZ", PlaneYZ.String())
}
