package meshlevel

import (
	"testing"

	"github.com/mastercactapus/gcode2rml/coord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// probes indicate a rise of 30mm over 100mm, or .3mm Z for every 1mm X
var slope = []coord.Point{
	{X: -700, Y: -450, Z: -80},
	{X: -700, Y: -550, Z: -80},

	{X: -600, Y: -450, Z: -50},
	{X: -600, Y: -550, Z: -50},
}

func TestMesh_OffsetZ(t *testing.T) {
	mesh, err := NewMesh(slope)
	require.NoError(t, err)

	ok, z := mesh.OffsetZ(-650, -500)
	assert.True(t, ok)
	assert.InDelta(t, -65, z, 0.0001)

	ok, z = mesh.OffsetZ(-700, -450)
	assert.True(t, ok)
	assert.InDelta(t, -80, z, 0.0001)

	ok, _ = mesh.OffsetZ(0, 0)
	assert.False(t, ok)
}

func TestNewMesh_TooFew(t *testing.T) {
	_, err := NewMesh(slope[:2])
	assert.Error(t, err)
}

func TestLeveler_Split(t *testing.T) {
	l := New(Config{Granularity: 1})

	from := coord.Point{X: -650, Y: -500, Z: -60}
	to := coord.Point{X: -647, Y: -500, Z: -60}
	pts := l.Split(from, to)
	require.Len(t, pts, 3)
	assert.InDelta(t, -649, pts[0].X, 0.0001)
	assert.InDelta(t, -648, pts[1].X, 0.0001)
	assert.Equal(t, to, pts[2])

	// short moves and pure Z moves are not split
	assert.Equal(t, []coord.Point{to}, l.Split(to.Add(coord.Point{X: -0.5}), to))
	assert.Equal(t, []coord.Point{to}, l.Split(to.Add(coord.Point{Z: 10}), to))

	l = New(Config{})
	assert.Equal(t, []coord.Point{to}, l.Split(from, to))
}

func TestLeveler_Level(t *testing.T) {
	mesh, err := NewMesh(slope)
	require.NoError(t, err)
	l := New(Config{ZOffsetter: mesh, Granularity: 1})

	from := coord.Point{X: -650, Y: -500, Z: -60}
	var prev float64
	for i, p := range l.Split(from, coord.Point{X: -647, Y: -500, Z: -60}) {
		lp := l.Level(p)
		assert.InDelta(t, p.X, lp.X, 0.0001)
		if i > 0 {
			assert.InDelta(t, 0.3, lp.Z-prev, 0.0001)
		}
		prev = lp.Z
	}

	// outside the mesh
	p := coord.Point{X: 10, Y: 10, Z: 1}
	assert.Equal(t, p, l.Level(p))

	// no mesh
	assert.Equal(t, p, New(Config{}).Level(p))
}
