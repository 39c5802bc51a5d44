package meshlevel

import (
	"errors"
	"math"

	"github.com/fogleman/delaunay"
	"github.com/mastercactapus/gcode2rml/coord"
)

type bounds struct{ minX, minY, maxX, maxY float64 }

func (b bounds) contains(x, y float64) bool {
	return b.minX <= x && x <= b.maxX && b.minY <= y && y <= b.maxY
}

// Mesh interpolates surface heights from probed points by triangulating
// them in XY.
type Mesh struct {
	bounds
	triangles []coord.Triangle
}

var _ ZOffsetter = &Mesh{}

func NewMesh(points []coord.Point) (*Mesh, error) {
	if len(points) < 3 {
		return nil, errors.New("need at least 3 points to create a mesh")
	}

	b := bounds{
		minX: math.Inf(1), minY: math.Inf(1),
		maxX: math.Inf(-1), maxY: math.Inf(-1),
	}
	points2d := make([]delaunay.Point, len(points))
	for i, p := range points {
		b.minX = math.Min(b.minX, p.X)
		b.minY = math.Min(b.minY, p.Y)
		b.maxX = math.Max(b.maxX, p.X)
		b.maxY = math.Max(b.maxY, p.Y)
		points2d[i] = delaunay.Point{X: p.X, Y: p.Y}
	}
	b.minX -= coord.Epsilon
	b.minY -= coord.Epsilon
	b.maxX += coord.Epsilon
	b.maxY += coord.Epsilon

	tri, err := delaunay.Triangulate(points2d)
	if err != nil {
		return nil, err
	}

	// Triangulate keeps the input order, so indices map straight back
	// to the probed points.
	mesh := &Mesh{
		bounds:    b,
		triangles: make([]coord.Triangle, 0, len(tri.Triangles)/3),
	}
	for i := 0; i+2 < len(tri.Triangles); i += 3 {
		mesh.triangles = append(mesh.triangles, coord.Triangle{
			A: points[tri.Triangles[i]],
			B: points[tri.Triangles[i+1]],
			C: points[tri.Triangles[i+2]],
		})
	}

	return mesh, nil
}

// OffsetZ returns the surface height at x,y, if it is covered by the mesh.
func (m *Mesh) OffsetZ(x, y float64) (bool, float64) {
	if !m.contains(x, y) {
		return false, 0
	}
	for _, t := range m.triangles {
		if t.ContainsXY(x, y) {
			return true, t.Z(x, y)
		}
	}

	return false, 0
}
