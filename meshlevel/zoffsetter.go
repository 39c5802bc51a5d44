package meshlevel

// ZOffsetter reports the surface height at a point.
type ZOffsetter interface {
	OffsetZ(x, y float64) (bool, float64)
}

// flat is used when no mesh is configured.
type flat struct{}

func (flat) OffsetZ(x, y float64) (bool, float64) {
	return false, 0
}
