package meshlevel

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mastercactapus/gcode2rml/coord"
)

// ProbeResult is one entry of a probe grid file.
type ProbeResult struct {
	coord.Point
	Valid bool
}

// ReadProbes decodes a JSON array of probe results. Invalid probes are
// dropped and the heights are made relative to the first valid probe,
// which should be taken at the program origin.
func ReadProbes(r io.Reader) ([]coord.Point, error) {
	var res []ProbeResult
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode probes: %w", err)
	}

	points := make([]coord.Point, 0, len(res))
	for _, p := range res {
		if p.Valid {
			points = append(points, p.Point)
		}
	}
	if len(points) == 0 {
		return nil, errors.New("no valid probe points")
	}

	ref := points[0].Z
	for i := range points {
		points[i].Z -= ref
	}
	return points, nil
}

// LoadMesh reads a probe grid file and builds a Mesh from it.
func LoadMesh(name string) (*Mesh, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	points, err := ReadProbes(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return NewMesh(points)
}
