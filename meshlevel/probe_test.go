package meshlevel

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mastercactapus/gcode2rml/coord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const probeJSON = `[
	{"X": 0, "Y": 0, "Z": -1.5, "Valid": true},
	{"X": 10, "Y": 0, "Z": -1.4, "Valid": true},
	{"X": 10, "Y": 10, "Z": 99, "Valid": false},
	{"X": 0, "Y": 10, "Z": -1.6, "Valid": true},
	{"X": 10, "Y": 10, "Z": -1.5, "Valid": true}
]`

func TestReadProbes(t *testing.T) {
	points, err := ReadProbes(strings.NewReader(probeJSON))
	require.NoError(t, err)
	require.Len(t, points, 4)

	assert.Equal(t, coord.Point{}, points[0])
	assert.InDelta(t, 0.1, points[1].Z, 0.0001)
	assert.InDelta(t, -0.1, points[2].Z, 0.0001)
	assert.InDelta(t, 0, points[3].Z, 0.0001)
}

func TestReadProbes_Errors(t *testing.T) {
	_, err := ReadProbes(strings.NewReader(`{`))
	assert.Error(t, err)

	_, err = ReadProbes(strings.NewReader(`[{"X": 1, "Valid": false}]`))
	assert.Error(t, err)
}

func TestLoadMesh(t *testing.T) {
	name := filepath.Join(t.TempDir(), "probes.json")
	require.NoError(t, os.WriteFile(name, []byte(probeJSON), 0644))

	mesh, err := LoadMesh(name)
	require.NoError(t, err)

	ok, z := mesh.OffsetZ(10, 0)
	assert.True(t, ok)
	assert.InDelta(t, 0.1, z, 0.0001)

	_, err = LoadMesh(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
