package machine

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mastercactapus/gcode2rml/spjs"
	"github.com/mastercactapus/gcode2rml/spjs/spjstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSPJSAdapter(t *testing.T) {
	srv := spjstest.NewServer(
		spjs.SerialPort{Name: "/dev/ttyUSB0"},
		spjs.SerialPort{Name: "/dev/ttyUSB1"},
	)
	defer srv.Close()

	a := NewSPJSAdapter(spjs.NewClient(srv.URL, nil), SPJSConfig{Port: "/dev/ttyUSB1", Buffer: 4}, nil)

	var expected strings.Builder
	for i := 0; i < 10; i++ {
		line := fmt.Sprintf("Z%d,0,0;\r\n", i)
		expected.WriteString(line)

		// split writes across line boundaries
		_, err := a.Write([]byte(line[:3]))
		require.NoError(t, err)
		_, err = a.Write([]byte(line[3:]))
		require.NoError(t, err)
	}
	require.NoError(t, a.Close())

	assert.Equal(t, expected.String(), srv.Data())
	assert.Contains(t, srv.Commands(), "open /dev/ttyUSB1 9600")

	var batches int
	for _, cmd := range srv.Commands() {
		if strings.HasPrefix(cmd, "sendjson ") {
			batches++
		}
	}
	assert.Equal(t, 3, batches)
}

func TestSPJSAdapter_AlreadyOpen(t *testing.T) {
	srv := spjstest.NewServer(spjs.SerialPort{Name: "COM3", IsOpen: true})
	defer srv.Close()

	a := NewSPJSAdapter(spjs.NewClient(srv.URL, nil), SPJSConfig{Port: "COM3"}, nil)
	_, err := a.Write([]byte("PR;\r\n!MC0;"))
	require.NoError(t, err)
	require.NoError(t, a.Close())

	assert.Equal(t, "PR;\r\n!MC0;", srv.Data())
	for _, cmd := range srv.Commands() {
		assert.False(t, strings.HasPrefix(cmd, "open "), cmd)
	}
}
