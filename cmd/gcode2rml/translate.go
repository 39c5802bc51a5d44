package main

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/mastercactapus/gcode2rml/config"
	"github.com/mastercactapus/gcode2rml/gcode"
	"github.com/mastercactapus/gcode2rml/meshlevel"
	"github.com/mastercactapus/gcode2rml/rml"
	"github.com/mastercactapus/gcode2rml/vm"
)

// translator holds what every translation shares. The mesh may be
// replaced while the server runs.
type translator struct {
	cfg *config.Config

	mx      sync.RWMutex
	leveler vm.Leveler
}

func newTranslator(cfg *config.Config) (*translator, error) {
	t := &translator{cfg: cfg}
	if cfg.Mesh.File == "" {
		return t, nil
	}

	mesh, err := meshlevel.LoadMesh(cfg.Mesh.File)
	if err != nil {
		return nil, err
	}
	t.setMesh(mesh)
	return t, nil
}

// setMesh enables leveling with mesh, or disables it if mesh is nil.
func (t *translator) setMesh(mesh *meshlevel.Mesh) {
	t.mx.Lock()
	defer t.mx.Unlock()
	if mesh == nil {
		t.leveler = nil
		return
	}
	t.leveler = meshlevel.New(meshlevel.Config{
		ZOffsetter:  mesh,
		Granularity: t.cfg.Mesh.Granularity,
	})
}

// start writes the preamble to w and returns a fresh Machine.
func (t *translator) start(w io.Writer, log *slog.Logger) (*vm.Machine, error) {
	t.mx.RLock()
	leveler := t.leveler
	t.mx.RUnlock()

	e := rml.NewEmitter(w, t.cfg.RoundingMode())
	if err := e.Preamble(t.cfg.PreambleValues()); err != nil {
		return nil, err
	}

	return vm.NewMachine(e, vm.Config{
		Resolution: t.cfg.Resolution,
		WholeUnits: !t.cfg.ImpliedDecimals,
		Leveler:    leveler,
		Logger:     log,
	}), nil
}

// feed runs every line of r through m. The first error ends it.
func feed(m *vm.Machine, name string, r gcode.Reader) error {
	for n := 1; ; n++ {
		line, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if err := m.Run(line); err != nil {
			return fmt.Errorf("%s:%d: %w", name, n, err)
		}
	}
}
