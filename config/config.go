// Package config loads gcode2rml settings from defaults and a YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/mastercactapus/gcode2rml/rml"
	"github.com/mastercactapus/gcode2rml/vm"
	yml "gopkg.in/yaml.v2"
)

// FileName is the configuration file read from the working directory.
const FileName = "gcode2rml.yml"

type Preamble struct {
	Velocity float64 `koanf:"velocity" yaml:"velocity"`
	Spindle  int     `koanf:"spindle" yaml:"spindle"`
}

type Serial struct {
	Port string `koanf:"port" yaml:"port"`
	Baud int    `koanf:"baud" yaml:"baud"`
}

type SPJS struct {
	// URL of the SPJS websocket, like ws://cnc-bridge:8989/ws.
	URL    string `koanf:"url" yaml:"url"`
	Buffer int    `koanf:"buffer" yaml:"buffer"`
}

type Mesh struct {
	// File is a JSON probe grid. Empty disables leveling.
	File        string  `koanf:"file" yaml:"file"`
	Granularity float64 `koanf:"granularity" yaml:"granularity"`
}

type Config struct {
	// Resolution is the number of arc points per millimeter.
	Resolution float64 `koanf:"resolution" yaml:"resolution"`

	// Rounding is "truncate" or "nearest".
	Rounding string `koanf:"rounding" yaml:"rounding"`

	// ImpliedDecimals reads numbers without a decimal point as
	// thousandths (mm) or ten-thousandths (inch).
	ImpliedDecimals bool `koanf:"implied_decimals" yaml:"implied_decimals"`

	Preamble Preamble `koanf:"preamble" yaml:"preamble"`
	Serial   Serial   `koanf:"serial" yaml:"serial"`
	SPJS     SPJS     `koanf:"spjs" yaml:"spjs"`
	Mesh     Mesh     `koanf:"mesh" yaml:"mesh"`

	// Addr is the listen address for -serve.
	Addr string `koanf:"addr" yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Resolution:      vm.DefaultResolution,
		Rounding:        rml.Truncate.String(),
		ImpliedDecimals: true,
		Preamble: Preamble{
			Velocity: rml.DefaultPreamble.Velocity,
			Spindle:  rml.DefaultPreamble.Spindle,
		},
		Serial: Serial{Baud: 9600},
		SPJS:   SPJS{Buffer: 100},
		Mesh:   Mesh{Granularity: 1},
		Addr:   ":9091",
	}
}

// Load reads name over the defaults. A missing file is not an error.
func Load(name string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, err
	}

	if name != "" {
		_, err := os.Stat(name)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// file missing, use defaults
		case err != nil:
			return nil, err
		default:
			if err := k.Load(file.Provider(name), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", name, err)
			}
		}
	}

	var c Config
	if err := k.Unmarshal("", &c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &c, nil
}

func (c Config) Validate() error {
	if c.Resolution <= 0 {
		return errors.New("resolution must be positive")
	}
	if _, err := rml.ParseRounding(c.Rounding); err != nil {
		return err
	}
	if c.Mesh.Granularity < 0 {
		return errors.New("mesh granularity must not be negative")
	}
	return nil
}

// RoundingMode returns the parsed Rounding value.
func (c Config) RoundingMode() rml.Rounding {
	r, _ := rml.ParseRounding(c.Rounding)
	return r
}

// PreambleValues converts the preamble settings for rml.Emitter.
func (c Config) PreambleValues() rml.Preamble {
	return rml.Preamble{Velocity: c.Preamble.Velocity, Spindle: c.Preamble.Spindle}
}

// WriteYAML encodes c in the configuration file format.
func (c Config) WriteYAML(w io.Writer) error {
	enc := yml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(c)
}
