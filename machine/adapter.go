// Package machine delivers RML output to a mill.
package machine

import (
	"io"

	"github.com/tarm/serial"
)

// An Adapter represents the minimal output interface of a mill.
type Adapter interface {
	io.Writer
	io.Closer
}

var (
	_ Adapter = &serial.Port{}
	_ Adapter = &SPJSAdapter{}
)
