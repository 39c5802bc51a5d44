package gcode

import (
	"strconv"
	"strings"
)

// Word is a single letter/value pair, e.g. X12.5 or G1.
type Word struct {
	W   byte
	Arg float64
}

// IsCenter returns true for the arc center offsets I, J and K.
func (w Word) IsCenter() bool {
	switch w.W {
	case 'I', 'J', 'K':
		return true
	}
	return false
}

func formatFloat(f float64, prec int) string {
	s := strconv.FormatFloat(f, 'f', prec, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
	}
	return strings.TrimRight(s, ".")
}

func (w Word) String() string {
	return string(w.W) + formatFloat(w.Arg, 4)
}
