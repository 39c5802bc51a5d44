package gcode

import "strings"

// Block holds the parameter words of a command. A letter missing from
// the block was not given, which is distinct from being given as 0.
type Block []Word

// Arg returns whether w was given and its value.
func (b Block) Arg(w byte) (bool, float64) {
	for _, g := range b {
		if g.W == w {
			return true, g.Arg
		}
	}
	return false, 0
}

// Set returns b with w set to val. A repeated letter replaces the earlier value.
func (b Block) Set(w byte, val float64) Block {
	for i, g := range b {
		if g.W == w {
			b[i].Arg = val
			return b
		}
	}
	return append(b, Word{W: w, Arg: val})
}

// HasCenter returns true if any of I, J or K was given.
func (b Block) HasCenter() bool {
	for _, g := range b {
		if g.IsCenter() {
			return true
		}
	}
	return false
}

func (b Block) String() string {
	var sb strings.Builder
	for _, g := range b {
		sb.WriteString(g.String())
	}
	return sb.String()
}
