package gcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursor_ReadInt(t *testing.T) {
	check := func(in string, exp int, rest string) {
		t.Helper()
		c := NewCursor(in)
		assert.Equal(t, exp, c.ReadInt(), in)
		assert.Equal(t, rest, c.Rest(), in)
	}

	check("1", 1, "")
	check("91X", 91, "X")
	check("-12 ", -12, " ")
	check("38.2Z1", 38, ".2Z1")
	check("-", 0, "")
	check("X1", 0, "X1")
}

func TestCursor_ReadFloat(t *testing.T) {
	check := func(in string, places int, exp float64, rest string) {
		t.Helper()
		c := NewCursor(in)
		assert.InDelta(t, exp, c.ReadFloat(places), 1e-9, in)
		assert.Equal(t, rest, c.Rest(), in)
	}

	check("12345", 3, 12.345, "")
	check("1000", 3, 1, "")
	check("1000", 4, .1, "")
	check("-500Y", 3, -.5, "Y")
	check("10", 0, 10, "")
	check("10.", 3, 10, "")
	check("1.5", 3, 1.5, "")
	check("-.25 X", 4, -.25, " X")
	check("0.001", 3, .001, "")

	// malformed input silently reads as zero
	check("-", 3, 0, "")
	check(".", 3, 0, "")
	check("-.Y", 3, 0, "Y")
}

func TestCursor_SkipBlank(t *testing.T) {
	c := NewCursor(" \t(a comment) G1 ; trailing")
	c.SkipBlank()
	assert.Equal(t, byte('G'), c.Next())
	assert.Equal(t, 1, c.ReadInt())
	c.SkipBlank()
	assert.True(t, c.Done())

	c = NewCursor("(unterminated")
	c.SkipBlank()
	assert.True(t, c.Done())
}

func TestCursor_Peek(t *testing.T) {
	c := NewCursor("g")
	assert.Equal(t, byte('G'), c.Peek())
	assert.Equal(t, byte('G'), c.Next())
	assert.Equal(t, byte(0), c.Peek())
	assert.Equal(t, byte(0), c.Next())
}
