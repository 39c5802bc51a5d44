package gcode

import (
	"math"
	"strconv"
)

// Cursor walks a single line of G-code.
//
// Numbers are read leniently: a bare sign or point reads as 0 and
// never produces an error.
type Cursor struct {
	line string
	pos  int
}

func NewCursor(line string) *Cursor {
	return &Cursor{line: line}
}

// Done returns true once the whole line has been consumed.
func (c *Cursor) Done() bool { return c.pos >= len(c.line) }

// Rest returns the unconsumed part of the line.
func (c *Cursor) Rest() string { return c.line[c.pos:] }

// Peek returns the next character, upper-cased, or 0 at the end of the line.
func (c *Cursor) Peek() byte {
	if c.Done() {
		return 0
	}
	b := c.line[c.pos]
	if b >= 'a' && b <= 'z' {
		b -= 'a' - 'A'
	}
	return b
}

// Next consumes and returns the next character, upper-cased.
func (c *Cursor) Next() byte {
	b := c.Peek()
	if !c.Done() {
		c.pos++
	}
	return b
}

// SkipBlank consumes whitespace and comments. A `(` comment runs to the
// matching `)`, a `;` comment to the end of the line.
func (c *Cursor) SkipBlank() {
	for !c.Done() {
		switch c.line[c.pos] {
		case ' ', '\t', '\r', '\n':
			c.pos++
		case '(':
			for !c.Done() && c.line[c.pos] != ')' {
				c.pos++
			}
			if !c.Done() {
				c.pos++
			}
		case ';':
			c.pos = len(c.line)
		default:
			return
		}
	}
}

func (c *Cursor) sign() float64 {
	if c.Peek() == '-' {
		c.pos++
		return -1
	}
	return 1
}

func (c *Cursor) digits() string {
	start := c.pos
	for !c.Done() && c.line[c.pos] >= '0' && c.line[c.pos] <= '9' {
		c.pos++
	}
	return c.line[start:c.pos]
}

func parseDigits(s string) float64 {
	if s == "" {
		return 0
	}
	// only digits, so the sole possible error is a range error where
	// ParseFloat still returns ±Inf
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

// ReadInt reads an optionally negative integer. It stops at a decimal
// point.
func (c *Cursor) ReadInt() int {
	sign := c.sign()
	return int(sign * parseDigits(c.digits()))
}

// ReadFloat reads an optionally negative decimal number. Without an
// explicit decimal point, the point is implied `places` digits from the
// right, so X12345 with 3 places reads as 12.345.
func (c *Cursor) ReadFloat(places int) float64 {
	sign := c.sign()
	whole := c.digits()
	if c.Peek() != '.' {
		return sign * parseDigits(whole) / math.Pow10(places)
	}
	c.pos++
	frac := c.digits()

	v, err := strconv.ParseFloat("0"+whole+"."+frac+"0", 64)
	if err != nil {
		return 0
	}
	return sign * v
}
