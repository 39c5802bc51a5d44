package gcode

import (
	"bufio"
	"io"
	"strings"
)

// Reader provides G-code one block (line) at a time.
type Reader interface {
	Read() (string, error)
}

// LineReader reads blocks from a text stream.
type LineReader struct{ br *bufio.Reader }

func NewLineReader(r io.Reader) *LineReader {
	if br, ok := r.(*bufio.Reader); ok {
		return &LineReader{br: br}
	}

	return &LineReader{br: bufio.NewReader(r)}
}

// Read returns the next line without its line ending. A final line
// without a newline is still returned; io.EOF follows it.
func (p *LineReader) Read() (string, error) {
	s, err := p.br.ReadString('\n')
	if err == io.EOF && s != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}

	return strings.TrimRight(s, "\r\n"), nil
}
