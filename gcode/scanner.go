package gcode

import (
	"io"
)

// Scanner splits a block (one line) into commands.
type Scanner struct {
	cur Cursor
}

func NewScanner(line string) *Scanner {
	return &Scanner{cur: Cursor{line: line}}
}

// Next returns the next command in the block, reading decimal numbers
// with the given number of implied decimal places.
//
// It returns io.EOF once the block is exhausted or a `%` program
// delimiter starts the remaining text.
func (s *Scanner) Next(places int) (Command, error) {
	s.cur.SkipBlank()
	for s.cur.Peek() == 'N' {
		s.cur.Next()
		s.cur.ReadInt()
		s.cur.SkipBlank()
	}
	if s.cur.Done() || s.cur.Peek() == '%' {
		s.cur.pos = len(s.cur.line)
		return Command{}, io.EOF
	}

	var cmd Command
	var err error
	switch l := s.cur.Peek(); l {
	case 'G':
		s.cur.Next()
		// G91.1 and friends keep their fraction so they can't pass for G91
		cmd.Word = Word{W: 'G', Arg: s.cur.ReadFloat(0)}
		cmd.Args, err = s.args(places)
	case 'M', 'S':
		s.cur.Next()
		cmd.Word = Word{W: l, Arg: float64(s.cur.ReadInt())}
	case 'F':
		s.cur.Next()
		cmd.Word = Word{W: 'F', Arg: s.cur.ReadFloat(places)}
	case 'X', 'Y', 'Z':
		cmd.Args, err = s.args(places)
	default:
		return Command{}, &UnknownCommandError{Letter: l}
	}
	if err != nil {
		return Command{}, err
	}

	return cmd, nil
}

// args reads motion parameters until a letter that is not one.
func (s *Scanner) args(places int) (Block, error) {
	var b Block
	for {
		s.cur.SkipBlank()
		switch l := s.cur.Peek(); l {
		case 'X', 'Y', 'Z', 'I', 'J', 'K', 'P':
			s.cur.Next()
			b = b.Set(l, s.cur.ReadFloat(places))
		case 'R':
			return nil, ErrExplicitRadius
		default:
			return b, nil
		}
	}
}
