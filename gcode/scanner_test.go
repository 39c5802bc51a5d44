package gcode

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scanAll reads every command of line.
func scanAll(line string, places int) ([]Command, error) {
	s := NewScanner(line)
	var res []Command
	for {
		cmd, err := s.Next(places)
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			return res, err
		}
		res = append(res, cmd)
	}
}

func TestScanner_Next(t *testing.T) {
	s := NewScanner("G1 X10.0 Y0 F300.0 M3")

	cmd, err := s.Next(3)
	require.NoError(t, err)
	assert.Equal(t, Word{W: 'G', Arg: 1}, cmd.Word)
	assert.Equal(t, Block{{W: 'X', Arg: 10}, {W: 'Y', Arg: 0}}, cmd.Args)

	ok, y := cmd.Args.Arg('Y')
	assert.True(t, ok, "explicit zero must be present")
	assert.Equal(t, 0.0, y)
	ok, _ = cmd.Args.Arg('Z')
	assert.False(t, ok)

	cmd, err = s.Next(3)
	require.NoError(t, err)
	assert.Equal(t, Word{W: 'F', Arg: 300}, cmd.Word)
	assert.Nil(t, cmd.Args)

	cmd, err = s.Next(3)
	require.NoError(t, err)
	assert.Equal(t, "M3", cmd.String())

	_, err = s.Next(3)
	assert.Equal(t, io.EOF, err)
}

func TestScanner_Packed(t *testing.T) {
	cmds, err := scanAll("G90G1X1000Y-2000S12000", 3)
	require.NoError(t, err)
	require.Len(t, cmds, 3)
	assert.Equal(t, "G90", cmds[0].String())
	assert.Equal(t, "G1X1Y-2", cmds[1].String())
	assert.Equal(t, Word{W: 'S', Arg: 12000}, cmds[2].Word)
}

func TestScanner_Bare(t *testing.T) {
	cmds, err := scanAll("X1.0 I-5. J0 P1.", 3)
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	assert.True(t, cmds[0].Bare())
	assert.True(t, cmds[0].Args.HasCenter())
	assert.Equal(t, "X1I-5J0P1", cmds[0].String())

	cmds, err = scanAll("y2.5", 3)
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	assert.True(t, cmds[0].Bare())
	assert.False(t, cmds[0].Args.HasCenter())
}

func TestScanner_Empty(t *testing.T) {
	for _, line := range []string{"", "   ", "\r\n", "%", "% anything", "(comment only)", "; comment", "N10"} {
		cmds, err := scanAll(line, 3)
		assert.NoError(t, err, line)
		assert.Empty(t, cmds, line)
	}
}

func TestScanner_LineNumbers(t *testing.T) {
	cmds, err := scanAll("N10 G0 Z5.0 (lift) n20 m5", 3)
	require.NoError(t, err)
	require.Len(t, cmds, 2)
	assert.Equal(t, "G0Z5", cmds[0].String())
	assert.Equal(t, "M5", cmds[1].String())
}

func TestScanner_ExplicitRadius(t *testing.T) {
	_, err := scanAll("G2 X10. R5.", 3)
	assert.Equal(t, ErrExplicitRadius, err)

	_, err = scanAll("X10. R5.", 3)
	assert.Equal(t, ErrExplicitRadius, err)
}

func TestScanner_Unknown(t *testing.T) {
	cmds, err := scanAll("G1 X1. Q1", 3)
	require.Error(t, err)
	var uc *UnknownCommandError
	require.ErrorAs(t, err, &uc)
	assert.Equal(t, byte('Q'), uc.Letter)
	assert.Equal(t, "unknown command 'Q'", err.Error())
	assert.Len(t, cmds, 1, "commands before the unknown letter are kept")
}

func TestScanner_RepeatedArg(t *testing.T) {
	cmds, err := scanAll("G1 X1. X2.", 3)
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	assert.Equal(t, Block{{W: 'X', Arg: 2}}, cmds[0].Args)
}

func TestScanner_SubCode(t *testing.T) {
	cmds, err := scanAll("G91.1 G90 X1.", 3)
	require.NoError(t, err)
	require.Len(t, cmds, 2)
	assert.Equal(t, 91.1, cmds[0].Arg)
	assert.False(t, cmds[0].Whole())
	assert.Equal(t, "G91.1", cmds[0].String())
	assert.True(t, cmds[1].Whole())

	// only G codes take a fraction
	cmds, err = scanAll("M3.1", 3)
	var uc *UnknownCommandError
	require.ErrorAs(t, err, &uc)
	assert.Equal(t, byte('.'), uc.Letter)
	require.Len(t, cmds, 1)
	assert.Equal(t, "M3", cmds[0].String())
}
