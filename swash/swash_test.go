package swash

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ctessum/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleInput = `PROJECT 'test' '01'
MODE NONSTATIONARY TWODIMENSIONAL
CGRID REGULAR 0 0 0 2000 1500 199 149
INPGRID BOTTOM 0. 0. 0. 199 149 10.0 10.0
READINP BOTTOM 1. 'bathymetry.txt' 3 0 FREE
BOUND SHOREEAST BTYPE WEAK CON REGULAR 1.0 10. 0.
SPONGELAYER NORTH 50.
COMPUTE 000000.000 0.05 SEC 003000.000
STOP
`

func writeInput(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "INPUT")
	require.NoError(t, os.WriteFile(path, []byte(body), 0666))
	return path
}

func TestParseInput(t *testing.T) {
	path := writeInput(t, sampleInput)

	spec, err := ParseInput(path)
	require.NoError(t, err)
	assert.Equal(t, 199, spec.XCells)
	assert.Equal(t, 149, spec.YCells)
	assert.Equal(t, 10.0, spec.Res.Dx)
	assert.Equal(t, 10.0, spec.Res.Dy)
}

func TestParseInputNoDirective(t *testing.T) {
	path := writeInput(t, "PROJECT 'x' '01'\nSTOP\n")

	_, err := ParseInput(path)
	assert.ErrorIs(t, err, ErrNoGridDirective)
}

func TestParseInputShortDirective(t *testing.T) {
	path := writeInput(t, "INPGRID BOTTOM 0 0 0\n")

	_, err := ParseInput(path)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoGridDirective)
}

func TestRewriteLineCGRID(t *testing.T) {
	lines := RewriteLine("CGRID REGULAR 0 0 0 2000 1500 199 149")
	require.Len(t, lines, 2)
	assert.Equal(t, "CGRID UNSTRUCTURED", lines[0])
	assert.Equal(t, "READGRID UNSTRUC TRIANGLE 'mesh'", lines[1])
}

func TestRewriteLineBound(t *testing.T) {
	tests := []struct{ in, want string }{
		{
			"BOUND SHOREEAST BTYPE WEAK CON REGULAR 1.0 10. 0.",
			"BOUND SHORESIDE 3 CCW BTYPE WEAK CON REGULAR 1.0 10. 0.",
		},
		{"BOUND SIDE SOUTH CCW CON REGULAR 1.0", "BOUND SIDE SIDE 4 CCW CCW CON REGULAR 1.0"},
		{"BOUND WEST SOMETHING", "BOUND SIDE 1 CCW SOMETHING"},
		{"BOUND NORTH", "BOUND SIDE 2 CCW"},
	}
	for _, test := range tests {
		lines := RewriteLine(test.in)
		require.Len(t, lines, 1)
		assert.Equal(t, test.want, lines[0])
	}
}

func TestRewriteLineSpongelayer(t *testing.T) {
	lines := RewriteLine("SPONGELAYER NORTH 50.")
	require.Len(t, lines, 1)
	assert.Equal(t, "SPONGELAYER 2 50.", lines[0])
}

func TestRewriteLinePassthrough(t *testing.T) {
	for _, line := range []string{
		"PROJECT 'test' '01'",
		"READINP BOTTOM 1. 'bathymetry.txt' 3 0 FREE",
		"CGRID UNSTRUCTURED",
		"",
	} {
		lines := RewriteLine(line)
		require.Len(t, lines, 1)
		assert.Equal(t, line, lines[0])
	}
}

func TestRewriteInput(t *testing.T) {
	path := writeInput(t, sampleInput)

	require.NoError(t, RewriteInput(path))

	backup, err := os.ReadFile(path + ".bkp")
	require.NoError(t, err)
	assert.Equal(t, sampleInput, string(backup))

	rewritten, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(rewritten)
	assert.Contains(t, text, "CGRID UNSTRUCTURED\nREADGRID UNSTRUC TRIANGLE 'mesh'\n")
	assert.Contains(t, text, "BOUND SHORESIDE 3 CCW")
	assert.Contains(t, text, "SPONGELAYER 2 50.")
	assert.NotContains(t, text, "CGRID REGULAR")
	// Untouched lines survive byte for byte.
	assert.Contains(t, text, "READINP BOTTOM 1. 'bathymetry.txt' 3 0 FREE\n")
	assert.Equal(t, strings.Count(sampleInput, "\n")+1, strings.Count(text, "\n"))
}

func TestBackupOverwrites(t *testing.T) {
	path := writeInput(t, "first\n")
	require.NoError(t, Backup(path))
	require.NoError(t, os.WriteFile(path, []byte("second\n"), 0666))
	require.NoError(t, Backup(path))

	backup, err := os.ReadFile(path + ".bkp")
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(backup))
}

func TestParseOutputs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "INPUT"), []byte(sampleInput), 0666))

	header := strings.Repeat("SWASH header line\n", 7)
	timeseries := header +
		"0.10 0.01 0.02 0.03 45.0 0.0\n" +
		"0.20 0.02 0.03 0.04 46.0 0.1\n" +
		"0.11 0.01 0.02 0.03 45.0 0.0\n" +
		"0.21 0.02 0.03 0.04 46.0 0.1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "timeseries.txt"), []byte(timeseries), 0666))

	stats := header +
		"0.95 0.05 1\n" +
		"-9 -9 -99\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wave_statistics.txt"), []byte(stats), 0666))

	gauges := []geom.Point{{X: 100, Y: 200}, {X: 300, Y: 400}}
	require.NoError(t, ParseOutputs(dir, gauges))

	ts, err := os.ReadFile(filepath.Join(dir, "timeseries.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(ts)), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t,
		"time,gauge,gauge_x_position,gauge_y_position,water_level,x_velocity,"+
			"y_velocity,velocity_magnitude,velocity_direction,vorticity",
		lines[0])
	assert.Equal(t, "0,1,100,200,0.1,0.01,0.02,0.03,45,0", lines[1])
	assert.Equal(t, "0,2,300,400,0.2,0.02,0.03,0.04,46,0.1", lines[2])
	assert.Equal(t, "0.05,1,100,200,0.11,0.01,0.02,0.03,45,0", lines[3])

	ws, err := os.ReadFile(filepath.Join(dir, "wave_statistics.csv"))
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(string(ws)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "1,100,200,0.95,0.05,true", lines[1])
	assert.Equal(t, "2,300,400,,,", lines[2])
}
