package triangle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ctessum/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBounds() *geom.Bounds {
	return &geom.Bounds{
		Min: geom.Point{X: 0, Y: 0},
		Max: geom.Point{X: 100, Y: 50},
	}
}

func TestMarker(t *testing.T) {
	b := testBounds()
	table := []struct {
		name   string
		p      geom.Point
		marker int
	}{
		{"interior", geom.Point{X: 50, Y: 25}, Interior},
		{"west", geom.Point{X: 0, Y: 25}, West},
		{"north", geom.Point{X: 50, Y: 50}, North},
		{"east", geom.Point{X: 100, Y: 25}, East},
		{"south", geom.Point{X: 50, Y: 0}, South},
		{"northwest corner", geom.Point{X: 0, Y: 50}, West},
		{"southwest corner", geom.Point{X: 0, Y: 0}, West},
		{"northeast corner", geom.Point{X: 100, Y: 50}, North},
		{"southeast corner", geom.Point{X: 100, Y: 0}, East},
		{"within tolerance", geom.Point{X: 1e-10, Y: 25}, West},
		{"past tolerance", geom.Point{X: 1e-6, Y: 25}, Interior},
	}

	for _, row := range table {
		assert.Equal(t, row.marker, Marker(row.p, b), row.name)
	}
}

func TestWriteNode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mesh.node")
	nodes := []geom.Point{
		{X: 0, Y: 0},
		{X: 100, Y: 25},
		{X: 50, Y: 25},
	}

	require.NoError(t, WriteNode(path, nodes, testBounds()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "3 2 0 1", lines[0])
	assert.Equal(t, "1 0.0000000000e+00 0.0000000000e+00 1", lines[1])
	assert.Equal(t, "2 1.0000000000e+02 2.5000000000e+01 3", lines[2])
	assert.Equal(t, "3 5.0000000000e+01 2.5000000000e+01 0", lines[3])
}

func TestWriteEle(t *testing.T) {
	nodes := []geom.Point{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 0, Y: 10},
	}

	t.Run("counter-clockwise kept", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mesh.ele")
		require.NoError(t, WriteEle(path, nodes, [][3]int{{0, 1, 2}}))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "1 3 0\n1 1 2 3\n", string(data))
	})

	t.Run("clockwise swapped", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mesh.ele")
		require.NoError(t, WriteEle(path, nodes, [][3]int{{0, 2, 1}}))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "1 3 0\n1 1 2 3\n", string(data))
	})

	t.Run("degenerate rejected", func(t *testing.T) {
		collinear := []geom.Point{
			{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 10, Y: 10},
		}
		path := filepath.Join(t.TempDir(), "mesh.ele")
		err := WriteEle(path, collinear, [][3]int{{0, 1, 2}})
		require.ErrorIs(t, err, ErrDegenerateTriangle)
		assert.Contains(t, err.Error(), "triangle 1")
	})
}

func TestSignedArea(t *testing.T) {
	p1 := geom.Point{X: 0, Y: 0}
	p2 := geom.Point{X: 10, Y: 0}
	p3 := geom.Point{X: 0, Y: 10}

	assert.Equal(t, 50.0, SignedArea(p1, p2, p3))
	assert.Equal(t, -50.0, SignedArea(p1, p3, p2))
	assert.Equal(t, 0.0, SignedArea(p1, p2, geom.Point{X: 20, Y: 0}))
}

func TestReadNode(t *testing.T) {
	dir := t.TempDir()

	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(dir, "mesh.node")
		nodes := []geom.Point{
			{X: 0, Y: 0},
			{X: 33.3, Y: 12.125},
			{X: 100, Y: 50},
		}
		require.NoError(t, WriteNode(path, nodes, testBounds()))

		got, markers, err := ReadNode(path)
		require.NoError(t, err)
		assert.Equal(t, nodes, got)
		assert.Equal(t, []int{West, Interior, North}, markers)
	})

	t.Run("bad header", func(t *testing.T) {
		path := filepath.Join(dir, "bad_header.node")
		require.NoError(t, os.WriteFile(path, []byte("2 3 0 1\n"), 0666))

		_, _, err := ReadNode(path)
		assert.ErrorIs(t, err, ErrBadHeader)
	})

	t.Run("non-contiguous ids", func(t *testing.T) {
		path := filepath.Join(dir, "bad_ids.node")
		content := "2 2 0 1\n1 0.0 0.0 0\n3 1.0 1.0 0\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0666))

		_, _, err := ReadNode(path)
		assert.ErrorIs(t, err, ErrBadNodeID)
	})

	t.Run("count mismatch", func(t *testing.T) {
		path := filepath.Join(dir, "short.node")
		require.NoError(t, os.WriteFile(path, []byte("2 2 0 1\n1 0.0 0.0 0\n"), 0666))

		_, _, err := ReadNode(path)
		assert.ErrorIs(t, err, ErrBadHeader)
	})
}
