// Package grid loads and validates the regular bathymetry and porosity
// grids consumed by the mesh pipeline.
//
// A grid is a rectangular matrix of float64 values. Row index runs
// south to north, column index west to east. Positive values are water
// depth, values at or below zero are land elevation. The world
// coordinate of cell (row, col) is (col*Dx, row*Dy).
package grid

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Resolution is the uniform cell spacing of a grid in metres.
type Resolution struct {
	Dx, Dy float64
}

// Grid is a rectangular matrix of float64 values.
type Grid struct {
	rows, cols int
	vals       []float64
}

// New allocates a zero-valued grid with the given shape.
func New(rows, cols int) *Grid {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("grid.New given shape (%d, %d)", rows, cols))
	}
	return &Grid{rows: rows, cols: cols, vals: make([]float64, rows*cols)}
}

// Rows returns the number of rows (north-south cells).
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns (east-west cells).
func (g *Grid) Cols() int { return g.cols }

// At returns the value stored at (row, col).
func (g *Grid) At(row, col int) float64 {
	return g.vals[row*g.cols+col]
}

// Set stores v at (row, col).
func (g *Grid) Set(row, col int, v float64) {
	g.vals[row*g.cols+col] = v
}

// Values returns the backing slice in row-major order. The slice is
// shared with the grid and must not be modified.
func (g *Grid) Values() []float64 { return g.vals }

// MinMax returns the smallest and largest value in the grid.
func (g *Grid) MinMax() (min, max float64) {
	min, max = g.vals[0], g.vals[0]
	for _, v := range g.vals[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// Load parses a whitespace-separated float matrix, one grid row per
// line. Blank lines are skipped. It returns ErrEmpty if no values are
// found and ErrNotRectangular if rows have differing lengths.
func Load(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var (
		vals []float64
		rows int
		cols = -1
	)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1<<16), 1<<22)
	for line := 1; scanner.Scan(); line++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if cols == -1 {
			cols = len(fields)
		} else if len(fields) != cols {
			return nil, fmt.Errorf(
				"%s:%d: row has %d values, want %d: %w",
				path, line, len(fields), cols, ErrNotRectangular,
			)
		}
		for _, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, line, err)
			}
			vals = append(vals, v)
		}
		rows++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}

	return &Grid{rows: rows, cols: cols, vals: vals}, nil
}

// Save writes the grid in the same whitespace-separated format read by
// Load, one row per line.
func (g *Grid) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if c > 0 {
				if _, err := w.WriteString(" "); err != nil {
					return err
				}
			}
			s := strconv.FormatFloat(g.At(r, c), 'g', -1, 64)
			if _, err := w.WriteString(s); err != nil {
				return err
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}
