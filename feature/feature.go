// Package feature derives coastal feature points from the regular
// bathymetry and porosity grids: the shoreline, breakwater structures
// and wave-gauge positions. Feature points drive local mesh
// refinement, so each extractor returns a deterministic, sorted point
// set rather than a topological curve.
package feature

import (
	"errors"
	"sort"

	"github.com/ctessum/geom"
	"github.com/phil-mansfield/table"

	"swashmesh/grid"
)

// ErrNoShoreline indicates the grid contains no land-water transition
// although one is required (all cells are water or all are land).
var ErrNoShoreline = errors.New("feature: grid contains no shoreline")

// Shoreline returns the zero-depth boundary of the bathymetry as a
// point set: for every interior 2x2 corner block whose values straddle
// zero (min <= 0 < max), the block's lower-left world coordinate is a
// shoreline point. The result is sorted by (x, y) ascending; sorting
// is a determinism normalization, not a path ordering.
func Shoreline(g *grid.Grid, res grid.Resolution) []geom.Point {
	var points []geom.Point
	for row := 0; row < g.Rows()-1; row++ {
		for col := 0; col < g.Cols()-1; col++ {
			min, max := corners(g, row, col)
			if min <= 0 && max > 0 {
				points = append(points, geom.Point{
					X: float64(col) * res.Dx,
					Y: float64(row) * res.Dy,
				})
			}
		}
	}
	sortPoints(points)
	return points
}

func corners(g *grid.Grid, row, col int) (min, max float64) {
	min, max = g.At(row, col), g.At(row, col)
	for _, v := range [3]float64{g.At(row, col+1), g.At(row+1, col), g.At(row+1, col+1)} {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// BreakwatersFromPorosity returns the world coordinate of every cell
// whose porosity differs from 1 (fully open water), sorted by (x, y).
func BreakwatersFromPorosity(porosity *grid.Grid, res grid.Resolution) []geom.Point {
	var points []geom.Point
	for row := 0; row < porosity.Rows(); row++ {
		for col := 0; col < porosity.Cols(); col++ {
			if porosity.At(row, col) != 1 {
				points = append(points, geom.Point{
					X: float64(col) * res.Dx,
					Y: float64(row) * res.Dy,
				})
			}
		}
	}
	sortPoints(points)
	return points
}

// ReadGauges reads a gauge-position file: one "x y" pair per line.
func ReadGauges(path string) ([]geom.Point, error) {
	cols, err := table.ReadTable(path, []int{0, 1}, nil)
	if err != nil {
		return nil, err
	}
	points := make([]geom.Point, len(cols[0]))
	for i := range points {
		points[i] = geom.Point{X: cols[0][i], Y: cols[1][i]}
	}
	return points, nil
}

func sortPoints(points []geom.Point) {
	sort.Slice(points, func(i, j int) bool {
		if points[i].X != points[j].X {
			return points[i].X < points[j].X
		}
		return points[i].Y < points[j].Y
	})
}
