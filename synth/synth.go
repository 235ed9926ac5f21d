// Package synth generates small self-contained test cases: a straight
// coast bathymetry, optional breakwater bars with a porosity grid, gauge
// positions and a matching solver control file.
package synth

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"swashmesh/grid"
)

const (
	breakwaterCount    = 5
	breakwaterPorosity = 0.4
)

// Options describes the synthetic case to generate. XCells and YCells
// count grid cells; the bathymetry matrix holds the cell corners, one
// extra row and column.
type Options struct {
	XCells, YCells int
	Res            grid.Resolution
	Depth          float64 // depth at the southern boundary
	Elevation      float64 // land elevation at the northern boundary
	WaveHeight     float64
	Breakwaters    bool
	BreakwaterRise float64 // bar height above the surrounding bed
}

// DefaultOptions returns the case the examples ship with: a 2 km by
// 1.5 km domain at 10 m resolution with a 2 m deep straight coast.
func DefaultOptions() Options {
	return Options{
		XCells:         200,
		YCells:         150,
		Res:            grid.Resolution{Dx: 10, Dy: 10},
		Depth:          2,
		Elevation:      2,
		WaveHeight:     1,
		BreakwaterRise: 1,
	}
}

// StraightShore builds a bathymetry grid for a coast running parallel to
// the x axis: a linear ramp from depth at the south edge to zero at 4/5
// of the rows, then down to -elevation at the north edge.
func StraightShore(opts Options) *grid.Grid {
	rows := opts.YCells + 1
	cols := opts.XCells + 1
	shoreRows := int(math.Ceil(float64(rows) / 5 * 4))
	landRows := rows - shoreRows

	g := grid.New(rows, cols)
	for row := 0; row < shoreRows; row++ {
		d := opts.Depth * (1 - float64(row)/float64(shoreRows-1))
		for col := 0; col < cols; col++ {
			g.Set(row, col, d)
		}
	}
	for row := shoreRows; row < rows; row++ {
		e := -opts.Elevation * float64(row-shoreRows+1) / float64(landRows)
		for col := 0; col < cols; col++ {
			g.Set(row, col, e)
		}
	}
	return g
}

// shoreRow returns the first row of g whose first column is at or above
// the waterline.
func shoreRow(g *grid.Grid) int {
	for row := 0; row < g.Rows(); row++ {
		if g.At(row, 0) <= 0 {
			return row
		}
	}
	return g.Rows() - 1
}

// AddBreakwaters carves five evenly spaced bars into the bathymetry at
// two thirds of the distance from the south edge to the shore, each
// three rows thick with a half-height fringe one cell around, and
// returns the matching porosity grid (0.4 inside the bars, 1 elsewhere).
func AddBreakwaters(g *grid.Grid, rise float64) *grid.Grid {
	rows, cols := g.Rows(), g.Cols()
	porosity := grid.New(rows, cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			porosity.Set(row, col, 1)
		}
	}

	length := int(math.Ceil(float64(cols) / 10))
	gap := float64(cols-breakwaterCount*length) / 6
	yPos := int(math.Ceil(float64(shoreRow(g)) * 2 / 3))

	for i := 0; i < breakwaterCount; i++ {
		xPos := int(math.Ceil(gap*float64(i+1) + float64(length*i)))
		for row := yPos - 2; row <= yPos+2; row++ {
			for col := xPos - 1; col <= xPos+length; col++ {
				if row < 0 || row >= rows || col < 0 || col >= cols {
					continue
				}
				core := row >= yPos-1 && row <= yPos+1 &&
					col >= xPos && col < xPos+length
				if core {
					g.Set(row, col, g.At(row, col)-rise)
					porosity.Set(row, col, breakwaterPorosity)
				} else {
					g.Set(row, col, g.At(row, col)-rise/2)
				}
			}
		}
	}
	return porosity
}

// gaugePositions picks one gauge per breakwater gap, all in open water
// south of the bar line.
func gaugePositions(opts Options) [][2]float64 {
	width := float64(opts.XCells) * opts.Res.Dx
	height := float64(opts.YCells) * opts.Res.Dy
	gauges := make([][2]float64, 0, breakwaterCount)
	for i := 0; i < breakwaterCount; i++ {
		x := width * float64(i+1) / float64(breakwaterCount+1)
		gauges = append(gauges, [2]float64{x, height / 4})
	}
	return gauges
}

// WriteCase writes bathymetry.txt, gauge_positions.txt, the INPUT
// control file and, when breakwaters are requested, porosity.txt into
// dir. dir must already exist.
func WriteCase(dir string, opts Options) error {
	bathymetry := StraightShore(opts)
	var porosity *grid.Grid
	if opts.Breakwaters {
		porosity = AddBreakwaters(bathymetry, opts.BreakwaterRise)
	}

	if err := bathymetry.Save(filepath.Join(dir, "bathymetry.txt")); err != nil {
		return err
	}
	if porosity != nil {
		if err := porosity.Save(filepath.Join(dir, "porosity.txt")); err != nil {
			return err
		}
	}
	if err := writeGauges(filepath.Join(dir, "gauge_positions.txt"), gaugePositions(opts)); err != nil {
		return err
	}
	return writeInput(filepath.Join(dir, "INPUT"), opts)
}

func writeGauges(path string, gauges [][2]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	for _, g := range gauges {
		if _, err := fmt.Fprintf(f, "%.1f %.1f\n", g[0], g[1]); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}

func writeInput(path string, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	width := float64(opts.XCells) * opts.Res.Dx
	height := float64(opts.YCells) * opts.Res.Dy

	fmt.Fprintf(f, "PROJECT 'synthetic' '01'\n")
	fmt.Fprintf(f, "MODE NONSTATIONARY TWODIMENSIONAL\n")
	fmt.Fprintf(f, "CGRID REGULAR 0. 0. 0. %g %g %d %d\n",
		width, height, opts.XCells, opts.YCells)
	fmt.Fprintf(f, "INPGRID BOTTOM 0. 0. 0. %d %d %g %g\n",
		opts.XCells, opts.YCells, opts.Res.Dx, opts.Res.Dy)
	fmt.Fprintf(f, "READINP BOTTOM 1. 'bathymetry.txt' 3 0 FREE\n")
	if opts.Breakwaters {
		fmt.Fprintf(f, "INPGRID POROSITY 0. 0. 0. %d %d %g %g\n",
			opts.XCells, opts.YCells, opts.Res.Dx, opts.Res.Dy)
		fmt.Fprintf(f, "READINP POROSITY 1. 'porosity.txt' 3 0 FREE\n")
	}
	fmt.Fprintf(f, "BOUND SHORESOUTH BTYPE WEAK CON REGULAR %g 10. 0.\n",
		opts.WaveHeight)
	fmt.Fprintf(f, "SPONGELAYER NORTH 50.\n")
	fmt.Fprintf(f, "COMPUTE 000000.000 0.05 SEC 003000.000\n")
	if _, err := fmt.Fprintf(f, "STOP\n"); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
