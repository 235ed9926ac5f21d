// Package plot renders overview diagrams of a case: the bathymetry as a
// heat map with the extracted shoreline, breakwater cells and gauge
// positions drawn on top.
package plot

import (
	"image/color"

	"github.com/ctessum/geom"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"swashmesh/grid"
)

// XYs implements the gonum.org/v1/plot/plotter.XYer interface.
type XYs []XY

// XY is an x and y value.
type XY struct{ X, Y float64 }

// Len returns the number of X,Y pairs.
func (xys XYs) Len() int {
	return len(xys)
}

// XY return the x and y values at index i, where i < Len()
func (xys XYs) XY(i int) (float64, float64) {
	return xys[i].X, xys[i].Y
}

// gridData adapts a grid to the plotter.GridXYZ interface.
type gridData struct {
	g   *grid.Grid
	res grid.Resolution
}

func (d gridData) Dims() (int, int)   { return d.g.Cols(), d.g.Rows() }
func (d gridData) Z(c, r int) float64 { return d.g.At(r, c) }
func (d gridData) X(c int) float64    { return float64(c) * d.res.Dx }
func (d gridData) Y(r int) float64    { return float64(r) * d.res.Dy }

func points(ps []geom.Point) XYs {
	xys := make(XYs, len(ps))
	for i, p := range ps {
		xys[i] = XY{X: p.X, Y: p.Y}
	}
	return xys
}

// Diagram renders the bathymetry grid and feature overlays to an image
// file; the format follows the path extension (.png, .pdf, .svg).
func Diagram(
	path string, g *grid.Grid, res grid.Resolution,
	shoreline, breakwaters, gauges []geom.Point,
) error {
	p := plot.New()
	p.Title.Text = "bathymetry"
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"

	hm := plotter.NewHeatMap(gridData{g, res}, moreland.SmoothBlueRed().Palette(255))
	if hm.Min == hm.Max {
		// A flat grid would collapse the palette range.
		hm.Max = hm.Min + 1
	}
	p.Add(hm)

	overlays := []struct {
		pts   []geom.Point
		color color.RGBA
	}{
		{shoreline, color.RGBA{R: 255, G: 255, B: 0, A: 255}},
		{breakwaters, color.RGBA{A: 255}},
		{gauges, color.RGBA{G: 255, A: 255}},
	}
	for _, ov := range overlays {
		if len(ov.pts) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(points(ov.pts))
		if err != nil {
			return err
		}
		sc.GlyphStyle.Color = ov.color
		sc.GlyphStyle.Radius = vg.Points(1.5)
		p.Add(sc)
	}

	return p.Save(8*vg.Inch, 6*vg.Inch, path)
}
