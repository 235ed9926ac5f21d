package interpolate

import (
	"fmt"
	"math"
)

// BiLinear is a bi-linear interpolator over a uniform 2D grid.
type BiLinear struct {
	x0, dx float64
	y0, dy float64
	nx, ny int
	vals   []float64
}

// NewUniformBiLinear creates a bi-linear interpolator over a uniformly spaced
// grid of nx columns and ny rows. Column i sits at x0 + i*dx, row j at
// y0 + j*dy, and vals holds the grid values in row-major order.
//
// Lookups are O(1).
func NewUniformBiLinear(
	x0, dx float64, nx int, y0, dy float64, ny int, vals []float64,
) *BiLinear {
	if nx < 2 || ny < 2 {
		panic(fmt.Sprintf("Grid of %d x %d cannot be interpolated on.", nx, ny))
	}
	if len(vals) != nx*ny {
		panic(fmt.Sprintf(
			"Grid of %d x %d does not match %d values.", nx, ny, len(vals),
		))
	}
	return &BiLinear{x0, dx, y0, dy, nx, ny, vals}
}

// Eval returns the interpolated value at (x, y).
//
// Eval panics if called on a value outside the supplied grid.
func (bi *BiLinear) Eval(x, y float64) float64 {
	i, fx := bi.cell(x, bi.x0, bi.dx, bi.nx)
	j, fy := bi.cell(y, bi.y0, bi.dy, bi.ny)

	v00 := bi.vals[j*bi.nx+i]
	v10 := bi.vals[j*bi.nx+i+1]
	v01 := bi.vals[(j+1)*bi.nx+i]
	v11 := bi.vals[(j+1)*bi.nx+i+1]

	v0 := v00 + (v10-v00)*fx
	v1 := v01 + (v11-v01)*fx
	return v0 + (v1-v0)*fy
}

// EvalAll evaluates the interpolator at all the given (x, y) pairs. If an
// output array is given, the output is written to that array (the array is
// still returned as a convenience).
//
// If more than one output array is provided, only the first is used.
func (bi *BiLinear) EvalAll(xs, ys []float64, out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i := range xs {
		out[0][i] = bi.Eval(xs[i], ys[i])
	}
	return out[0]
}

// edgeTolerance absorbs the index rounding noise of non-representable
// spacings (0.1, 0.3, ...) so points on the first and last grid lines
// fold into their cells instead of falling out of range.
const edgeTolerance = 1e-9

// cell returns the lower cell index along one axis and the fractional
// position within that cell. Points on the last grid line fold into the
// final cell so the closed upper edge evaluates cleanly.
func (bi *BiLinear) cell(v, v0, dv float64, n int) (int, float64) {
	t := (v - v0) / dv
	i := int(math.Floor(t))
	if i == n-1 && t < float64(n-1)+edgeTolerance {
		i = n - 2
	}
	if i == -1 && t > -edgeTolerance {
		i = 0
	}
	if i < 0 || i > n-2 {
		panic(fmt.Sprintf(
			"Value %g out of interpolation range [%g, %g].",
			v, v0, v0+dv*float64(n-1),
		))
	}
	return i, t - float64(i)
}
