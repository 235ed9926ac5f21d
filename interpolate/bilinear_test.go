package interpolate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// planeGrid tabulates v(x, y) = 2x + 3y on a uniform grid. Bi-linear
// interpolation reproduces a plane exactly everywhere in range.
func planeGrid(x0, dx float64, nx int, y0, dy float64, ny int) []float64 {
	vals := make([]float64, nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			x := x0 + float64(i)*dx
			y := y0 + float64(j)*dy
			vals[j*nx+i] = 2*x + 3*y
		}
	}
	return vals
}

func TestBiLinearPlane(t *testing.T) {
	vals := planeGrid(0, 2, 5, 10, 4, 3)
	bi := NewUniformBiLinear(0, 2, 5, 10, 4, 3, vals)

	table := []struct{ x, y float64 }{
		{0, 10},    // lower-left grid point
		{8, 18},    // upper-right grid point
		{4, 14},    // interior grid point
		{3, 12.5},  // cell centre
		{1.7, 16.2},
		{8, 11},    // right edge
		{2.5, 18},  // top edge
	}

	for _, pt := range table {
		want := 2*pt.x + 3*pt.y
		assert.InDelta(t, want, bi.Eval(pt.x, pt.y), 1e-12,
			"Eval(%g, %g)", pt.x, pt.y)
	}
}

func TestBiLinearEvalAll(t *testing.T) {
	vals := planeGrid(0, 1, 3, 0, 1, 3)
	bi := NewUniformBiLinear(0, 1, 3, 0, 1, 3, vals)

	xs := []float64{0, 1.5, 2}
	ys := []float64{0, 0.5, 2}
	out := bi.EvalAll(xs, ys)

	require.Len(t, out, 3)
	for i := range xs {
		assert.InDelta(t, 2*xs[i]+3*ys[i], out[i], 1e-12)
	}
}

func TestBiLinearNonRepresentableSpacing(t *testing.T) {
	// With dv = 0.1 the coordinate of the last grid line is not exactly
	// representable; accumulated sums land a hair past it and must still
	// fold into the final cell rather than fall out of range.
	vals := planeGrid(0, 0.1, 4, 0, 0.1, 4)
	bi := NewUniformBiLinear(0, 0.1, 4, 0, 0.1, 4, vals)

	dv := 0.1
	x := dv + dv + dv // 0.30000000000000004
	assert.Greater(t, x, 0.3)
	assert.InDelta(t, 2*x+3*0.1, bi.Eval(x, 0.1), 1e-9)
	assert.InDelta(t, 2*x+3*x, bi.Eval(x, x), 1e-9)

	// The fold is a rounding allowance, not an extrapolation license.
	assert.Panics(t, func() { bi.Eval(0.31, 0.1) })
}

func TestBiLinearOutOfRangePanics(t *testing.T) {
	vals := planeGrid(0, 1, 3, 0, 1, 3)
	bi := NewUniformBiLinear(0, 1, 3, 0, 1, 3, vals)

	assert.Panics(t, func() { bi.Eval(-0.1, 1) })
	assert.Panics(t, func() { bi.Eval(1, 2.1) })
}

func TestBiLinearBadGridPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewUniformBiLinear(0, 1, 1, 0, 1, 3, make([]float64, 3))
	})
	assert.Panics(t, func() {
		NewUniformBiLinear(0, 1, 3, 0, 1, 3, make([]float64, 5))
	})
}
