package sizefield

import (
	"math"
	"testing"

	"github.com/ctessum/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swashmesh/grid"
)

func TestControlPointFieldNoPoints(t *testing.T) {
	f := NewControlPointField(nil, 5, 10, 5, 50)

	assert.Equal(t, 10.0, f.Eval(0, 0))
	assert.Equal(t, 10.0, f.Eval(123, 456))
}

func TestControlPointFieldRamp(t *testing.T) {
	points := []geom.Point{{X: 100, Y: 100}}
	f := NewControlPointField(points, 5, 10, 5, 50)

	// On the control point and inside the fine radius.
	assert.Equal(t, 5.0, f.Eval(100, 100))
	assert.Equal(t, 5.0, f.Eval(104, 100))
	assert.Equal(t, 5.0, f.Eval(100, 95))

	// Halfway along the ramp: d = 27.5, frac = 0.5.
	assert.InDelta(t, 7.5, f.Eval(127.5, 100), 1e-12)

	// At and beyond the transition distance.
	assert.Equal(t, 10.0, f.Eval(150, 100))
	assert.Equal(t, 10.0, f.Eval(1000, 100))
}

func TestControlPointFieldNearestOfMany(t *testing.T) {
	points := []geom.Point{{X: 0, Y: 0}, {X: 200, Y: 0}}
	f := NewControlPointField(points, 2, 20, 1, 100)

	// Close to the second point even though the first comes first.
	assert.Equal(t, 2.0, f.Eval(200.5, 0))
	// Midway between the two: distance 100 from each, fully coarse.
	assert.Equal(t, 20.0, f.Eval(100, 0))
}

func TestDepthGradedField(t *testing.T) {
	// Depth ramps linearly from 4 at row 0 to 0 at row 4, land above.
	g := grid.New(8, 8)
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			g.Set(r, c, 4-float64(r))
		}
	}
	res := grid.Resolution{Dx: 10, Dy: 10}
	shoreline := []geom.Point{{X: 0, Y: 40}, {X: 70, Y: 40}}

	// Period 2 s in 4 m of water is a deep-water wave: the run-up band
	// is one deep-water wavelength, g T^2 / 2 pi = 6.25 m.
	f, err := NewDepthGraded(g, res, shoreline, nil, 2, 10, 5, 1, 2)
	require.NoError(t, err)

	// Deepest water meshes coarse.
	assert.InDelta(t, 10.0, f.Eval(40, 0), 1e-12)
	// Half depth with linear interpolation meshes halfway.
	assert.InDelta(t, 6.0, f.Eval(40, 20), 1e-12)
	// Land within a wavelength of the shoreline meshes fine.
	assert.Equal(t, 2.0, f.Eval(0, 44))
	// Land far from the shoreline meshes coarse.
	assert.Equal(t, 10.0, f.Eval(70, 70))
}

func TestDepthGradedInterpolationOrder(t *testing.T) {
	g := grid.New(2, 2)
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			g.Set(r, c, 4)
		}
	}
	g.Set(0, 0, 1) // depth ratio 0.25 at the origin
	res := grid.Resolution{Dx: 1, Dy: 1}

	for _, test := range []struct {
		interp int
		want   float64
	}{
		{1, 2 + 8*0.25},
		{2, 2 + 8*math.Sqrt(0.25)},
		{3, 2 + 8*math.Cbrt(0.25)},
	} {
		f, err := NewDepthGraded(g, res, nil, nil, 2, 10, 0.5, test.interp, 8)
		require.NoError(t, err)
		assert.InDelta(t, test.want, f.Eval(0, 0), 1e-12, "interpolation %d", test.interp)
	}
}

func TestDepthGradedBreakwaterOverride(t *testing.T) {
	g := grid.New(4, 4)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			g.Set(r, c, 4)
		}
	}
	res := grid.Resolution{Dx: 10, Dy: 10}
	breakwaters := []geom.Point{{X: 20, Y: 20}}

	f, err := NewDepthGraded(g, res, nil, breakwaters, 2, 10, 5, 1, 8)
	require.NoError(t, err)

	assert.Equal(t, 2.0, f.Eval(20, 20))
	assert.Equal(t, 2.0, f.Eval(23, 20))
	// Outside the fine radius the depth grading takes over again.
	assert.Equal(t, 10.0, f.Eval(20, 0))
}

func TestDepthGradedRejectsBadInput(t *testing.T) {
	g := grid.New(2, 2) // all zero: no water
	res := grid.Resolution{Dx: 1, Dy: 1}

	_, err := NewDepthGraded(g, res, nil, nil, 2, 10, 1, 1, 8)
	assert.ErrorIs(t, err, ErrNoWater)

	g.Set(0, 0, 5)
	_, err = NewDepthGraded(g, res, nil, nil, 2, 10, 1, 4, 8)
	assert.Error(t, err)
}

func TestWavelengthShallowLimit(t *testing.T) {
	// d/L0 = 0.1/99.9 << 0.05: shallow-water celerity sqrt(g d).
	got := Wavelength(8, 0.1)
	assert.InDelta(t, 8*math.Sqrt(9.81*0.1), got, 1e-12)
}

func TestWavelengthDeepLimit(t *testing.T) {
	// d/L0 > 0.5: deep-water wavelength g T^2 / 2 pi.
	period := 8.0
	deep := g * period * period / (2 * math.Pi)
	got := Wavelength(period, deep)
	assert.Equal(t, deep, got)
}

func TestWavelengthIntermediateSatisfiesDispersion(t *testing.T) {
	period, depth := 8.0, 10.0
	wavelength := Wavelength(period, depth)

	// Solution of L = (g T^2 / 2 pi) tanh(2 pi d / L).
	rhs := 9.81 * period * period / (2 * math.Pi) *
		math.Tanh(2*math.Pi*depth/wavelength)
	assert.InDelta(t, wavelength, rhs, 1e-3)

	// Between the shallow and deep limits.
	assert.Greater(t, wavelength, period*math.Sqrt(9.81*depth)*0.5)
	assert.Less(t, wavelength, 9.81*period*period/(2*math.Pi))
}
