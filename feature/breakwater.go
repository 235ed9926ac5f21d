package feature

import (
	"math"
	"sort"

	"github.com/ctessum/geom"
	"gonum.org/v1/gonum/stat"

	"swashmesh/grid"
)

// Ridge-heuristic tuning. These are approximations calibrated on
// synthetic cases, not load-bearing constants: when a porosity grid is
// available it is always preferred over this fallback.
const (
	// Percentile of nonzero gradient magnitudes a key point must exceed.
	gradientQuantile = 0.75
	// Percentile of nonzero curvatures a key point must exceed.
	curvatureQuantile = 0.80
	// How far (metres of elevation) a key point must stand above the
	// mean of its 8 neighbours.
	neighborMargin = 0.25
	// Half-width (cells) of the window searched for a gradient sign
	// change, the ridge indicator.
	signWindow = 2
	// Chebyshev cell distance under which two key points are
	// connected by filling the straight run between them.
	connectDistance = 10
	// Elevation (negative: metres below still water) above which a
	// cell near a key point is folded into the structure.
	fillElevation = -0.5
)

// BreakwatersFromBathymetry infers breakwater cells from bathymetry
// alone, for cases without a porosity grid. A cell is a structure key
// point when it sits on a ridge: steep (gradient magnitude above the
// 75th percentile of nonzero gradients), sharply curved (curvature
// above the 80th percentile), locally elevated against its 8
// neighbours, and with a gradient sign change within a small window
// along at least one axis. Key points near each other are then joined
// by the straight cells between them, together with nearby shallow
// cells above fillElevation.
//
// The heuristic works on elevation (the negated depth-positive grid),
// so "elevated" means shallower water or emerged crest.
func BreakwatersFromBathymetry(g *grid.Grid, res grid.Resolution) []geom.Point {
	rows, cols := g.Rows(), g.Cols()
	elev := func(r, c int) float64 { return -g.At(r, c) }

	gradX := grid.New(rows, cols)
	gradY := grid.New(rows, cols)
	curv := grid.New(rows, cols)
	for r := 1; r < rows-1; r++ {
		for c := 1; c < cols-1; c++ {
			gradX.Set(r, c, (elev(r, c+1)-elev(r, c-1))/2)
			gradY.Set(r, c, (elev(r+1, c)-elev(r-1, c))/2)
			d2x := elev(r, c+1) - 2*elev(r, c) + elev(r, c-1)
			d2y := elev(r+1, c) - 2*elev(r, c) + elev(r-1, c)
			curv.Set(r, c, math.Abs(d2x)+math.Abs(d2y))
		}
	}

	gradThresh, ok := quantileNonzero(gradMagnitudes(gradX, gradY), gradientQuantile)
	if !ok {
		return nil
	}
	curvThresh, ok := quantileNonzero(curv.Values(), curvatureQuantile)
	if !ok {
		return nil
	}

	keys := make(map[[2]int]bool)
	for r := 1; r < rows-1; r++ {
		for c := 1; c < cols-1; c++ {
			mag := math.Hypot(gradX.At(r, c), gradY.At(r, c))
			if mag <= gradThresh || curv.At(r, c) <= curvThresh {
				continue
			}
			if elev(r, c) <= neighborMean(g, r, c)+neighborMargin {
				continue
			}
			if !signChange(gradX, r, c, 0, 1) && !signChange(gradY, r, c, 1, 0) {
				continue
			}
			keys[[2]int{r, c}] = true
		}
	}
	if len(keys) == 0 {
		return nil
	}

	cells := connectKeyPoints(keys)
	fillElevated(g, keys, cells)

	points := make([]geom.Point, 0, len(cells))
	for cell := range cells {
		points = append(points, geom.Point{
			X: float64(cell[1]) * res.Dx,
			Y: float64(cell[0]) * res.Dy,
		})
	}
	sortPoints(points)
	return points
}

func gradMagnitudes(gradX, gradY *grid.Grid) []float64 {
	xs, ys := gradX.Values(), gradY.Values()
	mags := make([]float64, len(xs))
	for i := range xs {
		mags[i] = math.Hypot(xs[i], ys[i])
	}
	return mags
}

// quantileNonzero returns the given quantile of the nonzero magnitudes
// in vals. ok is false when there are no nonzero values, meaning the
// grid is featureless.
func quantileNonzero(vals []float64, q float64) (threshold float64, ok bool) {
	var nonzero []float64
	for _, v := range vals {
		if v != 0 {
			nonzero = append(nonzero, math.Abs(v))
		}
	}
	if len(nonzero) == 0 {
		return 0, false
	}
	sort.Float64s(nonzero)
	return stat.Quantile(q, stat.Empirical, nonzero, nil), true
}

// neighborMean is the mean elevation of the in-bounds cells of the
// 8-neighbourhood of (row, col).
func neighborMean(g *grid.Grid, row, col int) float64 {
	sum, n := 0.0, 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if r < 0 || r >= g.Rows() || c < 0 || c >= g.Cols() {
				continue
			}
			sum += -g.At(r, c)
			n++
		}
	}
	return sum / float64(n)
}

// signChange reports whether the gradient changes sign within
// signWindow cells of (row, col) along the (dr, dc) axis.
func signChange(gradient *grid.Grid, row, col, dr, dc int) bool {
	min, max := math.Inf(1), math.Inf(-1)
	for k := -signWindow; k <= signWindow; k++ {
		r, c := row+k*dr, col+k*dc
		if r < 0 || r >= gradient.Rows() || c < 0 || c >= gradient.Cols() {
			continue
		}
		v := gradient.At(r, c)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min < 0 && max > 0
}

// connectKeyPoints returns the key cells plus the straight runs
// (row-wise, column-wise and exact diagonals) between key-point pairs
// closer than connectDistance.
func connectKeyPoints(keys map[[2]int]bool) map[[2]int]bool {
	ordered := make([][2]int, 0, len(keys))
	for cell := range keys {
		ordered = append(ordered, cell)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i][0] != ordered[j][0] {
			return ordered[i][0] < ordered[j][0]
		}
		return ordered[i][1] < ordered[j][1]
	})

	cells := make(map[[2]int]bool, len(keys))
	for cell := range keys {
		cells[cell] = true
	}
	for i, a := range ordered {
		for _, b := range ordered[i+1:] {
			dr, dc := b[0]-a[0], b[1]-a[1]
			if abs(dr) > connectDistance || abs(dc) > connectDistance {
				continue
			}
			switch {
			case dr == 0:
				for c := a[1] + sign(dc); c != b[1]; c += sign(dc) {
					cells[[2]int{a[0], c}] = true
				}
			case dc == 0:
				for r := a[0] + sign(dr); r != b[0]; r += sign(dr) {
					cells[[2]int{r, a[1]}] = true
				}
			case abs(dr) == abs(dc):
				for k := 1; k < abs(dr); k++ {
					cells[[2]int{a[0] + k*sign(dr), a[1] + k*sign(dc)}] = true
				}
			}
		}
	}
	return cells
}

// fillElevated adds cells near key points whose elevation exceeds
// fillElevation, sweeping up crest cells the point tests missed.
func fillElevated(g *grid.Grid, keys map[[2]int]bool, cells map[[2]int]bool) {
	for key := range keys {
		for dr := -connectDistance; dr <= connectDistance; dr++ {
			for dc := -connectDistance; dc <= connectDistance; dc++ {
				r, c := key[0]+dr, key[1]+dc
				if r < 0 || r >= g.Rows() || c < 0 || c >= g.Cols() {
					continue
				}
				if -g.At(r, c) > fillElevation {
					cells[[2]int{r, c}] = true
				}
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	if x < 0 {
		return -1
	}
	return 1
}
