// Package sizefield builds the scalar target-edge-length field that
// drives mesh refinement: fine near coastal features, coarse offshore.
package sizefield

import (
	"math"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
)

// Field is a target-edge-length function over the domain. Values are
// always positive.
type Field interface {
	Eval(x, y float64) float64
}

// Uniform is a constant-size field.
type Uniform float64

// Eval returns the uniform size regardless of position.
func (u Uniform) Eval(x, y float64) float64 { return float64(u) }

// pointIndex wraps an rtree over a point set for nearest-point
// distance queries.
type pointIndex struct {
	tree *rtree.Rtree
}

func newPointIndex(points []geom.Point) *pointIndex {
	if len(points) == 0 {
		return nil
	}
	idx := &pointIndex{tree: rtree.NewTree(25, 50)}
	for _, p := range points {
		idx.tree.Insert(p)
	}
	return idx
}

// distance returns the distance from (x, y) to the nearest indexed
// point.
func (idx *pointIndex) distance(x, y float64) float64 {
	nearest := idx.tree.NearestNeighbor(geom.Point{X: x, Y: y}).(geom.Point)
	return math.Hypot(nearest.X-x, nearest.Y-y)
}

// ControlPointField is fine near a set of feature control points and
// ramps linearly to a coarse background length with distance: size is
// lcFine within fineRadius of the nearest control point, lcCoarse
// beyond transition, and linear in between. With no control points the
// field degenerates to the uniform coarse size.
type ControlPointField struct {
	index              *pointIndex
	lcFine, lcCoarse   float64
	fineRadius         float64
	transitionDistance float64
}

// NewControlPointField builds a control-point size field. transition
// must be greater than fineRadius.
func NewControlPointField(
	points []geom.Point, lcFine, lcCoarse, fineRadius, transition float64,
) *ControlPointField {
	return &ControlPointField{
		index:              newPointIndex(points),
		lcFine:             lcFine,
		lcCoarse:           lcCoarse,
		fineRadius:         fineRadius,
		transitionDistance: transition,
	}
}

// Eval returns the target edge length at (x, y).
func (f *ControlPointField) Eval(x, y float64) float64 {
	if f.index == nil {
		return f.lcCoarse
	}
	d := f.index.distance(x, y)
	switch {
	case d <= f.fineRadius:
		return f.lcFine
	case d >= f.transitionDistance:
		return f.lcCoarse
	}
	frac := (d - f.fineRadius) / (f.transitionDistance - f.fineRadius)
	return f.lcFine + (f.lcCoarse-f.lcFine)*frac
}
