package triangle

import (
	"bufio"
	"fmt"
	"math"
	"os"

	"github.com/ctessum/geom"
)

// Marker classifies a node against the domain bounding box. Corners
// resolve by priority: west beats north, north beats east, east beats
// south; south is the last check before interior. The chain must stay
// in this order so no corner is double-assigned.
func Marker(p geom.Point, domain *geom.Bounds) int {
	switch {
	case math.Abs(p.X-domain.Min.X) <= coordTolerance:
		return West
	case math.Abs(p.Y-domain.Max.Y) <= coordTolerance:
		return North
	case math.Abs(p.X-domain.Max.X) <= coordTolerance:
		return East
	case math.Abs(p.Y-domain.Min.Y) <= coordTolerance:
		return South
	}
	return Interior
}

// WriteNode writes the node file: one header line then one line per
// node with its 1-based id, coordinates and boundary marker.
func WriteNode(path string, nodes []geom.Point, domain *geom.Bounds) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)

	if _, err := fmt.Fprintf(w, "%d 2 0 1\n", len(nodes)); err != nil {
		f.Close()
		return err
	}
	for i, p := range nodes {
		marker := Marker(p, domain)
		if _, err := fmt.Fprintf(w, "%d %.10e %.10e %d\n", i+1, p.X, p.Y, marker); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteEle writes the element file: one header line then one line per
// triangle with its 1-based id and 1-based node ids in strictly
// counter-clockwise order. Triangles reported clockwise by the engine
// have their 2nd and 3rd nodes swapped; collinear triangles are an
// engine defect and surface as ErrDegenerateTriangle.
func WriteEle(path string, nodes []geom.Point, triangles [][3]int) error {
	oriented := make([][3]int, len(triangles))
	for i, tri := range triangles {
		o, err := orient(nodes, tri)
		if err != nil {
			return fmt.Errorf("triangle %d: %w", i+1, err)
		}
		oriented[i] = o
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)

	if _, err := fmt.Fprintf(w, "%d 3 0\n", len(oriented)); err != nil {
		f.Close()
		return err
	}
	for i, tri := range oriented {
		_, err := fmt.Fprintf(w, "%d %d %d %d\n", i+1, tri[0]+1, tri[1]+1, tri[2]+1)
		if err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SignedArea returns the signed area of the triangle with vertices in
// the given order: positive for counter-clockwise winding.
func SignedArea(p1, p2, p3 geom.Point) float64 {
	return 0.5 * ((p2.X-p1.X)*(p3.Y-p1.Y) - (p3.X-p1.X)*(p2.Y-p1.Y))
}

func orient(nodes []geom.Point, tri [3]int) ([3]int, error) {
	area := SignedArea(nodes[tri[0]], nodes[tri[1]], nodes[tri[2]])
	if area == 0 {
		return tri, ErrDegenerateTriangle
	}
	if area < 0 {
		tri[1], tri[2] = tri[2], tri[1]
	}
	return tri, nil
}
