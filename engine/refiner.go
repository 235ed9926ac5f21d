package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ctessum/geom"

	"swashmesh/sizefield"
)

// maxSplitDepth bounds quadtree recursion so a degenerate size field
// cannot split forever.
const maxSplitDepth = 16

// ErrBadField indicates the size field evaluated to a non-positive
// length somewhere in the domain.
var ErrBadField = errors.New("engine: size field must be positive over the domain")

// Refiner is the built-in mesh engine: a quadtree refinement of the
// domain rectangle. Root cells are laid out at the coarsest field
// value; a cell splits in four while it is larger than the field value
// at its centre; each leaf cell is fanned into four triangles around
// its centre. Traversal order is fixed, so the output is deterministic
// for a given domain and field.
//
// The mesh tracks the size field only on average and leaves hanging
// nodes at refinement boundaries, which the solver's node/element
// format tolerates. Cases that need guaranteed-quality Delaunay
// triangulation plug in an external generator behind the same Engine
// interface.
type Refiner struct{}

// Open acquires a generation session.
func (Refiner) Open() (Session, error) {
	return &refinerSession{}, nil
}

type refinerSession struct {
	mu     sync.Mutex
	busy   bool
	closed bool

	nodeIDs map[geom.Point]int
	mesh    *Mesh
}

func (s *refinerSession) Generate(
	domain *geom.Bounds, guides []geom.Point, size sizefield.Field,
) (*Mesh, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	if s.busy {
		s.mu.Unlock()
		return nil, ErrSessionBusy
	}
	s.busy = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	width := domain.Max.X - domain.Min.X
	height := domain.Max.Y - domain.Min.Y
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("engine: empty domain %v", domain)
	}

	coarse, err := coarsestSize(domain, size)
	if err != nil {
		return nil, err
	}

	nx := cellCount(width, coarse)
	ny := cellCount(height, coarse)
	cw := width / float64(nx)
	ch := height / float64(ny)

	s.nodeIDs = make(map[geom.Point]int)
	s.mesh = &Mesh{}
	// Cell corners are computed from indices so that adjacent root
	// cells share seam coordinates bitwise and deduplicate cleanly.
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			x0 := domain.Min.X + float64(i)*cw
			x1 := domain.Min.X + float64(i+1)*cw
			y0 := domain.Min.Y + float64(j)*ch
			y1 := domain.Min.Y + float64(j+1)*ch
			s.refine(x0, y0, x1, y1, size, 0)
		}
	}
	mesh := s.mesh
	s.mesh, s.nodeIDs = nil, nil
	return mesh, nil
}

func (s *refinerSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// refine recursively splits the cell [x0,x1]x[y0,y1] until it no
// longer exceeds the size field at its centre, then emits the leaf.
// Children share corner coordinates bitwise (midpoints are computed
// once), so node deduplication by exact coordinate is safe.
func (s *refinerSession) refine(x0, y0, x1, y1 float64, size sizefield.Field, depth int) {
	xm := (x0 + x1) / 2
	ym := (y0 + y1) / 2
	target := size.Eval(xm, ym)

	if depth < maxSplitDepth && larger(x1-x0, y1-y0, target) {
		s.refine(x0, y0, xm, ym, size, depth+1)
		s.refine(xm, y0, x1, ym, size, depth+1)
		s.refine(x0, ym, xm, y1, size, depth+1)
		s.refine(xm, ym, x1, y1, size, depth+1)
		return
	}

	c0 := s.node(x0, y0)
	c1 := s.node(x1, y0)
	c2 := s.node(x1, y1)
	c3 := s.node(x0, y1)
	centre := s.node(xm, ym)

	s.mesh.Triangles = append(s.mesh.Triangles,
		[3]int{c0, c1, centre},
		[3]int{c1, c2, centre},
		[3]int{c2, c3, centre},
		[3]int{c3, c0, centre},
	)
}

func larger(w, h, target float64) bool {
	return w > target || h > target
}

// node returns the index of the node at (x, y), creating it on first
// use. Insertion order fixes node numbering.
func (s *refinerSession) node(x, y float64) int {
	p := geom.Point{X: x, Y: y}
	if id, ok := s.nodeIDs[p]; ok {
		return id
	}
	id := len(s.mesh.Nodes)
	s.nodeIDs[p] = id
	s.mesh.Nodes = append(s.mesh.Nodes, p)
	return id
}

// coarsestSize samples the field on a sparse lattice to find the root
// cell size.
func coarsestSize(domain *geom.Bounds, size sizefield.Field) (float64, error) {
	const samples = 5
	coarse := 0.0
	for j := 0; j < samples; j++ {
		for i := 0; i < samples; i++ {
			x := domain.Min.X + (domain.Max.X-domain.Min.X)*float64(i)/(samples-1)
			y := domain.Min.Y + (domain.Max.Y-domain.Min.Y)*float64(j)/(samples-1)
			v := size.Eval(x, y)
			if v <= 0 {
				return 0, fmt.Errorf("%w: %g at (%g, %g)", ErrBadField, v, x, y)
			}
			if v > coarse {
				coarse = v
			}
		}
	}
	return coarse, nil
}

func cellCount(extent, size float64) int {
	n := int(extent / size)
	if float64(n)*size < extent {
		n++
	}
	if n < 1 {
		n = 1
	}
	return n
}
