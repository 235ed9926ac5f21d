// Package engine defines the mesh-generation contract the pipeline
// consumes, and a built-in refinement engine good enough for testing
// and moderate production grids.
//
// External generators keep global model state; that state is
// re-expressed here as an explicit Session acquired from an Engine and
// released with Close. Only one generation may be in flight per
// session, and Close must run even on error paths, so callers defer it
// immediately after Open.
package engine

import (
	"errors"

	"github.com/ctessum/geom"

	"swashmesh/sizefield"
)

// Sentinel errors for session misuse.
var (
	// ErrSessionClosed indicates Generate was called after Close.
	ErrSessionClosed = errors.New("engine: session is closed")
	// ErrSessionBusy indicates a second Generate was issued while one
	// was already in flight.
	ErrSessionBusy = errors.New("engine: generation already in flight")
)

// Mesh is the raw triangulation an engine returns: node coordinates
// and triangles as triplets of 0-based node indices. Orientation is
// not guaranteed; the triangle formatter normalizes winding.
type Mesh struct {
	Nodes     []geom.Point
	Triangles [][3]int
}

// Session is a scoped handle on a mesh generator.
type Session interface {
	// Generate triangulates the interior of the domain rectangle with
	// target edge lengths approximately following size. Guide points
	// mark features the mesh should resolve; engines may refine toward
	// them directly, while the built-in Refiner relies on the size
	// field alone and ignores them. Density conformance is best
	// effort, not exact.
	Generate(domain *geom.Bounds, guides []geom.Point, size sizefield.Field) (*Mesh, error)

	// Close releases the session. It is idempotent.
	Close() error
}

// Engine creates generation sessions.
type Engine interface {
	Open() (Session, error)
}
