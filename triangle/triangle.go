// Package triangle serializes meshes to the Triangle-format node and
// element files the wave solver reads, and parses them back.
//
// The formats are fixed:
//
//	mesh.node    header "<N> 2 0 1", rows "<id> <x> <y> <marker>"
//	mesh.ele     header "<M> 3 0",   rows "<id> <n1> <n2> <n3>"
//
// Ids are 1-based and contiguous. Markers tag the domain side a node
// lies on (1=west, 2=north, 3=east, 4=south, 0=interior). Triangles
// are stored strictly counter-clockwise.
package triangle

import "errors"

// Sentinel errors for mesh serialization.
var (
	// ErrDegenerateTriangle indicates an engine produced a zero-area
	// (collinear) triangle.
	ErrDegenerateTriangle = errors.New("triangle: degenerate zero-area triangle")
	// ErrBadHeader indicates a node or element file header does not
	// match the expected fixed format.
	ErrBadHeader = errors.New("triangle: malformed file header")
	// ErrBadNodeID indicates node ids are not 1..N contiguous.
	ErrBadNodeID = errors.New("triangle: node ids must be 1..N in order")
)

// Boundary markers, in classification priority order.
const (
	Interior = 0
	West     = 1
	North    = 2
	East     = 3
	South    = 4
)

// coordTolerance is the absolute tolerance for classifying a node
// coordinate as lying on a domain edge.
const coordTolerance = 1e-9
