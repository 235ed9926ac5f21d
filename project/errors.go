package project

import "errors"

// ErrOutsideDomain signals a mesh node outside the extent of the grid
// being projected.
var ErrOutsideDomain = errors.New("project: node outside grid domain")
