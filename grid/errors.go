package grid

import "errors"

// Sentinel errors for grid loading.
var (
	// ErrEmpty indicates the input file contains no values.
	ErrEmpty = errors.New("grid: input must have at least one row and one column")
	// ErrNotRectangular indicates rows of differing lengths.
	ErrNotRectangular = errors.New("grid: all rows must have the same length")
)
