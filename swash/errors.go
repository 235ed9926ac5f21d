package swash

import "errors"

// Sentinel errors for SWASH control-file handling.
var (
	// ErrNoGridDirective indicates the INPUT file has no
	// "INPGRID BOTTOM" directive, so cell counts and resolution
	// cannot be derived.
	ErrNoGridDirective = errors.New("swash: INPUT contains no INPGRID BOTTOM directive")
	// ErrNoComputeDirective indicates the INPUT file has no COMPUTE
	// directive, so the output timestep is unknown.
	ErrNoComputeDirective = errors.New("swash: INPUT contains no COMPUTE directive")
)
