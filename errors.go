package swashmesh

import "errors"

// ErrMissingFile signals that a required case file is absent. The
// pipeline checks every input before writing anything so a failed run
// never leaves a half-written mesh behind.
var ErrMissingFile = errors.New("swashmesh: required file missing")
