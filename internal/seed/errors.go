package seed

import "errors"

// ErrInvalidSeed is returned when a seed document cannot be decoded or
// describes an inconsistent home.
var ErrInvalidSeed = errors.New("seed: invalid")
