package location

import "errors"

// ErrInvalidName is returned when a room name is empty or too long.
var ErrInvalidName = errors.New("location: invalid name")
