package device

import "errors"

// Domain errors for the device package.
//
// The core never returns these: an unknown id or a kind mismatch is a silent
// no-op there. They surface from the edges that parse external input.
//
//	if errors.Is(err, device.ErrInvalidKind) {
//	    // reject the request
//	}
var (
	// ErrInvalidKind is returned when a kind string is not one of the supported kinds.
	ErrInvalidKind = errors.New("device: invalid kind")

	// ErrInvalidName is returned when a device name is empty or too long.
	ErrInvalidName = errors.New("device: invalid name")
)
