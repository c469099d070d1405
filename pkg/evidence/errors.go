package evidence

import "errors"

var (
	// ErrHintsUnsupported is returned when the client hints API is absent.
	ErrHintsUnsupported = errors.New("client hints are not supported")

	// ErrInvalidSnapshot is returned when a probe snapshot cannot be decoded.
	ErrInvalidSnapshot = errors.New("invalid probe snapshot")
)
