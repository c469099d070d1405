package detector

import "errors"

// ErrHintsPanic is reported when a client hints provider panics.
var ErrHintsPanic = errors.New("client hints provider panicked")
