package audioout

import (
	"errors"
	"time"
)

// ErrNoDevice is returned when the binary was built without an audio
// backend.
var ErrNoDevice = errors.New("audioout: built without audio backend (cgo disabled)")

// DefaultBufferSize is the device-side latency requested from the backend.
const DefaultBufferSize = 40 * time.Millisecond
