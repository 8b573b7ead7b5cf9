//go:build !cgo

package audioout

import (
	"io"
	"time"
)

// Device is unavailable without cgo.
type Device struct{}

// Open always fails with ErrNoDevice.
func Open(int, io.Reader, time.Duration) (*Device, error) {
	return nil, ErrNoDevice
}

// Err always returns nil.
func (*Device) Err() error { return nil }

// Close is a no-op.
func (*Device) Close() error { return nil }
