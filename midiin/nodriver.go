//go:build !cgo

package midiin

// Ports always fails without cgo.
func Ports() ([]string, error) {
	return nil, ErrNoDriver
}

// Open always fails without cgo.
func Open(string, Handler) (*Listener, error) {
	return nil, ErrNoDriver
}
