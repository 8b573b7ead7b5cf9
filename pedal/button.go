package pedal

import "sync/atomic"

// Button latches presses from any goroutine until the audio context
// samples them.
type Button struct {
	pressed atomic.Bool
}

// Press records a press.
func (b *Button) Press() {
	b.pressed.Store(true)
}

// RisingEdge reports whether the button was pressed since the previous
// call, and clears the latch.
func (b *Button) RisingEdge() bool {
	return b.pressed.Swap(false)
}
