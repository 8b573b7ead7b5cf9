package pedal

import (
	"sync/atomic"
	"time"
)

// Clock is a monotonic millisecond time source. Like the hardware tick
// counter it models, it wraps after 2^32 ms.
type Clock interface {
	NowMs() uint32
}

// MonotonicClock counts milliseconds since it was created.
type MonotonicClock struct {
	start time.Time
}

// NewMonotonicClock starts a clock at zero.
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

// NowMs implements Clock.
func (c *MonotonicClock) NowMs() uint32 {
	return uint32(time.Since(c.start).Milliseconds())
}

// ManualClock is set explicitly, for offline rendering and tests.
// It is safe for concurrent use.
type ManualClock struct {
	ms atomic.Uint32
}

// NowMs implements Clock.
func (c *ManualClock) NowMs() uint32 { return c.ms.Load() }

// Set moves the clock to ms.
func (c *ManualClock) Set(ms uint32) { c.ms.Store(ms) }

// Advance moves the clock forward by ms.
func (c *ManualClock) Advance(ms uint32) { c.ms.Add(ms) }
