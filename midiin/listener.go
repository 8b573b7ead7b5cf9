// Package midiin connects a hardware or virtual MIDI input port to a
// message handler such as *pedal.Processor.
package midiin

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"gitlab.com/gomidi/midi/v2"
)

var (
	// ErrNoDriver is returned when the binary was built without a MIDI driver
	// or the driver failed to initialise.
	ErrNoDriver = errors.New("midiin: no MIDI driver available")
	// ErrNoPort is returned when no input port matches.
	ErrNoPort = errors.New("midiin: no matching input port")
)

// Handler consumes incoming messages. It is called from the driver's
// goroutine and must not block.
type Handler interface {
	HandleMIDI(msg midi.Message) bool
}

// Listener forwards one input port to a Handler until closed.
type Listener struct {
	name     string
	handler  Handler
	received atomic.Uint64
	accepted atomic.Uint64

	closeOnce sync.Once
	stop      func()
	closeFn   func() error
}

// Name returns the port name.
func (l *Listener) Name() string { return l.name }

// Received returns the number of messages seen on the port.
func (l *Listener) Received() uint64 { return l.received.Load() }

// Accepted returns the number of messages the handler acted on.
func (l *Listener) Accepted() uint64 { return l.accepted.Load() }

// Close stops listening and closes the port. It is safe to call twice.
func (l *Listener) Close() error {
	var err error
	l.closeOnce.Do(func() {
		if l.stop != nil {
			l.stop()
		}
		if l.closeFn != nil {
			if cerr := l.closeFn(); cerr != nil {
				err = fmt.Errorf("midiin: closing %s: %w", l.name, cerr)
			}
		}
	})
	return err
}

func (l *Listener) receive(msg midi.Message, _ int32) {
	l.received.Add(1)
	if l.handler.HandleMIDI(msg) {
		l.accepted.Add(1)
	}
}

// matchPort returns the index of the first name starting with prefix,
// case-insensitively. An empty prefix selects the first port.
func matchPort(names []string, prefix string) (int, error) {
	if len(names) == 0 {
		return -1, ErrNoPort
	}
	if prefix == "" {
		return 0, nil
	}
	want := strings.ToLower(prefix)
	for i, n := range names {
		if strings.HasPrefix(strings.ToLower(n), want) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrNoPort, prefix)
}
