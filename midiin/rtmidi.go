//go:build cgo

package midiin

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// Ports lists the names of the available input ports.
func Ports() ([]string, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDriver, err)
	}
	defer drv.Close()

	ins, err := drv.Ins()
	if err != nil {
		return nil, fmt.Errorf("midiin: listing inputs: %w", err)
	}
	return portNames(ins), nil
}

// Open listens on the first input port whose name starts with portPrefix
// and forwards every message to h.
func Open(portPrefix string, h Handler) (*Listener, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDriver, err)
	}

	ins, err := drv.Ins()
	if err != nil {
		drv.Close()
		return nil, fmt.Errorf("midiin: listing inputs: %w", err)
	}
	idx, err := matchPort(portNames(ins), portPrefix)
	if err != nil {
		drv.Close()
		return nil, err
	}

	in := ins[idx]
	if err := in.Open(); err != nil {
		drv.Close()
		return nil, fmt.Errorf("midiin: opening %s: %w", in.String(), err)
	}

	l := &Listener{name: in.String(), handler: h}
	// rtmidi filters timing clock together with MTC unless time code is enabled.
	stop, err := midi.ListenTo(in, l.receive, midi.UseTimeCode())
	if err != nil {
		in.Close()
		drv.Close()
		return nil, fmt.Errorf("midiin: listening on %s: %w", in.String(), err)
	}
	l.stop = stop
	l.closeFn = func() error {
		err := in.Close()
		drv.Close()
		return err
	}
	return l, nil
}

func portNames(ins []drivers.In) []string {
	names := make([]string, len(ins))
	for i, in := range ins {
		names[i] = in.String()
	}
	return names
}
