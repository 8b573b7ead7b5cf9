package osc

import (
	"fmt"
	"math"
	"strings"
)

// Waveform selects the oscillator shape.
type Waveform int

const (
	// WaveSine is sin(2*pi*phase).
	WaveSine Waveform = iota
	// WaveTriangle falls from 1 to -1 and back once per cycle.
	WaveTriangle
	// WaveSaw falls from 1 to -1.
	WaveSaw
	// WaveRamp rises from -1 to 1.
	WaveRamp
	// WaveSquare is +1 for the first half cycle and -1 for the second.
	WaveSquare
)

var waveformNames = [...]string{
	WaveSine:     "sine",
	WaveTriangle: "triangle",
	WaveSaw:      "saw",
	WaveRamp:     "ramp",
	WaveSquare:   "square",
}

func (w Waveform) String() string {
	if w < 0 || int(w) >= len(waveformNames) {
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
	return waveformNames[w]
}

// Valid reports whether w is a known waveform.
func (w Waveform) Valid() bool {
	return w >= 0 && int(w) < len(waveformNames)
}

// ParseWaveform resolves a waveform by name, case-insensitively.
// "sin" is accepted as an alias for "sine".
func ParseWaveform(name string) (Waveform, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "sin" {
		return WaveSine, nil
	}
	for i, n := range waveformNames {
		if n == name {
			return Waveform(i), nil
		}
	}
	return 0, fmt.Errorf("unknown waveform %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (w Waveform) MarshalText() ([]byte, error) {
	if !w.Valid() {
		return nil, fmt.Errorf("unknown waveform %d", int(w))
	}
	return []byte(w.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (w *Waveform) UnmarshalText(text []byte) error {
	parsed, err := ParseWaveform(string(text))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// value evaluates the unit-amplitude waveform at phase in [0, 1).
func (w Waveform) value(phase float64) float64 {
	switch w {
	case WaveTriangle:
		t := -1 + 2*phase
		return 2 * (math.Abs(t) - 0.5)
	case WaveSaw:
		return 1 - 2*phase
	case WaveRamp:
		return 2*phase - 1
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}
