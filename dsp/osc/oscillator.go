package osc

import (
	"fmt"

	"github.com/cwbudde/algo-tremolo/dsp/core"
)

const (
	defaultFrequencyHz = 1.0
	defaultAmplitude   = 1.0
)

// Option mutates oscillator construction parameters.
type Option func(*config) error

type config struct {
	freqHz   float64
	amp      float64
	waveform Waveform
	phase    float64
}

func defaultConfig() config {
	return config{
		freqHz:   defaultFrequencyHz,
		amp:      defaultAmplitude,
		waveform: WaveSine,
	}
}

// WithFrequencyHz sets the initial rate in Hz.
func WithFrequencyHz(hz float64) Option {
	return func(cfg *config) error {
		if !core.IsFinitePositive(hz) {
			return fmt.Errorf("oscillator frequency must be > 0 and finite: %f", hz)
		}
		cfg.freqHz = hz
		return nil
	}
}

// WithAmplitude sets the output amplitude in [0, 1].
func WithAmplitude(amp float64) Option {
	return func(cfg *config) error {
		if !core.InUnitRange(amp) {
			return fmt.Errorf("oscillator amplitude must be in [0, 1]: %f", amp)
		}
		cfg.amp = amp
		return nil
	}
}

// WithWaveform sets the oscillator shape.
func WithWaveform(w Waveform) Option {
	return func(cfg *config) error {
		if !w.Valid() {
			return fmt.Errorf("oscillator waveform unknown: %d", int(w))
		}
		cfg.waveform = w
		return nil
	}
}

// WithPhase sets the starting phase, in cycles. Values outside [0, 1) wrap.
func WithPhase(phase float64) Option {
	return func(cfg *config) error {
		if !core.IsFinite(phase) {
			return fmt.Errorf("oscillator phase must be finite: %f", phase)
		}
		cfg.phase = core.Wrap01(phase)
		return nil
	}
}

// Oscillator is a phase-accumulating LFO.
type Oscillator struct {
	sampleRate float64
	freqHz     float64
	amp        float64
	waveform   Waveform

	phase    float64
	phaseInc float64
}

// New creates an oscillator running at sampleRate.
func New(sampleRate float64, opts ...Option) (*Oscillator, error) {
	if !core.IsFinitePositive(sampleRate) {
		return nil, fmt.Errorf("oscillator sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	o := &Oscillator{
		sampleRate: sampleRate,
		freqHz:     cfg.freqHz,
		amp:        cfg.amp,
		waveform:   cfg.waveform,
		phase:      cfg.phase,
	}
	o.updateIncrement()
	return o, nil
}

// SetFrequency changes the rate. The phase accumulator is left untouched.
func (o *Oscillator) SetFrequency(hz float64) error {
	if !core.IsFinitePositive(hz) {
		return fmt.Errorf("oscillator frequency must be > 0 and finite: %f", hz)
	}
	o.freqHz = hz
	o.updateIncrement()
	return nil
}

// Process returns the value at the current phase, then advances one sample.
func (o *Oscillator) Process() float64 {
	out := o.amp * o.waveform.value(o.phase)

	o.phase += o.phaseInc
	if o.phase >= 1 {
		o.phase -= 1
		if o.phase >= 1 {
			o.phase = core.Wrap01(o.phase)
		}
	}

	return out
}

// ProcessBlock writes len(dst) consecutive oscillator samples.
func (o *Oscillator) ProcessBlock(dst []float64) {
	for i := range dst {
		dst[i] = o.Process()
	}
}

// Reset rewinds the phase to zero.
func (o *Oscillator) Reset() {
	o.phase = 0
}

// SampleRate returns the sample rate in Hz.
func (o *Oscillator) SampleRate() float64 { return o.sampleRate }

// Frequency returns the rate in Hz.
func (o *Oscillator) Frequency() float64 { return o.freqHz }

// Amplitude returns the output amplitude.
func (o *Oscillator) Amplitude() float64 { return o.amp }

// Waveform returns the oscillator shape.
func (o *Oscillator) Waveform() Waveform { return o.waveform }

// Phase returns the normalized phase in [0, 1).
func (o *Oscillator) Phase() float64 { return o.phase }

func (o *Oscillator) updateIncrement() {
	o.phaseInc = o.freqHz / o.sampleRate
}
