// Package tremolo multiplies a stereo signal by a shared low-frequency oscillator.
package tremolo

import (
	"fmt"

	"github.com/cwbudde/algo-tremolo/dsp/core"
	"github.com/cwbudde/algo-tremolo/dsp/osc"
	"github.com/cwbudde/algo-vecmath"
)

const (
	defaultRateHz       = 1.0
	defaultAmplitude    = 1.0
	defaultMaxBlockSize = 256
)

// Option mutates tremolo construction parameters.
type Option func(*engineConfig) error

type engineConfig struct {
	rateHz       float64
	amplitude    float64
	waveform     osc.Waveform
	maxBlockSize int
}

func defaultEngineConfig() engineConfig {
	return engineConfig{
		rateHz:       defaultRateHz,
		amplitude:    defaultAmplitude,
		waveform:     osc.WaveSine,
		maxBlockSize: defaultMaxBlockSize,
	}
}

// WithFrequencyHz sets the initial modulation speed in Hz.
func WithFrequencyHz(rateHz float64) Option {
	return func(cfg *engineConfig) error {
		if !core.IsFinitePositive(rateHz) {
			return fmt.Errorf("tremolo rate must be > 0 and finite: %f", rateHz)
		}
		cfg.rateHz = rateHz
		return nil
	}
}

// WithAmplitude sets the LFO amplitude in [0, 1].
func WithAmplitude(amplitude float64) Option {
	return func(cfg *engineConfig) error {
		if !core.InUnitRange(amplitude) {
			return fmt.Errorf("tremolo amplitude must be in [0, 1]: %f", amplitude)
		}
		cfg.amplitude = amplitude
		return nil
	}
}

// WithWaveform sets the LFO shape.
func WithWaveform(w osc.Waveform) Option {
	return func(cfg *engineConfig) error {
		if !w.Valid() {
			return fmt.Errorf("tremolo waveform unknown: %d", int(w))
		}
		cfg.waveform = w
		return nil
	}
}

// WithMaxBlockSize preallocates LFO scratch space for blocks up to n frames.
// Larger blocks still work but allocate on first use.
func WithMaxBlockSize(n int) Option {
	return func(cfg *engineConfig) error {
		if n <= 0 {
			return fmt.Errorf("tremolo max block size must be > 0: %d", n)
		}
		cfg.maxBlockSize = n
		return nil
	}
}

// Engine applies one LFO as a gain envelope to both channels of a stereo
// signal. Left and right always see the identical LFO value for a frame.
type Engine struct {
	sampleRate float64
	lfo        *osc.Oscillator
	lfoBuf     []float64
}

// NewEngine creates a tremolo with a 1 Hz full-scale sine LFO unless overridden.
func NewEngine(sampleRate float64, opts ...Option) (*Engine, error) {
	if !core.IsFinitePositive(sampleRate) {
		return nil, fmt.Errorf("tremolo sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultEngineConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	lfo, err := osc.New(sampleRate,
		osc.WithFrequencyHz(cfg.rateHz),
		osc.WithAmplitude(cfg.amplitude),
		osc.WithWaveform(cfg.waveform),
	)
	if err != nil {
		return nil, fmt.Errorf("tremolo lfo: %w", err)
	}

	return &Engine{
		sampleRate: sampleRate,
		lfo:        lfo,
		lfoBuf:     make([]float64, cfg.maxBlockSize),
	}, nil
}

// SetFrequency changes the LFO rate without resetting its phase.
func (e *Engine) SetFrequency(rateHz float64) error {
	if err := e.lfo.SetFrequency(rateHz); err != nil {
		return fmt.Errorf("tremolo: %w", err)
	}
	return nil
}

// ProcessBlock writes outL[i] = lfo[i]*inL[i] and outR[i] = lfo[i]*inR[i]
// for i in [0, len(inL)). The LFO advances exactly once per frame, in order.
// inR, outL and outR must hold at least len(inL) samples. Output may alias
// input.
func (e *Engine) ProcessBlock(outL, outR, inL, inR []float64) {
	n := len(inL)
	if n == 0 {
		return
	}

	lfo := e.render(n)
	vecmath.MulBlock(outL[:n], lfo, inL)
	vecmath.MulBlock(outR[:n], lfo, inR[:n])
}

// ProcessInPlace applies the tremolo to left and right in place.
func (e *Engine) ProcessInPlace(left, right []float64) {
	e.ProcessBlock(left, right, left, right)
}

// ProcessSample processes one stereo frame.
func (e *Engine) ProcessSample(left, right float64) (float64, float64) {
	g := e.lfo.Process()
	return g * left, g * right
}

// Reset rewinds the LFO phase.
func (e *Engine) Reset() {
	e.lfo.Reset()
}

// SampleRate returns sample rate in Hz.
func (e *Engine) SampleRate() float64 { return e.sampleRate }

// Frequency returns the LFO rate in Hz.
func (e *Engine) Frequency() float64 { return e.lfo.Frequency() }

// Amplitude returns the LFO amplitude.
func (e *Engine) Amplitude() float64 { return e.lfo.Amplitude() }

// Waveform returns the LFO shape.
func (e *Engine) Waveform() osc.Waveform { return e.lfo.Waveform() }

// Phase returns the LFO phase in [0, 1).
func (e *Engine) Phase() float64 { return e.lfo.Phase() }

func (e *Engine) render(n int) []float64 {
	e.lfoBuf = core.EnsureLen(e.lfoBuf, n)
	e.lfo.ProcessBlock(e.lfoBuf)
	return e.lfoBuf
}
