// Package modrate measures the amplitude-modulation rate of a processed
// signal, so a rendered tremolo can be checked against the tempo it was
// synchronised to.
package modrate

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-tremolo/dsp/spectrum"
	"github.com/cwbudde/algo-tremolo/dsp/window"
)

const (
	defaultEnvelopeRate = 200.0
	defaultMinHz        = 0.25
	defaultMaxHz        = 20.0
	minFFTSize          = 1024
	minEnvelopeFrames   = 16
)

var (
	// ErrEmptySignal is returned for zero-length input.
	ErrEmptySignal = errors.New("modrate: empty signal")
	// ErrTooShort is returned when the signal is shorter than a few envelope frames.
	ErrTooShort = errors.New("modrate: signal too short")
	// ErrNoPeak is returned when the search range holds no energy.
	ErrNoPeak = errors.New("modrate: no modulation peak found")
)

// Config holds measurement parameters. Zero numeric fields take defaults.
type Config struct {
	SampleRate float64
	// EnvelopeRate is the rate the rectified envelope is averaged down to.
	EnvelopeRate float64
	// MinHz and MaxHz bound the envelope peak search.
	MinHz float64
	MaxHz float64
	// Bipolar halves the envelope frequency: a gain that swings through
	// zero produces two envelope bumps per LFO cycle.
	Bipolar bool
	// Window tapers the envelope before the FFT. Its zero value is
	// rectangular; DefaultConfig selects Hann.
	Window window.Type
}

// DefaultConfig returns settings for a bipolar LFO at 48 kHz.
func DefaultConfig() Config {
	return Config{
		SampleRate:   48000,
		EnvelopeRate: defaultEnvelopeRate,
		MinHz:        defaultMinHz,
		MaxHz:        defaultMaxHz,
		Bipolar:      true,
		Window:       window.TypeHann,
	}
}

// Result holds one measurement.
type Result struct {
	// EnvelopeHz is the dominant frequency of the rectified envelope.
	EnvelopeHz float64
	// RateHz is the estimated LFO rate.
	RateHz float64
	// BPM is RateHz expressed as one LFO cycle per beat.
	BPM float64
	// Magnitude is the amplitude of the envelope component at the peak,
	// corrected for the window's coherent gain.
	Magnitude float64
	FFTSize   int
}

func (r Result) String() string {
	return fmt.Sprintf("rate=%.3f Hz (%.1f BPM), envelope=%.3f Hz, depth=%.3f", r.RateHz, r.BPM, r.EnvelopeHz, r.Magnitude)
}

// Analyze measures the modulation rate of a stereo signal. right may be nil
// for mono input.
func Analyze(left, right []float64, cfg Config) (Result, error) {
	cfg = normalizeConfig(cfg)

	env, envRate, err := envelope(left, right, cfg)
	if err != nil {
		return Result{}, err
	}

	removeMean(env)
	coeffs := window.Generate(cfg.Window, len(env), window.WithPeriodic())
	if err := window.ApplyCoefficientsInPlace(env, coeffs); err != nil {
		return Result{}, fmt.Errorf("modrate: %w", err)
	}

	fftSize := spectrum.NextPowerOf2(max(4*len(env), minFFTSize))
	mag, err := spectrum.RealMagnitude(env, fftSize)
	if err != nil {
		return Result{}, fmt.Errorf("modrate: %w", err)
	}

	binHz := envRate / float64(fftSize)
	lo := max(1, int(math.Ceil(cfg.MinHz/binHz)))
	hi := min(len(mag)-2, int(math.Floor(cfg.MaxHz/binHz)))
	if lo > hi {
		return Result{}, fmt.Errorf("%w: search range [%g, %g] Hz holds no bins", ErrNoPeak, cfg.MinHz, cfg.MaxHz)
	}
	peak, ok := spectrum.Peak(mag, lo, hi)
	if !ok {
		return Result{}, ErrNoPeak
	}

	envHz := spectrum.InterpolatePeak(mag, peak) * binHz
	rate := envHz
	if cfg.Bipolar {
		rate /= 2
	}

	return Result{
		EnvelopeHz: envHz,
		RateHz:     rate,
		BPM:        rate * 60,
		Magnitude:  2 * mag[peak] / (float64(len(env)) * window.CoherentGain(coeffs)),
		FFTSize:    fftSize,
	}, nil
}

func normalizeConfig(cfg Config) Config {
	def := DefaultConfig()
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = def.SampleRate
	}
	if cfg.EnvelopeRate <= 0 {
		cfg.EnvelopeRate = def.EnvelopeRate
	}
	if cfg.EnvelopeRate > cfg.SampleRate {
		cfg.EnvelopeRate = cfg.SampleRate
	}
	if cfg.MinHz <= 0 {
		cfg.MinHz = def.MinHz
	}
	if cfg.MaxHz <= 0 {
		cfg.MaxHz = def.MaxHz
	}
	if nyquist := cfg.EnvelopeRate / 2; cfg.MaxHz > nyquist {
		cfg.MaxHz = nyquist
	}
	return cfg
}

// envelope rectifies the mid signal and averages it over hops of
// SampleRate/EnvelopeRate frames, rounded. The rate returned is the one the
// rounded hop actually gives.
func envelope(left, right []float64, cfg Config) ([]float64, float64, error) {
	n := len(left)
	if right != nil {
		n = min(n, len(right))
	}
	if n == 0 {
		return nil, 0, ErrEmptySignal
	}

	hop := max(1, int(math.Round(cfg.SampleRate/cfg.EnvelopeRate)))
	frames := n / hop
	if frames < minEnvelopeFrames {
		return nil, 0, fmt.Errorf("%w: %d samples give %d envelope frames", ErrTooShort, n, frames)
	}

	env := make([]float64, frames)
	for f := range env {
		sum := 0.0
		for i := f * hop; i < (f+1)*hop; i++ {
			if right != nil {
				sum += 0.5 * (math.Abs(left[i]) + math.Abs(right[i]))
			} else {
				sum += math.Abs(left[i])
			}
		}
		env[f] = sum / float64(hop)
	}
	return env, cfg.SampleRate / float64(hop), nil
}

func removeMean(x []float64) {
	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(len(x))
	for i := range x {
		x[i] -= mean
	}
}
