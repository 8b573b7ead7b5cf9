package tempo

import "fmt"

const (
	// DefaultMinBPM is the slowest accepted tempo.
	DefaultMinBPM = 30
	// DefaultMaxBPM is the fastest accepted tempo.
	DefaultMaxBPM = 240
	// DefaultPulsesPerBeat is the MIDI timing clock resolution (24 PPQN).
	DefaultPulsesPerBeat = 24

	msPerMinute = 60000
)

// Source identifies what produced a trigger.
type Source uint8

const (
	SourceButton Source = iota
	SourceMIDIClock
)

func (s Source) String() string {
	switch s {
	case SourceButton:
		return "button"
	case SourceMIDIClock:
		return "midi-clock"
	default:
		return fmt.Sprintf("Source(%d)", uint8(s))
	}
}

// State is the estimator's retained trigger history.
type State struct {
	LastTriggerMs uint32
	ClockTicks    int
}

// Estimate is the outcome of one trigger.
type Estimate struct {
	Source Source
	NowMs  uint32
	DiffMs uint32
	// BPM is 60000/DiffMs, or 0 when DiffMs is 0.
	BPM uint32
	// FreqHz is only meaningful when Accepted is true.
	FreqHz   float64
	Accepted bool
}

func (e Estimate) String() string {
	return fmt.Sprintf("msec=%d, diff=%d, BPM=%d", e.NowMs, e.DiffMs, e.BPM)
}

// Option mutates estimator construction parameters.
type Option func(*config) error

type config struct {
	minBPM        uint32
	maxBPM        uint32
	pulsesPerBeat int
}

func defaultConfig() config {
	return config{
		minBPM:        DefaultMinBPM,
		maxBPM:        DefaultMaxBPM,
		pulsesPerBeat: DefaultPulsesPerBeat,
	}
}

// WithTempoRange sets the inclusive accepted tempo range in BPM.
func WithTempoRange(minBPM, maxBPM int) Option {
	return func(cfg *config) error {
		if minBPM <= 0 || maxBPM < minBPM || maxBPM > msPerMinute {
			return fmt.Errorf("tempo range must satisfy 0 < min <= max <= %d: [%d, %d]", msPerMinute, minBPM, maxBPM)
		}
		cfg.minBPM = uint32(minBPM)
		cfg.maxBPM = uint32(maxBPM)
		return nil
	}
}

// WithPulsesPerBeat sets how many MIDI clock pulses make one trigger.
func WithPulsesPerBeat(n int) Option {
	return func(cfg *config) error {
		if n <= 0 {
			return fmt.Errorf("pulses per beat must be > 0: %d", n)
		}
		cfg.pulsesPerBeat = n
		return nil
	}
}

// Estimator converts trigger timestamps into oscillator frequencies.
type Estimator struct {
	minBPM        uint32
	maxBPM        uint32
	pulsesPerBeat int

	state State
}

// NewEstimator creates an estimator with the default 30..240 BPM range and
// 24 pulses per beat, unless overridden.
func NewEstimator(opts ...Option) (*Estimator, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Estimator{
		minBPM:        cfg.minBPM,
		maxBPM:        cfg.maxBPM,
		pulsesPerBeat: cfg.pulsesPerBeat,
	}, nil
}

// OnTrigger measures the interval since the previous trigger and records
// nowMs as the new reference, whether or not the estimate is accepted.
func (e *Estimator) OnTrigger(nowMs uint32) Estimate {
	return e.trigger(nowMs, SourceButton)
}

// OnClockTick counts one MIDI timing clock pulse. Every PulsesPerBeat-th
// pulse acts as a trigger and the returned bool is true; all other pulses
// only advance the counter.
func (e *Estimator) OnClockTick(nowMs uint32) (Estimate, bool) {
	e.state.ClockTicks++
	if e.state.ClockTicks < e.pulsesPerBeat {
		return Estimate{}, false
	}

	est := e.trigger(nowMs, SourceMIDIClock)
	e.state.ClockTicks = 0
	return est, true
}

// ResetClock discards a partially counted beat.
func (e *Estimator) ResetClock() {
	e.state.ClockTicks = 0
}

// State returns a copy of the trigger history.
func (e *Estimator) State() State { return e.state }

// MinBPM returns the slowest accepted tempo.
func (e *Estimator) MinBPM() int { return int(e.minBPM) }

// MaxBPM returns the fastest accepted tempo.
func (e *Estimator) MaxBPM() int { return int(e.maxBPM) }

// PulsesPerBeat returns the MIDI clock divisor.
func (e *Estimator) PulsesPerBeat() int { return e.pulsesPerBeat }

func (e *Estimator) trigger(nowMs uint32, src Source) Estimate {
	est := Estimate{
		Source: src,
		NowMs:  nowMs,
		DiffMs: nowMs - e.state.LastTriggerMs,
	}
	e.state.LastTriggerMs = nowMs

	// Two triggers in the same millisecond carry no tempo information.
	if est.DiffMs == 0 {
		return est
	}

	est.BPM = MsToBPM(est.DiffMs)
	if est.BPM >= e.minBPM && est.BPM <= e.maxBPM {
		est.FreqHz = BPMToFreq(est.BPM)
		est.Accepted = true
	}
	return est
}

// MsToBPM converts a beat interval to whole beats per minute.
// It returns 0 for a zero interval.
func MsToBPM(ms uint32) uint32 {
	if ms == 0 {
		return 0
	}
	return msPerMinute / ms
}

// BPMToFreq converts a tempo to a one-cycle-per-beat frequency in Hz.
func BPMToFreq(bpm uint32) float64 {
	return float64(bpm) / 60.0
}
