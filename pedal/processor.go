package pedal

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-tremolo/dsp/tempo"
	"github.com/cwbudde/algo-tremolo/dsp/tremolo"
)

// Option configures a Processor.
type Option func(*Processor)

// WithClock replaces the default MonotonicClock.
func WithClock(c Clock) Option {
	return func(p *Processor) {
		if c != nil {
			p.clock = c
		}
	}
}

// WithTrace makes the processor offer every tempo estimate to ch. Sends
// never block; estimates are dropped while ch is full.
func WithTrace(ch chan<- tempo.Estimate) Option {
	return func(p *Processor) {
		p.trace = ch
	}
}

// Processor is the tap-tempo tremolo. ProcessBlock belongs to the audio
// context; HandleMIDI and HandleMIDIBytes belong to the MIDI context.
// The snapshot getters may be called from anywhere.
type Processor struct {
	cfg       Config
	clock     Clock
	estimator *tempo.Estimator
	engine    *tremolo.Engine

	ticks chan uint32
	trace chan<- tempo.Estimate

	dropped  atomic.Uint64
	freqBits atomic.Uint64
	bpm      atomic.Uint32
}

// New builds a Processor from cfg.
func New(cfg Config, opts ...Option) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	est, err := tempo.NewEstimator(
		tempo.WithTempoRange(cfg.TempoMinBPM, cfg.TempoMaxBPM),
		tempo.WithPulsesPerBeat(cfg.PulsesPerBeat),
	)
	if err != nil {
		return nil, fmt.Errorf("pedal: %w", err)
	}

	engine, err := tremolo.NewEngine(cfg.SampleRate,
		tremolo.WithFrequencyHz(cfg.InitialFrequencyHz),
		tremolo.WithAmplitude(cfg.Amplitude),
		tremolo.WithWaveform(cfg.Waveform),
		tremolo.WithMaxBlockSize(cfg.BlockSize),
	)
	if err != nil {
		return nil, fmt.Errorf("pedal: %w", err)
	}

	p := &Processor{
		cfg:       cfg,
		estimator: est,
		engine:    engine,
		ticks:     make(chan uint32, cfg.QueueSize),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	if p.clock == nil {
		p.clock = NewMonotonicClock()
	}
	p.freqBits.Store(math.Float64bits(cfg.InitialFrequencyHz))
	return p, nil
}

// ProcessBlock runs one audio callback. Queued clock pulses are applied
// first, in arrival order, then a button edge if buttonEdge is set, then
// every frame of in is multiplied by the LFO into out. The block size is
// len(in[0]); in[1], out[0] and out[1] must be at least that long.
func (p *Processor) ProcessBlock(out, in [2][]float64, buttonEdge bool) {
	p.drainTicks()

	if buttonEdge {
		p.apply(p.estimator.OnTrigger(p.clock.NowMs()))
	}

	p.engine.ProcessBlock(out[0], out[1], in[0], in[1])
}

// Tap is a button edge at the current clock time, for callers that own the
// audio context but have no block to process, such as tests and offline tools.
func (p *Processor) Tap() tempo.Estimate {
	est := p.estimator.OnTrigger(p.clock.NowMs())
	p.apply(est)
	return est
}

// Frequency returns the current LFO rate in Hz.
func (p *Processor) Frequency() float64 {
	return math.Float64frombits(p.freqBits.Load())
}

// BPM returns the last accepted tempo, or 0 before the first one.
func (p *Processor) BPM() uint32 {
	return p.bpm.Load()
}

// Dropped returns how many clock pulses were lost to a full queue.
func (p *Processor) Dropped() uint64 {
	return p.dropped.Load()
}

// Config returns the settings p was built with.
func (p *Processor) Config() Config {
	return p.cfg
}

// Clock returns the processor's time source.
func (p *Processor) Clock() Clock {
	return p.clock
}

func (p *Processor) enqueueTick(nowMs uint32) bool {
	select {
	case p.ticks <- nowMs:
		return true
	default:
		p.dropped.Add(1)
		return false
	}
}

// drainTicks consumes at most one queue's worth of pulses so a flooding
// MIDI source cannot stretch the callback.
func (p *Processor) drainTicks() {
	for range cap(p.ticks) {
		select {
		case now := <-p.ticks:
			if est, fired := p.estimator.OnClockTick(now); fired {
				p.apply(est)
			}
		default:
			return
		}
	}
}

func (p *Processor) apply(est tempo.Estimate) {
	if p.trace != nil {
		select {
		case p.trace <- est:
		default:
		}
	}

	if !est.Accepted {
		return
	}
	if err := p.engine.SetFrequency(est.FreqHz); err != nil {
		return
	}
	p.freqBits.Store(math.Float64bits(est.FreqHz))
	p.bpm.Store(est.BPM)
}
