package pedal

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-tremolo/dsp/core"
	"github.com/cwbudde/algo-tremolo/dsp/osc"
	"github.com/cwbudde/algo-tremolo/dsp/tempo"
)

// ErrInvalidConfig is wrapped by every Config validation error.
var ErrInvalidConfig = errors.New("pedal: invalid config")

const defaultQueueSize = 256

// Config holds the construction-time settings of a Processor.
type Config struct {
	TempoMinBPM        int
	TempoMaxBPM        int
	PulsesPerBeat      int
	BlockSize          int
	SampleRate         float64
	InitialFrequencyHz float64
	Amplitude          float64
	Waveform           osc.Waveform
	// QueueSize bounds the number of clock pulses waiting for the next block.
	QueueSize int
}

// DefaultConfig returns the stock pedal settings: 30..240 BPM, 24 PPQN,
// 4-frame blocks at 48 kHz, and a 1 Hz full-scale sine.
func DefaultConfig() Config {
	proc := core.DefaultProcessorConfig()
	return Config{
		TempoMinBPM:        tempo.DefaultMinBPM,
		TempoMaxBPM:        tempo.DefaultMaxBPM,
		PulsesPerBeat:      tempo.DefaultPulsesPerBeat,
		BlockSize:          proc.BlockSize,
		SampleRate:         proc.SampleRate,
		InitialFrequencyHz: 1.0,
		Amplitude:          1.0,
		Waveform:           osc.WaveSine,
		QueueSize:          defaultQueueSize,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.TempoMinBPM <= 0 || c.TempoMaxBPM < c.TempoMinBPM:
		return fmt.Errorf("%w: tempo range [%d, %d]", ErrInvalidConfig, c.TempoMinBPM, c.TempoMaxBPM)
	case c.PulsesPerBeat <= 0:
		return fmt.Errorf("%w: pulses per beat %d", ErrInvalidConfig, c.PulsesPerBeat)
	case c.BlockSize <= 0:
		return fmt.Errorf("%w: block size %d", ErrInvalidConfig, c.BlockSize)
	case !core.IsFinitePositive(c.SampleRate):
		return fmt.Errorf("%w: sample rate %f", ErrInvalidConfig, c.SampleRate)
	case !core.IsFinitePositive(c.InitialFrequencyHz):
		return fmt.Errorf("%w: initial frequency %f", ErrInvalidConfig, c.InitialFrequencyHz)
	case !core.InUnitRange(c.Amplitude):
		return fmt.Errorf("%w: amplitude %f", ErrInvalidConfig, c.Amplitude)
	case !c.Waveform.Valid():
		return fmt.Errorf("%w: waveform %d", ErrInvalidConfig, int(c.Waveform))
	case c.QueueSize <= 0:
		return fmt.Errorf("%w: queue size %d", ErrInvalidConfig, c.QueueSize)
	}
	return nil
}

// ProcessorConfig returns the audio callback contract of c.
func (c Config) ProcessorConfig() core.ProcessorConfig {
	return core.ApplyProcessorOptions(
		core.WithSampleRate(c.SampleRate),
		core.WithBlockSize(c.BlockSize),
	)
}
