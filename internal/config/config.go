// Package config loads the pedal settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-tremolo/dsp/osc"
	"github.com/cwbudde/algo-tremolo/pedal"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid")

// Config mirrors the YAML file layout.
type Config struct {
	Tempo Tempo `yaml:"tempo"`
	Audio Audio `yaml:"audio"`
	LFO   LFO   `yaml:"lfo"`
	MIDI  MIDI  `yaml:"midi"`
	Log   Log   `yaml:"log"`
}

// Tempo bounds the accepted tap and clock tempos.
type Tempo struct {
	MinBPM        int `yaml:"min_bpm"`
	MaxBPM        int `yaml:"max_bpm"`
	PulsesPerBeat int `yaml:"pulses_per_beat"`
}

// Audio is the callback contract.
type Audio struct {
	SampleRate float64 `yaml:"sample_rate"`
	BlockSize  int     `yaml:"block_size"`
}

// LFO sets the oscillator's fixed shape and starting rate.
type LFO struct {
	Waveform           string  `yaml:"waveform"`
	InitialFrequencyHz float64 `yaml:"initial_frequency_hz"`
	Amplitude          float64 `yaml:"amplitude"`
}

// MIDI selects the input port.
type MIDI struct {
	// Port is a case-insensitive name prefix; empty picks the first port.
	Port      string `yaml:"port"`
	QueueSize int    `yaml:"queue_size"`
	Disabled  bool   `yaml:"disabled"`
}

// Log controls the command's slog output.
type Log struct {
	Level string `yaml:"level"`
	// Trace logs every tempo estimate, accepted or not.
	Trace bool `yaml:"trace"`
}

// Default returns the stock pedal configuration.
func Default() Config {
	p := pedal.DefaultConfig()
	return Config{
		Tempo: Tempo{
			MinBPM:        p.TempoMinBPM,
			MaxBPM:        p.TempoMaxBPM,
			PulsesPerBeat: p.PulsesPerBeat,
		},
		Audio: Audio{
			SampleRate: p.SampleRate,
			BlockSize:  p.BlockSize,
		},
		LFO: LFO{
			Waveform:           p.Waveform.String(),
			InitialFrequencyHz: p.InitialFrequencyHz,
			Amplitude:          p.Amplitude,
		},
		MIDI: MIDI{
			QueueSize: p.QueueSize,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads and validates the file at path. Fields missing from the file
// keep their defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML.
func (c Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Validate checks every field.
func (c Config) Validate() error {
	pc, err := c.Pedal()
	if err != nil {
		return err
	}
	if err := pc.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// Pedal converts c into processor settings.
func (c Config) Pedal() (pedal.Config, error) {
	w, err := osc.ParseWaveform(c.LFO.Waveform)
	if err != nil {
		return pedal.Config{}, fmt.Errorf("%w: lfo.waveform: %w", ErrInvalid, err)
	}
	return pedal.Config{
		TempoMinBPM:        c.Tempo.MinBPM,
		TempoMaxBPM:        c.Tempo.MaxBPM,
		PulsesPerBeat:      c.Tempo.PulsesPerBeat,
		BlockSize:          c.Audio.BlockSize,
		SampleRate:         c.Audio.SampleRate,
		InitialFrequencyHz: c.LFO.InitialFrequencyHz,
		Amplitude:          c.LFO.Amplitude,
		Waveform:           w,
		QueueSize:          c.MIDI.QueueSize,
	}, nil
}

// LogLevel parses Log.Level ("debug", "info", "warn", "error").
func (c Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("%w: log.level: %w", ErrInvalid, err)
	}
	return lvl, nil
}
