// Package wavio reads and writes stereo PCM WAV files as float64 channels.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-tremolo/dsp/core"
)

var (
	// ErrNotWAV is returned for input that is not a RIFF/WAVE file.
	ErrNotWAV = errors.New("wavio: not a wav file")
	// ErrNotStereo is returned for files with more than two channels.
	ErrNotStereo = errors.New("wavio: more than two channels")
)

// DefaultBitDepth is used by Write when Audio.BitDepth is zero.
const DefaultBitDepth = 16

// Audio is a decoded stereo signal in [-1, 1].
type Audio struct {
	SampleRate int
	// BitDepth is the depth Write uses. Decoded 8-bit files report 16.
	BitDepth int
	Left     []float64
	Right    []float64
}

// Frames returns the number of sample frames.
func (a Audio) Frames() int { return len(a.Left) }

// Duration returns the signal length in seconds.
func (a Audio) Duration() float64 {
	if a.SampleRate <= 0 {
		return 0
	}
	return float64(a.Frames()) / float64(a.SampleRate)
}

// Read decodes the WAV file at path. Mono input is copied to both channels.
func Read(path string) (Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return Audio{}, fmt.Errorf("wavio: open %s: %w", path, err)
	}
	defer f.Close()

	a, err := Decode(f)
	if err != nil {
		return Audio{}, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// Decode reads a complete WAV stream.
func Decode(r io.ReadSeeker) (Audio, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return Audio{}, ErrNotWAV
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return Audio{}, fmt.Errorf("wavio: decode: %w", err)
	}

	channels := int(d.NumChans)
	switch {
	case channels > 2:
		return Audio{}, fmt.Errorf("%w: %d", ErrNotStereo, channels)
	case channels < 1:
		return Audio{}, fmt.Errorf("wavio: invalid channel count %d", channels)
	}
	bitDepth := int(d.BitDepth)
	if bitDepth <= 0 {
		return Audio{}, fmt.Errorf("wavio: unknown bit depth")
	}

	scale := 1 / math.Pow(2, float64(bitDepth-1))
	// 8-bit PCM is unsigned, centred on 128. It is written back as 16-bit.
	offset, outDepth := 0, bitDepth
	if bitDepth == 8 {
		offset, outDepth = 128, DefaultBitDepth
	}
	frames := len(buf.Data) / channels
	a := Audio{
		SampleRate: int(d.SampleRate),
		BitDepth:   outDepth,
		Left:       make([]float64, frames),
		Right:      make([]float64, frames),
	}
	for i := 0; i < frames; i++ {
		l := float64(buf.Data[i*channels]-offset) * scale
		r := l
		if channels == 2 {
			r = float64(buf.Data[i*channels+1]-offset) * scale
		}
		a.Left[i] = l
		a.Right[i] = r
	}
	return a, nil
}

// Write encodes a to path, creating or truncating the file.
func Write(path string, a Audio) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavio: create %s: %w", path, err)
	}
	if err := Encode(f, a); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("wavio: close %s: %w", path, err)
	}
	return nil
}

// Encode writes a as interleaved stereo integer PCM. Samples are clamped to
// [-1, 1].
func Encode(w io.WriteSeeker, a Audio) error {
	if len(a.Left) != len(a.Right) {
		return fmt.Errorf("wavio: channel length mismatch: %d vs %d", len(a.Left), len(a.Right))
	}
	if a.SampleRate <= 0 {
		return fmt.Errorf("wavio: sample rate must be > 0: %d", a.SampleRate)
	}
	bitDepth := a.BitDepth
	if bitDepth == 0 {
		bitDepth = DefaultBitDepth
	}
	switch bitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("wavio: unsupported bit depth %d", bitDepth)
	}

	full := math.Pow(2, float64(bitDepth-1)) - 1
	interleaved := make([]float64, 2*len(a.Left))
	core.Interleave(interleaved, a.Left, a.Right)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 2,
			SampleRate:  a.SampleRate,
		},
		Data:           make([]int, len(interleaved)),
		SourceBitDepth: bitDepth,
	}
	for i, v := range interleaved {
		buf.Data[i] = int(math.Round(core.Clamp(v, -1, 1) * full))
	}

	enc := wav.NewEncoder(w, a.SampleRate, bitDepth, 2, 1)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavio: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavio: encode: %w", err)
	}
	return nil
}
