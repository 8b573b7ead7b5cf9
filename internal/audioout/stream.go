// Package audioout plays a pedal processor live through the system audio
// device.
package audioout

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cwbudde/algo-tremolo/dsp/osc"
)

// BlockProcessor is the audio callback being played; *pedal.Processor
// implements it.
type BlockProcessor interface {
	ProcessBlock(out, in [2][]float64, buttonEdge bool)
}

// EdgeSource is polled once per block for a button edge; *pedal.Button
// implements it.
type EdgeSource interface {
	RisingEdge() bool
}

// Input supplies the dry signal, one block at a time.
type Input interface {
	Fill(left, right []float64)
}

// BytesPerFrame is the size of one interleaved float32 stereo frame.
const BytesPerFrame = 8

// Stream is an io.Reader producing interleaved little-endian float32
// stereo. Each block it reads the input, samples the button and runs the
// processor; the reader never blocks on either.
type Stream struct {
	proc   BlockProcessor
	input  Input
	button EdgeSource

	in, out [2][]float64
	buf     []byte
	pending []byte
	blocks  uint64
}

// NewStream builds a stream that calls proc with blocks of blockSize frames.
// button may be nil.
func NewStream(proc BlockProcessor, input Input, button EdgeSource, blockSize int) (*Stream, error) {
	if proc == nil || input == nil {
		return nil, fmt.Errorf("audioout: processor and input are required")
	}
	if blockSize <= 0 {
		return nil, fmt.Errorf("audioout: block size must be > 0: %d", blockSize)
	}
	s := &Stream{proc: proc, input: input, button: button}
	for ch := range 2 {
		s.in[ch] = make([]float64, blockSize)
		s.out[ch] = make([]float64, blockSize)
	}
	s.buf = make([]byte, blockSize*BytesPerFrame)
	return s, nil
}

// Read fills p with whole or partial frames. It never returns an error.
func (s *Stream) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(s.pending) == 0 {
			s.render()
		}
		c := copy(p[n:], s.pending)
		s.pending = s.pending[c:]
		n += c
	}
	return n, nil
}

// Blocks returns how many blocks have been processed.
func (s *Stream) Blocks() uint64 { return s.blocks }

func (s *Stream) render() {
	s.input.Fill(s.in[0], s.in[1])
	edge := s.button != nil && s.button.RisingEdge()
	s.proc.ProcessBlock(s.out, s.in, edge)
	s.blocks++

	for i := range s.out[0] {
		binary.LittleEndian.PutUint32(s.buf[i*BytesPerFrame:], math.Float32bits(float32(s.out[0][i])))
		binary.LittleEndian.PutUint32(s.buf[i*BytesPerFrame+4:], math.Float32bits(float32(s.out[1][i])))
	}
	s.pending = s.buf
}

// Loop repeats a stereo recording forever.
type Loop struct {
	left, right []float64
	pos         int
}

// NewLoop returns an input cycling through left and right, which must have
// the same non-zero length.
func NewLoop(left, right []float64) (*Loop, error) {
	if len(left) == 0 || len(left) != len(right) {
		return nil, fmt.Errorf("audioout: loop needs equal non-empty channels, got %d and %d", len(left), len(right))
	}
	return &Loop{left: left, right: right}, nil
}

// Fill copies the next frames, wrapping at the end.
func (l *Loop) Fill(left, right []float64) {
	for i := range left {
		left[i] = l.left[l.pos]
		right[i] = l.right[l.pos]
		l.pos++
		if l.pos == len(l.left) {
			l.pos = 0
		}
	}
}

// Tone is a steady sine carrier on both channels.
type Tone struct {
	osc *osc.Oscillator
}

// NewTone returns a sine carrier at hz with the given amplitude.
func NewTone(sampleRate, hz, amplitude float64) (*Tone, error) {
	o, err := osc.New(sampleRate, osc.WithFrequencyHz(hz), osc.WithAmplitude(amplitude))
	if err != nil {
		return nil, fmt.Errorf("audioout: tone: %w", err)
	}
	return &Tone{osc: o}, nil
}

// Fill renders the next frames.
func (t *Tone) Fill(left, right []float64) {
	t.osc.ProcessBlock(left)
	copy(right, left)
}
