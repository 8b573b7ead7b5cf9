// Package testutil holds deterministic signals, clock schedules and
// tolerance checks shared by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a sine wave starting at phase zero.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	return DC(1.0, n)
}

// Stereo returns independent copies of signal for the left and right channel.
func Stereo(signal []float64) (left, right []float64) {
	left = append([]float64(nil), signal...)
	right = append([]float64(nil), signal...)
	return left, right
}

// ClockTickTimes returns millisecond timestamps of MIDI timing clock pulses
// for beats quarter notes at bpm, starting after startMs. The last pulse of
// every beat lands exactly on the beat boundary.
func ClockTickTimes(startMs uint32, bpm float64, beats, ppq int) []uint32 {
	if bpm <= 0 || beats <= 0 || ppq <= 0 {
		return nil
	}
	beatMs := 60000 / bpm
	out := make([]uint32, 0, beats*ppq)
	for b := 0; b < beats; b++ {
		for p := 1; p <= ppq; p++ {
			offset := beatMs*float64(b) + beatMs*float64(p)/float64(ppq)
			out = append(out, startMs+uint32(math.Round(offset)))
		}
	}
	return out
}
