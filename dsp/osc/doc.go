// Package osc provides a continuous-phase low-frequency oscillator.
//
// The oscillator keeps a normalized phase accumulator in [0, 1). Changing
// the frequency only changes the per-sample increment, so rate changes never
// reset the phase and never produce a discontinuity beyond the waveform's own
// shape.
package osc
