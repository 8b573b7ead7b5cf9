// Package pedal wires the tempo estimator and the tremolo engine into one
// processor driven by two execution contexts.
//
// The audio context calls ProcessBlock once per fixed-size block. It is the
// only place where tempo state and the LFO frequency are read or written.
// The MIDI context calls HandleMIDI for every incoming message; timing clock
// pulses are time-stamped there and handed to the audio context through a
// bounded channel. Neither side ever blocks: a full queue drops the pulse and
// counts it.
package pedal
