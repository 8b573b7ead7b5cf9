// Package tempo turns trigger intervals into LFO rates.
//
// Two trigger sources share one estimator: a tap-tempo button, where every
// press is a trigger, and MIDI timing clock, where every PulsesPerBeat-th
// pulse is a trigger. The interval since the previous trigger is converted to
// whole beats per minute with integer division; estimates inside the
// configured tempo range become a frequency of bpm/60 Hz, everything else is
// discarded and the previous frequency stays in effect.
//
// An Estimator is not safe for concurrent use. It is meant to live inside the
// audio callback; see package pedal for how MIDI clock reaches it.
package tempo
