package pedal

import "gitlab.com/gomidi/midi/v2"

// IsRealTime reports whether msg is a single-byte System Real-Time message
// (status 0xF8..0xFF).
func IsRealTime(msg midi.Message) bool {
	return len(msg) == 1 && msg[0] >= 0xF8
}

// HandleMIDI inspects one incoming message. Only System Real-Time timing
// clock is acted on: it is stamped with the current clock time and queued
// for the next audio block. Start, Stop, Continue and all channel messages
// are ignored. The result reports whether the pulse was queued.
func (p *Processor) HandleMIDI(msg midi.Message) bool {
	if !IsRealTime(msg) || !msg.Is(midi.TimingClockMsg) {
		return false
	}
	return p.enqueueTick(p.clock.NowMs())
}

// HandleMIDIBytes is HandleMIDI for raw wire bytes.
func (p *Processor) HandleMIDIBytes(b []byte) bool {
	return p.HandleMIDI(midi.Message(b))
}
