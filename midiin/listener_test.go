package midiin

import (
	"errors"
	"testing"

	"gitlab.com/gomidi/midi/v2"
)

type countingHandler struct {
	seen int
}

func (h *countingHandler) HandleMIDI(msg midi.Message) bool {
	h.seen++
	return len(msg) == 1 && msg[0] == 0xF8
}

func TestMatchPort(t *testing.T) {
	names := []string{"Midi Through:0", "Daisy Seed:1", "daisy pod:2"}

	tests := []struct {
		prefix string
		want   int
	}{
		{"", 0},
		{"daisy", 1},
		{"DAISY POD", 2},
		{"midi", 0},
	}
	for _, tt := range tests {
		got, err := matchPort(names, tt.prefix)
		if err != nil || got != tt.want {
			t.Errorf("matchPort(%q) = %d, %v, want %d", tt.prefix, got, err, tt.want)
		}
	}

	if _, err := matchPort(names, "korg"); !errors.Is(err, ErrNoPort) {
		t.Fatalf("matchPort(korg) = %v, want ErrNoPort", err)
	}
	if _, err := matchPort(nil, ""); !errors.Is(err, ErrNoPort) {
		t.Fatalf("matchPort(nil) = %v, want ErrNoPort", err)
	}
}

func TestListenerForwardsAndCounts(t *testing.T) {
	h := &countingHandler{}
	l := &Listener{name: "test", handler: h}

	l.receive(midi.Message{0xF8}, 0)
	l.receive(midi.Message{0xFA}, 1)
	l.receive(midi.Message{0xF8}, 2)

	if h.seen != 3 || l.Received() != 3 || l.Accepted() != 2 {
		t.Fatalf("seen=%d received=%d accepted=%d", h.seen, l.Received(), l.Accepted())
	}
}

func TestListenerCloseOnce(t *testing.T) {
	stops, closes := 0, 0
	l := &Listener{
		name:    "test",
		stop:    func() { stops++ },
		closeFn: func() error { closes++; return errors.New("boom") },
	}
	if err := l.Close(); err == nil {
		t.Fatal("Close() dropped the port error")
	}
	if err := l.Close(); err != nil {
		t.Fatalf("second Close() = %v", err)
	}
	if stops != 1 || closes != 1 {
		t.Fatalf("stops=%d closes=%d", stops, closes)
	}
}
