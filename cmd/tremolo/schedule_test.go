package main

import (
	"reflect"
	"testing"
)

func TestParseTaps(t *testing.T) {
	got, err := parseTaps(" 0, 500,1000 ")
	if err != nil {
		t.Fatalf("parseTaps() error = %v", err)
	}
	if want := []uint32{0, 500, 1000}; !reflect.DeepEqual(got, want) {
		t.Fatalf("parseTaps() = %v, want %v", got, want)
	}
	if got, err := parseTaps(""); err != nil || got != nil {
		t.Fatalf("parseTaps(\"\") = %v, %v", got, err)
	}
	for _, bad := range []string{"1,,2", "-5", "abc", "4294967296"} {
		if _, err := parseTaps(bad); err == nil {
			t.Errorf("parseTaps(%q) accepted", bad)
		}
	}
}

func TestClockTimes(t *testing.T) {
	got, err := clockTimes(120, 24, 1000, 2001)
	if err != nil {
		t.Fatalf("clockTimes() error = %v", err)
	}
	if len(got) != 49 {
		t.Fatalf("len = %d, want 49", len(got))
	}
	if got[0] != 1000 || got[24] != 1500 || got[48] != 2000 {
		t.Fatalf("beats at %d, %d, %d", got[0], got[24], got[48])
	}

	if got, _ := clockTimes(120, 24, 5, 5); got != nil {
		t.Fatalf("empty range = %v", got)
	}
	if _, err := clockTimes(0, 24, 0, 100); err == nil {
		t.Fatal("bpm 0 accepted")
	}
	if _, err := clockTimes(120, 0, 0, 100); err == nil {
		t.Fatal("ppq 0 accepted")
	}
	if _, err := clockTimes(1e9, 24, 0, 4000000000); err == nil {
		t.Fatal("sub-millisecond pulse interval accepted")
	}
	// 2500 BPM at 24 PPQN is exactly one pulse per millisecond.
	got, err = clockTimes(2500, 24, 0, 10)
	if err != nil || len(got) != 10 {
		t.Fatalf("1 ms pulses = %v, %v", got, err)
	}
}

func TestNewScheduleOrdersClockBeforeTap(t *testing.T) {
	s := newSchedule([]uint32{20, 0}, []uint32{20, 10})
	want := schedule{
		{ms: 0, kind: eventTap},
		{ms: 10, kind: eventClock},
		{ms: 20, kind: eventClock},
		{ms: 20, kind: eventTap},
	}
	if !reflect.DeepEqual(s, want) {
		t.Fatalf("schedule = %v, want %v", s, want)
	}
}
