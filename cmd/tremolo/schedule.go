package main

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

type eventKind uint8

const (
	eventClock eventKind = iota
	eventTap
)

// event is a timed input for offline rendering.
type event struct {
	ms   uint32
	kind eventKind
}

// schedule is a list of events sorted by time. At equal times clock pulses
// come first, matching the order the processor handles them in a block.
type schedule []event

func newSchedule(taps, clock []uint32) schedule {
	s := make(schedule, 0, len(taps)+len(clock))
	for _, ms := range clock {
		s = append(s, event{ms: ms, kind: eventClock})
	}
	for _, ms := range taps {
		s = append(s, event{ms: ms, kind: eventTap})
	}
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].ms != s[j].ms {
			return s[i].ms < s[j].ms
		}
		return s[i].kind < s[j].kind
	})
	return s
}

// parseTaps parses a comma-separated list of millisecond timestamps.
func parseTaps(list string) ([]uint32, error) {
	list = strings.TrimSpace(list)
	if list == "" {
		return nil, nil
	}
	parts := strings.Split(list, ",")
	taps := make([]uint32, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("taps: %q is not a millisecond time: %w", p, err)
		}
		taps = append(taps, uint32(v))
	}
	return taps, nil
}

// clockTimes returns pulse timestamps at ppq pulses per beat from fromMs up
// to but excluding toMs. Pulses must be at least 1 ms apart, since
// timestamps have millisecond resolution.
func clockTimes(bpm float64, ppq int, fromMs, toMs uint32) ([]uint32, error) {
	if bpm <= 0 || math.IsNaN(bpm) || math.IsInf(bpm, 0) {
		return nil, fmt.Errorf("midi clock: bpm must be > 0: %v", bpm)
	}
	if ppq <= 0 {
		return nil, fmt.Errorf("midi clock: pulses per beat must be > 0: %d", ppq)
	}
	if toMs <= fromMs {
		return nil, nil
	}
	interval := 60000 / (bpm * float64(ppq))
	if interval < 1 {
		return nil, fmt.Errorf("midi clock: %v BPM at %d PPQN is faster than one pulse per ms", bpm, ppq)
	}
	var out []uint32
	for i := 0; ; i++ {
		t := float64(fromMs) + float64(i)*interval
		ms := uint32(math.Round(t))
		if ms >= toMs {
			return out, nil
		}
		out = append(out, ms)
	}
}
