package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	if got := Clamp(2, 0, 1); got != 1 {
		t.Fatalf("Clamp high = %v", got)
	}
	if got := Clamp(-2, 0, 1); got != 0 {
		t.Fatalf("Clamp low = %v", got)
	}
	if got := Clamp(0.5, 1, 0); got != 0.5 {
		t.Fatalf("Clamp swapped bounds = %v", got)
	}
}

func TestFinitePredicates(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if IsFinite(v) || IsFinitePositive(v) || InUnitRange(v) {
			t.Fatalf("%v reported finite", v)
		}
	}
	if IsFinitePositive(0) {
		t.Fatal("0 reported positive")
	}
	if !InUnitRange(0) || !InUnitRange(1) || InUnitRange(1.0001) {
		t.Fatal("unit range bounds wrong")
	}
}

func TestWrap01(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{0.25, 0.25},
		{1, 0},
		{1.5, 0.5},
		{-0.25, 0.75},
	}
	for _, tt := range tests {
		if got := Wrap01(tt.in); !NearlyEqual(got, tt.want, 1e-12) {
			t.Errorf("Wrap01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
