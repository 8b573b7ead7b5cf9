package spectrum

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-tremolo/internal/testutil"
)

func TestMagnitude(t *testing.T) {
	got := Magnitude([]complex128{3 + 4i, -1, 2i})
	testutil.RequireSliceNearlyEqual(t, got, []float64{5, 1, 2}, 1e-12)
	if Magnitude(nil) != nil {
		t.Fatal("Magnitude(nil) != nil")
	}
}

func TestRealMagnitudeFindsTone(t *testing.T) {
	const n = 256
	x := testutil.DeterministicSine(16, n, 1, n) // bin 16 exactly
	mag, err := RealMagnitude(x, n)
	if err != nil {
		t.Fatalf("RealMagnitude() error = %v", err)
	}
	if len(mag) != n/2+1 {
		t.Fatalf("len = %d", len(mag))
	}
	k, ok := Peak(mag, 1, len(mag)-1)
	if !ok || k != 16 {
		t.Fatalf("Peak() = %d, %v, want 16", k, ok)
	}
	testutil.RequireNearlyEqual(t, "peak magnitude", mag[16], n/2, 1e-9)
}

func TestRealMagnitudeRejectsSizes(t *testing.T) {
	for _, size := range []int{0, 3, 100, 4} {
		if _, err := RealMagnitude(make([]float64, 8), size); err == nil {
			t.Errorf("size %d accepted", size)
		}
	}
}

func TestPeakRanges(t *testing.T) {
	mag := []float64{9, 1, 3, 2}
	if k, ok := Peak(mag, 1, 3); !ok || k != 2 {
		t.Fatalf("Peak(1,3) = %d, %v", k, ok)
	}
	if _, ok := Peak(mag, 3, 1); ok {
		t.Fatal("empty range reported a peak")
	}
	if _, ok := Peak([]float64{0, 0}, 0, 1); ok {
		t.Fatal("silence reported a peak")
	}
	if k, ok := Peak(mag, -5, 99); !ok || k != 0 {
		t.Fatalf("clamped range = %d, %v", k, ok)
	}
}

func TestInterpolatePeak(t *testing.T) {
	// Samples of -(x-2.25)^2 + 10 at x = 1, 2, 3.
	f := func(x float64) float64 { return 10 - (x-2.25)*(x-2.25) }
	mag := []float64{f(0), f(1), f(2), f(3), f(4)}
	if got := InterpolatePeak(mag, 2); math.Abs(got-2.25) > 1e-12 {
		t.Fatalf("InterpolatePeak() = %v, want 2.25", got)
	}
	if got := InterpolatePeak(mag, 0); got != 0 {
		t.Fatalf("edge = %v", got)
	}
	if got := InterpolatePeak([]float64{1, 1, 1}, 1); got != 1 {
		t.Fatalf("flat = %v", got)
	}
}

func TestNextPowerOf2(t *testing.T) {
	for in, want := range map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 1000: 1024, 1024: 1024} {
		if got := NextPowerOf2(in); got != want {
			t.Errorf("NextPowerOf2(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestParabolicOffset(t *testing.T) {
	if got := parabolicOffset(1, 2, 1); got != 0 {
		t.Fatalf("symmetric peak offset = %v", got)
	}
	if got := parabolicOffset(0, 1, 1); got <= 0 || got > 0.5 {
		t.Fatalf("right-leaning offset = %v", got)
	}
}
