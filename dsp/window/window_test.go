package window

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-tremolo/internal/testutil"
)

func TestGenerateSymmetricEndpoints(t *testing.T) {
	for _, tc := range []struct {
		typ       Type
		edge, mid float64
	}{
		{TypeRectangular, 1, 1},
		{TypeHann, 0, 1},
		{TypeHamming, 0.08, 1},
		{TypeBlackman, 0, 1},
	} {
		w := Generate(tc.typ, 9)
		testutil.RequireNearlyEqual(t, tc.typ.String()+" first", w[0], tc.edge, 1e-12)
		testutil.RequireNearlyEqual(t, tc.typ.String()+" last", w[8], tc.edge, 1e-12)
		testutil.RequireNearlyEqual(t, tc.typ.String()+" centre", w[4], tc.mid, 1e-12)
	}
}

func TestGeneratePeriodicHann(t *testing.T) {
	w := Generate(TypeHann, 4, WithPeriodic())
	testutil.RequireSliceNearlyEqual(t, w, []float64{0, 0.5, 1, 0.5}, 1e-12)
	testutil.RequireNearlyEqual(t, "coherent gain", CoherentGain(w), 0.5, 1e-12)
}

func TestGenerateDegenerate(t *testing.T) {
	if w := Generate(TypeHann, 0); w != nil {
		t.Fatalf("Generate(0) = %v", w)
	}
	if w := Generate(TypeHann, 1); len(w) != 1 || w[0] != 1 {
		t.Fatalf("Generate(1) = %v", w)
	}
	if w := Generate(Type(99), 3); w[0] != 1 || w[2] != 1 {
		t.Fatalf("unknown type = %v", w)
	}
}

func TestApply(t *testing.T) {
	buf := testutil.Ones(5)
	Apply(TypeHann, buf)
	testutil.RequireSliceNearlyEqual(t, buf, Generate(TypeHann, 5), 0)

	if err := ApplyCoefficientsInPlace(buf, []float64{1}); err == nil {
		t.Fatal("length mismatch accepted")
	}
	x := []float64{2, 4}
	if err := ApplyCoefficientsInPlace(x, []float64{0.5, 0.25}); err != nil || x[0] != 1 || x[1] != 1 {
		t.Fatalf("ApplyCoefficientsInPlace = %v, %v", x, err)
	}
}

func TestParseType(t *testing.T) {
	for typ, name := range typeNames {
		got, err := ParseType(" " + name + " ")
		if err != nil || got != typ {
			t.Fatalf("ParseType(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseType("kaiser"); err == nil {
		t.Fatal("unknown name accepted")
	}
	if s := Type(42).String(); s != "Type(42)" {
		t.Fatalf("String() = %q", s)
	}
}

func TestBlackmanSumsToCoherentGain(t *testing.T) {
	w := Generate(TypeBlackman, 4096, WithPeriodic())
	if g := CoherentGain(w); math.Abs(g-0.42) > 1e-9 {
		t.Fatalf("coherent gain = %v, want 0.42", g)
	}
}
