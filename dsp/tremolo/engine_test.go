package tremolo

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-tremolo/dsp/osc"
	"github.com/cwbudde/algo-tremolo/internal/testutil"
)

func mustEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := NewEngine(48000, opts...)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func TestEngineValidation(t *testing.T) {
	if _, err := NewEngine(0); err == nil {
		t.Fatal("NewEngine() expected error for invalid sample rate")
	}
	if _, err := NewEngine(48000, WithFrequencyHz(-1)); err == nil {
		t.Fatal("NewEngine() expected error for negative rate")
	}
	if _, err := NewEngine(48000, WithAmplitude(1.2)); err == nil {
		t.Fatal("NewEngine() expected error for invalid amplitude")
	}
	if _, err := NewEngine(48000, WithWaveform(osc.Waveform(-1))); err == nil {
		t.Fatal("NewEngine() expected error for invalid waveform")
	}
	if _, err := NewEngine(48000, WithMaxBlockSize(0)); err == nil {
		t.Fatal("NewEngine() expected error for invalid block size")
	}
}

func TestEngineDefaults(t *testing.T) {
	e := mustEngine(t)
	if e.Frequency() != 1 || e.Amplitude() != 1 || e.Waveform() != osc.WaveSine {
		t.Fatalf("defaults = %v Hz, amp %v, %v", e.Frequency(), e.Amplitude(), e.Waveform())
	}
}

func TestOnesInputReproducesOscillator(t *testing.T) {
	const freq = 3.5
	e := mustEngine(t, WithFrequencyHz(freq))
	ref, err := osc.New(48000, osc.WithFrequencyHz(freq))
	if err != nil {
		t.Fatalf("osc.New() error = %v", err)
	}

	ones := testutil.Ones(4)
	outL := make([]float64, 4)
	outR := make([]float64, 4)
	for block := 0; block < 500; block++ {
		e.ProcessBlock(outL, outR, ones, ones)
		for i := range outL {
			want := ref.Process()
			if outL[i] != want || outR[i] != want {
				t.Fatalf("block %d sample %d: L=%v R=%v want %v", block, i, outL[i], outR[i], want)
			}
		}
	}
}

func TestChannelsShareLFO(t *testing.T) {
	e := mustEngine(t, WithFrequencyHz(7))
	inL := testutil.DeterministicSine(440, 48000, 0.5, 333)
	inR := testutil.DeterministicNoise(3, 0.9, 333)
	outL := make([]float64, len(inL))
	outR := make([]float64, len(inR))

	e.ProcessBlock(outL, outR, inL, inR)

	ref, _ := osc.New(48000, osc.WithFrequencyHz(7))
	for i := range inL {
		g := ref.Process()
		if math.Abs(outL[i]-g*inL[i]) > 1e-15 || math.Abs(outR[i]-g*inR[i]) > 1e-15 {
			t.Fatalf("sample %d: channels not modulated by the same gain", i)
		}
	}
}

func TestZeroSizeBlockIsNoOp(t *testing.T) {
	e := mustEngine(t)
	e.ProcessBlock(testutil.Ones(8), testutil.Ones(8), testutil.Ones(4), testutil.Ones(4))
	phase := e.Phase()

	outL := []float64{7, 7}
	outR := []float64{9, 9}
	e.ProcessBlock(outL, outR, nil, nil)

	if e.Phase() != phase {
		t.Fatalf("phase advanced on empty block: %v -> %v", phase, e.Phase())
	}
	if outL[0] != 7 || outR[1] != 9 {
		t.Fatalf("empty block wrote output: %v %v", outL, outR)
	}
}

func TestOnlyInputLengthIsWritten(t *testing.T) {
	e := mustEngine(t)
	outL := []float64{5, 5, 5, 5, 5, 5}
	outR := []float64{5, 5, 5, 5, 5, 5}
	e.ProcessBlock(outL, outR, testutil.Ones(4), testutil.Ones(4))
	if outL[4] != 5 || outL[5] != 5 || outR[4] != 5 || outR[5] != 5 {
		t.Fatalf("wrote past block: %v %v", outL, outR)
	}
}

func TestBlockSizeDoesNotChangeOutput(t *testing.T) {
	in := testutil.DeterministicNoise(11, 1, 1000)

	whole := mustEngine(t, WithFrequencyHz(5))
	wantL := make([]float64, len(in))
	wantR := make([]float64, len(in))
	whole.ProcessBlock(wantL, wantR, in, in)

	for _, block := range []int{1, 4, 7, 64, 300} {
		e := mustEngine(t, WithFrequencyHz(5), WithMaxBlockSize(4))
		gotL := make([]float64, len(in))
		gotR := make([]float64, len(in))
		for start := 0; start < len(in); start += block {
			end := min(start+block, len(in))
			e.ProcessBlock(gotL[start:end], gotR[start:end], in[start:end], in[start:end])
		}
		testutil.RequireSliceNearlyEqual(t, gotL, wantL, 0)
		testutil.RequireSliceNearlyEqual(t, gotR, wantR, 0)
	}
}

func TestProcessInPlaceMatchesProcessBlock(t *testing.T) {
	a := mustEngine(t, WithFrequencyHz(2))
	b := mustEngine(t, WithFrequencyHz(2))

	inL := testutil.DeterministicSine(100, 48000, 1, 128)
	inR := testutil.DeterministicSine(150, 48000, 1, 128)

	wantL := make([]float64, 128)
	wantR := make([]float64, 128)
	a.ProcessBlock(wantL, wantR, inL, inR)

	gotL := append([]float64(nil), inL...)
	gotR := append([]float64(nil), inR...)
	b.ProcessInPlace(gotL, gotR)

	testutil.RequireSliceNearlyEqual(t, gotL, wantL, 0)
	testutil.RequireSliceNearlyEqual(t, gotR, wantR, 0)
}

func TestProcessSampleMatchesProcessBlock(t *testing.T) {
	a := mustEngine(t)
	b := mustEngine(t)
	in := testutil.DeterministicNoise(5, 1, 64)
	wantL := make([]float64, 64)
	wantR := make([]float64, 64)
	a.ProcessBlock(wantL, wantR, in, in)

	for i, x := range in {
		l, r := b.ProcessSample(x, -x)
		if l != wantL[i] || r != -wantR[i] {
			t.Fatalf("sample %d: got (%v, %v), want (%v, %v)", i, l, r, wantL[i], -wantR[i])
		}
	}
}

func TestSetFrequencyIsPhaseContinuous(t *testing.T) {
	e := mustEngine(t, WithFrequencyHz(1))
	ones := testutil.Ones(4)
	outL := make([]float64, 4)
	outR := make([]float64, 4)

	for i := 0; i < 1000; i++ {
		e.ProcessBlock(outL, outR, ones, ones)
	}
	last := outL[3]
	phase := e.Phase()

	if err := e.SetFrequency(2); err != nil {
		t.Fatalf("SetFrequency() error = %v", err)
	}
	if e.Phase() != phase {
		t.Fatalf("phase reset by SetFrequency: %v -> %v", phase, e.Phase())
	}

	e.ProcessBlock(outL, outR, ones, ones)
	// A jump of one sample at 2 Hz is at most 2*pi*2/48000.
	if step := math.Abs(outL[0] - last); step > 2*math.Pi*2/48000+1e-12 {
		t.Fatalf("discontinuity after rate change: %v", step)
	}
	if err := e.SetFrequency(0); err == nil {
		t.Fatal("SetFrequency(0) expected error")
	}
	if e.Frequency() != 2 {
		t.Fatalf("frequency = %v after rejected update", e.Frequency())
	}
}

func TestResetRestoresState(t *testing.T) {
	e := mustEngine(t)
	in := testutil.Impulse(96, 0)
	out1L := make([]float64, len(in))
	out1R := make([]float64, len(in))
	e.ProcessBlock(out1L, out1R, in, in)

	e.Reset()

	out2L := make([]float64, len(in))
	out2R := make([]float64, len(in))
	e.ProcessBlock(out2L, out2R, in, in)

	testutil.RequireSliceNearlyEqual(t, out2L, out1L, 0)
	testutil.RequireSliceNearlyEqual(t, out2R, out1R, 0)
}

func BenchmarkEngineProcessBlock4(b *testing.B) {
	e, _ := NewEngine(48000)
	in := testutil.DeterministicNoise(1, 1, 4)
	outL := make([]float64, 4)
	outR := make([]float64, 4)
	b.ReportAllocs()
	for b.Loop() {
		e.ProcessBlock(outL, outR, in, in)
	}
}
