package core

import "testing"

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(96000), WithBlockSize(64))
	if cfg.SampleRate != 96000 {
		t.Fatalf("sample rate = %v, want 96000", cfg.SampleRate)
	}
	if cfg.BlockSize != 64 {
		t.Fatalf("block size = %d, want 64", cfg.BlockSize)
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(0), WithBlockSize(-1), nil)
	def := DefaultProcessorConfig()
	if cfg != def {
		t.Fatalf("cfg = %#v, want %#v", cfg, def)
	}
}

func TestBlockPeriod(t *testing.T) {
	cfg := DefaultProcessorConfig()
	got := cfg.BlockPeriodSeconds()
	if !NearlyEqual(got, 4.0/48000, 1e-15) {
		t.Fatalf("block period = %g, want %g", got, 4.0/48000)
	}
}

func TestSamplesToMs(t *testing.T) {
	cfg := DefaultProcessorConfig()
	tests := []struct {
		frames int64
		want   uint32
	}{
		{0, 0},
		{-10, 0},
		{47, 0},
		{48, 1},
		{48000, 1000},
		{96047, 2000},
	}
	for _, tt := range tests {
		if got := cfg.SamplesToMs(tt.frames); got != tt.want {
			t.Errorf("SamplesToMs(%d) = %d, want %d", tt.frames, got, tt.want)
		}
	}
}
