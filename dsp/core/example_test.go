package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-tremolo/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(44100),
		core.WithBlockSize(256),
	)

	fmt.Printf("sampleRate=%.0f blockSize=%d\n", cfg.SampleRate, cfg.BlockSize)

	// Output:
	// sampleRate=44100 blockSize=256
}

func ExampleInterleave() {
	left := []float64{1, 2}
	right := []float64{-1, -2}
	frames := make([]float64, 4)

	n := core.Interleave(frames, left, right)
	fmt.Println(n, frames)

	core.Zero(left)
	core.Deinterleave(left, right, frames)
	fmt.Println(left, right)

	// Output:
	// 2 [1 -1 2 -2]
	// [1 2] [-1 -2]
}
