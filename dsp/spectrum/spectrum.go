package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Magnitude returns |X[k]| for each complex bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	re := make([]float64, len(in))
	im := make([]float64, len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
	out := make([]float64, len(in))
	vecmath.Magnitude(out, re, im)
	return out
}

// RealMagnitude zero-pads x to fftSize, transforms it and returns the
// fftSize/2+1 magnitudes from DC to Nyquist. fftSize must be a power of two
// no smaller than len(x).
func RealMagnitude(x []float64, fftSize int) ([]float64, error) {
	if fftSize < len(x) || fftSize&(fftSize-1) != 0 || fftSize < 2 {
		return nil, fmt.Errorf("spectrum: fft size must be a power of two >= %d: %d", len(x), fftSize)
	}
	in := make([]complex128, fftSize)
	for i, v := range x {
		in[i] = complex(v, 0)
	}
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: fft plan: %w", err)
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("spectrum: fft: %w", err)
	}
	return Magnitude(out[:fftSize/2+1]), nil
}

// Peak returns the index of the largest value in mag[lo..hi], inclusive.
// ok is false when the range is empty or holds no positive value.
func Peak(mag []float64, lo, hi int) (idx int, ok bool) {
	lo = max(lo, 0)
	hi = min(hi, len(mag)-1)
	if lo > hi {
		return 0, false
	}
	idx = lo
	for i := lo + 1; i <= hi; i++ {
		if mag[i] > mag[idx] {
			idx = i
		}
	}
	return idx, mag[idx] > 0
}

// InterpolatePeak refines peak k by fitting a parabola through its
// neighbours. It returns the fractional bin position; edges are returned
// unchanged.
func InterpolatePeak(mag []float64, k int) float64 {
	if k <= 0 || k >= len(mag)-1 {
		return float64(k)
	}
	return float64(k) + parabolicOffset(mag[k-1], mag[k], mag[k+1])
}

// parabolicOffset returns the vertex offset in bins, in [-0.5, 0.5].
func parabolicOffset(a, b, c float64) float64 {
	den := a - 2*b + c
	if den == 0 {
		return 0
	}
	p := 0.5 * (a - c) / den
	return math.Max(-0.5, math.Min(0.5, p))
}

// NextPowerOf2 returns the smallest power of two >= n.
func NextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
