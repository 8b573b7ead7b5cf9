package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// Deinterleave splits interleaved stereo frames into left and right.
// It returns the number of frames written.
func Deinterleave(left, right, interleaved []float64) int {
	n := min(len(interleaved)/2, len(left), len(right))
	for i := 0; i < n; i++ {
		left[i] = interleaved[2*i]
		right[i] = interleaved[2*i+1]
	}
	return n
}

// Interleave merges left and right into interleaved stereo frames.
// It returns the number of frames written.
func Interleave(interleaved, left, right []float64) int {
	n := min(len(interleaved)/2, len(left), len(right))
	for i := 0; i < n; i++ {
		interleaved[2*i] = left[i]
		interleaved[2*i+1] = right[i]
	}
	return n
}
