package reference

import "math"

// ResampleLinearLength is the output length contract for rational
// resampling with endpoint mapping: floor((n-1)·ratio) + 1.
func ResampleLinearLength(n, num, den int) int {
	if n == 0 {
		return 0
	}
	ratio := float64(num) / float64(den)
	return int(math.Floor(float64(n-1)*ratio)) + 1
}

// ResampleLinear resamples x by the rational ratio num/den using linear
// interpolation at fractional source indices, clamped at the signal
// boundaries.
func ResampleLinear(x []float64, num, den int) []float64 {
	n := len(x)
	outLen := ResampleLinearLength(n, num, den)
	out := make([]float64, outLen)
	if outLen == 0 {
		return out
	}

	ratio := float64(num) / float64(den)
	for i := range out {
		pos := float64(i) / ratio
		i0 := int(math.Floor(pos))
		frac := pos - float64(i0)

		i0c := clampIndex(i0, n)
		i1c := clampIndex(i0+1, n)
		out[i] = (1-frac)*x[i0c] + frac*x[i1c]
	}
	return out
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}
