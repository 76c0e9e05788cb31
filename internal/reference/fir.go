package reference

import (
	"fmt"
	"math"

	"github.com/tphakala/simd/f64"

	"github.com/vv-dsp/verify/internal/window"
)

const (
	// minFIRTaps is the shortest meaningful symmetric lowpass.
	minFIRTaps = 3

	// sincZeroThreshold guards the removable singularity at the center tap.
	sincZeroThreshold = 1e-10

	// nyquistDivisor converts a cutoff given as a fraction of Nyquist into
	// cycles per sample.
	nyquistDivisor = 2.0
)

// DesignLowpassFIR designs a windowed-sinc lowpass filter.
//
// numTaps must be odd so the filter is symmetric around a center tap.
// cutoff is a fraction of the Nyquist frequency in (0, 1). The named
// window shapes the truncated sinc; coefficients are normalized to unity
// DC gain.
func DesignLowpassFIR(numTaps int, cutoff float64, winName string) ([]float64, error) {
	if numTaps < minFIRTaps {
		return nil, fmt.Errorf("filter too short: %d taps (minimum %d)", numTaps, minFIRTaps)
	}
	if numTaps%2 == 0 {
		return nil, fmt.Errorf("tap count must be odd, got %d", numTaps)
	}
	if cutoff <= 0 || cutoff >= 1 {
		return nil, fmt.Errorf("cutoff %g out of range (0, 1)", cutoff)
	}

	win, err := window.ByName(winName, numTaps)
	if err != nil {
		return nil, err
	}

	// Cutoff in cycles per sample.
	fc := cutoff / nyquistDivisor

	h := make([]float64, numTaps)
	center := float64(numTaps-1) / 2
	for n := range h {
		x := float64(n) - center
		var sinc float64
		if math.Abs(x) < sincZeroThreshold {
			sinc = 2 * fc
		} else {
			sinc = math.Sin(2*math.Pi*fc*x) / (math.Pi * x)
		}
		h[n] = sinc * win[n]
	}

	// Normalize to unity gain at DC.
	sum := f64.Sum(h)
	if math.Abs(sum) > sincZeroThreshold {
		f64.Scale(h, h, 1/sum)
	}
	return h, nil
}

// FIRFilter applies causal direct-form convolution:
//
//	y[n] = Σ_k h[k]·x[n-k]
//
// with zero initial state, producing len(x) output samples. Both paths
// must use the identical coefficient vector; this function never designs.
func FIRFilter(h, x []float64) []float64 {
	taps := len(h)
	if taps == 0 || len(x) == 0 {
		return make([]float64, len(x))
	}

	// Reverse the kernel so each output is a contiguous dot product over a
	// zero-padded prefix of the signal.
	hr := make([]float64, taps)
	for i, v := range h {
		hr[taps-1-i] = v
	}
	padded := make([]float64, taps-1+len(x))
	copy(padded[taps-1:], x)

	y := make([]float64, len(x))
	for n := range y {
		y[n] = f64.DotProduct(hr, padded[n:n+taps])
	}
	return y
}
