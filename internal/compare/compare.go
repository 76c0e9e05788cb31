// Package compare judges numerical agreement between a subject result and
// its reference under the harness tolerance rule.
//
// The primary check is element-wise: |a-b| <= atol + rtol*|b|. An
// energy-based RMS fallback exists for families whose design makes exact
// sample-wise agreement unattainable, such as lossy short-time
// reconstruction; it catches gross errors without demanding phase-exact
// boundaries.
package compare

import (
	"fmt"
	"math"

	"github.com/tphakala/simd/f64"
)

// rmsToleranceFloor is the minimum tolerance applied by the RMS fallback.
const rmsToleranceFloor = 5e-2

// Tolerance is a relative/absolute tolerance pair.
type Tolerance struct {
	Rtol float64
	Atol float64
}

// Error reports a tolerance violation with enough detail for a verbose
// diagnostic before the driver fails.
type Error struct {
	Index   int     // first offending element
	Got     float64 // subject value at Index
	Want    float64 // reference value at Index
	MaxDiff float64 // maximum absolute difference over the sequence
	N       int     // sequence length
}

func (e *Error) Error() string {
	return fmt.Sprintf("mismatch at index %d of %d: got %g want %g (max |diff|=%g)",
		e.Index, e.N, e.Got, e.Want, e.MaxDiff)
}

// AllClose checks element-wise agreement of two same-length real
// sequences. A length mismatch is an immediate error: lengths must already
// agree after any family-defined truncation.
func AllClose(got, want []float64, tol Tolerance) error {
	if len(got) != len(want) {
		return fmt.Errorf("length mismatch: got %d want %d", len(got), len(want))
	}

	bad := -1
	var maxDiff float64
	for i := range want {
		diff := math.Abs(got[i] - want[i])
		if diff > maxDiff {
			maxDiff = diff
		}
		if bad < 0 && diff > tol.Atol+tol.Rtol*math.Abs(want[i]) {
			bad = i
		}
	}
	if bad >= 0 {
		return &Error{Index: bad, Got: got[bad], Want: want[bad], MaxDiff: maxDiff, N: len(want)}
	}
	return nil
}

// AllCloseComplex checks complex sequences by validating real and
// imaginary parts independently under the same rule.
func AllCloseComplex(got, want []complex128, tol Tolerance) error {
	if len(got) != len(want) {
		return fmt.Errorf("length mismatch: got %d want %d", len(got), len(want))
	}

	gr, gi := splitComplex(got)
	wr, wi := splitComplex(want)
	if err := AllClose(gr, wr, tol); err != nil {
		return fmt.Errorf("real part: %w", err)
	}
	if err := AllClose(gi, wi, tol); err != nil {
		return fmt.Errorf("imaginary part: %w", err)
	}
	return nil
}

// RMSClose compares the root-mean-square amplitudes of two sequences under
// a floor-relaxed tolerance. Used as a fallback where sample-wise
// agreement cannot hold; it asserts "same energy" without masking gross
// errors.
func RMSClose(got, want []float64, tol Tolerance) error {
	rtol := math.Max(tol.Rtol, rmsToleranceFloor)
	atol := math.Max(tol.Atol, rmsToleranceFloor)

	gr := RMS(got)
	wr := RMS(want)
	if math.Abs(gr-wr) > atol+rtol*math.Abs(wr) {
		return fmt.Errorf("RMS mismatch: got %g want %g (rtol=%g atol=%g)", gr, wr, rtol, atol)
	}
	return nil
}

// RMS returns the root-mean-square amplitude of a sequence.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	sumSq := f64.DotProduct(x, x)
	return math.Sqrt(sumSq / float64(len(x)))
}

func splitComplex(x []complex128) (re, im []float64) {
	re = make([]float64, len(x))
	im = make([]float64, len(x))
	for i, v := range x {
		re[i] = real(v)
		im[i] = imag(v)
	}
	return re, im
}
