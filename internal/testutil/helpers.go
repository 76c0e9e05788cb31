// Package testutil provides reusable test helper functions for the
// validation harness tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// halfDivisor is used for finding center indices in symmetric arrays.
const halfDivisor = 2

// AssertAllClose verifies element-wise agreement under the harness
// tolerance rule |a-b| <= atol + rtol*|b|.
func AssertAllClose(t *testing.T, got, want []float64, rtol, atol float64) bool {
	t.Helper()
	if !assert.Len(t, got, len(want), "length mismatch") {
		return false
	}
	for i := range want {
		diff := math.Abs(got[i] - want[i])
		bound := atol + rtol*math.Abs(want[i])
		if diff > bound {
			return assert.Fail(t, "sequences differ",
				"index %d: got %g want %g (|diff|=%g > %g)", i, got[i], want[i], diff, bound)
		}
	}
	return true
}

// AssertComplexAllClose verifies element-wise agreement of complex
// sequences, checking real and imaginary parts independently.
func AssertComplexAllClose(t *testing.T, got, want []complex128, rtol, atol float64) bool {
	t.Helper()
	if !assert.Len(t, got, len(want), "length mismatch") {
		return false
	}
	for i := range want {
		dr := math.Abs(real(got[i]) - real(want[i]))
		di := math.Abs(imag(got[i]) - imag(want[i]))
		br := atol + rtol*math.Abs(real(want[i]))
		bi := atol + rtol*math.Abs(imag(want[i]))
		if dr > br || di > bi {
			return assert.Fail(t, "complex sequences differ",
				"index %d: got %v want %v", i, got[i], want[i])
		}
	}
	return true
}

// AssertSymmetric verifies that a slice is symmetric (s[i] == s[n-1-i]).
func AssertSymmetric(t *testing.T, s []float64, tolerance float64) bool {
	t.Helper()
	n := len(s)
	for i := 0; i < n/halfDivisor; i++ {
		j := n - 1 - i
		if !assert.InDelta(t, s[i], s[j], tolerance,
			"slice not symmetric: s[%d]=%f != s[%d]=%f", i, s[i], j, s[j]) {
			return false
		}
	}
	return true
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [minVal, maxVal].
func AssertAllInRange(t *testing.T, s []float64, minVal, maxVal float64) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, v, minVal, maxVal)
		}
	}
	return true
}
