package reference

// Biquad holds the coefficients of a second-order section with implicit
// a0 = 1. The subject applies it in direct-form-II-transposed; the
// reference applies the equivalent rational transfer-function recursion
//
//	y[n] = b0·x[n] + b1·x[n-1] + b2·x[n-2] + a1·y[n-1] + a2·y[n-2]
//
// (feedback coefficients added, matching the sign convention of the
// subject CLI flags).
type Biquad struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Filter runs the direct recursion with zero initial state.
func (q Biquad) Filter(x []float64) []float64 {
	y := make([]float64, len(x))
	var x1, x2, y1, y2 float64
	for n, v := range x {
		out := q.B0*v + q.B1*x1 + q.B2*x2 + q.A1*y1 + q.A2*y2
		y[n] = out
		x2, x1 = x1, v
		y2, y1 = y1, out
	}
	return y
}

// FilterDF2T runs the same section in direct-form-II-transposed state
// form. It is numerically identical to Filter in exact arithmetic and
// exists to validate the structural equivalence the subject relies on.
func (q Biquad) FilterDF2T(x []float64) []float64 {
	y := make([]float64, len(x))
	var s1, s2 float64
	for n, v := range x {
		out := q.B0*v + s1
		s1 = q.B1*v + q.A1*out + s2
		s2 = q.B2*v + q.A2*out
		y[n] = out
	}
	return y
}
