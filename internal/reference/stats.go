package reference

import "github.com/tphakala/simd/f64"

// Autocorr computes the biased autocorrelation estimator
//
//	r[k] = (1/N) · Σ_{i=0}^{N-1-k} x[i]·x[i+k],  k = 0..N-1.
//
// The divisor is N for every lag; the shrinking-overlap (unbiased)
// variant is deliberately not used. At lag 0 this is the mean of squared
// samples.
func Autocorr(x []float64) []float64 {
	n := len(x)
	r := make([]float64, n)
	if n == 0 {
		return r
	}
	inv := 1 / float64(n)
	for k := range r {
		r[k] = f64.DotProduct(x[:n-k], x[k:]) * inv
	}
	return r
}
