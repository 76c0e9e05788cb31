// Package reference computes trusted results for each transform family
// validated by the harness.
//
// Every function here evaluates the established mathematical definition of
// its transform, with parameters derived by the same rules used to build
// the subject invocation. The two computation paths are therefore
// mathematically equivalent by construction; the only divergence left to
// observe is the numerical behavior of the subject implementation.
package reference

import "math/cmplx"

// CZT evaluates the chirp Z-transform
//
//	X[k] = Σ_n x[n] · A^(-n) · W^(n·k),  k = 0..m-1
//
// directly from the definition. With A=1, W=exp(-i2π/N) and m=N this is
// the plain N-point DFT; with band-derived A and W it is a frequency zoom.
func CZT(x []complex128, m int, w, a complex128) []complex128 {
	out := make([]complex128, m)
	for n, xn := range x {
		term := xn * cmplx.Pow(a, complex(-float64(n), 0))
		wn := cmplx.Pow(w, complex(float64(n), 0))
		run := complex(1, 0)
		for k := 0; k < m; k++ {
			out[k] += term * run
			run *= wn
		}
	}
	return out
}
