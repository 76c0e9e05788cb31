package reference

import "gonum.org/v1/gonum/dsp/fourier"

// DFT returns the forward discrete Fourier transform of a complex
// sequence, exp(-i2πnk/N) convention, no normalization.
func DFT(x []complex128) []complex128 {
	fft := fourier.NewCmplxFFT(len(x))
	src := append([]complex128(nil), x...)
	return fft.Coefficients(nil, src)
}

// InverseDFT returns the unscaled inverse transform divided by N, so that
// InverseDFT(DFT(x)) == x.
func InverseDFT(x []complex128) []complex128 {
	n := len(x)
	fft := fourier.NewCmplxFFT(n)
	src := append([]complex128(nil), x...)
	out := fft.Sequence(nil, src)
	scale := complex(1/float64(n), 0)
	for i := range out {
		out[i] *= scale
	}
	return out
}

// RealDFT returns the n/2+1 non-redundant coefficients of the forward
// transform of a real sequence.
func RealDFT(x []float64) []complex128 {
	fft := fourier.NewFFT(len(x))
	return fft.Coefficients(nil, x)
}

// InverseRealDFT reconstructs an n-point real sequence from its n/2+1
// coefficients, scaled by 1/n to invert RealDFT.
func InverseRealDFT(coeffs []complex128, n int) []float64 {
	fft := fourier.NewFFT(n)
	out := fft.Sequence(nil, coeffs)
	scale := 1 / float64(n)
	for i := range out {
		out[i] *= scale
	}
	return out
}
