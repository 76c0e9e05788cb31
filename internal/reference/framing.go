package reference

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// windowEnergyThreshold is the smallest accumulated window energy that is
// safe to normalize by; below it the reconstructed sample is defined as
// zero to avoid division blow-up.
const windowEnergyThreshold = 1e-12

// NumFrames returns the number of analysis frames a framer produces.
//
// Non-centered framing yields 0 when the signal is shorter than a frame,
// otherwise 1 + (signalLen-frameLen)/hopLen. Centered framing mirrors
// reflective padding of half a frame on each side, which works out to
// ceil(signalLen/hopLen).
func NumFrames(signalLen, frameLen, hopLen int, centered bool) int {
	if hopLen <= 0 {
		return 0
	}
	if centered {
		return (signalLen + hopLen - 1) / hopLen
	}
	if signalLen < frameLen {
		return 0
	}
	return 1 + (signalLen-frameLen)/hopLen
}

// OLARoundTrip performs the short-time analysis/synthesis round trip:
// apply the analysis window, transform, inverse-transform, apply the
// synthesis window, overlap-add the frames, and normalize each sample by
// the accumulated squared-window energy where it exceeds the safe
// threshold. Edge frames are inherently lossy under this scheme, so
// fidelity should only be asserted away from the boundaries.
func OLARoundTrip(x []float64, fftSize, hop int, win []float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	if fftSize <= 0 || hop <= 0 || n < fftSize || len(win) != fftSize {
		return out
	}

	fft := fourier.NewFFT(fftSize)
	frame := make([]float64, fftSize)
	recon := make([]float64, n)
	norm := make([]float64, n)
	scale := 1 / float64(fftSize)

	for start := 0; start+fftSize <= n; start += hop {
		for i := range frame {
			frame[i] = x[start+i] * win[i]
		}

		spec := fft.Coefficients(nil, frame)
		time := fft.Sequence(nil, spec)

		for i := range time {
			recon[start+i] += time[i] * scale * win[i]
			norm[start+i] += win[i] * win[i]
		}
	}

	for i := range out {
		if norm[i] > windowEnergyThreshold {
			out[i] = recon[i] / norm[i]
		}
	}
	return out
}
