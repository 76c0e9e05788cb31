// Package window generates the analysis windows shared by the filter
// design reference and the short-time transform round trip.
//
// All windows are symmetric (w[i] == w[n-1-i]) with endpoints defined by
// the classic n-1 denominator, matching the convention the vv-dsp tools
// and the trusted references use.
package window

import (
	"fmt"
	"math"
	"strings"
)

// Coefficient sets for the raised-cosine family.
const (
	hannA0 = 0.5
	hannA1 = 0.5

	hammingA0 = 0.54
	hammingA1 = 0.46

	blackmanA0 = 0.42
	blackmanA1 = 0.5
	blackmanA2 = 0.08
)

// Hann returns a symmetric Hann window of length n.
func Hann(n int) []float64 {
	return raisedCosine(n, hannA0, hannA1, 0)
}

// Hamming returns a symmetric Hamming window of length n.
func Hamming(n int) []float64 {
	return raisedCosine(n, hammingA0, hammingA1, 0)
}

// Blackman returns a symmetric Blackman window of length n.
func Blackman(n int) []float64 {
	return raisedCosine(n, blackmanA0, blackmanA1, blackmanA2)
}

// Rectangular returns an all-ones window of length n.
func Rectangular(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1.0
	}
	return w
}

// Kaiser returns a symmetric Kaiser window of length n with shape
// parameter beta: w[i] = I₀(β·√(1-x²)) / I₀(β) with x in [-1, 1].
func Kaiser(n int, beta float64) []float64 {
	if n < 1 {
		return []float64{}
	}
	if n == 1 {
		return []float64{1.0}
	}

	w := make([]float64, n)
	alpha := float64(n-1) / 2
	i0Beta := besselI0(beta)
	for i := range w {
		x := (float64(i) - alpha) / alpha
		w[i] = besselI0(beta*math.Sqrt(1.0-x*x)) / i0Beta
	}
	return w
}

// defaultKaiserBeta is used when a window is requested by name.
const defaultKaiserBeta = 8.6

// ByName resolves a window by the name the subject CLI accepts.
func ByName(name string, n int) ([]float64, error) {
	switch strings.ToLower(name) {
	case "hann", "hanning":
		return Hann(n), nil
	case "hamming":
		return Hamming(n), nil
	case "blackman":
		return Blackman(n), nil
	case "rect", "rectangular", "boxcar", "none":
		return Rectangular(n), nil
	case "kaiser":
		return Kaiser(n, defaultKaiserBeta), nil
	}
	return nil, fmt.Errorf("unknown window %q", name)
}

func raisedCosine(n int, a0, a1, a2 float64) []float64 {
	if n < 1 {
		return []float64{}
	}
	if n == 1 {
		return []float64{1.0}
	}

	w := make([]float64, n)
	denom := float64(n - 1)
	for i := range w {
		phase := 2 * math.Pi * float64(i) / denom
		w[i] = a0 - a1*math.Cos(phase) + a2*math.Cos(2*phase)
	}
	return w
}
