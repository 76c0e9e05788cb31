// Package signal produces the deterministic test signals shared by the
// subject and reference computation paths.
//
// Generators are pure functions of their arguments: the same seed always
// yields the same sequence, so repeated runs produce byte-identical
// exchange artifacts and therefore identical comparator verdicts.
package signal

import (
	"math"
	"math/rand/v2"
)

// Component describes one sinusoid in a closed-form test signal.
type Component struct {
	Freq float64 // Hz
	Amp  float64 // linear amplitude
}

// Noise returns n standard-normal samples from a PCG stream seeded with
// seed. No global state is touched.
func Noise(n int, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, 0))
	x := make([]float64, n)
	for i := range x {
		x[i] = rng.NormFloat64()
	}
	return x
}

// ComplexNoise returns n complex samples whose real and imaginary parts are
// independent standard-normal draws, interleaved the way a paired
// real/imag generation produces them.
func ComplexNoise(n int, seed uint64) []complex128 {
	rng := rand.New(rand.NewPCG(seed, 0))
	x := make([]complex128, n)
	for i := range x {
		re := rng.NormFloat64()
		im := rng.NormFloat64()
		x[i] = complex(re, im)
	}
	return x
}

// Tone returns n samples of a single cosine at freq Hz sampled at rate Hz.
func Tone(n int, freq, amp, rate float64) []float64 {
	x := make([]float64, n)
	omega := 2 * math.Pi * freq / rate
	for i := range x {
		x[i] = amp * math.Cos(omega*float64(i))
	}
	return x
}

// Sinusoids returns n samples of a sum of sine components sampled at rate
// Hz. Used where a physically interpretable signal is needed.
func Sinusoids(n int, rate float64, comps []Component) []float64 {
	x := make([]float64, n)
	for i := range x {
		t := float64(i) / rate
		var v float64
		for _, c := range comps {
			v += c.Amp * math.Sin(2*math.Pi*c.Freq*t)
		}
		x[i] = v
	}
	return x
}

// Truncate32 rounds each sample through float32, the precision at which
// signals cross the text exchange boundary.
func Truncate32(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = float64(float32(v))
	}
	return out
}

// TruncateComplex32 rounds real and imaginary parts through float32.
func TruncateComplex32(x []complex128) []complex128 {
	out := make([]complex128, len(x))
	for i, v := range x {
		out[i] = complex(float64(float32(real(v))), float64(float32(imag(v))))
	}
	return out
}
