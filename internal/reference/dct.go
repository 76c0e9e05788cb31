package reference

import (
	"fmt"
	"math"
)

// Supported DCT types.
const (
	DCTTypeII  = 2
	DCTTypeIII = 3
	DCTTypeIV  = 4
)

// DCT computes the unnormalized forward discrete cosine transform of the
// given type. The scaling matches the classic definitional convention in
// which Inverse undoes Forward exactly:
//
//	type II:  y[k] = 2·Σ_n x[n]·cos(πk(2n+1)/(2N))
//	type III: y[k] = x[0] + 2·Σ_{n≥1} x[n]·cos(πn(2k+1)/(2N))
//	type IV:  y[k] = 2·Σ_n x[n]·cos(π(2n+1)(2k+1)/(4N))
func DCT(x []float64, typ int) ([]float64, error) {
	switch typ {
	case DCTTypeII:
		return dct2(x), nil
	case DCTTypeIII:
		return dct3(x), nil
	case DCTTypeIV:
		return dct4(x), nil
	}
	return nil, fmt.Errorf("unsupported DCT type %d", typ)
}

// IDCT computes the inverse of DCT for the same type, so that
// IDCT(DCT(x, t), t) == x for t in {2, 3, 4}. The type-II inverse is the
// scaled type-III transform, and vice versa; type IV is self-inverse up to
// the 1/(2N) factor.
func IDCT(y []float64, typ int) ([]float64, error) {
	n := len(y)
	if n == 0 {
		return nil, nil
	}
	scale := 1 / (2 * float64(n))

	var fwd []float64
	switch typ {
	case DCTTypeII:
		fwd = dct3(y)
	case DCTTypeIII:
		fwd = dct2(y)
	case DCTTypeIV:
		fwd = dct4(y)
	default:
		return nil, fmt.Errorf("unsupported DCT type %d", typ)
	}

	out := make([]float64, n)
	for i, v := range fwd {
		out[i] = v * scale
	}
	return out, nil
}

func dct2(x []float64) []float64 {
	n := len(x)
	y := make([]float64, n)
	for k := range y {
		var sum float64
		for i, v := range x {
			sum += v * math.Cos(math.Pi*float64(k)*(2*float64(i)+1)/(2*float64(n)))
		}
		y[k] = 2 * sum
	}
	return y
}

func dct3(x []float64) []float64 {
	n := len(x)
	y := make([]float64, n)
	for k := range y {
		sum := x[0]
		for i := 1; i < n; i++ {
			sum += 2 * x[i] * math.Cos(math.Pi*float64(i)*(2*float64(k)+1)/(2*float64(n)))
		}
		y[k] = sum
	}
	return y
}

func dct4(x []float64) []float64 {
	n := len(x)
	y := make([]float64, n)
	for k := range y {
		var sum float64
		for i, v := range x {
			sum += v * math.Cos(math.Pi*(2*float64(i)+1)*(2*float64(k)+1)/(4*float64(n)))
		}
		y[k] = 2 * sum
	}
	return y
}
