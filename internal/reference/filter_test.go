package reference

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vv-dsp/verify/internal/signal"
	"github.com/vv-dsp/verify/internal/testutil"
)

const (
	firTaps      = 33
	firCutoff    = 0.25
	firWindow    = "hann"
	firTolerance = 1e-10

	iirTolerance = 1e-12

	filterSignalLength = 256
	filterSeed         = 1

	// One-pole lowpass from the filter validation: y = 0.1x + 0.9y[n-1].
	onePoleB0 = 0.1
	onePoleA1 = 0.9
)

func TestDesignLowpassFIR_Properties(t *testing.T) {
	h, err := DesignLowpassFIR(firTaps, firCutoff, firWindow)
	require.NoError(t, err)

	require.Len(t, h, firTaps)
	testutil.AssertSymmetric(t, h, firTolerance)
	testutil.AssertNoNaNOrInf(t, h)

	var sum float64
	for _, v := range h {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, firTolerance, "unity DC gain")

	center := h[firTaps/2]
	for i, v := range h {
		assert.LessOrEqual(t, math.Abs(v), math.Abs(center)+firTolerance, "tap %d", i)
	}
}

func TestDesignLowpassFIR_RejectsBadParams(t *testing.T) {
	tests := []struct {
		name    string
		taps    int
		cutoff  float64
		winName string
	}{
		{"even_taps", 32, firCutoff, firWindow},
		{"too_short", 1, firCutoff, firWindow},
		{"zero_cutoff", firTaps, 0, firWindow},
		{"cutoff_at_nyquist", firTaps, 1, firWindow},
		{"unknown_window", firTaps, firCutoff, "tukey"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DesignLowpassFIR(tt.taps, tt.cutoff, tt.winName)
			assert.Error(t, err)
		})
	}
}

func TestFIRFilter_MatchesNaiveConvolution(t *testing.T) {
	h, err := DesignLowpassFIR(firTaps, firCutoff, firWindow)
	require.NoError(t, err)
	x := signal.Noise(filterSignalLength, filterSeed)

	got := FIRFilter(h, x)

	want := make([]float64, len(x))
	for n := range want {
		var sum float64
		for k, hk := range h {
			if n-k >= 0 {
				sum += hk * x[n-k]
			}
		}
		want[n] = sum
	}

	testutil.AssertAllClose(t, got, want, firTolerance, firTolerance)
}

func TestFIRFilter_ImpulseRecoversCoefficients(t *testing.T) {
	h, err := DesignLowpassFIR(firTaps, firCutoff, firWindow)
	require.NoError(t, err)

	impulse := make([]float64, firTaps)
	impulse[0] = 1.0

	got := FIRFilter(h, impulse)
	testutil.AssertAllClose(t, got, h, firTolerance, firTolerance)
}

func TestFIRFilter_Degenerate(t *testing.T) {
	assert.Empty(t, FIRFilter([]float64{1}, nil))
	assert.Equal(t, []float64{0, 0}, FIRFilter(nil, []float64{1, 2}))
}

func TestBiquad_DirectMatchesDF2T(t *testing.T) {
	q := Biquad{B0: 0.2, B1: 0.3, B2: 0.1, A1: 0.5, A2: -0.25}
	x := signal.Noise(filterSignalLength, filterSeed)

	direct := q.Filter(x)
	df2t := q.FilterDF2T(x)

	testutil.AssertAllClose(t, df2t, direct, iirTolerance, iirTolerance)
}

func TestBiquad_OnePoleImpulseResponse(t *testing.T) {
	q := Biquad{B0: onePoleB0, A1: onePoleA1}

	impulse := make([]float64, 32)
	impulse[0] = 1.0
	y := q.Filter(impulse)

	// y[n] = 0.1 · 0.9^n for an impulse.
	for n := range y {
		want := onePoleB0 * math.Pow(onePoleA1, float64(n))
		assert.InDelta(t, want, y[n], iirTolerance, "sample %d", n)
	}
}

func TestBiquad_PureGain(t *testing.T) {
	q := Biquad{B0: 2.5}
	x := []float64{1, -1, 0.5}
	assert.Equal(t, []float64{2.5, -2.5, 1.25}, q.Filter(x))
}
