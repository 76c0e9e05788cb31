package reference

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vv-dsp/verify/internal/signal"
	"github.com/vv-dsp/verify/internal/testutil"
)

const (
	cztLength       = 32
	cztSeed         = 0
	cztTolerance    = 1e-9
	dftTolerance    = 1e-9
	zoomBins        = 64
	zoomSampleRate  = 48000.0
	zoomBandStart   = 800.0
	zoomBandEnd     = 1200.0
	zoomToneSamples = 512
)

func TestCZT_DFTEquivalence(t *testing.T) {
	x := signal.ComplexNoise(cztLength, cztSeed)

	// A=1, W=exp(-i2π/N), M=N reduces the chirp Z-transform to the DFT.
	w := cmplx.Exp(complex(0, -2*math.Pi/float64(cztLength)))
	got := CZT(x, cztLength, w, 1)
	want := DFT(x)

	testutil.AssertComplexAllClose(t, got, want, cztTolerance, cztTolerance)
}

func TestCZT_FrequencyZoomPeak(t *testing.T) {
	// With A = exp(-i2π·fStart/fs) and W = exp(-i2π·δ/fs), bin k
	// evaluates the DTFT at k·δ - fStart: the [800, 1200] Hz parameters
	// scan [-800, -400] Hz. A complex exponential at -600 Hz lands
	// exactly on bin (-600 + 800)/6.25 = 32.
	const scanFreq = -600.0
	delta := (zoomBandEnd - zoomBandStart) / zoomBins

	x := make([]complex128, zoomToneSamples)
	for n := range x {
		x[n] = cmplx.Exp(complex(0, 2*math.Pi*scanFreq*float64(n)/zoomSampleRate))
	}

	w := cmplx.Exp(complex(0, -2*math.Pi*delta/zoomSampleRate))
	a := cmplx.Exp(complex(0, -2*math.Pi*zoomBandStart/zoomSampleRate))

	y := CZT(x, zoomBins, w, a)
	require.Len(t, y, zoomBins)

	peak := 0
	for k := range y {
		if cmplx.Abs(y[k]) > cmplx.Abs(y[peak]) {
			peak = k
		}
	}

	wantBin := int((scanFreq + zoomBandStart) / delta)
	assert.Equal(t, wantBin, peak, "zoom spectrum must peak at the scanned frequency")
	assert.InDelta(t, float64(zoomToneSamples), cmplx.Abs(y[wantBin]), 1e-6,
		"on-bin exponential sums coherently")
}

func TestCZT_SingleSample(t *testing.T) {
	x := []complex128{complex(2, -3)}
	y := CZT(x, 4, complex(0, 1), 1)
	require.Len(t, y, 4)
	for k := range y {
		assert.InDelta(t, real(x[0]), real(y[k]), cztTolerance)
		assert.InDelta(t, imag(x[0]), imag(y[k]), cztTolerance)
	}
}

func TestDFT_RoundTrip(t *testing.T) {
	x := signal.ComplexNoise(cztLength, cztSeed)
	got := InverseDFT(DFT(x))
	testutil.AssertComplexAllClose(t, got, x, dftTolerance, dftTolerance)
}

func TestRealDFT_MatchesComplexDFT(t *testing.T) {
	xr := signal.Noise(cztLength, cztSeed)
	x := make([]complex128, len(xr))
	for i, v := range xr {
		x[i] = complex(v, 0)
	}

	got := RealDFT(xr)
	full := DFT(x)
	require.Len(t, got, cztLength/2+1)
	testutil.AssertComplexAllClose(t, got, full[:cztLength/2+1], dftTolerance, dftTolerance)
}

func TestInverseRealDFT_RoundTrip(t *testing.T) {
	x := signal.Noise(cztLength, cztSeed)
	got := InverseRealDFT(RealDFT(x), cztLength)
	testutil.AssertAllClose(t, got, x, dftTolerance, dftTolerance)
}
