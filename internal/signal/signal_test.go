package signal

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testLength     = 256
	testSeed       = 7
	testRate       = 48000.0
	testToneFreq   = 1000.0
	toneTolerance  = 1e-12
	statsTolerance = 0.15
)

func TestNoise_Deterministic(t *testing.T) {
	a := Noise(testLength, testSeed)
	b := Noise(testLength, testSeed)
	assert.Equal(t, a, b, "same seed must give identical sequences")

	c := Noise(testLength, testSeed+1)
	assert.NotEqual(t, a, c, "different seeds must differ")
}

func TestNoise_RoughlyStandardNormal(t *testing.T) {
	x := Noise(8192, 0)

	var sum, sumSq float64
	for _, v := range x {
		sum += v
		sumSq += v * v
	}
	mean := sum / float64(len(x))
	variance := sumSq/float64(len(x)) - mean*mean

	assert.InDelta(t, 0.0, mean, statsTolerance)
	assert.InDelta(t, 1.0, variance, statsTolerance)
}

func TestComplexNoise_Deterministic(t *testing.T) {
	a := ComplexNoise(testLength, 0)
	b := ComplexNoise(testLength, 0)
	assert.Equal(t, a, b)
	assert.Len(t, a, testLength)
}

func TestTone_KnownValues(t *testing.T) {
	x := Tone(testLength, testToneFreq, 1.0, testRate)

	require.Len(t, x, testLength)
	assert.InDelta(t, 1.0, x[0], toneTolerance, "cosine starts at amplitude")

	// One full period at 1 kHz / 48 kHz is 48 samples.
	assert.InDelta(t, x[0], x[48], 1e-9)
}

func TestSinusoids_Superposition(t *testing.T) {
	comps := []Component{
		{Freq: 440, Amp: 1.0},
		{Freq: 1000, Amp: 0.5},
		{Freq: 2000, Amp: 0.25},
	}
	x := Sinusoids(testLength, 44100, comps)

	require.Len(t, x, testLength)
	assert.InDelta(t, 0.0, x[0], toneTolerance, "sum of sines starts at zero")

	var single []float64
	for _, c := range comps {
		y := Sinusoids(testLength, 44100, []Component{c})
		if single == nil {
			single = y
			continue
		}
		for i := range single {
			single[i] += y[i]
		}
	}
	for i := range x {
		assert.InDelta(t, single[i], x[i], toneTolerance)
	}
}

func TestTruncate32(t *testing.T) {
	x := []float64{math.Pi, -math.E, 1.0 / 3.0}
	got := Truncate32(x)

	for i, v := range x {
		assert.Equal(t, float64(float32(v)), got[i])
		assert.NotEqual(t, v, got[i], "float64 values should lose precision")
	}

	// Truncation is idempotent.
	assert.Equal(t, got, Truncate32(got))
}

func TestTruncateComplex32(t *testing.T) {
	x := []complex128{complex(math.Pi, -math.E)}
	got := TruncateComplex32(x)
	assert.Equal(t, float64(float32(math.Pi)), real(got[0]))
	assert.Equal(t, float64(float32(-math.E)), imag(got[0]))
}

func TestSaveWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	x := Tone(4800, testToneFreq, 0.5, testRate)

	require.NoError(t, SaveWAV(path, x, int(testRate)))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	assert.Equal(t, len(x), len(buf.Data))
	assert.Equal(t, int(testRate), int(dec.SampleRate))
	assert.EqualValues(t, 16, dec.BitDepth)
}
