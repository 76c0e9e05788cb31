package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vv-dsp/verify/internal/codec"
	"github.com/vv-dsp/verify/internal/oracle"
	"github.com/vv-dsp/verify/internal/reference"
	"github.com/vv-dsp/verify/internal/signal"
)

// fakeTool writes an executable shell script standing in for a subject
// binary and returns its path.
func fakeTool(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestRunStatsMissingTool(t *testing.T) {
	err := RunStats(context.Background(), StatsOptions{
		Bin: filepath.Join(t.TempDir(), "no-such-tool"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, oracle.ErrUnavailable)
}

func TestRunStatsAgainstRecordedOutput(t *testing.T) {
	dir := t.TempDir()

	// Record the reference result at exchange precision; a subject that
	// replays it must pass.
	want := reference.Autocorr(signal.Noise(defaultStatsLength, seedSpectral))
	recorded := filepath.Join(dir, "recorded.txt")
	require.NoError(t, codec.SaveReal(recorded, want))

	bin := fakeTool(t, dir, "vv_dsp_stats", "cat "+recorded)
	err := RunStats(context.Background(), StatsOptions{Bin: bin})
	assert.NoError(t, err)
}

func TestRunStatsSubjectFailure(t *testing.T) {
	bin := fakeTool(t, t.TempDir(), "vv_dsp_stats", "echo boom >&2\nexit 3")

	err := RunStats(context.Background(), StatsOptions{Bin: bin})
	require.Error(t, err)

	var execErr *oracle.ExecError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, 3, execErr.ExitCode)
	assert.Contains(t, execErr.Stderr, "boom")
}

func TestRunStatsMalformedOutput(t *testing.T) {
	bin := fakeTool(t, t.TempDir(), "vv_dsp_stats", "echo not-a-number")

	err := RunStats(context.Background(), StatsOptions{Bin: bin})
	require.Error(t, err)

	var parseErr *codec.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestRunStatsMismatch(t *testing.T) {
	// Emit the right number of lines, all zero; lag zero of noise is its
	// mean square, far from zero.
	bin := fakeTool(t, t.TempDir(), "vv_dsp_stats",
		"i=0\nwhile [ $i -lt 128 ]; do echo 0; i=$((i+1)); done")

	err := RunStats(context.Background(), StatsOptions{Bin: bin})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "autocorr")
	assert.NotErrorIs(t, err, oracle.ErrUnavailable)
}

func TestRunStatsRejectsUnbiasedEstimator(t *testing.T) {
	dir := t.TempDir()

	// Replay what an overlap-count (N-k) divisor produces. The harness
	// demands the 1/N estimator from both paths, so this must mismatch
	// by lag 1.
	x := signal.Noise(defaultStatsLength, seedSpectral)
	unbiased := make([]float64, len(x))
	for k := range unbiased {
		var acc float64
		for i := 0; i+k < len(x); i++ {
			acc += x[i] * x[i+k]
		}
		unbiased[k] = acc / float64(len(x)-k)
	}
	recorded := filepath.Join(dir, "unbiased.txt")
	require.NoError(t, codec.SaveReal(recorded, unbiased))

	bin := fakeTool(t, dir, "vv_dsp_stats", "cat "+recorded)
	err := RunStats(context.Background(), StatsOptions{Bin: bin})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "autocorr")
}

func TestRunResampleIdentityRatio(t *testing.T) {
	dir := t.TempDir()
	// Echo the input artifact back: exact for a 1/1 ratio.
	bin := fakeTool(t, dir, "vv_dsp_resample",
		"for a; do last=$a; done\ncat \"$last\"")

	err := RunResample(context.Background(), ResampleOptions{
		Bin:     bin,
		Num:     1,
		Den:     1,
		Workdir: dir,
	})
	assert.NoError(t, err)
}

func TestRunResampleWrongLength(t *testing.T) {
	dir := t.TempDir()
	bin := fakeTool(t, dir, "vv_dsp_resample", "echo 0\necho 0\necho 0")

	err := RunResample(context.Background(), ResampleOptions{
		Bin:     bin,
		Num:     1,
		Den:     1,
		Workdir: dir,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resample length")
}

func TestRunResampleWrongValues(t *testing.T) {
	dir := t.TempDir()
	bin := fakeTool(t, dir, "vv_dsp_resample",
		"i=0\nwhile [ $i -lt 400 ]; do echo 100; i=$((i+1)); done")

	err := RunResample(context.Background(), ResampleOptions{
		Bin:     bin,
		Num:     1,
		Den:     1,
		Workdir: dir,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resample output")
}

func TestRunFiltersReusesDumpedCoefficients(t *testing.T) {
	dir := t.TempDir()

	// The dumped vector deliberately matches no windowed-sinc design:
	// the harness must filter with whatever the subject designed, not
	// with a design of its own.
	h := make([]float64, defaultFIRTaps)
	for i := range h {
		h[i] = 0.01 * float64(i+1)
	}
	taps := filepath.Join(dir, "taps.txt")
	require.NoError(t, codec.SaveReal(taps, h))

	x := signal.Truncate32(signal.Noise(defaultFilterLength, seedFilters))
	firOut := filepath.Join(dir, "fir_out.txt")
	require.NoError(t, codec.SaveReal(firOut, reference.FIRFilter(h, x)))
	iirOut := filepath.Join(dir, "iir_out.txt")
	require.NoError(t, codec.SaveReal(iirOut,
		reference.Biquad{B0: iirB0, A1: iirA1}.Filter(x)))

	fir := fakeTool(t, dir, "vv_dsp_fir", "cat "+firOut)
	iir := fakeTool(t, dir, "vv_dsp_iir", "cat "+iirOut)
	fakeTool(t, dir, coeffDumpTool, "cat "+taps)

	err := RunFilters(context.Background(), FilterOptions{
		FIRBin:  fir,
		IIRBin:  iir,
		Workdir: dir,
	})
	assert.NoError(t, err)
}

func TestRunFiltersMissingCoeffTool(t *testing.T) {
	dir := t.TempDir()
	fir := fakeTool(t, dir, "vv_dsp_fir", "exit 0")
	iir := fakeTool(t, dir, "vv_dsp_iir", "exit 0")

	// No vv_dsp_dump_fir_coeffs beside the FIR tool: the family skips.
	err := RunFilters(context.Background(), FilterOptions{
		FIRBin:  fir,
		IIRBin:  iir,
		Workdir: dir,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, oracle.ErrUnavailable)
}

func TestRunFiltersBadCoeffCount(t *testing.T) {
	dir := t.TempDir()
	fir := fakeTool(t, dir, "vv_dsp_fir", "exit 0")
	iir := fakeTool(t, dir, "vv_dsp_iir", "exit 0")
	fakeTool(t, dir, coeffDumpTool, "echo 1\necho 2")

	err := RunFilters(context.Background(), FilterOptions{
		FIRBin:  fir,
		IIRBin:  iir,
		Workdir: dir,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "taps")
}

func TestRunFramingNeedsNoSubject(t *testing.T) {
	err := RunFraming(context.Background(), FramingOptions{})
	assert.NoError(t, err)
}

func TestRunCZTMissingTool(t *testing.T) {
	err := RunCZT(context.Background(), CZTOptions{
		Bin: filepath.Join(t.TempDir(), "absent"),
	})
	assert.ErrorIs(t, err, oracle.ErrUnavailable)
}

func TestRunDCTMissingTool(t *testing.T) {
	err := RunDCT(context.Background(), DCTOptions{
		Bin: filepath.Join(t.TempDir(), "absent"),
	})
	assert.ErrorIs(t, err, oracle.ErrUnavailable)
}

func TestRunSTFTMissingTool(t *testing.T) {
	err := RunSTFT(context.Background(), STFTOptions{
		Bin: filepath.Join(t.TempDir(), "absent"),
	})
	assert.ErrorIs(t, err, oracle.ErrUnavailable)
}

func TestRunFFTMissingTool(t *testing.T) {
	err := RunFFT(context.Background(), FFTOptions{
		Bin: filepath.Join(t.TempDir(), "absent"),
	})
	assert.ErrorIs(t, err, oracle.ErrUnavailable)
}
