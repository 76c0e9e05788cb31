package driver

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"
	"strconv"

	"github.com/vv-dsp/verify/internal/codec"
	"github.com/vv-dsp/verify/internal/compare"
	"github.com/vv-dsp/verify/internal/config"
	"github.com/vv-dsp/verify/internal/oracle"
	"github.com/vv-dsp/verify/internal/reference"
	"github.com/vv-dsp/verify/internal/signal"
)

// Family defaults for the chirp Z-transform validation.
const (
	defaultCZTRtol = 2e-4
	defaultCZTAtol = 2e-4

	defaultCZTLength = 32

	// Frequency-zoom scenario: a 1 kHz tone inspected between 800 and
	// 1200 Hz at 48 kHz over 64 output bins.
	zoomBins       = 64
	zoomSampleRate = 48000.0
	zoomToneFreq   = 1000.0
	zoomBandStart  = 800.0
	zoomBandEnd    = 1200.0
)

// CZTSpec bundles the chirp Z-transform parameters. The same values feed
// the subject argument list and the reference evaluation.
type CZTSpec struct {
	N            int
	M            int
	W            complex128
	A            complex128
	ComplexInput bool
	Infile       string
}

// Args builds the subject tool argument list.
func (s CZTSpec) Args() []string {
	args := []string{
		"--N", strconv.Itoa(s.N),
		"--M", strconv.Itoa(s.M),
		"--Wre", formatFloat(real(s.W)),
		"--Wim", formatFloat(imag(s.W)),
		"--Are", formatFloat(real(s.A)),
		"--Aim", formatFloat(imag(s.A)),
		"--infile", s.Infile,
	}
	if s.ComplexInput {
		args = append(args, "--complex")
	}
	return args
}

// DFTEquivalentCZT chooses A=1, W=exp(-i2π/N) and M=N, for which the
// chirp Z-transform reduces exactly to the plain N-point DFT.
func DFTEquivalentCZT(n int) CZTSpec {
	ang := -2 * math.Pi / float64(n)
	return CZTSpec{
		N: n,
		M: n,
		W: complex(math.Cos(ang), math.Sin(ang)),
		A: 1,
	}
}

// ZoomCZT derives the parameters for a spectral zoom over [fStart, fEnd]
// Hz with m output bins at the given sample rate:
// W = exp(-i2π·Δf/(m·fs)), A = exp(-i2π·fStart/fs).
func ZoomCZT(n, m int, fStart, fEnd, rate float64) CZTSpec {
	delta := (fEnd - fStart) / float64(m)
	return CZTSpec{
		N: n,
		M: m,
		W: cmplx.Exp(complex(0, -2*math.Pi*delta/rate)),
		A: cmplx.Exp(complex(0, -2*math.Pi*fStart/rate)),
	}
}

// CZTOptions configures the chirp Z-transform validation.
type CZTOptions struct {
	Bin      string
	N        int
	M        int
	Workdir  string
	Settings config.Settings
}

// RunCZT validates the subject chirp Z-transform tool in two
// configurations: DFT equivalence on complex noise, and a frequency zoom
// around a known tone on real input.
func RunCZT(ctx context.Context, opts CZTOptions) error {
	if err := oracle.Probe(opts.Bin); err != nil {
		return err
	}
	tol := tolerance(opts.Settings, defaultCZTRtol, defaultCZTAtol)

	n := opts.N
	if n <= 0 {
		n = defaultCZTLength
	}
	m := opts.M
	if m <= 0 {
		m = n
	}

	if err := runCZTEquivalence(ctx, opts, n, m, tol); err != nil {
		return err
	}
	return runCZTZoom(ctx, opts, n, tol)
}

func runCZTEquivalence(ctx context.Context, opts CZTOptions, n, m int, tol compare.Tolerance) error {
	x := signal.ComplexNoise(n, seedSpectral)

	infile := oracle.ArtifactPath(opts.Workdir, "czt_in", "txt")
	defer oracle.RemoveArtifact(infile)
	if err := codec.SaveComplex(infile, signal.TruncateComplex32(x)); err != nil {
		return fmt.Errorf("czt: write artifact: %w", err)
	}

	spec := DFTEquivalentCZT(n)
	spec.M = m
	spec.ComplexInput = true
	spec.Infile = infile

	lines, err := oracle.Invoke(ctx, opts.Bin, spec.Args(), nil)
	if err != nil {
		return fmt.Errorf("czt: %w", err)
	}
	got, err := codec.ParseComplex(lines)
	if err != nil {
		return fmt.Errorf("czt: %w", err)
	}

	// Reference path uses the full-precision signal; the tolerance absorbs
	// the subject's reduced-precision view of it.
	want := reference.CZT(x, spec.M, spec.W, spec.A)
	if err := compare.AllCloseComplex(got, want, tol); err != nil {
		logMismatch("czt", "dft-equivalence", err)
		return fmt.Errorf("czt dft-equivalence: %w", err)
	}
	return nil
}

func runCZTZoom(ctx context.Context, opts CZTOptions, n int, tol compare.Tolerance) error {
	xr := signal.Tone(n, zoomToneFreq, 1.0, zoomSampleRate)

	infile := oracle.ArtifactPath(opts.Workdir, "czt_zoom_in", "txt")
	defer oracle.RemoveArtifact(infile)
	if err := codec.SaveReal(infile, signal.Truncate32(xr)); err != nil {
		return fmt.Errorf("czt: write artifact: %w", err)
	}

	spec := ZoomCZT(n, zoomBins, zoomBandStart, zoomBandEnd, zoomSampleRate)
	spec.Infile = infile

	lines, err := oracle.Invoke(ctx, opts.Bin, spec.Args(), nil)
	if err != nil {
		return fmt.Errorf("czt: %w", err)
	}
	got, err := codec.ParseComplex(lines)
	if err != nil {
		return fmt.Errorf("czt: %w", err)
	}

	x := make([]complex128, len(xr))
	for i, v := range xr {
		x[i] = complex(v, 0)
	}
	want := reference.CZT(x, spec.M, spec.W, spec.A)
	if err := compare.AllCloseComplex(got, want, tol); err != nil {
		logMismatch("czt", "zoom", err)
		return fmt.Errorf("czt zoom: %w", err)
	}
	return nil
}
