package driver

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vv-dsp/verify/internal/codec"
	"github.com/vv-dsp/verify/internal/compare"
	"github.com/vv-dsp/verify/internal/config"
	"github.com/vv-dsp/verify/internal/oracle"
	"github.com/vv-dsp/verify/internal/reference"
	"github.com/vv-dsp/verify/internal/signal"
)

// Family defaults for the FFT validation.
const (
	defaultFFTRtol = 5e-5
	defaultFFTAtol = 5e-5

	defaultFFTLength = 16
)

// FFT transform kinds accepted by the subject tool.
const (
	FFTKindC2C = "c2c"
	FFTKindR2C = "r2c"
	FFTKindC2R = "c2r"
)

// FFTSpec bundles one FFT invocation of the subject tool.
type FFTSpec struct {
	Kind    string
	Forward bool
	N       int
	Infile  string
}

// Args builds the subject tool argument list.
func (s FFTSpec) Args() []string {
	dir := "inv"
	if s.Forward {
		dir = "fwd"
	}
	return []string{
		"--type", s.Kind,
		"--dir", dir,
		"-n", strconv.Itoa(s.N),
		"--infile", s.Infile,
	}
}

// FFTOptions configures the FFT validation.
type FFTOptions struct {
	Bin      string
	N        int
	Workdir  string
	Settings config.Settings
}

// RunFFT validates the subject FFT tool against the trusted transform in
// three configurations: complex-to-complex forward, real-to-complex
// forward, and complex-to-real inverse (which the subject scales by 1/n).
func RunFFT(ctx context.Context, opts FFTOptions) error {
	if err := oracle.Probe(opts.Bin); err != nil {
		return err
	}
	tol := tolerance(opts.Settings, defaultFFTRtol, defaultFFTAtol)

	n := opts.N
	if n <= 0 {
		n = defaultFFTLength
	}

	// C2C forward.
	x := signal.ComplexNoise(n, seedSpectral)
	got, err := invokeFFTComplexOut(ctx, opts, FFTSpec{Kind: FFTKindC2C, Forward: true, N: n},
		signal.TruncateComplex32(x), nil)
	if err != nil {
		return fmt.Errorf("fft c2c: %w", err)
	}
	if err := compare.AllCloseComplex(got, reference.DFT(x), tol); err != nil {
		logMismatch("fft", "c2c-forward", err)
		return fmt.Errorf("fft c2c forward: %w", err)
	}

	// R2C forward.
	xr := signal.Noise(n, seedSpectral)
	got, err = invokeFFTComplexOut(ctx, opts, FFTSpec{Kind: FFTKindR2C, Forward: true, N: n},
		nil, signal.Truncate32(xr))
	if err != nil {
		return fmt.Errorf("fft r2c: %w", err)
	}
	if err := compare.AllCloseComplex(got, reference.RealDFT(xr), tol); err != nil {
		logMismatch("fft", "r2c-forward", err)
		return fmt.Errorf("fft r2c forward: %w", err)
	}

	// C2R inverse of the real spectrum.
	spectrum := reference.RealDFT(xr)
	infile := oracle.ArtifactPath(opts.Workdir, "fft_c2r_in", "txt")
	defer oracle.RemoveArtifact(infile)
	if err := codec.SaveComplex(infile, signal.TruncateComplex32(spectrum)); err != nil {
		return fmt.Errorf("fft c2r: write artifact: %w", err)
	}
	spec := FFTSpec{Kind: FFTKindC2R, Forward: false, N: n, Infile: infile}
	lines, err := oracle.Invoke(ctx, opts.Bin, spec.Args(), nil)
	if err != nil {
		return fmt.Errorf("fft c2r: %w", err)
	}
	gotReal, err := codec.ParseReal(lines)
	if err != nil {
		return fmt.Errorf("fft c2r: %w", err)
	}
	if err := compare.AllClose(gotReal, reference.InverseRealDFT(spectrum, n), tol); err != nil {
		logMismatch("fft", "c2r-inverse", err)
		return fmt.Errorf("fft c2r inverse: %w", err)
	}
	return nil
}

// invokeFFTComplexOut writes either a complex or a real input artifact and
// returns the subject's complex output.
func invokeFFTComplexOut(ctx context.Context, opts FFTOptions, spec FFTSpec, cin []complex128, rin []float64) ([]complex128, error) {
	infile := oracle.ArtifactPath(opts.Workdir, "fft_in", "txt")
	defer oracle.RemoveArtifact(infile)

	var err error
	if cin != nil {
		err = codec.SaveComplex(infile, cin)
	} else {
		err = codec.SaveReal(infile, rin)
	}
	if err != nil {
		return nil, fmt.Errorf("write artifact: %w", err)
	}
	spec.Infile = infile

	lines, err := oracle.Invoke(ctx, opts.Bin, spec.Args(), nil)
	if err != nil {
		return nil, err
	}
	return codec.ParseComplex(lines)
}
