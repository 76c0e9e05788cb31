package driver

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/vv-dsp/verify/internal/codec"
	"github.com/vv-dsp/verify/internal/compare"
	"github.com/vv-dsp/verify/internal/config"
	"github.com/vv-dsp/verify/internal/oracle"
	"github.com/vv-dsp/verify/internal/reference"
	"github.com/vv-dsp/verify/internal/signal"
)

// Family defaults for the FIR/IIR filter validation.
const (
	defaultFilterRtol = 3e-3
	defaultFilterAtol = 3e-3

	defaultFilterLength = 256

	defaultFIRTaps   = 33
	defaultFIRCutoff = 0.25
	defaultFIRWindow = "hann"

	// One-pole lowpass section used for the IIR check.
	iirB0 = 0.1
	iirA1 = -0.9
)

// coeffDumpTool is the coefficient dump tool expected beside the FIR tool.
const coeffDumpTool = "vv_dsp_dump_fir_coeffs"

// FIRSpec bundles the FIR design and filtering parameters.
type FIRSpec struct {
	NumTaps int
	Cutoff  float64
	Window  string
	N       int
	Infile  string
}

// Args builds the subject filtering argument list.
func (s FIRSpec) Args() []string {
	return []string{
		"--num-taps", strconv.Itoa(s.NumTaps),
		"--cutoff", formatFloat(s.Cutoff),
		"--win", s.Window,
		"--n", strconv.Itoa(s.N),
		"--infile", s.Infile,
	}
}

// CoeffArgs builds the coefficient dump argument list from the same
// design parameters, so the dumped vector is exactly what the subject
// filters with.
func (s FIRSpec) CoeffArgs() []string {
	return []string{
		"--num-taps", strconv.Itoa(s.NumTaps),
		"--cutoff", formatFloat(s.Cutoff),
		"--win", s.Window,
	}
}

// IIRSpec bundles the biquad coefficients for the subject tool.
type IIRSpec struct {
	B0, B1, B2 float64
	A1, A2     float64
	N          int
	Infile     string
}

// Args builds the subject biquad argument list.
func (s IIRSpec) Args() []string {
	return []string{
		"--b0", formatFloat(s.B0),
		"--b1", formatFloat(s.B1),
		"--b2", formatFloat(s.B2),
		"--a1", formatFloat(s.A1),
		"--a2", formatFloat(s.A2),
		"--n", strconv.Itoa(s.N),
		"--infile", s.Infile,
	}
}

// Biquad converts the invocation parameters into the reference recursion
// with the same coefficient values.
func (s IIRSpec) Biquad() reference.Biquad {
	return reference.Biquad{B0: s.B0, B1: s.B1, B2: s.B2, A1: s.A1, A2: s.A2}
}

// FilterOptions configures the filter validation.
type FilterOptions struct {
	FIRBin   string
	IIRBin   string
	CoeffBin string // defaults to the dump tool beside FIRBin
	N        int
	Workdir  string
	Settings config.Settings
}

// RunFilters validates the subject FIR and IIR filtering tools.
//
// The FIR check dumps the subject's designed coefficients, then filters
// noise with the subject and with reference convolution over the
// identical dumped vector. The vector is obtained once and shared;
// the reference never designs its own, so the subject's design
// convention (cutoff scaling, DC gain) stays opaque to the comparison.
func RunFilters(ctx context.Context, opts FilterOptions) error {
	coeffBin := opts.CoeffBin
	if coeffBin == "" {
		coeffBin = filepath.Join(filepath.Dir(opts.FIRBin), coeffDumpTool)
	}
	for _, bin := range []string{opts.FIRBin, opts.IIRBin, coeffBin} {
		if err := oracle.Probe(bin); err != nil {
			return err
		}
	}
	tol := tolerance(opts.Settings, defaultFilterRtol, defaultFilterAtol)

	n := opts.N
	if n <= 0 {
		n = defaultFilterLength
	}

	// Both paths consume the reduced-precision signal.
	x := signal.Truncate32(signal.Noise(n, seedFilters))

	if err := runFIR(ctx, opts, coeffBin, x, n, tol); err != nil {
		return err
	}
	return runIIR(ctx, opts, x, n, tol)
}

func runFIR(ctx context.Context, opts FilterOptions, coeffBin string, x []float64, n int, tol compare.Tolerance) error {
	spec := FIRSpec{
		NumTaps: defaultFIRTaps,
		Cutoff:  defaultFIRCutoff,
		Window:  defaultFIRWindow,
		N:       n,
	}

	coeffLines, err := oracle.Invoke(ctx, coeffBin, spec.CoeffArgs(), nil)
	if err != nil {
		return fmt.Errorf("fir coefficients: %w", err)
	}
	h, err := codec.ParseReal(coeffLines)
	if err != nil {
		return fmt.Errorf("fir coefficients: %w", err)
	}
	if len(h) != spec.NumTaps {
		return fmt.Errorf("fir coefficients: got %d taps, want %d", len(h), spec.NumTaps)
	}

	infile := oracle.ArtifactPath(opts.Workdir, "fir_in", "txt")
	defer oracle.RemoveArtifact(infile)
	if err := codec.SaveReal(infile, x); err != nil {
		return fmt.Errorf("fir: write artifact: %w", err)
	}
	spec.Infile = infile

	lines, err := oracle.Invoke(ctx, opts.FIRBin, spec.Args(), nil)
	if err != nil {
		return fmt.Errorf("fir: %w", err)
	}
	got, err := codec.ParseReal(lines)
	if err != nil {
		return fmt.Errorf("fir: %w", err)
	}

	if err := compare.AllClose(got, reference.FIRFilter(h, x), tol); err != nil {
		logMismatch("filter", "fir", err)
		return fmt.Errorf("fir output: %w", err)
	}
	return nil
}

func runIIR(ctx context.Context, opts FilterOptions, x []float64, n int, tol compare.Tolerance) error {
	spec := IIRSpec{B0: iirB0, A1: iirA1, N: n}

	infile := oracle.ArtifactPath(opts.Workdir, "iir_in", "txt")
	defer oracle.RemoveArtifact(infile)
	if err := codec.SaveReal(infile, x); err != nil {
		return fmt.Errorf("iir: write artifact: %w", err)
	}
	spec.Infile = infile

	lines, err := oracle.Invoke(ctx, opts.IIRBin, spec.Args(), nil)
	if err != nil {
		return fmt.Errorf("iir: %w", err)
	}
	got, err := codec.ParseReal(lines)
	if err != nil {
		return fmt.Errorf("iir: %w", err)
	}

	if err := compare.AllClose(got, spec.Biquad().Filter(x), tol); err != nil {
		logMismatch("filter", "iir", err)
		return fmt.Errorf("iir output: %w", err)
	}
	return nil
}
