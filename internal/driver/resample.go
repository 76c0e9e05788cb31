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

// Family defaults for the resampler validation.
const (
	defaultResampleRtol = 5e-2
	defaultResampleAtol = 5e-2

	defaultResampleLength = 400
	defaultResampleNum    = 2
	defaultResampleDen    = 1
)

// resampleQualityLinear selects the linear-interpolation quality tier,
// the only tier with a closed-form reference.
const resampleQualityLinear = "linear"

// ResampleSpec bundles the rational resampling parameters.
type ResampleSpec struct {
	Num     int
	Den     int
	Quality string
	Infile  string
}

// Args builds the subject tool argument list.
func (s ResampleSpec) Args() []string {
	return []string{
		"--num", strconv.Itoa(s.Num),
		"--den", strconv.Itoa(s.Den),
		"--quality", s.Quality,
		"--infile", s.Infile,
	}
}

// ResampleOptions configures the resampler validation.
type ResampleOptions struct {
	Bin      string
	N        int
	Num      int
	Den      int
	Workdir  string
	Settings config.Settings
}

// RunResample validates rational resampling at linear quality against the
// clamped linear-interpolation reference. The output length contract,
// floor((n-1)·ratio)+1, is enforced before the sample comparison.
func RunResample(ctx context.Context, opts ResampleOptions) error {
	if err := oracle.Probe(opts.Bin); err != nil {
		return err
	}
	tol := tolerance(opts.Settings, defaultResampleRtol, defaultResampleAtol)

	n := opts.N
	if n <= 0 {
		n = defaultResampleLength
	}
	num, den := opts.Num, opts.Den
	if num <= 0 || den <= 0 {
		num, den = defaultResampleNum, defaultResampleDen
	}

	x := signal.Truncate32(signal.Noise(n, seedResample))

	infile := oracle.ArtifactPath(opts.Workdir, "resample_in", "txt")
	defer oracle.RemoveArtifact(infile)
	if err := codec.SaveReal(infile, x); err != nil {
		return fmt.Errorf("resample: write artifact: %w", err)
	}

	spec := ResampleSpec{Num: num, Den: den, Quality: resampleQualityLinear, Infile: infile}
	lines, err := oracle.Invoke(ctx, opts.Bin, spec.Args(), nil)
	if err != nil {
		return fmt.Errorf("resample: %w", err)
	}
	got, err := codec.ParseReal(lines)
	if err != nil {
		return fmt.Errorf("resample: %w", err)
	}

	if wantLen := reference.ResampleLinearLength(len(x), spec.Num, spec.Den); len(got) != wantLen {
		err := fmt.Errorf("got %d samples, want %d", len(got), wantLen)
		logMismatch("resample", "length", err)
		return fmt.Errorf("resample length: %w", err)
	}

	want := reference.ResampleLinear(x, spec.Num, spec.Den)
	if err := compare.AllClose(got, want, tol); err != nil {
		logMismatch("resample", "output", err)
		return fmt.Errorf("resample output: %w", err)
	}
	return nil
}
