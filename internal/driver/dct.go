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

// Family defaults for the DCT validation.
const (
	defaultDCTRtol = 1e-6
	defaultDCTAtol = 1e-4
)

// dctBoundarySizes are the representative lengths: tiny, power-of-two,
// near-power-of-two-odd, power-of-two, large-odd.
var dctBoundarySizes = []int{7, 8, 63, 64, 257}

// DCTSpec bundles one DCT invocation of the subject tool.
type DCTSpec struct {
	Type    int
	Forward bool
	N       int
	Infile  string
}

// Args builds the subject tool argument list.
func (s DCTSpec) Args() []string {
	dir := "inv"
	if s.Forward {
		dir = "fwd"
	}
	return []string{
		"--type", strconv.Itoa(s.Type),
		"--dir", dir,
		"-n", strconv.Itoa(s.N),
		"--infile", s.Infile,
	}
}

// DCTOptions configures the DCT validation.
type DCTOptions struct {
	Bin      string
	Workdir  string
	Settings config.Settings
}

// RunDCT validates the subject DCT tool via round-trip identity: a
// type-II forward followed by its type-III-based inverse, and the
// self-inverse type IV, must reconstruct the input at every boundary
// size. Round-trip identity is the family's reference rule; no forward
// spectrum is compared directly, so the subject's internal scaling
// convention stays opaque.
func RunDCT(ctx context.Context, opts DCTOptions) error {
	if err := oracle.Probe(opts.Bin); err != nil {
		return err
	}
	tol := tolerance(opts.Settings, defaultDCTRtol, defaultDCTAtol)

	for _, n := range dctBoundarySizes {
		x := signal.Noise(n, seedSpectral)

		for _, typ := range []int{reference.DCTTypeII, reference.DCTTypeIV} {
			if err := runDCTRoundTrip(ctx, opts, x, n, typ, tol); err != nil {
				return err
			}
		}
	}
	return nil
}

func runDCTRoundTrip(ctx context.Context, opts DCTOptions, x []float64, n, typ int, tol compare.Tolerance) error {
	stage := fmt.Sprintf("type-%d n=%d", typ, n)

	y, err := invokeDCT(ctx, opts, DCTSpec{Type: typ, Forward: true, N: n}, x)
	if err != nil {
		return fmt.Errorf("dct %s forward: %w", stage, err)
	}
	xr, err := invokeDCT(ctx, opts, DCTSpec{Type: typ, Forward: false, N: n}, y)
	if err != nil {
		return fmt.Errorf("dct %s inverse: %w", stage, err)
	}

	if err := compare.AllClose(xr, x, tol); err != nil {
		logMismatch("dct", stage, err)
		return fmt.Errorf("dct %s round trip: %w", stage, err)
	}
	return nil
}

func invokeDCT(ctx context.Context, opts DCTOptions, spec DCTSpec, in []float64) ([]float64, error) {
	infile := oracle.ArtifactPath(opts.Workdir, "dct_in", "txt")
	defer oracle.RemoveArtifact(infile)
	if err := codec.SaveReal(infile, in); err != nil {
		return nil, fmt.Errorf("write artifact: %w", err)
	}
	spec.Infile = infile

	lines, err := oracle.Invoke(ctx, opts.Bin, spec.Args(), nil)
	if err != nil {
		return nil, err
	}
	return codec.ParseReal(lines)
}
