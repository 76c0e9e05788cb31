package driver

import (
	"bytes"
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

// Family defaults for the statistics validation.
const (
	defaultStatsRtol = 1e-4
	defaultStatsAtol = 1e-4

	defaultStatsLength = 128
)

// statsOpAutocorr is the autocorrelation operation selector.
const statsOpAutocorr = "autocorr"

// StatsSpec bundles one statistics invocation. The stats tool reads its
// signal from standard input and takes positional arguments: the
// operation, the sample count, and the estimator flag (1 divides every
// lag by N, 0 by the shrinking overlap N-k).
type StatsSpec struct {
	Op     string
	N      int
	Biased bool
}

// Args builds the subject tool argument list.
func (s StatsSpec) Args() []string {
	flag := "0"
	if s.Biased {
		flag = "1"
	}
	return []string{s.Op, strconv.Itoa(s.N), flag}
}

// StatsOptions configures the statistics validation.
type StatsOptions struct {
	Bin      string
	N        int
	Workdir  string
	Settings config.Settings
}

// RunStats validates the autocorrelation statistic against the biased
// estimator r[k] = (1/N)·Σ x[i]·x[i+k]; the subject is told to use the
// same estimator. The signal crosses to the subject over standard input
// rather than a file artifact.
func RunStats(ctx context.Context, opts StatsOptions) error {
	if err := oracle.Probe(opts.Bin); err != nil {
		return err
	}
	tol := tolerance(opts.Settings, defaultStatsRtol, defaultStatsAtol)

	n := opts.N
	if n <= 0 {
		n = defaultStatsLength
	}

	x := signal.Noise(n, seedSpectral)

	var stdin bytes.Buffer
	if err := codec.WriteReal(&stdin, x); err != nil {
		return fmt.Errorf("stats: encode stdin: %w", err)
	}

	spec := StatsSpec{Op: statsOpAutocorr, N: n, Biased: true}
	lines, err := oracle.Invoke(ctx, opts.Bin, spec.Args(), stdin.Bytes())
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	got, err := codec.ParseReal(lines)
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}

	if err := compare.AllClose(got, reference.Autocorr(x), tol); err != nil {
		logMismatch("stats", "autocorr", err)
		return fmt.Errorf("stats autocorr: %w", err)
	}
	return nil
}
