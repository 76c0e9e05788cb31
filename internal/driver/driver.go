// Package driver orchestrates the per-family differential validations.
//
// Each driver follows the same sequence: probe the subject tool, generate
// a seeded test signal, write it to an exchange artifact, invoke the
// subject, compute the reference result from the same invocation spec, and
// judge agreement. The invocation spec types are the single source of
// truth for parameters: the subject argument list and the reference
// derivation are both produced from the same values, so the two paths are
// equivalent by construction.
package driver

import (
	"log/slog"
	"strconv"

	"github.com/vv-dsp/verify/internal/compare"
	"github.com/vv-dsp/verify/internal/config"
)

// Fixed generator seeds, one stream per family. Stable seeds make repeated
// runs byte-identical.
const (
	seedSpectral = 0 // czt, fft, dct, stats
	seedFilters  = 1
	seedSTFT     = 2
	seedResample = 3
)

// formatFloat renders a scalar CLI parameter at full precision so the
// subject parses back the exact value the reference uses.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// tolerance resolves the effective tolerance pair for a family.
func tolerance(s config.Settings, defRtol, defAtol float64) compare.Tolerance {
	rtol, atol := s.Tolerances(defRtol, defAtol)
	return compare.Tolerance{Rtol: rtol, Atol: atol}
}

// logMismatch emits the diagnostic for a failed comparison. It is logged
// at debug level, which the CLI surfaces when verbose mode is on.
func logMismatch(family, stage string, err error) {
	slog.Debug("comparison failed", "family", family, "stage", stage, "error", err)
}
