package cli

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vv-dsp/verify/internal/config"
	"github.com/vv-dsp/verify/internal/driver"
)

// suiteOrder fixes the execution order of a suite run so repeated runs
// produce comparable logs.
var suiteOrder = []string{"czt", "fft", "dct", "filter", "resample", "stft", "framing", "stats"}

// Manifest describes a full suite run: where artifacts go and which
// families to validate with which subject tools.
type Manifest struct {
	Workdir  string                  `yaml:"workdir"`
	Families map[string]FamilyConfig `yaml:"families"`
}

// FamilyConfig configures one family entry of the manifest. Only the
// fields a family understands are consulted; rtol/atol override that
// family's default tolerances.
type FamilyConfig struct {
	Bin      string `yaml:"bin"`
	FIRBin   string `yaml:"fir_bin"`
	IIRBin   string `yaml:"iir_bin"`
	CoeffBin string `yaml:"coeff_bin"`

	N       int `yaml:"n"`
	M       int `yaml:"m"`
	Num     int `yaml:"num"`
	Den     int `yaml:"den"`
	FFTSize int `yaml:"fft"`
	Hop     int `yaml:"hop"`

	Rtol *float64 `yaml:"rtol"`
	Atol *float64 `yaml:"atol"`
}

// LoadManifest reads and strictly decodes a suite manifest. Unknown keys
// are rejected so a misspelled field cannot silently disable a check.
func LoadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if len(m.Families) == 0 {
		return nil, fmt.Errorf("manifest %s lists no families", path)
	}
	for name := range m.Families {
		if !knownFamily(name) {
			return nil, fmt.Errorf("manifest %s: unknown family %q", path, name)
		}
	}
	return &m, nil
}

func knownFamily(name string) bool {
	for _, f := range suiteOrder {
		if f == name {
			return true
		}
	}
	return false
}

// familySettings layers manifest tolerance overrides over the
// environment-derived settings.
func familySettings(base config.Settings, fc FamilyConfig) config.Settings {
	s := base
	if fc.Rtol != nil {
		s.Rtol = fc.Rtol
	}
	if fc.Atol != nil {
		s.Atol = fc.Atol
	}
	return s
}

// AggregateCodes folds per-family exit codes into the suite verdict: any
// failure fails the suite, otherwise any pass passes it, otherwise
// everything was skipped.
func AggregateCodes(codes []int) int {
	anyPass := false
	for _, c := range codes {
		if c == ExitFail {
			return ExitFail
		}
		if c == ExitPass {
			anyPass = true
		}
	}
	if anyPass {
		return ExitPass
	}
	return ExitSkip
}

func newSuiteCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suite <manifest.yaml>",
		Short: "Run every family listed in a manifest and aggregate the verdict",
		Long: `suite reads a YAML manifest mapping family names to subject tool paths
and optional per-family tolerance overrides, runs each listed family in a
fixed order, and exits 0 if all runnable families pass, 1 if any fails,
and 77 if every family was skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest, err := LoadManifest(args[0])
			if err != nil {
				return err
			}
			return runSuite(cmd.Context(), opts, manifest)
		},
	}
	return cmd
}

func runSuite(ctx context.Context, opts *rootOptions, m *Manifest) error {
	workdir := m.Workdir
	if workdir == "" {
		workdir = opts.workdir
	}

	var codes []int
	failed, skipped := 0, 0
	for _, name := range suiteOrder {
		fc, ok := m.Families[name]
		if !ok {
			continue
		}
		err := runFamily(ctx, name, workdir, familySettings(opts.settings, fc), fc)
		code := CodeFor(err)
		codes = append(codes, code)
		switch code {
		case ExitPass:
			slog.Info("family passed", "family", name)
		case ExitSkip:
			skipped++
			slog.Warn("family skipped", "family", name, "reason", err)
		default:
			failed++
			slog.Error("family failed", "family", name, "error", err)
		}
	}

	switch verdict := AggregateCodes(codes); verdict {
	case ExitPass:
		slog.Info("suite passed", "families", len(codes), "skipped", skipped)
		return nil
	case ExitSkip:
		return &ExitError{Code: ExitSkip, Err: fmt.Errorf("all %d families skipped", skipped)}
	default:
		return &ExitError{Code: verdict, Err: fmt.Errorf("%d of %d families failed", failed, len(codes))}
	}
}

func runFamily(ctx context.Context, name, workdir string, settings config.Settings, fc FamilyConfig) error {
	switch name {
	case "czt":
		return driver.RunCZT(ctx, driver.CZTOptions{
			Bin: fc.Bin, N: fc.N, M: fc.M, Workdir: workdir, Settings: settings,
		})
	case "fft":
		return driver.RunFFT(ctx, driver.FFTOptions{
			Bin: fc.Bin, N: fc.N, Workdir: workdir, Settings: settings,
		})
	case "dct":
		return driver.RunDCT(ctx, driver.DCTOptions{
			Bin: fc.Bin, Workdir: workdir, Settings: settings,
		})
	case "filter":
		return driver.RunFilters(ctx, driver.FilterOptions{
			FIRBin: fc.FIRBin, IIRBin: fc.IIRBin, CoeffBin: fc.CoeffBin,
			N: fc.N, Workdir: workdir, Settings: settings,
		})
	case "resample":
		return driver.RunResample(ctx, driver.ResampleOptions{
			Bin: fc.Bin, N: fc.N, Num: fc.Num, Den: fc.Den,
			Workdir: workdir, Settings: settings,
		})
	case "stft":
		return driver.RunSTFT(ctx, driver.STFTOptions{
			Bin: fc.Bin, N: fc.N, FFTSize: fc.FFTSize, Hop: fc.Hop,
			Workdir: workdir, Settings: settings,
		})
	case "framing":
		return driver.RunFraming(ctx, driver.FramingOptions{Settings: settings})
	case "stats":
		return driver.RunStats(ctx, driver.StatsOptions{
			Bin: fc.Bin, N: fc.N, Workdir: workdir, Settings: settings,
		})
	}
	return fmt.Errorf("unknown family %q", name)
}
