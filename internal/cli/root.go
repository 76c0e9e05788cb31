// Package cli wires the validation drivers into the vv-verify command
// tree and owns the process exit-code contract.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vv-dsp/verify/internal/config"
)

// rootOptions holds state shared by every subcommand.
type rootOptions struct {
	verbose  bool
	workdir  string
	settings config.Settings
}

// NewRootCommand builds the vv-verify command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "vv-verify",
		Short: "Differential validation harness for the vv-dsp command-line tools",
		Long: `vv-verify certifies the numerical behavior of the vv-dsp tools by
running each one against a trusted reference computation over identical
parameters and seeded signals. Each family exits 0 on agreement, 1 on a
tolerance violation, and 77 when the subject tool is not available.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.settings = config.Load()
			if opts.verbose {
				opts.settings.Verbose = true
			}
			level := slog.LevelInfo
			if opts.settings.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			})))
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false,
		"emit per-comparison diagnostics")
	cmd.PersistentFlags().StringVar(&opts.workdir, "workdir", os.TempDir(),
		"directory for exchange artifacts")

	cmd.AddCommand(
		newCZTCommand(opts),
		newFFTCommand(opts),
		newDCTCommand(opts),
		newFilterCommand(opts),
		newResampleCommand(opts),
		newSTFTCommand(opts),
		newFramingCommand(opts),
		newStatsCommand(opts),
		newSuiteCommand(opts),
		newGenCommand(),
	)
	return cmd
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	cmd := NewRootCommand()
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "vv-verify: %v\n", err)
	}
	return exitCode(err)
}

// familyResult wraps a driver error into the exit-code contract for a
// single-family subcommand.
func familyResult(family string, err error) error {
	if err == nil {
		slog.Info("family passed", "family", family)
		return nil
	}
	code := CodeFor(err)
	if code == ExitSkip {
		slog.Warn("family skipped", "family", family, "reason", err)
	} else {
		slog.Error("family failed", "family", family, "error", err)
	}
	return &ExitError{Code: code, Err: err}
}
