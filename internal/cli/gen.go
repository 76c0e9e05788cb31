package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vv-dsp/verify/internal/codec"
	"github.com/vv-dsp/verify/internal/signal"
)

// newGenCommand builds the standalone signal generator. It writes the
// same seeded signals the drivers use, as exchange text or 16-bit WAV,
// for debugging a subject tool by hand.
func newGenCommand() *cobra.Command {
	var (
		kind string
		n    int
		seed uint64
		freq float64
		amp  float64
		rate float64
		out  string
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a seeded test signal as exchange text or WAV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var x []float64
			switch kind {
			case "noise":
				x = signal.Noise(n, seed)
			case "tone":
				x = signal.Tone(n, freq, amp, rate)
			default:
				return fmt.Errorf("unknown signal kind %q (want noise or tone)", kind)
			}

			if strings.HasSuffix(strings.ToLower(out), ".wav") {
				if err := signal.SaveWAV(out, x, int(rate)); err != nil {
					return &ExitError{Code: ExitFail, Err: err}
				}
			} else {
				if err := codec.SaveReal(out, x); err != nil {
					return &ExitError{Code: ExitFail, Err: err}
				}
			}
			slog.Info("signal written", "kind", kind, "samples", n, "path", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "noise", "signal kind: noise or tone")
	cmd.Flags().IntVar(&n, "n", 256, "number of samples")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "noise generator seed")
	cmd.Flags().Float64Var(&freq, "freq", 1000, "tone frequency in Hz")
	cmd.Flags().Float64Var(&amp, "amp", 1, "tone amplitude")
	cmd.Flags().Float64Var(&rate, "rate", 48000, "sample rate in Hz")
	cmd.Flags().StringVar(&out, "out", "", "output path (.wav for PCM, anything else for text)")
	cobra.CheckErr(cmd.MarkFlagRequired("out"))
	return cmd
}
