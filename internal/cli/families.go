package cli

import (
	"github.com/spf13/cobra"

	"github.com/vv-dsp/verify/internal/driver"
)

func newCZTCommand(opts *rootOptions) *cobra.Command {
	var bin string
	var n, m int

	cmd := &cobra.Command{
		Use:   "czt",
		Short: "Validate the chirp Z-transform tool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return familyResult("czt", driver.RunCZT(cmd.Context(), driver.CZTOptions{
				Bin:      bin,
				N:        n,
				M:        m,
				Workdir:  opts.workdir,
				Settings: opts.settings,
			}))
		},
	}
	cmd.Flags().StringVar(&bin, "bin", "", "path to the czt tool")
	cmd.Flags().IntVar(&n, "n", 0, "input length (0 for the default)")
	cmd.Flags().IntVar(&m, "m", 0, "output bin count (0 to match the input length)")
	cobra.CheckErr(cmd.MarkFlagRequired("bin"))
	return cmd
}

func newFFTCommand(opts *rootOptions) *cobra.Command {
	var bin string
	var n int

	cmd := &cobra.Command{
		Use:   "fft",
		Short: "Validate the FFT tool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return familyResult("fft", driver.RunFFT(cmd.Context(), driver.FFTOptions{
				Bin:      bin,
				N:        n,
				Workdir:  opts.workdir,
				Settings: opts.settings,
			}))
		},
	}
	cmd.Flags().StringVar(&bin, "bin", "", "path to the fft tool")
	cmd.Flags().IntVar(&n, "n", 0, "transform length (0 for the default)")
	cobra.CheckErr(cmd.MarkFlagRequired("bin"))
	return cmd
}

func newDCTCommand(opts *rootOptions) *cobra.Command {
	var bin string

	cmd := &cobra.Command{
		Use:   "dct",
		Short: "Validate the DCT tool over the boundary sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return familyResult("dct", driver.RunDCT(cmd.Context(), driver.DCTOptions{
				Bin:      bin,
				Workdir:  opts.workdir,
				Settings: opts.settings,
			}))
		},
	}
	cmd.Flags().StringVar(&bin, "bin", "", "path to the dct tool")
	cobra.CheckErr(cmd.MarkFlagRequired("bin"))
	return cmd
}

func newFilterCommand(opts *rootOptions) *cobra.Command {
	var firBin, iirBin, coeffBin string
	var n int

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Validate the FIR and IIR filtering tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return familyResult("filter", driver.RunFilters(cmd.Context(), driver.FilterOptions{
				FIRBin:   firBin,
				IIRBin:   iirBin,
				CoeffBin: coeffBin,
				N:        n,
				Workdir:  opts.workdir,
				Settings: opts.settings,
			}))
		},
	}
	cmd.Flags().StringVar(&firBin, "fir-bin", "", "path to the FIR filtering tool")
	cmd.Flags().StringVar(&iirBin, "iir-bin", "", "path to the biquad filtering tool")
	cmd.Flags().StringVar(&coeffBin, "coeff-bin", "",
		"path to the coefficient dump tool (default: beside the FIR tool)")
	cmd.Flags().IntVar(&n, "n", 0, "signal length (0 for the default)")
	cobra.CheckErr(cmd.MarkFlagRequired("fir-bin"))
	cobra.CheckErr(cmd.MarkFlagRequired("iir-bin"))
	return cmd
}

func newResampleCommand(opts *rootOptions) *cobra.Command {
	var bin string
	var n, num, den int

	cmd := &cobra.Command{
		Use:   "resample",
		Short: "Validate the rational resampling tool at linear quality",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return familyResult("resample", driver.RunResample(cmd.Context(), driver.ResampleOptions{
				Bin:      bin,
				N:        n,
				Num:      num,
				Den:      den,
				Workdir:  opts.workdir,
				Settings: opts.settings,
			}))
		},
	}
	cmd.Flags().StringVar(&bin, "bin", "", "path to the resample tool")
	cmd.Flags().IntVar(&n, "n", 0, "signal length (0 for the default)")
	cmd.Flags().IntVar(&num, "num", 0, "ratio numerator (0 for the default)")
	cmd.Flags().IntVar(&den, "den", 0, "ratio denominator (0 for the default)")
	cobra.CheckErr(cmd.MarkFlagRequired("bin"))
	return cmd
}

func newSTFTCommand(opts *rootOptions) *cobra.Command {
	var bin string
	var n, fftSize, hop int

	cmd := &cobra.Command{
		Use:   "stft",
		Short: "Validate the short-time transform round trip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return familyResult("stft", driver.RunSTFT(cmd.Context(), driver.STFTOptions{
				Bin:      bin,
				N:        n,
				FFTSize:  fftSize,
				Hop:      hop,
				Workdir:  opts.workdir,
				Settings: opts.settings,
			}))
		},
	}
	cmd.Flags().StringVar(&bin, "bin", "", "path to the stft tool")
	cmd.Flags().IntVar(&n, "n", 0, "signal length (0 for the default)")
	cmd.Flags().IntVar(&fftSize, "fft", 0, "transform size (0 for the default)")
	cmd.Flags().IntVar(&hop, "hop", 0, "hop length (0 for the default)")
	cobra.CheckErr(cmd.MarkFlagRequired("bin"))
	return cmd
}

func newFramingCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "framing",
		Short: "Validate frame counting and overlap-add reconstruction",
		Long: `framing checks the frame-count formulas and the windowed overlap-add
round trip against closed-form expectations. It needs no subject tool.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return familyResult("framing", driver.RunFraming(cmd.Context(), driver.FramingOptions{
				Settings: opts.settings,
			}))
		},
	}
}

func newStatsCommand(opts *rootOptions) *cobra.Command {
	var bin string
	var n int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Validate the autocorrelation tool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return familyResult("stats", driver.RunStats(cmd.Context(), driver.StatsOptions{
				Bin:      bin,
				N:        n,
				Workdir:  opts.workdir,
				Settings: opts.settings,
			}))
		},
	}
	cmd.Flags().StringVar(&bin, "bin", "", "path to the stats tool")
	cmd.Flags().IntVar(&n, "n", 0, "signal length (0 for the default)")
	cobra.CheckErr(cmd.MarkFlagRequired("bin"))
	return cmd
}
