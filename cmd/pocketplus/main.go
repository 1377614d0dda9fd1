// Command pocketplus compresses and decompresses fixed-length
// housekeeping telemetry packets using the CCSDS 124.0-B-1 POCKET+
// algorithm.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tanagraspace/pocket-plus/pkg/pocketplus"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

	root := &cobra.Command{
		Use:           "pocketplus",
		Short:         "POCKET+ (CCSDS 124.0-B-1) telemetry packet compressor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().CountP("verbose", "v", "increase log verbosity (-v for debug)")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if n, _ := cmd.Flags().GetCount("verbose"); n > 0 {
			logger.SetLevel(log.DebugLevel)
		}
	}

	root.AddCommand(newCompressCmd(logger))
	root.AddCommand(newDecompressCmd(logger))
	root.AddCommand(newBenchCmd(logger))
	root.AddCommand(newVersionCmd())
	return root
}

type codecFlags struct {
	input          string
	output         string
	packetSizeBits int
	robustness     int
	ptLimit        int
	ftLimit        int
	rtLimit        int
}

func addCodecFlags(cmd *cobra.Command, f *codecFlags, withOutput, withLimits bool) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "input file (required)")
	if withOutput {
		cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (required)")
	}
	cmd.Flags().IntVarP(&f.packetSizeBits, "size", "s", 720, "packet size in bits")
	cmd.Flags().IntVarP(&f.robustness, "robustness", "r", 2, "robustness window R (0-7)")
	if withLimits {
		cmd.Flags().IntVarP(&f.ptLimit, "pt", "p", 20, "new-mask refresh period")
		cmd.Flags().IntVarP(&f.ftLimit, "ft", "f", 50, "full-mask refresh period")
		cmd.Flags().IntVarP(&f.rtLimit, "rt", "t", 100, "uncompressed-packet period")
	}
	cmd.MarkFlagRequired("input")
	if withOutput {
		cmd.MarkFlagRequired("output")
	}
}

func newCompressCmd(logger *log.Logger) *cobra.Command {
	f := &codecFlags{}
	cmd := &cobra.Command{
		Use:   "compress",
		Short: "Compress a raw packet stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(f.input)
			if err != nil {
				return fmt.Errorf("reading %s: %w", f.input, err)
			}
			out, err := pocketplus.Compress(data, f.packetSizeBits, f.robustness, f.ptLimit, f.ftLimit, f.rtLimit)
			if err != nil {
				return err
			}
			if err := os.WriteFile(f.output, out, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", f.output, err)
			}
			ratio := 1.0
			if len(out) > 0 {
				ratio = float64(len(data)) / float64(len(out))
			}
			logger.Info("compressed", "in_bytes", len(data), "out_bytes", len(out), "ratio", ratio)
			return nil
		},
	}
	addCodecFlags(cmd, f, true, true)
	return cmd
}

func newDecompressCmd(logger *log.Logger) *cobra.Command {
	f := &codecFlags{}
	cmd := &cobra.Command{
		Use:   "decompress",
		Short: "Decompress a POCKET+ stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(f.input)
			if err != nil {
				return fmt.Errorf("reading %s: %w", f.input, err)
			}
			out, err := pocketplus.Decompress(data, f.packetSizeBits, f.robustness)
			if err != nil {
				return err
			}
			if err := os.WriteFile(f.output, out, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", f.output, err)
			}
			logger.Info("decompressed", "in_bytes", len(data), "out_bytes", len(out))
			return nil
		},
	}
	addCodecFlags(cmd, f, true, false)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the pocketplus version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(version)
			return nil
		},
	}
}
