package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tanagraspace/pocket-plus/pkg/pocketplus"
)

func newBenchCmd(logger *log.Logger) *cobra.Command {
	f := &codecFlags{}
	var iterations int

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure compression throughput on a fixture file",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(f.input)
			if err != nil {
				return fmt.Errorf("reading %s: %w", f.input, err)
			}
			packetBytes := f.packetSizeBits / 8
			if packetBytes == 0 || len(data)%packetBytes != 0 {
				return fmt.Errorf("input length %d is not a multiple of packet size %d bytes", len(data), packetBytes)
			}
			numPackets := len(data) / packetBytes

			// Warmup run, discarded: lets the runtime settle before timing.
			compressed, err := pocketplus.Compress(data, f.packetSizeBits, f.robustness, f.ptLimit, f.ftLimit, f.rtLimit)
			if err != nil {
				return err
			}
			logger.Debug("warmup complete", "compressed_bytes", len(compressed))

			start := time.Now()
			for i := 0; i < iterations; i++ {
				if _, err := pocketplus.Compress(data, f.packetSizeBits, f.robustness, f.ptLimit, f.ftLimit, f.rtLimit); err != nil {
					return err
				}
			}
			elapsed := time.Since(start)

			usPerIter := float64(elapsed.Microseconds()) / float64(iterations)
			usPerPacket := usPerIter / float64(numPackets)
			ratio := float64(len(data)) / float64(len(compressed))
			kbps := (float64(len(data)) * 8 / 1000) / (usPerIter / 1_000_000)

			logger.Info("bench",
				"packets", numPackets,
				"ratio", ratio,
				"us_per_iter", usPerIter,
				"us_per_packet", usPerPacket,
				"kbps", kbps,
			)
			return nil
		},
	}
	addCodecFlags(cmd, f, false, true)
	cmd.Flags().IntVarP(&iterations, "iterations", "n", 10, "number of timed compression passes")
	return cmd
}
