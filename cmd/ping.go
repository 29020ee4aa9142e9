// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/Thermoquad/metis/pkg/metis"
	"github.com/spf13/cobra"
)

var pingCount int

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the instrument answers",
	Long: `Request the serial number repeatedly and report the round trip time of
each exchange. Works over serial and through a WebSocket bridge.

Exits with an error if any request fails.`,
	Args: cobra.NoArgs,
	RunE: runPing,
}

func init() {
	pingCmd.Flags().IntVar(&pingCount, "count", 3, "Number of requests to send")
	rootCmd.AddCommand(pingCmd)
}

// pingStats summarizes a ping run
type pingStats struct {
	sent     int
	answered int
	total    time.Duration
}

func (s *pingStats) record(rtt time.Duration, err error) {
	s.sent++
	if err == nil {
		s.answered++
		s.total += rtt
	}
}

func (s pingStats) loss() float64 {
	if s.sent == 0 {
		return 0
	}
	return float64(s.sent-s.answered) / float64(s.sent) * 100
}

func (s pingStats) average() time.Duration {
	if s.answered == 0 {
		return 0
	}
	return s.total / time.Duration(s.answered)
}

func runPing(cmd *cobra.Command, args []string) error {
	if pingCount < 1 {
		return fmt.Errorf("--count must be at least 1")
	}

	return withDevice(func(dev *metis.Device) error {
		out := cmd.OutOrStdout()
		var stats pingStats

		for i := 1; i <= pingCount; i++ {
			fmt.Fprintf(out, "Ping %d/%d: ", i, pingCount)

			start := time.Now()
			serial, err := dev.SerialNumber()
			rtt := time.Since(start)
			stats.record(rtt, err)

			switch {
			case err == nil:
				fmt.Fprintf(out, "serial=%s, rtt=%v\n", serial, rtt.Round(time.Millisecond))
			case errors.Is(err, ErrReadTimeout):
				fmt.Fprintf(out, "TIMEOUT (no reply in %v)\n", readTimeout)
			case errors.Is(err, metis.ErrRejected):
				fmt.Fprintln(out, "REJECTED")
			default:
				fmt.Fprintf(out, "FAILED: %v\n", err)
			}

			if i < pingCount {
				time.Sleep(100 * time.Millisecond)
			}
		}

		fmt.Fprintf(out, "\n--- Ping statistics ---\n")
		fmt.Fprintf(out, "%d requests sent, %d replies received, %.0f%% loss, avg rtt %v\n",
			stats.sent, stats.answered, stats.loss(), stats.average().Round(time.Millisecond))

		if stats.answered < stats.sent {
			return fmt.Errorf("%d of %d requests failed", stats.sent-stats.answered, stats.sent)
		}
		return nil
	})
}
