// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strings"

	"github.com/Thermoquad/metis/pkg/metis"
	"github.com/spf13/cobra"
)

var temperatureChannel string

var temperatureCmd = &cobra.Command{
	Use:   "temperature",
	Short: "Read the measured temperature",
	Long: `Read the measured temperature of one channel.

Channels:
  two-colour   Ratio (2-colour) temperature (default)
  channel-1    Single colour, channel 1
  channel-2    Single colour, channel 2

Both single colour channels share a wire value, so channel-1 and channel-2
return the same reading.`,
	Args: cobra.NoArgs,
	RunE: runTemperature,
}

var sensorsCmd = &cobra.Command{
	Use:   "sensors",
	Short: "Read both internal temperature sensors",
	Args:  cobra.NoArgs,
	RunE:  runSensors,
}

var signalCmd = &cobra.Command{
	Use:   "signal",
	Short: "Read the signal strength",
	Args:  cobra.NoArgs,
	RunE:  runSignal,
}

func init() {
	temperatureCmd.Flags().StringVar(&temperatureChannel, "channel", "two-colour", "Measurement channel (two-colour|channel-1|channel-2)")

	rootCmd.AddCommand(temperatureCmd)
	rootCmd.AddCommand(sensorsCmd)
	rootCmd.AddCommand(signalCmd)
}

// ParseChannel maps a --channel value to a measurement channel
func ParseChannel(name string) (metis.MeasurementChannel, error) {
	switch strings.ToLower(name) {
	case "two-colour", "two-color", "2c", "0":
		return metis.TwoColour, nil
	case "channel-1", "ch1", "1":
		return metis.SingleColourChannel1, nil
	case "channel-2", "ch2", "2":
		return metis.SingleColourChannel2, nil
	default:
		return 0, fmt.Errorf("unknown channel %q (use two-colour, channel-1 or channel-2)", name)
	}
}

func runTemperature(cmd *cobra.Command, args []string) error {
	channel, err := ParseChannel(temperatureChannel)
	if err != nil {
		return err
	}

	return withDevice(func(dev *metis.Device) error {
		t, err := dev.ReadTemperature(channel)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%.1f°C\n", t)
		return nil
	})
}

func runSensors(cmd *cobra.Command, args []string) error {
	return withDevice(func(dev *metis.Device) error {
		one, two, err := dev.ReadTemperatureSensors()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Sensor 1: %.2f°C\nSensor 2: %.2f°C\n", one, two)
		return nil
	})
}

func runSignal(cmd *cobra.Command, args []string) error {
	return withDevice(func(dev *metis.Device) error {
		s, err := dev.SignalStrength()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%.1f%%\n", s)
		return nil
	})
}
