// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strings"

	"github.com/Thermoquad/metis/pkg/metis"
	"github.com/spf13/cobra"
)

var laserCmd = &cobra.Command{
	Use:       "laser on|off|toggle",
	Short:     "Switch the targeting light",
	Long:      `Switch the laser targeting light. The argument is encoded as set by --light-encoding.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off", "toggle"},
	RunE:      runLaser,
}

func init() {
	rootCmd.AddCommand(laserCmd)
}

// ParseLightState maps a laser argument to a targeting light state
func ParseLightState(name string) (metis.TargetingLightState, error) {
	switch strings.ToLower(name) {
	case "on":
		return metis.TargetingLightOn, nil
	case "off":
		return metis.TargetingLightOff, nil
	case "toggle":
		return metis.TargetingLightToggle, nil
	default:
		return 0, fmt.Errorf("unknown light state %q (use on, off or toggle)", name)
	}
}

func runLaser(cmd *cobra.Command, args []string) error {
	state, err := ParseLightState(args[0])
	if err != nil {
		return err
	}

	return withDevice(func(dev *metis.Device) error {
		reply, err := dev.TargetingLight(state)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Targeting light %s: %s\n", metis.FormatTargetingLightState(state), reply)
		return nil
	})
}
