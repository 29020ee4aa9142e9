// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"

	"github.com/Thermoquad/metis/pkg/metis"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show serial number and reference numbers",
	Long: `Read the identification of the instrument: serial number and the short
(18 digit) and long (21 digit) reference numbers.`,
	Args: cobra.NoArgs,
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	return withDevice(func(dev *metis.Device) error {
		serial, err := dev.SerialNumber()
		if err != nil {
			return fmt.Errorf("serial number: %w", err)
		}
		short, err := dev.ReferenceShort()
		if err != nil {
			return fmt.Errorf("reference number: %w", err)
		}
		long, err := dev.ReferenceLong()
		if err != nil {
			return fmt.Errorf("long reference number: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Address:          %02d\n", dev.Address())
		fmt.Fprintf(out, "Serial Number:    %s\n", serial)
		fmt.Fprintf(out, "Reference:        %s\n", short)
		fmt.Fprintf(out, "Reference (long): %s\n", long)
		return nil
	})
}
