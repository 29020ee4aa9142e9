// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad
//
// Metis - Sensortherm METIS Pyrometer Driver
//
// A CLI tool for reading measurements, buffer records and status flags
// from Sensortherm METIS pyrometers over their ASCII serial protocol.

package main

import (
	"os"

	"github.com/Thermoquad/metis/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
