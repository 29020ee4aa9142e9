// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"github.com/Thermoquad/metis/pkg/metis"
)

// withDevice opens the configured device, runs fn and closes the connection
func withDevice(fn func(dev *metis.Device) error) error {
	dev, conn, err := OpenDevice()
	if err != nil {
		return err
	}
	defer conn.Close()

	return fn(dev)
}
