// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Serial connection flags
	portName    string
	baudRate    int
	readTimeout time.Duration

	// WebSocket connection flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	// Device flags
	deviceAddress int
	lightEncoding string

	// Logging flags
	debugTrace bool
	logLevel   string

	configFile string
)

// logger is shared by all commands and the device facade
var logger = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "metis",
	Short: "Sensortherm METIS pyrometer driver",
	Long: `Metis - A CLI tool for reading and configuring Sensortherm METIS pyrometers.

Sends single ASCII commands over a half-duplex serial line and decodes the
replies, including the buffer telemetry record and its status flags.

Connection modes:
  Serial:    --port /dev/ttyUSB0 [--baud 115200] [--timeout 1s]
  WebSocket: --url ws://host/path [--username user]

Settings may also be read from a YAML file with --config. Flags given on the
command line take precedence over the file.

For WebSocket authentication, the password is read from the METIS_PASSWORD
environment variable, or prompted interactively if not set.`,
	Version:           "1.0.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Serial connection flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 115200, "Baud rate (serial only)")
	rootCmd.PersistentFlags().DurationVar(&readTimeout, "timeout", time.Second, "Read timeout per reply")

	// WebSocket connection flags
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL of a serial bridge (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	// Device flags
	rootCmd.PersistentFlags().IntVarP(&deviceAddress, "address", "a", 0, "Device bus address (0-99)")
	rootCmd.PersistentFlags().StringVar(&lightEncoding, "light-encoding", "decimal", "Targeting light argument encoding (decimal|hex)")

	// Logging flags
	rootCmd.PersistentFlags().BoolVar(&debugTrace, "debug", false, "Trace every exchanged line and decoded field")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (error|warning|info|debug|trace)")

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Load settings from a YAML `FILE`")
}

// setup loads the config file and configures logging before any command runs
func setup(cmd *cobra.Command, args []string) error {
	if configFile != "" {
		cfg, err := LoadConfig(configFile)
		if err != nil {
			return err
		}
		if err := cfg.Apply(cmd.Flags()); err != nil {
			return err
		}
	}

	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	if debugTrace && level < logrus.DebugLevel {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)

	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
