// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"time"

	"github.com/Thermoquad/metis/pkg/metis"
	"github.com/spf13/cobra"
)

var (
	rawRepeat   int
	rawInterval time.Duration
	rawDecode   bool
)

var rawCmd = &cobra.Command{
	Use:   "raw TOKEN [ARG]",
	Short: "Send one command and print the raw reply",
	Long: `Send a protocol command by its wire token and print the reply exactly as
received. ARG is appended verbatim.

Tokens:
  bn bn1 la sn mw tsc sl bum bup

With --decode, a bup reply is also decoded as a buffer record.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runRaw,
}

func init() {
	rawCmd.Flags().IntVarP(&rawRepeat, "repeat", "n", 1, "Number of times to send the command (0 = forever)")
	rawCmd.Flags().DurationVar(&rawInterval, "interval", time.Second, "Delay between repeated commands")
	rawCmd.Flags().BoolVar(&rawDecode, "decode", false, "Decode bup replies")
	rootCmd.AddCommand(rawCmd)
}

func runRaw(cmd *cobra.Command, args []string) error {
	command, err := metis.ParseCommand(args[0])
	if err != nil {
		return err
	}
	arg := ""
	if len(args) == 2 {
		arg = args[1]
	}

	return withDevice(func(dev *metis.Device) error {
		out := cmd.OutOrStdout()
		for i := 0; rawRepeat == 0 || i < rawRepeat; i++ {
			if i > 0 {
				time.Sleep(rawInterval)
			}

			fmt.Fprintf(out, "> %02d%s%s\n", dev.Address(), command.Token(), arg)
			reply, err := dev.Query(command, arg)
			if err != nil {
				if rawRepeat == 1 {
					return err
				}
				logger.WithError(err).WithField("command", command.Token()).Warn("exchange failed")
				continue
			}
			fmt.Fprintf(out, "< %s\n", reply)

			if rawDecode && command == metis.CmdBufferRead {
				rec, err := metis.DecodeBuffer([]byte(reply))
				if err != nil {
					fmt.Fprintf(out, "[ERROR] %v\n", err)
					continue
				}
				fmt.Fprint(out, metis.FormatRecord(rec))
			}
		}
		return nil
	})
}
