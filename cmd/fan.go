// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 BenchLab

package cmd

import (
	"fmt"
	"strconv"

	"github.com/BenchLab-io/efcx9/pkg/efcx9"
	"github.com/spf13/cobra"
)

var fanCmd = &cobra.Command{
	Use:   "fan CHANNEL DUTY",
	Short: "Set a fan channel duty",
	Long: fmt.Sprintf(`Set the duty of one fan channel.

CHANNEL is 1-%d, DUTY a percentage; values outside [0,100] are clamped
before transmission.`, efcx9.FanCount),
	Args: cobra.ExactArgs(2),
	RunE: runFan,
}

func init() {
	rootCmd.AddCommand(fanCmd)
}

func runFan(cmd *cobra.Command, args []string) error {
	channel, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid channel %q: %v", args[0], err)
	}
	duty, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid duty %q: %v", args[1], err)
	}

	dev, _, err := openDevice()
	if err != nil {
		return err
	}
	defer dev.Disconnect()

	// Channels are 1-based on the board's silkscreen, 0-based on the wire.
	if err := dev.SetFanDuty(channel-1, duty); err != nil {
		return fmt.Errorf("set fan duty failed: %w", err)
	}
	fmt.Printf("Fan %d set to %d%%\n", channel, efcx9.ClampDuty(duty))
	return nil
}
