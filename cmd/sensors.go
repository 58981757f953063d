// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 BenchLab

package cmd

import (
	"fmt"
	"time"

	"github.com/BenchLab-io/efcx9/pkg/efcx9"
	"github.com/spf13/cobra"
)

var watchInterval int

var sensorsCmd = &cobra.Command{
	Use:   "sensors",
	Short: "Read sensor values",
	Long: `Read temperatures, humidity, input power and fan tachometers.

With --watch N the values are re-read and printed every N seconds until
interrupted.`,
	RunE: runSensors,
}

func init() {
	sensorsCmd.Flags().IntVarP(&watchInterval, "watch", "w", 0, "Re-read every N seconds (0 = read once)")
	rootCmd.AddCommand(sensorsCmd)
}

func runSensors(cmd *cobra.Command, args []string) error {
	dev, _, err := openDevice()
	if err != nil {
		return err
	}
	defer dev.Disconnect()

	for {
		snap, err := dev.ReadSensors()
		if err != nil {
			return fmt.Errorf("sensor read failed: %w", err)
		}
		fmt.Print(efcx9.FormatSnapshot(snap))

		if watchInterval <= 0 {
			return nil
		}
		fmt.Println()
		time.Sleep(time.Duration(watchInterval) * time.Second)
	}
}
