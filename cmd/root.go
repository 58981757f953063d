// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 BenchLab

package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Serial connection flags
	portName string
	baudRate int

	// WebSocket connection flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	// Simulation flag
	useSim bool
)

var rootCmd = &cobra.Command{
	Use:   "efcx9",
	Short: "EFC-X9 fan controller host utility",
	Long: `efcx9 - Host utility for the EFC-X9 fan controller board.

Reads sensor values, sets fan duties, manages the board's persisted
configuration (fan curves per profile) and drives the on-board display.

Connection modes:
  Serial:    --port /dev/ttyACM0 [--baud 115200]
  WebSocket: --url ws://host/path [--username user]
  Simulated: --sim (no hardware required)

For WebSocket authentication, the password is read from the EFCX9_PASSWORD
environment variable, or prompted interactively if not set. The --password
flag is intentionally not provided to avoid leaking credentials in shell
history.

Defaults for --port, --baud and --url can be placed in
~/.config/efcx9/config.yml.`,
	Version: "1.0.0",
}

func init() {
	cobra.OnInitialize(applyHostConfig)

	// Serial connection flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 115200, "Baud rate (serial only)")

	// WebSocket connection flags
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	// Simulation flag
	rootCmd.PersistentFlags().BoolVar(&useSim, "sim", false, "Use the in-memory simulator instead of hardware")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
