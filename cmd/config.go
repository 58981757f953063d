// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 BenchLab

package cmd

import (
	"fmt"
	"os"

	"github.com/BenchLab-io/efcx9/pkg/efcx9"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the board configuration",
	Long: `Read, write and persist the board's fan-curve configuration.

The configuration written with "import" lives in device RAM only; run
"save" afterwards to persist it to NVM, or it is lost on power cycle.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Read and print the configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		dev, _, err := openDevice()
		if err != nil {
			return err
		}
		defer dev.Disconnect()

		cfg, err := dev.ReadConfig()
		if err != nil {
			return fmt.Errorf("config read failed: %w", err)
		}
		fmt.Print(efcx9.FormatConfig(cfg))
		return nil
	},
}

var configSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Persist the RAM configuration to NVM",
	RunE:  nvmRun(efcx9.Device.SaveConfig, "saved to NVM"),
}

var configLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Reload the configuration from NVM",
	RunE:  nvmRun(efcx9.Device.LoadConfig, "reloaded from NVM"),
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the factory configuration in RAM",
	RunE:  nvmRun(efcx9.Device.ResetConfig, "reset to factory defaults (RAM only, save to persist)"),
}

var configExportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Read the configuration and write it as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dev, _, err := openDevice()
		if err != nil {
			return err
		}
		defer dev.Disconnect()

		cfg, err := dev.ReadConfig()
		if err != nil {
			return fmt.Errorf("config read failed: %w", err)
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		if err := os.WriteFile(args[0], data, 0644); err != nil {
			return err
		}
		fmt.Printf("Configuration written to %s\n", args[0])
		return nil
	},
}

var configImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Write a YAML configuration to the board",
	Long: `Parse FILE as YAML and write it to device RAM. The checksum is computed
and stamped automatically; run "config save" to persist.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var cfg efcx9.DeviceConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}

		dev, _, err := openDevice()
		if err != nil {
			return err
		}
		defer dev.Disconnect()

		if err := dev.WriteConfig(cfg); err != nil {
			return fmt.Errorf("config write failed: %w", err)
		}
		fmt.Println("Configuration written (RAM only, run \"config save\" to persist)")
		return nil
	},
}

// nvmRun builds a RunE that connects, issues one NVM operation and reports.
func nvmRun(op func(efcx9.Device) error, done string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		dev, _, err := openDevice()
		if err != nil {
			return err
		}
		defer dev.Disconnect()

		if err := op(dev); err != nil {
			return fmt.Errorf("NVM operation failed: %w", err)
		}
		fmt.Println("Configuration " + done)
		return nil
	}
}

func init() {
	configCmd.AddCommand(configShowCmd, configSaveCmd, configLoadCmd,
		configResetCmd, configExportCmd, configImportCmd)
	rootCmd.AddCommand(configCmd)
}
