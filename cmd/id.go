// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 BenchLab

package cmd

import (
	"fmt"

	"github.com/BenchLab-io/efcx9/pkg/efcx9"
	"github.com/spf13/cobra"
)

var idCmd = &cobra.Command{
	Use:   "id",
	Short: "Identify the connected board",
	Long: `Connect to the board, run the identification exchange and print the
vendor id, product id and firmware revision.`,
	RunE: runID,
}

func init() {
	rootCmd.AddCommand(idCmd)
}

func runID(cmd *cobra.Command, args []string) error {
	dev, info, err := openDevice()
	if err != nil {
		return err
	}
	defer dev.Disconnect()

	fmt.Printf("Connection: %s\n", info)
	fmt.Printf("Vendor:     0x%02X\n", efcx9.VendorID)
	fmt.Printf("Product:    0x%02X (EFC-X9)\n", efcx9.ProductID)

	type firmwarer interface{ Firmware() byte }
	if f, ok := dev.(firmwarer); ok {
		fw := f.Firmware()
		fmt.Printf("Firmware:   0x%02X", fw)
		switch fw {
		case efcx9.FirmwareZeroChecksum:
			fmt.Print(" (reports zero config checksum until first NVM save)")
		case efcx9.FirmwareBrokenConfigWrite:
			fmt.Print(" (config writes unsupported, update recommended)")
		}
		fmt.Println()
	}
	return nil
}
