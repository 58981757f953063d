// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 BenchLab

package cmd

import (
	"fmt"
	"os"

	"github.com/BenchLab-io/efcx9/pkg/efcx9"
	"github.com/spf13/cobra"
)

var displayCmd = &cobra.Command{
	Use:   "display",
	Short: "Control the on-board display",
	Long: fmt.Sprintf(`Switch the %dx%d display between the board's own status screens and
host-driven framebuffer mode, and upload raw frames.`, efcx9.DisplayWidth, efcx9.DisplayHeight),
}

var displayOnCmd = &cobra.Command{
	Use:   "on",
	Short: "Take over the display (host framebuffer mode)",
	RunE:  displayOverrideRun(true),
}

var displayOffCmd = &cobra.Command{
	Use:   "off",
	Short: "Return the display to the board's own screens",
	RunE:  displayOverrideRun(false),
}

var displayFrameCmd = &cobra.Command{
	Use:   "frame FILE",
	Short: "Upload a raw framebuffer",
	Long: fmt.Sprintf(`Upload FILE as one display frame. The file must contain exactly %d
bytes (%dx%d pixels, one bit per pixel).`, efcx9.FramebufferLen, efcx9.DisplayWidth, efcx9.DisplayHeight),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fb, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		dev, _, err := openDevice()
		if err != nil {
			return err
		}
		defer dev.Disconnect()

		if err := dev.SendFramebuffer(fb); err != nil {
			return fmt.Errorf("framebuffer upload failed: %w", err)
		}
		fmt.Println("Frame uploaded")
		return nil
	},
}

func displayOverrideRun(enable bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		dev, _, err := openDevice()
		if err != nil {
			return err
		}
		defer dev.Disconnect()

		if err := dev.SetDisplayOverride(enable); err != nil {
			return fmt.Errorf("display override failed: %w", err)
		}
		if enable {
			fmt.Println("Display override enabled")
		} else {
			fmt.Println("Display override disabled")
		}
		return nil
	}
}

func init() {
	displayCmd.AddCommand(displayOnCmd, displayOffCmd, displayFrameCmd)
	rootCmd.AddCommand(displayCmd)
}
