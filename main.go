// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 BenchLab
//
// efcx9 - EFC-X9 fan controller host utility
//
// A CLI tool for reading sensors, driving fans and managing the persisted
// configuration of an EFC-X9 board over a serial or WebSocket link.

package main

import (
	"os"

	"github.com/BenchLab-io/efcx9/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
