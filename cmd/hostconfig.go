// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 BenchLab

package cmd

import (
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// hostConfig holds connection defaults read from the user's config file.
// Flags given on the command line always win.
type hostConfig struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
	URL  string `yaml:"url"`
}

func hostConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "efcx9", "config.yml")
}

// applyHostConfig fills connection flags from the config file for any flag
// the user did not set explicitly. A missing file is not an error.
func applyHostConfig() {
	path := hostConfigPath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("ignoring host config %s: %v", path, err)
		}
		return
	}

	var hc hostConfig
	if err := yaml.Unmarshal(data, &hc); err != nil {
		log.Printf("ignoring host config %s: %v", path, err)
		return
	}

	flags := rootCmd.PersistentFlags()
	if hc.Port != "" && !flags.Changed("port") {
		portName = hc.Port
	}
	if hc.Baud != 0 && !flags.Changed("baud") {
		baudRate = hc.Baud
	}
	if hc.URL != "" && !flags.Changed("url") {
		wsURL = hc.URL
	}
}
