// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 BenchLab

package efcx9

import (
	"fmt"
	"strings"
)

// FormatCommand returns the human-readable name for an opcode.
func FormatCommand(cmd Command) string {
	switch cmd {
	case CmdWelcome:
		return "WELCOME"
	case CmdReadID:
		return "READ_ID"
	case CmdReadSensorValues:
		return "READ_SENSOR_VALUES"
	case CmdWriteFanDuty:
		return "WRITE_FAN_DUTY"
	case CmdReadConfig:
		return "READ_CONFIG"
	case CmdWriteConfig:
		return "WRITE_CONFIG"
	case CmdNVMConfig:
		return "NVM_CONFIG"
	case CmdDisplayAuto:
		return "DISPLAY_AUTO"
	case CmdDisplayHold:
		return "DISPLAY_HOLD"
	case CmdDisplayWrite:
		return "DISPLAY_WRITE"
	case CmdDisplayUpdate:
		return "DISPLAY_UPDATE"
	case CmdReset:
		return "RESET"
	case CmdBootloader:
		return "BOOTLOADER"
	case CmdNop:
		return "NOP"
	default:
		return "UNKNOWN"
	}
}

// FormatMode returns the human-readable name for a fan mode.
func FormatMode(m FanMode) string {
	switch m {
	case ModeTemperature:
		return "temperature"
	case ModeFixed:
		return "fixed"
	case ModeExternal:
		return "external"
	default:
		return fmt.Sprintf("unknown(0x%02X)", byte(m))
	}
}

// FormatSource returns the human-readable name for a temperature source.
func FormatSource(s TempSource) string {
	switch s {
	case SourceThermistor1:
		return "thermistor1"
	case SourceThermistor2:
		return "thermistor2"
	case SourceAmbient:
		return "ambient"
	default:
		return fmt.Sprintf("unknown(0x%02X)", byte(s))
	}
}

// formatDuty renders a duty byte, naming the auto sentinel.
func formatDuty(d byte) string {
	if d == DutyAuto {
		return "auto"
	}
	return fmt.Sprintf("%d%%", d)
}

// FormatSnapshot renders a sensor snapshot as a multi-line report.
func FormatSnapshot(s SensorSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thermistor 1: %.1f °C\n", float64(s.Thermistor1)/10)
	fmt.Fprintf(&b, "Thermistor 2: %.1f °C\n", float64(s.Thermistor2)/10)
	fmt.Fprintf(&b, "Ambient:      %.1f °C\n", float64(s.Ambient)/10)
	fmt.Fprintf(&b, "Humidity:     %.1f %%RH\n", float64(s.Humidity)/10)
	fmt.Fprintf(&b, "Input:        %.1f V, %.1f A\n", float64(s.VoltageIn)/10, float64(s.CurrentIn)/10)
	fmt.Fprintf(&b, "External fan: %s\n", formatDuty(s.ExternalFan))
	for i, tach := range s.FanTach {
		fmt.Fprintf(&b, "Fan %d:        %d RPM\n", i+1, tach)
	}
	return b.String()
}

// FormatConfig renders a device configuration as a multi-line report.
func FormatConfig(c DeviceConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Checksum:       0x%04X\n", c.Checksum)
	fmt.Fprintf(&b, "Active profile: %d\n", c.ActiveProfile)
	for p, profile := range c.Profiles {
		fmt.Fprintf(&b, "Profile %d:\n", p)
		for f, fc := range profile.Fans {
			fmt.Fprintf(&b, "  Fan %d: mode=%s source=%s", f+1, FormatMode(fc.Mode), FormatSource(fc.Source))
			for _, pt := range fc.Curve {
				fmt.Fprintf(&b, " (%.1f°C→%s)", float64(pt.Temperature)/10, formatDuty(pt.Duty))
			}
			fmt.Fprintf(&b, " ramp=%d fixed=%s min=%s max=%s\n",
				fc.RampStep, formatDuty(fc.FixedDuty), formatDuty(fc.MinDuty), formatDuty(fc.MaxDuty))
		}
	}
	return b.String()
}
