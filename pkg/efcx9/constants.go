// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 BenchLab

// Package efcx9 provides a host-side driver for the EFC-X9 fan controller
// board over a byte-stream transport (typically a USB serial link).
//
// The package covers command framing, fixed-layout binary marshaling of the
// sensor and configuration structures, CRC16 integrity checking, and the
// NVM save/load/reset sequence. The physical transport is supplied by the
// caller as a Connection.
package efcx9

import "time"

// Command opcodes. A frame is [opcode:1][payload:0..N]; the stream carries
// no length field, each opcode's response length is fixed and known a priori.
type Command byte

const (
	CmdWelcome          Command = 0x00
	CmdReadID           Command = 0x01
	CmdReadSensorValues Command = 0x02
	CmdWriteFanDuty     Command = 0x03
	CmdReadConfig       Command = 0x04
	CmdWriteConfig      Command = 0x05
	CmdNVMConfig        Command = 0x06
	CmdDisplayAuto      Command = 0x07
	CmdDisplayHold      Command = 0x08
	CmdDisplayWrite     Command = 0x09
	CmdDisplayUpdate    Command = 0x0A
	CmdReset            Command = 0xF0
	CmdBootloader       Command = 0xF1
	CmdNop              Command = 0xFF
)

// Identification constants. READ_ID returns [vendor, product, firmware];
// vendor and product must match, firmware is recorded as-is.
const (
	VendorID  = 0xEE
	ProductID = 0x0E

	IDResponseSize = 3
)

// Firmware revisions with documented behavioral quirks.
const (
	// FirmwareZeroChecksum reports a config checksum of zero until the
	// configuration has been persisted to NVM at least once. A zero
	// checksum from this revision is accepted on read.
	FirmwareZeroChecksum = 0x01

	// FirmwareBrokenConfigWrite rejects configuration writes. WriteConfig
	// fails up front for this revision without touching the transport.
	FirmwareBrokenConfigWrite = 0x02
)

// Board geometry. These are properties of the EFC-X9 hardware and fix the
// size of every wire structure.
const (
	FanCount       = 9
	ProfileCount   = 2
	CurvePointNum  = 2
	DisplayWidth   = 128
	DisplayHeight  = 64
	FramebufferLen = DisplayWidth * DisplayHeight / 8
)

// Wire structure sizes, derived from the board geometry.
const (
	// SensorPayloadSize is Ts1..Hum (4 × int16) + FanExt (1) + Vin, Iin
	// (2 × uint16) + one uint16 tach per fan channel.
	SensorPayloadSize = 8 + 1 + 4 + 2*FanCount

	// FanConfigSize is mode, temp source, CurvePointNum × (int16 temp +
	// byte duty), ramp step, fixed duty, min duty, max duty.
	FanConfigSize = 2 + 3*CurvePointNum + 4

	// ConfigSize is crc (2) + active profile (1) + the profile array.
	ConfigSize = 3 + ProfileCount*FanCount*FanConfigSize
)

// NVM command payload: a 2-byte magic key (little-endian) followed by a
// sub-command byte. The key guards the non-volatile store against stray
// bytes being interpreted as a save/load/reset.
const (
	nvmMagicKey uint16 = 0xAA55

	NVMSave  = 0x01
	NVMLoad  = 0x02
	NVMReset = 0x03
)

// CRC-16/CCITT-FALSE parameters. These must match the board firmware
// byte-for-byte; they are a fixed external format, not a design choice.
const (
	crcPolynomial = 0x1021
	crcInitial    = 0xFFFF
)

// Exchange timing. The transport has no framing delimiters, so a response
// is complete when the expected byte count has accumulated; the poll loop
// bounds every exchange at pollAttempts × pollInterval.
const (
	pollInterval = 10 * time.Millisecond
	pollAttempts = 50
)

// FanMode selects how a channel's duty is derived.
type FanMode byte

const (
	// ModeTemperature drives the duty from the channel's curve points.
	ModeTemperature FanMode = 0x00
	// ModeFixed holds the channel at FixedDuty.
	ModeFixed FanMode = 0x01
	// ModeExternal follows the external duty input.
	ModeExternal FanMode = 0x02
)

// TempSource selects which temperature reading feeds a curve.
type TempSource byte

const (
	SourceThermistor1 TempSource = 0x00
	SourceThermistor2 TempSource = 0x01
	SourceAmbient     TempSource = 0x02
)

// DutyAuto is the sentinel duty meaning "device-embedded control, no host
// override" on the external duty channel. It is valid inside FanConfig duty
// fields only, never as a SetFanDuty argument.
const DutyAuto = 255
