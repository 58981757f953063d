// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 BenchLab

package efcx9

import (
	"encoding/binary"
	"fmt"
)

// Device is the capability set the EFC-X9 exposes to callers. Controller
// implements it against real hardware; Simulator implements it purely in
// memory. Operations never panic for ordinary device-absent or timeout
// conditions — every such condition comes back as an error.
type Device interface {
	Connect() error
	Disconnect() error

	ReadSensors() (SensorSnapshot, error)
	SetFanDuty(channel, duty int) error

	ReadConfig() (DeviceConfig, error)
	WriteConfig(DeviceConfig) error
	SaveConfig() error
	LoadConfig() error
	ResetConfig() error

	SetDisplayOverride(enable bool) error
	SendFramebuffer(fb []byte) error
}

// DialFunc opens the byte-stream transport to the board. The CLI layer
// builds one from its port/URL flags; tests return in-memory fakes.
type DialFunc func() (Connection, error)

// Controller drives a physical EFC-X9 over a Connection. It is not safe
// for concurrent use: exchanges are serialized internally, but the
// connect/disconnect lifecycle belongs to a single caller.
type Controller struct {
	dial     DialFunc
	ex       *exchanger
	firmware byte
}

// NewController returns a disconnected controller. No transport activity
// happens until Connect.
func NewController(dial DialFunc) *Controller {
	return &Controller{dial: dial}
}

// Connect opens the transport and performs the identification exchange.
// The connection is only considered valid once READ_ID has returned the
// expected vendor and product ids; the firmware revision is recorded for
// later quirk handling, not validated.
func (c *Controller) Connect() error {
	if c.ex != nil {
		return ErrAlreadyConnected
	}

	conn, err := c.dial()
	if err != nil {
		return fmt.Errorf("open transport: %w", err)
	}
	ex := newExchanger(conn)

	id, err := ex.exchange(CmdReadID, nil, IDResponseSize)
	if err != nil {
		ex.close()
		return fmt.Errorf("identify: %w", err)
	}
	if id[0] != VendorID || id[1] != ProductID {
		ex.close()
		return fmt.Errorf("%w: got vendor=0x%02X product=0x%02X", ErrIdentification, id[0], id[1])
	}

	c.firmware = id[2]
	c.ex = ex
	return nil
}

// Disconnect closes the transport. Disconnecting while already
// disconnected fails without side effects.
func (c *Controller) Disconnect() error {
	if c.ex == nil {
		return ErrNotConnected
	}
	err := c.ex.close()
	c.ex = nil
	c.firmware = 0
	if err != nil {
		return fmt.Errorf("close transport: %w", err)
	}
	return nil
}

// Connected reports whether an identification exchange has succeeded on
// the current transport.
func (c *Controller) Connected() bool {
	return c.ex != nil
}

// Firmware returns the firmware revision reported during Connect.
func (c *Controller) Firmware() byte {
	return c.firmware
}

// ReadSensors fetches a fresh snapshot of every sensor. No partial or
// stale snapshot is ever returned: a failed exchange yields only an error.
func (c *Controller) ReadSensors() (SensorSnapshot, error) {
	if c.ex == nil {
		return SensorSnapshot{}, ErrNotConnected
	}
	data, err := c.ex.exchange(CmdReadSensorValues, nil, SensorPayloadSize)
	if err != nil {
		return SensorSnapshot{}, err
	}
	return DecodeSensors(data)
}

// SetFanDuty sets one channel's duty. The channel must index a real fan;
// the duty is clamped to [0,100] before transmission so the board never
// sees a raw out-of-range byte.
func (c *Controller) SetFanDuty(channel, duty int) error {
	if channel < 0 || channel >= FanCount {
		return fmt.Errorf("%w: fan channel %d out of range [0,%d)", ErrInvalidArgument, channel, FanCount)
	}
	if c.ex == nil {
		return ErrNotConnected
	}
	_, err := c.ex.exchange(CmdWriteFanDuty, []byte{byte(channel), ClampDuty(duty)}, 0)
	return err
}

// ReadConfig fetches and verifies the full device configuration. The
// embedded checksum must match the CRC16 of the payload minus the checksum
// slot, with one documented exception: the FirmwareZeroChecksum revision
// reports zero until its config has been persisted once, and that zero is
// accepted rather than treated as corruption.
func (c *Controller) ReadConfig() (DeviceConfig, error) {
	if c.ex == nil {
		return DeviceConfig{}, ErrNotConnected
	}
	data, err := c.ex.exchange(CmdReadConfig, nil, ConfigSize)
	if err != nil {
		return DeviceConfig{}, err
	}
	cfg, err := DecodeConfig(data)
	if err != nil {
		return DeviceConfig{}, err
	}

	if cfg.Checksum == 0 && c.firmware == FirmwareZeroChecksum {
		return cfg, nil
	}
	if computed := ConfigChecksum(data); cfg.Checksum != computed {
		return DeviceConfig{}, fmt.Errorf("%w: embedded 0x%04X, computed 0x%04X", ErrChecksumMismatch, cfg.Checksum, computed)
	}
	return cfg, nil
}

// WriteConfig pushes a configuration into device RAM: a WRITE_CONFIG
// header exchange followed by the encoded structure with a freshly stamped
// checksum. The write is volatile until SaveConfig commits it to NVM.
//
// Firmware revision FirmwareBrokenConfigWrite corrupts config writes, so
// the call is rejected up front for that revision without transmitting.
func (c *Controller) WriteConfig(cfg DeviceConfig) error {
	if c.ex == nil {
		return ErrNotConnected
	}
	if c.firmware == FirmwareBrokenConfigWrite {
		return fmt.Errorf("%w: config write broken on firmware 0x%02X", ErrUnsupported, c.firmware)
	}

	encoded := EncodeConfig(cfg)
	binary.LittleEndian.PutUint16(encoded[0:2], ConfigChecksum(encoded))

	if _, err := c.ex.exchange(CmdWriteConfig, nil, 0); err != nil {
		return err
	}
	_, err := c.ex.exchangeRaw(encoded, 0)
	return err
}

// nvm issues one NVM_CONFIG sub-command, magic-key guarded so a stray
// frame can never hit the non-volatile store.
func (c *Controller) nvm(sub byte) error {
	if c.ex == nil {
		return ErrNotConnected
	}
	payload := []byte{byte(nvmMagicKey & 0xFF), byte(nvmMagicKey >> 8), sub}
	_, err := c.ex.exchange(CmdNVMConfig, payload, 0)
	return err
}

// SaveConfig persists the RAM configuration to NVM.
func (c *Controller) SaveConfig() error { return c.nvm(NVMSave) }

// LoadConfig replaces the RAM configuration with the NVM copy.
func (c *Controller) LoadConfig() error { return c.nvm(NVMLoad) }

// ResetConfig restores the factory configuration in RAM.
func (c *Controller) ResetConfig() error { return c.nvm(NVMReset) }

// SetDisplayOverride switches the on-board display between its own status
// screens and host-driven framebuffer mode.
func (c *Controller) SetDisplayOverride(enable bool) error {
	if c.ex == nil {
		return ErrNotConnected
	}
	cmd := CmdDisplayAuto
	if enable {
		cmd = CmdDisplayHold
	}
	_, err := c.ex.exchange(cmd, nil, 0)
	return err
}

// SendFramebuffer uploads a full display frame: write header, raw pixel
// bytes, then the update trailer. The board treats the three exchanges as
// a stateful write-then-commit sequence, so order matters and all must
// succeed. The buffer must be exactly FramebufferLen bytes.
func (c *Controller) SendFramebuffer(fb []byte) error {
	if len(fb) != FramebufferLen {
		return fmt.Errorf("%w: framebuffer is %d bytes, want %d", ErrInvalidArgument, len(fb), FramebufferLen)
	}
	if c.ex == nil {
		return ErrNotConnected
	}

	if _, err := c.ex.exchange(CmdDisplayWrite, nil, 0); err != nil {
		return err
	}
	if _, err := c.ex.exchangeRaw(fb, 0); err != nil {
		return err
	}
	_, err := c.ex.exchange(CmdDisplayUpdate, nil, 0)
	return err
}

// Reboot restarts the board firmware.
func (c *Controller) Reboot() error {
	if c.ex == nil {
		return ErrNotConnected
	}
	_, err := c.ex.exchange(CmdReset, nil, 0)
	return err
}

// EnterBootloader drops the board into its bootloader for a firmware
// update. The connection is unusable afterwards and should be closed.
func (c *Controller) EnterBootloader() error {
	if c.ex == nil {
		return ErrNotConnected
	}
	_, err := c.ex.exchange(CmdBootloader, nil, 0)
	return err
}

// ClampDuty bounds a requested duty to the valid [0,100] percent range.
func ClampDuty(duty int) byte {
	if duty < 0 {
		return 0
	}
	if duty > 100 {
		return 100
	}
	return byte(duty)
}
