// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 BenchLab

package efcx9

import (
	"encoding/binary"
	"fmt"
)

// The wire layout is fixed: fields in declaration order, multi-byte integers
// little-endian, arrays at exactly element count × element width. Encoding
// is done field by field rather than by reflection so the format stays
// independent of Go's in-memory struct layout.

// DecodeSensors decodes a READ_SENSOR_VALUES response. The buffer must be
// exactly SensorPayloadSize bytes.
func DecodeSensors(data []byte) (SensorSnapshot, error) {
	var s SensorSnapshot
	if len(data) != SensorPayloadSize {
		return s, fmt.Errorf("%w: sensor payload is %d bytes, want %d", ErrInvalidArgument, len(data), SensorPayloadSize)
	}

	s.Thermistor1 = int16(binary.LittleEndian.Uint16(data[0:2]))
	s.Thermistor2 = int16(binary.LittleEndian.Uint16(data[2:4]))
	s.Ambient = int16(binary.LittleEndian.Uint16(data[4:6]))
	s.Humidity = int16(binary.LittleEndian.Uint16(data[6:8]))
	s.ExternalFan = data[8]
	s.VoltageIn = binary.LittleEndian.Uint16(data[9:11])
	s.CurrentIn = binary.LittleEndian.Uint16(data[11:13])
	for i := 0; i < FanCount; i++ {
		off := 13 + 2*i
		s.FanTach[i] = binary.LittleEndian.Uint16(data[off : off+2])
	}
	return s, nil
}

// EncodeSensors encodes a snapshot to its wire form. The hardware never
// consumes this; it exists for the simulator and for tests.
func EncodeSensors(s SensorSnapshot) []byte {
	data := make([]byte, SensorPayloadSize)
	binary.LittleEndian.PutUint16(data[0:2], uint16(s.Thermistor1))
	binary.LittleEndian.PutUint16(data[2:4], uint16(s.Thermistor2))
	binary.LittleEndian.PutUint16(data[4:6], uint16(s.Ambient))
	binary.LittleEndian.PutUint16(data[6:8], uint16(s.Humidity))
	data[8] = s.ExternalFan
	binary.LittleEndian.PutUint16(data[9:11], s.VoltageIn)
	binary.LittleEndian.PutUint16(data[11:13], s.CurrentIn)
	for i := 0; i < FanCount; i++ {
		off := 13 + 2*i
		binary.LittleEndian.PutUint16(data[off:off+2], s.FanTach[i])
	}
	return data
}

// encodeFanConfig writes one FanConfig at data[off:], returning the offset
// past the written bytes.
func encodeFanConfig(data []byte, off int, fc FanConfig) int {
	data[off] = byte(fc.Mode)
	data[off+1] = byte(fc.Source)
	off += 2
	for i := 0; i < CurvePointNum; i++ {
		binary.LittleEndian.PutUint16(data[off:off+2], uint16(fc.Curve[i].Temperature))
		off += 2
	}
	for i := 0; i < CurvePointNum; i++ {
		data[off] = fc.Curve[i].Duty
		off++
	}
	data[off] = fc.RampStep
	data[off+1] = fc.FixedDuty
	data[off+2] = fc.MinDuty
	data[off+3] = fc.MaxDuty
	return off + 4
}

// decodeFanConfig reads one FanConfig from data[off:], returning the offset
// past the consumed bytes.
func decodeFanConfig(data []byte, off int) (FanConfig, int) {
	var fc FanConfig
	fc.Mode = FanMode(data[off])
	fc.Source = TempSource(data[off+1])
	off += 2
	for i := 0; i < CurvePointNum; i++ {
		fc.Curve[i].Temperature = int16(binary.LittleEndian.Uint16(data[off : off+2]))
		off += 2
	}
	for i := 0; i < CurvePointNum; i++ {
		fc.Curve[i].Duty = data[off]
		off++
	}
	fc.RampStep = data[off]
	fc.FixedDuty = data[off+1]
	fc.MinDuty = data[off+2]
	fc.MaxDuty = data[off+3]
	return fc, off + 4
}

// EncodeConfig encodes a DeviceConfig to its ConfigSize wire form. The
// checksum field is written as-is; callers that transmit the buffer stamp
// the computed checksum over bytes [0:2] first (see Controller.WriteConfig).
func EncodeConfig(c DeviceConfig) []byte {
	data := make([]byte, ConfigSize)
	binary.LittleEndian.PutUint16(data[0:2], c.Checksum)
	data[2] = c.ActiveProfile
	off := 3
	for p := 0; p < ProfileCount; p++ {
		for f := 0; f < FanCount; f++ {
			off = encodeFanConfig(data, off, c.Profiles[p].Fans[f])
		}
	}
	return data
}

// DecodeConfig decodes a READ_CONFIG response. The buffer must be exactly
// ConfigSize bytes; integrity is the caller's concern (see ReadConfig).
func DecodeConfig(data []byte) (DeviceConfig, error) {
	var c DeviceConfig
	if len(data) != ConfigSize {
		return c, fmt.Errorf("%w: config payload is %d bytes, want %d", ErrInvalidArgument, len(data), ConfigSize)
	}

	c.Checksum = binary.LittleEndian.Uint16(data[0:2])
	c.ActiveProfile = data[2]
	off := 3
	for p := 0; p < ProfileCount; p++ {
		for f := 0; f < FanCount; f++ {
			c.Profiles[p].Fans[f], off = decodeFanConfig(data, off)
		}
	}
	return c, nil
}

// ConfigChecksum computes the checksum a valid encoded config must carry:
// the CRC16 of every byte after the 2-byte checksum slot.
func ConfigChecksum(encoded []byte) uint16 {
	return Checksum16Range(encoded, 2, len(encoded)-2)
}
