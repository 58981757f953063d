// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 BenchLab

package efcx9

import (
	"bytes"
	"errors"
	"testing"
)

func TestSensorsRoundTrip(t *testing.T) {
	snap := SensorSnapshot{
		Thermistor1: 325,  // 32.5 °C
		Thermistor2: -105, // -10.5 °C
		Ambient:     241,
		Humidity:    478,
		ExternalFan: DutyAuto,
		VoltageIn:   121,
		CurrentIn:   18,
	}
	for i := 0; i < FanCount; i++ {
		snap.FanTach[i] = uint16(800 + 100*i)
	}

	data := EncodeSensors(snap)
	if len(data) != SensorPayloadSize {
		t.Fatalf("encoded length = %d, want %d", len(data), SensorPayloadSize)
	}

	got, err := DecodeSensors(data)
	if err != nil {
		t.Fatalf("DecodeSensors failed: %v", err)
	}
	if got != snap {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, snap)
	}
}

func TestSensorsLayout(t *testing.T) {
	snap := SensorSnapshot{Thermistor1: -1, VoltageIn: 0x1234}
	data := EncodeSensors(snap)

	// int16 -1 little-endian
	if data[0] != 0xFF || data[1] != 0xFF {
		t.Errorf("thermistor 1 bytes = % X, want FF FF", data[0:2])
	}
	// VoltageIn at offset 9, little-endian
	if data[9] != 0x34 || data[10] != 0x12 {
		t.Errorf("voltage bytes = % X, want 34 12", data[9:11])
	}
}

func TestDecodeSensorsWrongLength(t *testing.T) {
	_, err := DecodeSensors(make([]byte, SensorPayloadSize-1))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		duty byte
	}{
		{"zero duty", 0},
		{"full duty", 100},
		{"auto sentinel", DutyAuto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Checksum = 0xBEEF
			cfg.ActiveProfile = 1
			cfg.Profiles[1].Fans[4] = FanConfig{
				Mode:   ModeFixed,
				Source: SourceAmbient,
				Curve: [CurvePointNum]CurvePoint{
					{Temperature: -200, Duty: tt.duty},
					{Temperature: 850, Duty: tt.duty},
				},
				RampStep:  3,
				FixedDuty: tt.duty,
				MinDuty:   0,
				MaxDuty:   tt.duty,
			}

			data := EncodeConfig(cfg)
			if len(data) != ConfigSize {
				t.Fatalf("encoded length = %d, want %d", len(data), ConfigSize)
			}

			got, err := DecodeConfig(data)
			if err != nil {
				t.Fatalf("DecodeConfig failed: %v", err)
			}
			if got != cfg {
				t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, cfg)
			}
		})
	}
}

func TestConfigLayout(t *testing.T) {
	var cfg DeviceConfig
	cfg.Checksum = 0xABCD
	cfg.ActiveProfile = 1
	cfg.Profiles[0].Fans[0] = FanConfig{
		Mode:   ModeExternal,
		Source: SourceThermistor2,
		Curve: [CurvePointNum]CurvePoint{
			{Temperature: 0x0102, Duty: 33},
			{Temperature: -2, Duty: 66},
		},
		RampStep:  7,
		FixedDuty: 50,
		MinDuty:   10,
		MaxDuty:   90,
	}

	data := EncodeConfig(cfg)

	want := []byte{
		0xCD, 0xAB, // checksum LE
		0x01,       // active profile
		0x02, 0x01, // fan 0: mode, source
		0x02, 0x01, // temp point 0 LE
		0xFE, 0xFF, // temp point 1 LE (-2)
		33, 66, // duty points
		7, 50, 10, 90, // ramp, fixed, min, max
	}
	if !bytes.Equal(data[:len(want)], want) {
		t.Errorf("layout mismatch:\n got  % X\n want % X", data[:len(want)], want)
	}

	// Second fan config starts right after the first, zero-filled here.
	off := 3 + FanConfigSize
	if data[off] != 0x00 {
		t.Errorf("fan 1 mode byte = 0x%02X, want 0x00", data[off])
	}
}

func TestDecodeConfigWrongLength(t *testing.T) {
	_, err := DecodeConfig(make([]byte, ConfigSize+1))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestConfigSizeConstants(t *testing.T) {
	if FanConfigSize != 12 {
		t.Errorf("FanConfigSize = %d, want 12", FanConfigSize)
	}
	if ConfigSize != 3+ProfileCount*FanCount*12 {
		t.Errorf("ConfigSize = %d, want %d", ConfigSize, 3+ProfileCount*FanCount*12)
	}
	if SensorPayloadSize != 31 {
		t.Errorf("SensorPayloadSize = %d, want 31", SensorPayloadSize)
	}
	if FramebufferLen != 1024 {
		t.Errorf("FramebufferLen = %d, want 1024", FramebufferLen)
	}
}
