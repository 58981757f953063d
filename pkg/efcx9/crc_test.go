// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 BenchLab

package efcx9

import (
	"encoding/binary"
	"testing"
)

func TestChecksum16KnownVectors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want uint16
	}{
		// CRC-16/CCITT-FALSE check value
		{"check string", []byte("123456789"), 0x29B1},
		{"empty", []byte{}, 0xFFFF},
		{"single zero", []byte{0x00}, 0xE1F0},
		{"single 0xFF", []byte{0xFF}, 0xFF00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Checksum16(tt.data); got != tt.want {
				t.Errorf("Checksum16(% X) = 0x%04X, want 0x%04X", tt.data, got, tt.want)
			}
		})
	}
}

func TestChecksum16Range(t *testing.T) {
	data := []byte{0xAA, 0xBB, '1', '2', '3', '4', '5', '6', '7', '8', '9', 0xCC}

	if got := Checksum16Range(data, 2, 9); got != 0x29B1 {
		t.Errorf("Checksum16Range = 0x%04X, want 0x29B1", got)
	}
	if got, want := Checksum16Range(data, 0, len(data)), Checksum16(data); got != want {
		t.Errorf("full-range Checksum16Range = 0x%04X, want 0x%04X", got, want)
	}
}

// Stamping a computed checksum into the buffer's checksum slot must not
// disturb the checksum of the covered range.
func TestChecksum16StableAfterStamp(t *testing.T) {
	encoded := EncodeConfig(DefaultConfig())

	sum := ConfigChecksum(encoded)
	binary.LittleEndian.PutUint16(encoded[0:2], sum)

	if again := ConfigChecksum(encoded); again != sum {
		t.Errorf("checksum changed after stamp: 0x%04X then 0x%04X", sum, again)
	}
}
