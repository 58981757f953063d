// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 BenchLab

package efcx9

// Checksum16 computes the CRC-16/CCITT-FALSE checksum the EFC-X9 firmware
// uses over its configuration block.
func Checksum16(data []byte) uint16 {
	crc := uint16(crcInitial)
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ crcPolynomial
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// Checksum16Range computes the checksum over data[offset : offset+length].
func Checksum16Range(data []byte, offset, length int) uint16 {
	return Checksum16(data[offset : offset+length])
}
