// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 BenchLab

package efcx9

import "errors"

var (
	// ErrTimeout means the expected response byte count never arrived
	// within the exchange's poll budget.
	ErrTimeout = errors.New("response timeout")

	// ErrIdentification means READ_ID returned a vendor or product id
	// other than the EFC-X9's.
	ErrIdentification = errors.New("device identification mismatch")

	// ErrChecksumMismatch means a configuration read failed its CRC16
	// integrity check.
	ErrChecksumMismatch = errors.New("config checksum mismatch")

	// ErrUnsupported means the connected firmware revision cannot perform
	// the requested operation.
	ErrUnsupported = errors.New("operation not supported by firmware")

	// ErrInvalidArgument is reported before any transport interaction for
	// out-of-range channels, framebuffer length mismatches and the like.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotConnected is returned by operations issued while disconnected.
	ErrNotConnected = errors.New("not connected")

	// ErrAlreadyConnected is returned by Connect on a live connection;
	// reconnecting requires a full Disconnect first.
	ErrAlreadyConnected = errors.New("already connected")
)
