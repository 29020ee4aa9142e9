// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package metis

import (
	"fmt"
	"strconv"
)

// ParseUint decodes ASCII hexadecimal digits (either case) into an
// unsigned integer. Empty input, signs and prefixes are rejected.
func ParseUint(data []byte) (uint64, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("%w: empty field", ErrInvalidDigits)
	}
	v, err := strconv.ParseUint(string(data), 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDigits, data)
	}
	return v, nil
}

// ParseScaled decodes data with ParseUint and divides by divisor.
// The divisor must be nonzero.
func ParseScaled(data []byte, divisor float64) (float64, error) {
	v, err := ParseUint(data)
	if err != nil {
		return 0, err
	}
	return float64(v) / divisor, nil
}

// ParseBits decodes data with ParseUint and unpacks the low byte,
// least significant bit first.
func ParseBits(data []byte) ([8]bool, error) {
	var bits [8]bool
	v, err := ParseUint(data)
	if err != nil {
		return bits, err
	}
	for i := range bits {
		bits[i] = v&(1<<i) != 0
	}
	return bits, nil
}

// PackBits is the inverse of ParseBits
func PackBits(bits [8]bool) uint8 {
	var b uint8
	for i, set := range bits {
		if set {
			b |= 1 << i
		}
	}
	return b
}
