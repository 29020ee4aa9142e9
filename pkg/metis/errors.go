// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package metis

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDigits is returned when a field is empty or holds a byte
	// that is not a hexadecimal digit.
	ErrInvalidDigits = errors.New("metis: invalid hexadecimal digits")

	// ErrAddressOutOfRange is returned by Encode for addresses outside 0-99.
	ErrAddressOutOfRange = errors.New("metis: address out of range")

	// ErrRejected is returned when the instrument answers "no".
	ErrRejected = errors.New("metis: command rejected by device")

	// ErrUnknownCommand is returned by Encode for a Command without a token.
	ErrUnknownCommand = errors.New("metis: unknown command")

	// ErrUnknownBufferMode is returned when the device reports a buffer
	// mode outside 0-3.
	ErrUnknownBufferMode = errors.New("metis: unknown buffer mode")
)

// DecodeError reports a buffer field that failed to decode
type DecodeError struct {
	Field  FieldName
	Offset int
	Data   []byte
	Err    error
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	return fmt.Sprintf("metis: field %s at offset %d (%q): %v", e.Field, e.Offset, e.Data, e.Err)
}

// Unwrap returns the underlying decode failure
func (e *DecodeError) Unwrap() error {
	return e.Err
}
