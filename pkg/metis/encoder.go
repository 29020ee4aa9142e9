// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package metis

import (
	"fmt"
	"strconv"
)

// Encode builds the wire line for a command: the address as two decimal
// digits, the command token, the argument verbatim and the terminator.
// The caller formats the argument (see the *Argument helpers).
func Encode(address int, cmd Command, arg string) ([]byte, error) {
	if address < MinAddress || address > MaxAddress {
		return nil, fmt.Errorf("%w: %d (valid %d-%d)", ErrAddressOutOfRange, address, MinAddress, MaxAddress)
	}
	token := cmd.Token()
	if token == "" {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCommand, cmd)
	}

	line := make([]byte, 0, 2+len(token)+len(arg)+1)
	line = fmt.Appendf(line, "%02d", address)
	line = append(line, token...)
	line = append(line, arg...)
	line = append(line, Terminator)
	return line, nil
}

// BufferModeArgument formats a buffer mode as two lowercase hex digits
func BufferModeArgument(mode BufferMode) string {
	return fmt.Sprintf("%02x", int(mode))
}

// ChannelArgument formats a measurement channel argument
func ChannelArgument(channel MeasurementChannel) string {
	return strconv.Itoa(int(channel))
}

// SensorArgument formats an internal temperature sensor argument
func SensorArgument(sensor InternalTemperatureSensor) string {
	return strconv.Itoa(int(sensor))
}

// TargetingLightEncoding formats the targeting light state argument.
// Whether the instrument expects decimal or hexadecimal text has not been
// confirmed against hardware, so the encoding is pluggable.
type TargetingLightEncoding func(TargetingLightState) string

// LightArgDecimal encodes the state as decimal text. This is the default.
func LightArgDecimal(state TargetingLightState) string {
	return strconv.Itoa(int(state))
}

// LightArgHex encodes the state as lowercase hexadecimal text
func LightArgHex(state TargetingLightState) string {
	return strconv.FormatInt(int64(state), 16)
}
