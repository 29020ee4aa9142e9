// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package metis provides a Go driver for the Sensortherm METIS pyrometer
// ASCII command protocol.
//
// Every request is a single line: a two digit decimal bus address, a short
// lowercase command token, an optional argument and a carriage return.
// Every response is a payload line terminated by a carriage return, or the
// literal token "no" when the instrument rejects the command.
//
// The package provides command encoding, decoding of the buffer telemetry
// record and its packed status bytes, and a thin Device facade that runs
// one request/response exchange per call over an injected Transport.
package metis

import "fmt"

// Line framing
const (
	Terminator = '\r'
	Rejection  = "no"
)

// Address limits
const (
	MinAddress = 0
	MaxAddress = 99
)

// Response scaling
const (
	TemperatureDivisor = 10.0
	SensorDivisor      = 256.0
	SignalDivisor      = 10.0
)

// Command identifies an instrument request. Each value carries a fixed
// wire token, see Token.
type Command uint8

// Command values
const (
	CmdReferenceNumberShort Command = iota
	CmdReferenceNumberLong
	CmdTargetingLight
	CmdSerialNumber
	CmdReadMeasuredTemperature
	CmdReadTemperatureSensor
	CmdSignalStrength
	CmdBufferMode
	CmdBufferRead
)

var commandTokens = [...]string{
	CmdReferenceNumberShort:    "bn",
	CmdReferenceNumberLong:     "bn1",
	CmdTargetingLight:          "la",
	CmdSerialNumber:            "sn",
	CmdReadMeasuredTemperature: "mw",
	CmdReadTemperatureSensor:   "tsc",
	CmdSignalStrength:          "sl",
	CmdBufferMode:              "bum",
	CmdBufferRead:              "bup",
}

// Token returns the wire token of the command, or "" for unknown values.
func (c Command) Token() string {
	if int(c) >= len(commandTokens) {
		return ""
	}
	return commandTokens[c]
}

// Valid reports whether c is one of the known commands.
func (c Command) Valid() bool {
	return c.Token() != ""
}

// ParseCommand looks up a command by its wire token
func ParseCommand(token string) (Command, error) {
	for i, t := range commandTokens {
		if t == token {
			return Command(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, token)
}

// MeasurementChannel selects the temperature channel for CmdReadMeasuredTemperature.
type MeasurementChannel int

// Both single colour channels share a wire value on this instrument.
const (
	TwoColour            MeasurementChannel = 0
	SingleColourChannel1 MeasurementChannel = 1
	SingleColourChannel2 MeasurementChannel = 1
)

// AnalogOutputMode represents the analog current loop range
type AnalogOutputMode int

// Analog output mode values
const (
	Current0To20mA AnalogOutputMode = 0
	Current4To20mA AnalogOutputMode = 1
)

// TargetingLightState is the argument of CmdTargetingLight
type TargetingLightState int

// Targeting light state values
const (
	TargetingLightOff    TargetingLightState = 0
	TargetingLightOn     TargetingLightState = 1
	TargetingLightToggle TargetingLightState = 2
)

// Language is the display panel interface language. The English and
// German names are aliases of the same wire value.
type Language int

// Language values
const (
	English  Language = 0
	Englisch Language = 0
	German   Language = 1
	Deutsch  Language = 1
)

// InternalTemperatureSensor selects one of the two housing sensors
type InternalTemperatureSensor int

// Internal temperature sensor values
const (
	SensorOne InternalTemperatureSensor = 0
	SensorTwo InternalTemperatureSensor = 1
)

// BufferMode selects which fields a buffer read returns
type BufferMode int

// Buffer mode values
const (
	BufferModeZero BufferMode = iota
	BufferModeOne
	BufferModeTwo
	BufferModeThree
)

// Valid reports whether m is a mode the instrument defines.
func (m BufferMode) Valid() bool {
	return m >= BufferModeZero && m <= BufferModeThree
}
