// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package metis

import (
	"bytes"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Device is one METIS instrument on a serial bus. The protocol is
// half-duplex without request identifiers, so a Device must own its
// Transport exclusively and is not safe for concurrent use.
type Device struct {
	address   int
	transport Transport
	debug     bool
	log       logrus.FieldLogger
	lightArg  TargetingLightEncoding
}

// Option configures a Device
type Option func(*Device)

// WithDebug enables tracing of every exchanged line and decoded buffer field
func WithDebug(enabled bool) Option {
	return func(d *Device) {
		d.debug = enabled
	}
}

// WithLogger sets the logger used for debug tracing
func WithLogger(l logrus.FieldLogger) Option {
	return func(d *Device) {
		if l != nil {
			d.log = l
		}
	}
}

// WithTargetingLightEncoding overrides the targeting light argument format
func WithTargetingLightEncoding(enc TargetingLightEncoding) Option {
	return func(d *Device) {
		if enc != nil {
			d.lightArg = enc
		}
	}
}

// NewDevice creates a Device at address using t for all I/O
func NewDevice(address int, t Transport, opts ...Option) (*Device, error) {
	if address < MinAddress || address > MaxAddress {
		return nil, fmt.Errorf("%w: %d (valid %d-%d)", ErrAddressOutOfRange, address, MinAddress, MaxAddress)
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	d := &Device{
		address:   address,
		transport: t,
		log:       discard,
		lightArg:  LightArgDecimal,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Address returns the bus address of the device
func (d *Device) Address() int {
	return d.address
}

// ClearLine sends a bare terminator so the instrument discards any
// partial line left in its input buffer. No reply is expected.
func (d *Device) ClearLine() error {
	if d.debug {
		d.log.WithField("address", d.address).Debug("clear line")
	}
	_, err := d.transport.Write([]byte{Terminator})
	return err
}

// exchange sends one command and returns the reply payload
func (d *Device) exchange(cmd Command, arg string) ([]byte, error) {
	line, err := Encode(d.address, cmd, arg)
	if err != nil {
		return nil, err
	}

	var trace logrus.FieldLogger
	if d.debug {
		trace = d.log.WithFields(logrus.Fields{
			"address": d.address,
			"command": cmd.Token(),
		})
		trace.WithField("line", fmt.Sprintf("%q", line)).Debug("send")
	}

	if _, err := d.transport.Write(line); err != nil {
		return nil, err
	}
	answer, err := d.transport.ReadUntil(Terminator)
	if err != nil {
		return nil, err
	}

	if d.debug {
		trace.WithField("line", fmt.Sprintf("%q", answer)).Debug("receive")
	}

	if bytes.Equal(answer, []byte(Rejection)) {
		return nil, fmt.Errorf("%w: %s%s", ErrRejected, cmd.Token(), arg)
	}
	return answer, nil
}

func (d *Device) stringCommand(cmd Command, arg string) (string, error) {
	answer, err := d.exchange(cmd, arg)
	if err != nil {
		return "", err
	}
	return string(answer), nil
}

func (d *Device) uintCommand(cmd Command, arg string) (uint64, error) {
	answer, err := d.exchange(cmd, arg)
	if err != nil {
		return 0, err
	}
	v, err := ParseUint(answer)
	if err != nil {
		return 0, fmt.Errorf("%s reply: %w", cmd.Token(), err)
	}
	return v, nil
}

func (d *Device) scaledCommand(cmd Command, arg string, divisor float64) (float64, error) {
	v, err := d.uintCommand(cmd, arg)
	if err != nil {
		return 0, err
	}
	return float64(v) / divisor, nil
}

// Query sends any known command with a verbatim argument and returns the
// undecoded reply
func (d *Device) Query(cmd Command, arg string) (string, error) {
	return d.stringCommand(cmd, arg)
}

// SerialNumber reads the device serial number
func (d *Device) SerialNumber() (string, error) {
	return d.stringCommand(CmdSerialNumber, "")
}

// ReferenceShort reads the 18 digit reference type
func (d *Device) ReferenceShort() (string, error) {
	return d.stringCommand(CmdReferenceNumberShort, "")
}

// ReferenceLong reads the 21 digit reference type
func (d *Device) ReferenceLong() (string, error) {
	return d.stringCommand(CmdReferenceNumberLong, "")
}

// TargetingLight sets the targeting light state and returns the raw reply
func (d *Device) TargetingLight(state TargetingLightState) (string, error) {
	return d.stringCommand(CmdTargetingLight, d.lightArg(state))
}

// LaserOn turns the targeting light on
func (d *Device) LaserOn() (string, error) {
	return d.TargetingLight(TargetingLightOn)
}

// LaserOff turns the targeting light off
func (d *Device) LaserOff() (string, error) {
	return d.TargetingLight(TargetingLightOff)
}

// ToggleLaser toggles the targeting light
func (d *Device) ToggleLaser() (string, error) {
	return d.TargetingLight(TargetingLightToggle)
}

// ReadTemperature reads a measurement channel in degrees
func (d *Device) ReadTemperature(channel MeasurementChannel) (float64, error) {
	return d.scaledCommand(CmdReadMeasuredTemperature, ChannelArgument(channel), TemperatureDivisor)
}

// ReadTwoColourTemperature reads the ratiometric temperature
func (d *Device) ReadTwoColourTemperature() (float64, error) {
	return d.ReadTemperature(TwoColour)
}

// ReadSingleColourChannel1 reads the single colour temperature of channel 1
func (d *Device) ReadSingleColourChannel1() (float64, error) {
	return d.ReadTemperature(SingleColourChannel1)
}

// ReadSingleColourChannel2 reads the single colour temperature of channel 2
func (d *Device) ReadSingleColourChannel2() (float64, error) {
	return d.ReadTemperature(SingleColourChannel2)
}

// ReadTemperatureSensor reads one internal housing temperature sensor
func (d *Device) ReadTemperatureSensor(sensor InternalTemperatureSensor) (float64, error) {
	return d.scaledCommand(CmdReadTemperatureSensor, SensorArgument(sensor), SensorDivisor)
}

// ReadTemperatureSensors reads both internal temperature sensors
func (d *Device) ReadTemperatureSensors() (float64, float64, error) {
	one, err := d.ReadTemperatureSensor(SensorOne)
	if err != nil {
		return 0, 0, err
	}
	two, err := d.ReadTemperatureSensor(SensorTwo)
	if err != nil {
		return 0, 0, err
	}
	return one, two, nil
}

// SignalStrength reads the measured signal strength in percent
func (d *Device) SignalStrength() (float64, error) {
	return d.scaledCommand(CmdSignalStrength, "", SignalDivisor)
}

// BufferMode reads the configured buffer mode
func (d *Device) BufferMode() (BufferMode, error) {
	v, err := d.uintCommand(CmdBufferMode, "")
	if err != nil {
		return 0, err
	}
	if v > uint64(BufferModeThree) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownBufferMode, v)
	}
	return BufferMode(v), nil
}

// SetBufferMode configures which fields ReadBuffer returns
func (d *Device) SetBufferMode(mode BufferMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownBufferMode, mode)
	}
	_, err := d.exchange(CmdBufferMode, BufferModeArgument(mode))
	return err
}

// ReadBuffer reads and decodes the buffer telemetry record
func (d *Device) ReadBuffer() (*BufferRecord, error) {
	rec, _, err := d.ReadBufferFields()
	return rec, err
}

// ReadBufferFields is ReadBuffer that also returns the layout fields the
// reply carried, in wire order.
func (d *Device) ReadBufferFields() (*BufferRecord, []FieldName, error) {
	answer, err := d.exchange(CmdBufferRead, "")
	if err != nil {
		return nil, nil, err
	}

	rec, fields, err := DecodeBufferFields(answer)
	if err != nil {
		return nil, nil, err
	}

	if d.debug {
		offset := 0
		for _, f := range bufferLayout[:len(fields)] {
			d.log.WithFields(logrus.Fields{
				"address": d.address,
				"field":   f.Name,
				"offset":  offset,
				"width":   f.Width,
				"data":    string(answer[offset : offset+f.Width]),
			}).Debug("buffer field")
			offset += f.Width
		}
	}

	return rec, fields, nil
}
