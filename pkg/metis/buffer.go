// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package metis

import "fmt"

// FieldName identifies one field of the buffer record layout
type FieldName string

// Buffer record field names, in wire order
const (
	FieldTemperature2Colour            FieldName = "temperature_2_colour"
	FieldTemperature1ColourChannel1    FieldName = "temperature_1_colour_channel_1"
	FieldTemperature1ColourChannel2    FieldName = "temperature_1_colour_channel_2"
	FieldSetpointValueAtRampFunction   FieldName = "setpoint_value_at_ramp_function"
	FieldControllerManipulatedVariable FieldName = "controller_manipulated_variable"
	FieldSignalStrength                FieldName = "signal_strength"
	FieldDataStatusByte0               FieldName = "data_status_byte_0"
	FieldDataStatusByte1               FieldName = "data_status_byte_1"
	FieldDataStatusByte2               FieldName = "data_status_byte_2"
	FieldDataStatusByte3               FieldName = "data_status_byte_3"
	FieldAnalogInput                   FieldName = "analog_input"
	FieldReservedL                     FieldName = "reserved_l"
	FieldMeasuredTemperature           FieldName = "measured_temperature"
	FieldReservedM                     FieldName = "reserved_m"
)

// FieldRule selects how a buffer field is decoded
type FieldRule int

// Field decode rules
const (
	RuleScaled FieldRule = iota
	RuleUint
	RuleDataStatus
	RuleControlStatus
	RuleSetupFlags
	RuleDisplayFlags
	RuleReserved
)

// BufferField describes one fixed-width field of the buffer record
type BufferField struct {
	Name    FieldName
	Width   int
	Rule    FieldRule
	Divisor float64 // RuleScaled only
}

var bufferLayout = [...]BufferField{
	{FieldTemperature2Colour, 4, RuleScaled, TemperatureDivisor},
	{FieldTemperature1ColourChannel1, 4, RuleScaled, TemperatureDivisor},
	{FieldTemperature1ColourChannel2, 4, RuleScaled, TemperatureDivisor},
	{FieldSetpointValueAtRampFunction, 4, RuleScaled, TemperatureDivisor},
	{FieldControllerManipulatedVariable, 4, RuleScaled, TemperatureDivisor},
	{FieldSignalStrength, 4, RuleScaled, SignalDivisor},
	{FieldDataStatusByte0, 2, RuleDataStatus, 0},
	{FieldDataStatusByte1, 2, RuleControlStatus, 0},
	{FieldDataStatusByte2, 2, RuleSetupFlags, 0},
	{FieldDataStatusByte3, 2, RuleDisplayFlags, 0},
	{FieldAnalogInput, 4, RuleUint, 0},
	{FieldReservedL, 4, RuleReserved, 0},
	{FieldMeasuredTemperature, 4, RuleScaled, TemperatureDivisor},
	{FieldReservedM, 4, RuleReserved, 0},
}

// BufferLayoutWidth is the payload length that covers every field
const BufferLayoutWidth = 48

// modeZeroWidth is the reply length in buffer mode 0, which only carries
// the measured temperature in the first slot.
const modeZeroWidth = 4

// BufferLayout returns a copy of the buffer record field layout
func BufferLayout() []BufferField {
	layout := make([]BufferField, len(bufferLayout))
	copy(layout, bufferLayout[:])
	return layout
}

// BufferRecord is a decoded buffer read. A nil field was not present
// in the response.
type BufferRecord struct {
	Temperature2Colour            *float64 `json:"temperature_2_colour,omitempty" cbor:"1,keyasint,omitempty"`
	Temperature1ColourChannel1    *float64 `json:"temperature_1_colour_channel_1,omitempty" cbor:"2,keyasint,omitempty"`
	Temperature1ColourChannel2    *float64 `json:"temperature_1_colour_channel_2,omitempty" cbor:"3,keyasint,omitempty"`
	SetpointValueAtRampFunction   *float64 `json:"setpoint_value_at_ramp_function,omitempty" cbor:"4,keyasint,omitempty"`
	ControllerManipulatedVariable *float64 `json:"controller_manipulated_variable,omitempty" cbor:"5,keyasint,omitempty"`
	SignalStrength                *float64 `json:"signal_strength,omitempty" cbor:"6,keyasint,omitempty"`
	Status                        *Status  `json:"status,omitempty" cbor:"7,keyasint,omitempty"`
	AnalogInput                   *uint64  `json:"analog_input,omitempty" cbor:"8,keyasint,omitempty"`
	MeasuredTemperature           *float64 `json:"measured_temperature,omitempty" cbor:"9,keyasint,omitempty"`
}

// Empty reports whether no field was decoded
func (r *BufferRecord) Empty() bool {
	return *r == BufferRecord{}
}

// DecodeBuffer decodes a buffer read payload into a BufferRecord.
//
// Fields are consumed left to right. Decoding stops without error at the
// first field that does not fit in the remaining payload, since the
// device omits trailing fields depending on its buffer mode. Bytes past
// the full layout are ignored. If any consumed field is malformed the
// whole call fails with a *DecodeError.
func DecodeBuffer(payload []byte) (*BufferRecord, error) {
	rec, _, err := DecodeBufferFields(payload)
	return rec, err
}

// DecodeBufferFields is DecodeBuffer that also returns the names of the
// fields consumed from the payload, reserved fields included.
func DecodeBufferFields(payload []byte) (*BufferRecord, []FieldName, error) {
	rec := &BufferRecord{}
	consumed := make([]FieldName, 0, len(bufferLayout))

	offset := 0
	for _, field := range bufferLayout {
		if offset+field.Width > len(payload) {
			break
		}
		data := payload[offset : offset+field.Width]
		if err := rec.apply(field, data); err != nil {
			return nil, nil, &DecodeError{
				Field:  field.Name,
				Offset: offset,
				Data:   append([]byte(nil), data...),
				Err:    err,
			}
		}
		consumed = append(consumed, field.Name)
		offset += field.Width
	}

	if len(payload) == modeZeroWidth {
		rec.MeasuredTemperature = rec.Temperature2Colour
		rec.Temperature2Colour = nil
	}

	return rec, consumed, nil
}

// apply decodes one field and stores it in the record
func (r *BufferRecord) apply(field BufferField, data []byte) error {
	switch field.Rule {
	case RuleReserved:
		return nil

	case RuleScaled:
		v, err := ParseScaled(data, field.Divisor)
		if err != nil {
			return err
		}
		return r.setScaled(field.Name, v)

	case RuleUint:
		v, err := ParseUint(data)
		if err != nil {
			return err
		}
		if field.Name != FieldAnalogInput {
			return fmt.Errorf("no integer slot for field %s", field.Name)
		}
		r.AnalogInput = &v
		return nil

	case RuleDataStatus:
		s, err := DecodeDataStatus(data)
		if err != nil {
			return err
		}
		r.status().DataStatus = s

	case RuleControlStatus:
		s, err := DecodeControlStatus(data)
		if err != nil {
			return err
		}
		r.status().ControlStatus = s

	case RuleSetupFlags:
		s, err := DecodeSetupFlags(data)
		if err != nil {
			return err
		}
		r.status().SetupFlags = s

	case RuleDisplayFlags:
		s, err := DecodeDisplayFlags(data)
		if err != nil {
			return err
		}
		r.status().DisplayFlags = s

	default:
		return fmt.Errorf("unknown decode rule %d", field.Rule)
	}

	r.Status.Bytes++
	return nil
}

func (r *BufferRecord) setScaled(name FieldName, v float64) error {
	switch name {
	case FieldTemperature2Colour:
		r.Temperature2Colour = &v
	case FieldTemperature1ColourChannel1:
		r.Temperature1ColourChannel1 = &v
	case FieldTemperature1ColourChannel2:
		r.Temperature1ColourChannel2 = &v
	case FieldSetpointValueAtRampFunction:
		r.SetpointValueAtRampFunction = &v
	case FieldControllerManipulatedVariable:
		r.ControllerManipulatedVariable = &v
	case FieldSignalStrength:
		r.SignalStrength = &v
	case FieldMeasuredTemperature:
		r.MeasuredTemperature = &v
	default:
		return fmt.Errorf("no scaled slot for field %s", name)
	}
	return nil
}

func (r *BufferRecord) status() *Status {
	if r.Status == nil {
		r.Status = &Status{}
	}
	return r.Status
}
