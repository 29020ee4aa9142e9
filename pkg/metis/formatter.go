// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package metis

import (
	"fmt"
	"strings"
)

// FormatCommand returns the human-readable name for a command
func FormatCommand(cmd Command) string {
	switch cmd {
	case CmdReferenceNumberShort:
		return "REFERENCE_NUMBER_SHORT"
	case CmdReferenceNumberLong:
		return "REFERENCE_NUMBER_LONG"
	case CmdTargetingLight:
		return "TARGETING_LIGHT"
	case CmdSerialNumber:
		return "SERIAL_NUMBER"
	case CmdReadMeasuredTemperature:
		return "READ_MEASURED_TEMPERATURE"
	case CmdReadTemperatureSensor:
		return "READ_TEMPERATURE_SENSOR"
	case CmdSignalStrength:
		return "SIGNAL_STRENGTH"
	case CmdBufferMode:
		return "BUFFER_MODE"
	case CmdBufferRead:
		return "BUFFER_READ"
	default:
		return "UNKNOWN"
	}
}

// String implements fmt.Stringer
func (c Command) String() string {
	return FormatCommand(c)
}

// FormatTargetingLightState returns the human-readable name for a light state
func FormatTargetingLightState(state TargetingLightState) string {
	switch state {
	case TargetingLightOff:
		return "OFF"
	case TargetingLightOn:
		return "ON"
	case TargetingLightToggle:
		return "TOGGLE"
	default:
		return "UNKNOWN"
	}
}

// FormatRecord formats a buffer record into a human-readable string.
// Absent fields are omitted.
func FormatRecord(r *BufferRecord) string {
	if r == nil || r.Empty() {
		return "  (empty buffer)\n"
	}

	var s strings.Builder
	writeTemp := func(label string, v *float64) {
		if v != nil {
			fmt.Fprintf(&s, "  %s: %.1f°C\n", label, *v)
		}
	}

	writeTemp("Measured", r.MeasuredTemperature)
	writeTemp("2-Colour", r.Temperature2Colour)
	writeTemp("1-Colour Ch1", r.Temperature1ColourChannel1)
	writeTemp("1-Colour Ch2", r.Temperature1ColourChannel2)
	writeTemp("Ramp Setpoint", r.SetpointValueAtRampFunction)
	if r.ControllerManipulatedVariable != nil {
		fmt.Fprintf(&s, "  Controller Output: %.1f%%\n", *r.ControllerManipulatedVariable)
	}
	if r.SignalStrength != nil {
		fmt.Fprintf(&s, "  Signal Strength: %.1f%%\n", *r.SignalStrength)
	}
	if r.AnalogInput != nil {
		fmt.Fprintf(&s, "  Analog Input: %d\n", *r.AnalogInput)
	}
	if r.Status != nil {
		s.WriteString(FormatStatus(r.Status))
	}

	return s.String()
}

// FormatStatus formats the status flags, one line per status byte present
func FormatStatus(st *Status) string {
	var s strings.Builder

	if st.Bytes >= 1 {
		unit := "°C"
		if st.FahrenheitActive {
			unit = "°F"
		}
		fmt.Fprintf(&s, "  Unit: %s, Outputs: [%s %s %s], Inputs: [%s %s %s]\n", unit,
			formatFlag(st.DigitalOutput1), formatFlag(st.DigitalOutput2), formatFlag(st.DigitalOutput3),
			formatFlag(st.DigitalInput1), formatFlag(st.DigitalInput2), formatFlag(st.DigitalInput3))
	}
	if st.Bytes >= 2 {
		fmt.Fprintf(&s, "  Ready: %s, HW Error: %s, Controlling: %s, Auto-Tune: %s (at start: %s), Finished: %s, Light: %s\n",
			formatFlag(st.DeviceReady), formatFlag(st.DeviceHardwareError),
			formatFlag(st.ControllingActive), formatFlag(st.AutoTuneActive),
			formatFlag(st.AutoTuneAtControllerStart), formatFlag(st.ControllerFinishedSuccessful),
			formatFlag(st.TargetingLightActive))
	}
	if st.Bytes >= 3 {
		fmt.Fprintf(&s, "  Setup: [%s %s %s]\n",
			formatFlag(st.Setup0), formatFlag(st.Setup1), formatFlag(st.Setup2))
	}
	if st.Bytes >= 4 {
		fmt.Fprintf(&s, "  Display: [%s %s %s]\n",
			formatFlag(st.Display0), formatFlag(st.Display1), formatFlag(st.Display2))
	}

	return s.String()
}

func formatFlag(b bool) string {
	if b {
		return "On"
	}
	return "Off"
}
