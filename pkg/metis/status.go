// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package metis

// DataStatus is buffer status byte 0
type DataStatus struct {
	FahrenheitActive bool `json:"fahrenheit_active"`
	DigitalOutput1   bool `json:"digital_output_1"`
	DigitalOutput2   bool `json:"digital_output_2"`
	DigitalOutput3   bool `json:"digital_output_3"`
	DigitalInput1    bool `json:"digital_input_1"`
	DigitalInput2    bool `json:"digital_input_2"`
	DigitalInput3    bool `json:"digital_input_3"`
}

// ControlStatus is buffer status byte 1
type ControlStatus struct {
	ControllingActive            bool `json:"controlling_active"`
	AutoTuneActive               bool `json:"auto_tune_active"`
	AutoTuneAtControllerStart    bool `json:"auto_tune_at_controller_start"`
	DeviceReady                  bool `json:"device_ready"`
	DeviceHardwareError          bool `json:"device_hardware_error"`
	ControllerFinishedSuccessful bool `json:"controller_finished_successful"`
	TargetingLightActive         bool `json:"targeting_light_active"`
}

// SetupFlags is buffer status byte 2
type SetupFlags struct {
	Setup0 bool `json:"setup_0"`
	Setup1 bool `json:"setup_1"`
	Setup2 bool `json:"setup_2"`
}

// DisplayFlags is buffer status byte 3
type DisplayFlags struct {
	Display0 bool `json:"display_0"`
	Display1 bool `json:"display_1"`
	Display2 bool `json:"display_2"`
}

// Status is the union of the four buffer status bytes. Bytes counts how
// many of them were present in the response; flags from missing bytes
// stay false.
type Status struct {
	DataStatus
	ControlStatus
	SetupFlags
	DisplayFlags

	Bytes int `json:"bytes"`
}

// DecodeDataStatus decodes status byte 0. Bit 7 is reserved.
func DecodeDataStatus(data []byte) (DataStatus, error) {
	b, err := ParseBits(data)
	if err != nil {
		return DataStatus{}, err
	}
	return DataStatus{
		FahrenheitActive: b[0],
		DigitalOutput1:   b[1],
		DigitalOutput2:   b[2],
		DigitalOutput3:   b[3],
		DigitalInput1:    b[4],
		DigitalInput2:    b[5],
		DigitalInput3:    b[6],
	}, nil
}

// DecodeControlStatus decodes status byte 1. Bit 7 is reserved.
func DecodeControlStatus(data []byte) (ControlStatus, error) {
	b, err := ParseBits(data)
	if err != nil {
		return ControlStatus{}, err
	}
	return ControlStatus{
		ControllingActive:            b[0],
		AutoTuneActive:               b[1],
		AutoTuneAtControllerStart:    b[2],
		DeviceReady:                  b[3],
		DeviceHardwareError:          b[4],
		ControllerFinishedSuccessful: b[5],
		TargetingLightActive:         b[6],
	}, nil
}

// DecodeSetupFlags decodes status byte 2. Bits 3-7 are reserved.
func DecodeSetupFlags(data []byte) (SetupFlags, error) {
	b, err := ParseBits(data)
	if err != nil {
		return SetupFlags{}, err
	}
	return SetupFlags{Setup0: b[0], Setup1: b[1], Setup2: b[2]}, nil
}

// DecodeDisplayFlags decodes status byte 3. Bits 3-7 are reserved.
func DecodeDisplayFlags(data []byte) (DisplayFlags, error) {
	b, err := ParseBits(data)
	if err != nil {
		return DisplayFlags{}, err
	}
	return DisplayFlags{Display0: b[0], Display1: b[1], Display2: b[2]}, nil
}
