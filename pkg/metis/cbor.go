// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package metis

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// recordEncMode produces deterministic output so identical records
// encode to identical bytes.
var recordEncMode, _ = cbor.CoreDetEncOptions().EncMode()

// MarshalRecordCBOR encodes a buffer record as a CBOR map keyed by small
// integers. Absent fields are left out.
func MarshalRecordCBOR(r *BufferRecord) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("nil buffer record")
	}
	data, err := recordEncMode.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode buffer record: %w", err)
	}
	return data, nil
}

// UnmarshalRecordCBOR decodes a record produced by MarshalRecordCBOR
func UnmarshalRecordCBOR(data []byte) (*BufferRecord, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty CBOR payload")
	}
	var r BufferRecord
	if err := cbor.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode buffer record: %w", err)
	}
	return &r, nil
}
