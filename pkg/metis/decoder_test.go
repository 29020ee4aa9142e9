// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package metis

import (
	"errors"
	"fmt"
	"testing"
)

// ============================================================
// ParseUint Tests
// ============================================================

func TestParseUint(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected uint64
	}{
		{"single digit", "7", 7},
		{"lowercase", "00ff", 255},
		{"uppercase", "00FF", 255},
		{"mixed case", "aBcD", 0xABCD},
		{"four digits", "0064", 100},
		{"zero", "0000", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseUint([]byte(tt.data))
			if err != nil {
				t.Fatalf("ParseUint(%q) error: %v", tt.data, err)
			}
			if v != tt.expected {
				t.Errorf("ParseUint(%q) = %d, want %d", tt.data, v, tt.expected)
			}
		})
	}
}

func TestParseUint_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"nil", nil},
		{"non hex letter", []byte("00g0")},
		{"space", []byte(" 0ff")},
		{"sign", []byte("+1")},
		{"prefix", []byte("0x10")},
		{"underscore", []byte("1_0")},
		{"terminator", []byte("10\r")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseUint(tt.data)
			if err == nil {
				t.Fatalf("ParseUint(%q) should fail", tt.data)
			}
			if !errors.Is(err, ErrInvalidDigits) {
				t.Errorf("error %v should wrap ErrInvalidDigits", err)
			}
		})
	}
}

// ============================================================
// ParseScaled Tests
// ============================================================

func TestParseScaled(t *testing.T) {
	divisors := []float64{1, 10, 256, 0.5, -4}
	inputs := []string{"0", "1", "0064", "04D2", "ffff", "7FFF"}

	for _, d := range divisors {
		for _, in := range inputs {
			t.Run(fmt.Sprintf("%s/%g", in, d), func(t *testing.T) {
				u, err := ParseUint([]byte(in))
				if err != nil {
					t.Fatalf("ParseUint error: %v", err)
				}
				got, err := ParseScaled([]byte(in), d)
				if err != nil {
					t.Fatalf("ParseScaled error: %v", err)
				}
				if want := float64(u) / d; got != want {
					t.Errorf("ParseScaled(%q, %g) = %v, want %v", in, d, got, want)
				}
			})
		}
	}
}

func TestParseScaled_KnownValues(t *testing.T) {
	v, err := ParseScaled([]byte("0064"), TemperatureDivisor)
	if err != nil {
		t.Fatalf("ParseScaled error: %v", err)
	}
	if v != 10.0 {
		t.Errorf("ParseScaled(0064, 10) = %v, want 10.0", v)
	}

	v, err = ParseScaled([]byte("1900"), SensorDivisor)
	if err != nil {
		t.Fatalf("ParseScaled error: %v", err)
	}
	if v != 25.0 {
		t.Errorf("ParseScaled(1900, 256) = %v, want 25.0", v)
	}
}

func TestParseScaled_Invalid(t *testing.T) {
	_, err := ParseScaled([]byte("xyz"), 10)
	if !errors.Is(err, ErrInvalidDigits) {
		t.Errorf("expected ErrInvalidDigits, got %v", err)
	}
}

// ============================================================
// ParseBits Tests
// ============================================================

func TestParseBits(t *testing.T) {
	bits, err := ParseBits([]byte("a5"))
	if err != nil {
		t.Fatalf("ParseBits error: %v", err)
	}
	// 0xA5 = 1010 0101
	expected := [8]bool{true, false, true, false, false, true, false, true}
	if bits != expected {
		t.Errorf("ParseBits(a5) = %v, want %v", bits, expected)
	}
}

func TestParseBits_IgnoresHighBits(t *testing.T) {
	bits, err := ParseBits([]byte("0301"))
	if err != nil {
		t.Fatalf("ParseBits error: %v", err)
	}
	expected := [8]bool{true}
	if bits != expected {
		t.Errorf("ParseBits(0301) = %v, want %v", bits, expected)
	}
}

func TestParseBits_RoundTrip(t *testing.T) {
	for i := 0; i < 256; i++ {
		for _, format := range []string{"%02x", "%02X"} {
			in := []byte(fmt.Sprintf(format, i))

			bits, err := ParseBits(in)
			if err != nil {
				t.Fatalf("ParseBits(%q) error: %v", in, err)
			}
			u, err := ParseUint(in)
			if err != nil {
				t.Fatalf("ParseUint(%q) error: %v", in, err)
			}
			if got := PackBits(bits); got != uint8(u) {
				t.Errorf("PackBits(ParseBits(%q)) = 0x%02X, want 0x%02X", in, got, uint8(u))
			}
		}
	}
}

func TestParseBits_Invalid(t *testing.T) {
	_, err := ParseBits([]byte("zz"))
	if !errors.Is(err, ErrInvalidDigits) {
		t.Errorf("expected ErrInvalidDigits, got %v", err)
	}
}
