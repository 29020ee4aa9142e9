// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package metis

import (
	"errors"
	"math/rand"
	"os"
	"strconv"
	"testing"
	"time"
)

// getFuzzRounds returns the number of fuzz rounds from FUZZ_ROUNDS env var, default 1000
func getFuzzRounds() int {
	if envRounds := os.Getenv("FUZZ_ROUNDS"); envRounds != "" {
		if rounds, err := strconv.Atoi(envRounds); err == nil && rounds > 0 {
			return rounds
		}
	}
	return 1000
}

// getFuzzSeed returns the seed from FUZZ_SEED env var, or generates one from current time
func getFuzzSeed() int64 {
	if envSeed := os.Getenv("FUZZ_SEED"); envSeed != "" {
		if seed, err := strconv.ParseInt(envSeed, 10, 64); err == nil {
			return seed
		}
	}
	return time.Now().UnixNano()
}

// newFuzzRng creates a new random number generator and logs the seed for reproducibility
func newFuzzRng(t *testing.T) *rand.Rand {
	seed := getFuzzSeed()
	t.Logf("Seed: %d (reproduce with FUZZ_SEED=%d)", seed, seed)
	return rand.New(rand.NewSource(seed))
}

const hexDigits = "0123456789abcdefABCDEF"

func randomHex(rng *rand.Rand, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = hexDigits[rng.Intn(len(hexDigits))]
	}
	return b
}

// expectedFields returns how many layout fields fit in n bytes
func expectedFields(n int) int {
	count, offset := 0, 0
	for _, f := range bufferLayout {
		if offset+f.Width > n {
			break
		}
		offset += f.Width
		count++
	}
	return count
}

// ============================================================
// Buffer Decoder Fuzz Tests
// ============================================================

func TestFuzzDecodeBuffer_ValidHex(t *testing.T) {
	rng := newFuzzRng(t)
	rounds := getFuzzRounds()

	for i := 0; i < rounds; i++ {
		n := rng.Intn(BufferLayoutWidth + 16)
		payload := randomHex(rng, n)

		rec, fields, err := DecodeBufferFields(payload)
		if err != nil {
			t.Fatalf("round %d: valid hex payload %q failed: %v", i, payload, err)
		}
		if len(fields) != expectedFields(n) {
			t.Fatalf("round %d: consumed %d fields from %d bytes, want %d", i, len(fields), n, expectedFields(n))
		}

		if n == modeZeroWidth {
			if rec.Temperature2Colour != nil || rec.MeasuredTemperature == nil {
				t.Fatalf("round %d: mode 0 payload %q not remapped", i, payload)
			}
		} else if (rec.Temperature2Colour != nil) != (n >= 4) {
			t.Fatalf("round %d: Temperature2Colour presence wrong for %d bytes", i, n)
		}

		if rec.Status != nil && PackBits([8]bool{
			rec.Status.FahrenheitActive, rec.Status.DigitalOutput1, rec.Status.DigitalOutput2,
			rec.Status.DigitalOutput3, rec.Status.DigitalInput1, rec.Status.DigitalInput2,
			rec.Status.DigitalInput3, false,
		}) != PackBits(mustBits(t, payload[24:26]))&0x7F {
			t.Fatalf("round %d: status byte 0 mismatch for %q", i, payload[24:26])
		}
	}
}

func mustBits(t *testing.T, data []byte) [8]bool {
	t.Helper()
	bits, err := ParseBits(data)
	if err != nil {
		t.Fatalf("ParseBits(%q) error: %v", data, err)
	}
	return bits
}

func TestFuzzDecodeBuffer_RandomBytes(t *testing.T) {
	rng := newFuzzRng(t)
	rounds := getFuzzRounds()

	for i := 0; i < rounds; i++ {
		n := rng.Intn(BufferLayoutWidth + 16)
		payload := make([]byte, n)
		rng.Read(payload)

		rec, err := DecodeBuffer(payload)
		if err != nil {
			if rec != nil {
				t.Fatalf("round %d: partial record returned with error", i)
			}
			var de *DecodeError
			if !errors.As(err, &de) || !errors.Is(err, ErrInvalidDigits) {
				t.Fatalf("round %d: unexpected error type %T: %v", i, err, err)
			}
			continue
		}
		if rec == nil {
			t.Fatalf("round %d: nil record without error", i)
		}
	}
}

func TestFuzzEncode_Address(t *testing.T) {
	rng := newFuzzRng(t)
	rounds := getFuzzRounds()

	for i := 0; i < rounds; i++ {
		addr := rng.Intn(400) - 100
		cmd := allCommands[rng.Intn(len(allCommands))]

		line, err := Encode(addr, cmd, "")
		if addr < 0 || addr > 99 {
			if !errors.Is(err, ErrAddressOutOfRange) {
				t.Fatalf("round %d: address %d accepted", i, addr)
			}
			continue
		}
		if err != nil {
			t.Fatalf("round %d: Encode(%d, %s) error: %v", i, addr, cmd, err)
		}
		if len(line) != 2+len(cmd.Token())+1 || line[len(line)-1] != Terminator {
			t.Fatalf("round %d: malformed line %q", i, line)
		}
		got, convErr := strconv.Atoi(string(line[:2]))
		if convErr != nil || got != addr {
			t.Fatalf("round %d: address prefix %q, want %02d", i, line[:2], addr)
		}
	}
}
