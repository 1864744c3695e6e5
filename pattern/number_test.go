package pattern

import (
	"math"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func testReader(t *testing.T, input string) *reader {
	t.Helper()

	chars, perr := decodeChars(input, DefaultEscape)
	if perr != nil {
		t.Fatalf("unexpected decode error: %v", perr)
	}

	return newReader(chars, 0)
}

func TestParseUint(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      uint64
		expected uint64
	}{
		{name: "single digit", input: "7", max: math.MaxUint64, expected: 7},
		{name: "multiple digits", input: "1234", max: math.MaxUint64, expected: 1234},
		{name: "leading zeros are decimal", input: "007", max: math.MaxUint64, expected: 7},
		{name: "exactly max", input: "255", max: 255, expected: 255},
		{name: "stops at non-digit", input: "42x", max: math.MaxUint64, expected: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rd := testReader(t, tt.input)

			value, perr := parseUint(rd, tt.max)
			if perr != nil {
				t.Fatalf("unexpected error: %v", perr)
			}

			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestParseUintEmpty(t *testing.T) {
	rd := testReader(t, "")

	_, perr := parseUint(rd, math.MaxUint64)
	if perr == nil {
		t.Fatal("expected error")
	}

	assert.IsError(t, perr, ErrExpectedNumber)
	assert.Equal(t, 0, perr.Start)
	assert.Equal(t, 0, perr.End)
}

func TestParseUintNonDigit(t *testing.T) {
	rd := testReader(t, "abc")

	_, perr := parseUint(rd, math.MaxUint64)
	if perr == nil {
		t.Fatal("expected error")
	}

	assert.IsError(t, perr, ErrExpectedNumber)
	assert.Equal(t, 0, perr.Start)
	assert.Equal(t, 3, perr.End)
}

func TestParseUintOverflow(t *testing.T) {
	// "256" into an 8-bit domain: the error spans exactly the digits and
	// names the maximum.
	rd := testReader(t, "256")

	_, perr := parseUint(rd, 255)
	if perr == nil {
		t.Fatal("expected error")
	}

	assert.IsError(t, perr, ErrIntegerOverflow)
	assert.Contains(t, perr.Error(), "255")
	assert.Equal(t, 0, perr.Start)
	assert.Equal(t, 3, perr.End)
}

func TestParseUintOverflowSpansOnlyDigits(t *testing.T) {
	rd := testReader(t, "999-5")

	_, perr := parseUint(rd, 255)
	if perr == nil {
		t.Fatal("expected error")
	}

	assert.IsError(t, perr, ErrIntegerOverflow)
	assert.Equal(t, 0, perr.Start)
	assert.Equal(t, 3, perr.End)
}
