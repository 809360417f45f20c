package bigint

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestStringRendering(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   *Int
		want string
	}{
		{New(54321), "54321"},
		{New(-54321), "-54321"},
		{New(0), "0"},
		{new(Int), "0"},
		{NewUint64(math.MaxUint64), "18446744073709551615"},
		{MustMul(NewUint64(math.MaxUint64), New(-10)), "-184467440737095516150"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
	var nilInt *Int
	if got := nilInt.String(); got != "<nil>" {
		t.Errorf("nil String() = %q", got)
	}
}

func TestSetString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    string
		wantErr bool
		offset  int
	}{
		{"0", "0", false, 0},
		{"+17", "17", false, 0},
		{"-0", "0", false, 0},
		{"000123", "123", false, 0},
		{"-340282366920938463463374607431768211456", "-340282366920938463463374607431768211456", false, 0},
		{"", "", true, 0},
		{"-", "", true, 1},
		{"12a4", "", true, 2},
		{" 1", "", true, 0},
		{"0x10", "", true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			z := New(99)
			_, err := z.SetString(tt.in)
			if tt.wantErr {
				var se *SyntaxError
				if !errors.As(err, &se) {
					t.Fatalf("error = %v, want *SyntaxError", err)
				}
				if se.Offset != tt.offset {
					t.Errorf("Offset = %d, want %d", se.Offset, tt.offset)
				}
				if z.String() != "99" {
					t.Errorf("failed SetString modified z to %s", z)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if z.String() != tt.want {
				t.Errorf("got %s, want %s", z, tt.want)
			}
			checkInvariants(t, z)
		})
	}
}

func TestWordTruncates(t *testing.T) {
	t.Parallel()
	x := mustParse(t, "18446744073709551617") // 2^64 + 1
	if _W == 64 && x.Word() != 1 {
		t.Errorf("Word() = %d, want 1", x.Word())
	}
	if New(-3).Word() != 3 {
		t.Errorf("Word() of -3 = %d, want magnitude 3", New(-3).Word())
	}
}

func TestCheckedConversions(t *testing.T) {
	t.Parallel()
	if v, ok := NewInt64(math.MinInt64).Int64(); !ok || v != math.MinInt64 {
		t.Errorf("Int64(MinInt64) = %d, %t", v, ok)
	}
	for _, s := range []string{"9223372036854775808", "18446744073709551615", "-9223372036854775809", "-18446744073709551615", "-36893488147419103232"} {
		if v, ok := MustParse(s).Int64(); ok || v != 0 {
			t.Errorf("Int64(%s) = %d, %t, want 0, false", s, v, ok)
		}
	}
	if _, ok := New(-1).Uint64(); ok {
		t.Error("Uint64(-1) reported exact")
	}
	if v, ok := NewUint64(math.MaxUint64).Uint64(); !ok || v != math.MaxUint64 {
		t.Errorf("Uint64(MaxUint64) = %d, %t", v, ok)
	}
	if _, ok := mustParse(t, "18446744073709551616").Uint64(); ok {
		t.Error("Uint64(2^64) reported exact")
	}

	if v, err := ToNative[int8](New(-128)); err != nil || v != -128 {
		t.Errorf("ToNative[int8](-128) = %d, %v", v, err)
	}
	if _, err := ToNative[int8](New(128)); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("ToNative[int8](128) error = %v", err)
	}
	if _, err := ToNative[uint32](New(-1)); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("ToNative[uint32](-1) error = %v", err)
	}
	if _, err := ToNative[int64](mustParse(t, "-9223372036854775809")); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("ToNative[int64](MinInt64-1) error = %v", err)
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()
	x := New(-42)
	tests := []struct {
		format string
		arg    any
		want   string
	}{
		{"%d", x, "-42"},
		{"%v", x, "-42"},
		{"%s", New(7), "7"},
		{"%+d", New(7), "+7"},
		{"%5d", New(7), "    7"},
		{"%-5d|", New(7), "7    |"},
		{"%x", New(7), "%!x(bigint.Int=7)"},
	}
	for _, tt := range tests {
		if got := fmt.Sprintf(tt.format, tt.arg); got != tt.want {
			t.Errorf("Sprintf(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestTextMarshaling(t *testing.T) {
	t.Parallel()
	in := map[string]*Int{"v": mustParse(t, "-123456789012345678901234567890")}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"v":"-123456789012345678901234567890"}` {
		t.Errorf("json = %s", data)
	}
	var out map[string]*Int
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if !out["v"].Equal(in["v"]) {
		t.Errorf("round trip = %s", out["v"])
	}
	if err := json.Unmarshal([]byte(`{"v":"1.5"}`), &out); err == nil {
		t.Error("expected error for non-integer text")
	}
}
