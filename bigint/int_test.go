package bigint

import (
	"math"
	"testing"
)

func TestZeroValue(t *testing.T) {
	t.Parallel()
	var z Int
	if z.Len() != 0 {
		t.Errorf("zero value Len() = %d, want 0", z.Len())
	}
	if !z.IsZero() || z.Sign() != 0 || z.Bool() {
		t.Errorf("zero value is not zero")
	}
	if got := z.String(); got != "0" {
		t.Errorf("zero value String() = %q, want %q", got, "0")
	}
	if err := z.AddAssign(New(5)); err != nil {
		t.Fatalf("AddAssign on zero value: %v", err)
	}
	if got := z.String(); got != "5" {
		t.Errorf("0 + 5 = %s", got)
	}
}

func TestNewFromNative(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		got  *Int
		want string
		neg  bool
	}{
		{"int zero", New(0), "0", false},
		{"int positive", New(42), "42", false},
		{"int negative", New(-42), "-42", true},
		{"int8 min", New(int8(math.MinInt8)), "-128", true},
		{"int16 min", New(int16(math.MinInt16)), "-32768", true},
		{"int32 min", New(int32(math.MinInt32)), "-2147483648", true},
		{"int64 min", NewInt64(math.MinInt64), "-9223372036854775808", true},
		{"int64 max", NewInt64(math.MaxInt64), "9223372036854775807", false},
		{"uint8 max", New(uint8(math.MaxUint8)), "255", false},
		{"uint64 max", NewUint64(math.MaxUint64), "18446744073709551615", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if s := tt.got.String(); s != tt.want {
				t.Errorf("String() = %q, want %q", s, tt.want)
			}
			if tt.got.Len() < 1 {
				t.Errorf("Len() = %d, native construction must allocate a word", tt.got.Len())
			}
			if tt.got.neg != tt.neg {
				t.Errorf("neg = %t, want %t", tt.got.neg, tt.neg)
			}
			checkInvariants(t, tt.got)
		})
	}
}

func TestSetNativeReusesBuffer(t *testing.T) {
	t.Parallel()
	x := mustParse(t, "340282366920938463463374607431768211456") // 2^128
	n := x.Len()
	SetNative(x, -7)
	if x.Len() != n {
		t.Errorf("Len() = %d after SetNative, want %d", x.Len(), n)
	}
	if got := x.String(); got != "-7" {
		t.Errorf("String() = %q, want -7", got)
	}
	checkInvariants(t, x)
}

func TestSetCopiesIndependently(t *testing.T) {
	t.Parallel()
	x := mustParse(t, "-123456789012345678901234567890")
	var y Int
	if _, err := y.Set(x); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !y.Equal(x) {
		t.Fatalf("Set: got %s, want %s", &y, x)
	}
	if y.Len() != x.Len() {
		t.Errorf("Set: Len() = %d, want %d", y.Len(), x.Len())
	}
	if err := y.Inc(); err != nil {
		t.Fatal(err)
	}
	if got := x.String(); got != "-123456789012345678901234567890" {
		t.Errorf("source modified through copy: %s", got)
	}
	if _, err := y.Set(&y); err != nil {
		t.Errorf("self Set: %v", err)
	}
}

func TestCloneIndependent(t *testing.T) {
	t.Parallel()
	x := New(99)
	c := x.Clone()
	if err := c.MulAssign(New(2)); err != nil {
		t.Fatal(err)
	}
	if x.String() != "99" || c.String() != "198" {
		t.Errorf("x = %s, c = %s; want 99, 198", x, c)
	}
}

func TestMoveLeavesSourceEmpty(t *testing.T) {
	t.Parallel()
	src := New(-12)
	var dst Int
	dst.Move(src)
	if got := dst.String(); got != "-12" {
		t.Errorf("dst = %s, want -12", got)
	}
	if src.Len() != 0 || src.neg || src.words != nil {
		t.Errorf("src not empty after Move: len=%d neg=%t", src.Len(), src.neg)
	}
	if got := src.String(); got != "0" {
		t.Errorf("moved-from value = %s, want 0", got)
	}
}

func TestLengthNeverShrinks(t *testing.T) {
	t.Parallel()
	x := mustParse(t, "1267650600228229401496703205376") // 2^100
	n := x.Len()
	ops := []struct {
		name string
		fn   func() error
	}{
		{"sub", func() error { return x.SubAssign(mustParse(t, "1267650600228229401496703205375")) }},
		{"quo", func() error { return x.QuoAssign(New(1)) }},
		{"rsh", func() error { x.RshAssign(1); return nil }},
		{"set", func() error { _, err := x.SetString("3"); return err }},
		{"mul", func() error { return x.MulAssign(New(0)) }},
	}
	for _, op := range ops {
		if err := op.fn(); err != nil {
			t.Fatalf("%s: %v", op.name, err)
		}
		if x.Len() < n {
			t.Fatalf("%s: Len() shrank from %d to %d", op.name, n, x.Len())
		}
		n = x.Len()
		checkInvariants(t, x)
	}
}

func TestSignAndBitLen(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in     string
		sign   int
		bitLen int
	}{
		{"0", 0, 0},
		{"1", 1, 1},
		{"-1", -1, 1},
		{"255", 1, 8},
		{"-256", -1, 9},
		{"18446744073709551616", 1, 65},
	}
	for _, tt := range tests {
		x := mustParse(t, tt.in)
		if got := x.Sign(); got != tt.sign {
			t.Errorf("Sign(%s) = %d, want %d", tt.in, got, tt.sign)
		}
		if got := x.BitLen(); got != tt.bitLen {
			t.Errorf("BitLen(%s) = %d, want %d", tt.in, got, tt.bitLen)
		}
	}
}

func TestWordsReturnsCopy(t *testing.T) {
	t.Parallel()
	x := New(5)
	w := x.Words()
	w[0] = 9
	if got := x.String(); got != "5" {
		t.Errorf("mutating Words() result changed x to %s", got)
	}
}
