package bigint

import (
	"math/big"
	"testing"
)

// withPolicy installs p for the duration of the test. Tests calling it must
// not run in parallel.
func withPolicy(t *testing.T, p Policy) {
	t.Helper()
	prev := activePolicy.Load()
	activePolicy.Store(&p)
	t.Cleanup(func() { activePolicy.Store(prev) })
}

// toBig converts x into a math/big reference value.
func toBig(t testing.TB, x *Int) *big.Int {
	t.Helper()
	b, ok := new(big.Int).SetString(x.String(), 10)
	if !ok {
		t.Fatalf("cannot parse %q as big.Int", x.String())
	}
	return b
}

// fromBig builds an Int from a math/big value.
func fromBig(t testing.TB, b *big.Int) *Int {
	t.Helper()
	x, err := Parse(b.String())
	if err != nil {
		t.Fatalf("Parse(%s): %v", b, err)
	}
	return x
}

func mustParse(t testing.TB, s string) *Int {
	t.Helper()
	x, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return x
}

// checkInvariants verifies that no word above the significant length is set
// and that zero is never negative.
func checkInvariants(t testing.TB, x *Int) {
	t.Helper()
	d := x.digits()
	for i := d; i < len(x.words); i++ {
		if x.words[i] != 0 {
			t.Fatalf("word %d above significant length %d is %#x", i, d, x.words[i])
		}
	}
	if x.neg && x.isZeroMag() {
		t.Fatalf("negative zero observed")
	}
}
