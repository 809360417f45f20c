package bigint

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// limbsToBig assembles a reference value from 64-bit limbs, most significant
// first.
func limbsToBig(limbs []uint64, neg bool) *big.Int {
	b := new(big.Int)
	for _, l := range limbs {
		b.Lsh(b, 64)
		b.Or(b, new(big.Int).SetUint64(l))
	}
	if neg {
		b.Neg(b)
	}
	return b
}

func genLimbs() gopter.Gen {
	return gen.SliceOfN(4, gen.UInt64())
}

func newProperties() *gopter.Properties {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	return gopter.NewProperties(parameters)
}

// TestIdentities_PropertyBased verifies a - a == 0, a + (-a) == 0 and
// -(-a) == a.
func TestIdentities_PropertyBased(t *testing.T) {
	t.Parallel()
	properties := newProperties()

	properties.Property("additive identities hold", prop.ForAll(
		func(limbs []uint64, neg bool) bool {
			a := fromBig(t, limbsToBig(limbs, neg))
			diff, err := Sub(a, a)
			if err != nil || !diff.IsZero() {
				return false
			}
			sum, err := Add(a, Neg(a))
			if err != nil || !sum.IsZero() || sum.neg {
				return false
			}
			return Neg(Neg(a)).Equal(a)
		},
		genLimbs(), gen.Bool(),
	))

	properties.TestingRun(t)
}

// TestAddition_PropertyBased verifies commutativity and associativity of +
// against math/big.
func TestAddition_PropertyBased(t *testing.T) {
	t.Parallel()
	properties := newProperties()

	properties.Property("a + b == b + a", prop.ForAll(
		func(x []uint64, xn bool, y []uint64, yn bool) bool {
			a, b := fromBig(t, limbsToBig(x, xn)), fromBig(t, limbsToBig(y, yn))
			ab, err1 := Add(a, b)
			ba, err2 := Add(b, a)
			want := new(big.Int).Add(limbsToBig(x, xn), limbsToBig(y, yn))
			return err1 == nil && err2 == nil && ab.Equal(ba) && toBig(t, ab).Cmp(want) == 0
		},
		genLimbs(), gen.Bool(), genLimbs(), gen.Bool(),
	))

	properties.Property("(a + b) + c == a + (b + c)", prop.ForAll(
		func(x []uint64, y []uint64, z []uint64, signs uint8) bool {
			a := fromBig(t, limbsToBig(x, signs&1 != 0))
			b := fromBig(t, limbsToBig(y, signs&2 != 0))
			c := fromBig(t, limbsToBig(z, signs&4 != 0))
			l := MustAdd(MustAdd(a, b), c)
			r := MustAdd(a, MustAdd(b, c))
			return l.Equal(r)
		},
		genLimbs(), genLimbs(), genLimbs(), gen.UInt8(),
	))

	properties.TestingRun(t)
}

// TestDivision_PropertyBased verifies (a / b) * b + (a % b) == a for b != 0.
func TestDivision_PropertyBased(t *testing.T) {
	t.Parallel()
	properties := newProperties()

	properties.Property("quotient and remainder reassemble the dividend", prop.ForAll(
		func(x []uint64, xn bool, y []uint64, yn bool) bool {
			b := fromBig(t, limbsToBig(y, yn))
			if b.IsZero() {
				return true
			}
			a := fromBig(t, limbsToBig(x, xn))
			q := MustQuo(a, b)
			r := MustRem(a, b)
			got := MustAdd(MustMul(q, b), r)
			if !got.Equal(a) {
				return false
			}
			wq, wr := new(big.Int).QuoRem(toBig(t, a), toBig(t, b), new(big.Int))
			return toBig(t, q).Cmp(wq) == 0 && toBig(t, r).Cmp(wr) == 0
		},
		gen.SliceOfN(3, gen.UInt64()), gen.Bool(), gen.SliceOfN(2, gen.UInt64()), gen.Bool(),
	))

	properties.TestingRun(t)
}

// TestShift_PropertyBased verifies a << k == a * 2^k and, for a >= 0,
// a >> k == a / 2^k.
func TestShift_PropertyBased(t *testing.T) {
	t.Parallel()
	properties := newProperties()

	properties.Property("shifts scale by powers of two", prop.ForAll(
		func(limbs []uint64, neg bool, k uint) bool {
			a := fromBig(t, limbsToBig(limbs, neg))
			pow := MustLsh(New(1), k)
			if !MustLsh(a, k).Equal(MustMul(a, pow)) {
				return false
			}
			abs := Abs(a)
			return Rsh(abs, k).Equal(MustQuo(abs, pow))
		},
		genLimbs(), gen.Bool(), gen.UIntRange(0, WordBits-1),
	))

	properties.TestingRun(t)
}

// TestOrder_PropertyBased verifies that exactly one of a < b, a == b and
// a > b holds, in agreement with math/big.
func TestOrder_PropertyBased(t *testing.T) {
	t.Parallel()
	properties := newProperties()

	properties.Property("trichotomy", prop.ForAll(
		func(x []uint64, xn bool, y []uint64, yn bool) bool {
			a, b := fromBig(t, limbsToBig(x, xn)), fromBig(t, limbsToBig(y, yn))
			n := 0
			for _, r := range []bool{a.Less(b), a.Equal(b), a.Greater(b)} {
				if r {
					n++
				}
			}
			return n == 1 && a.Cmp(b) == limbsToBig(x, xn).Cmp(limbsToBig(y, yn))
		},
		gen.SliceOfN(2, gen.UInt64Range(0, 3)), gen.Bool(), gen.SliceOfN(2, gen.UInt64Range(0, 3)), gen.Bool(),
	))

	properties.TestingRun(t)
}

// TestRoundTrip_PropertyBased verifies that rendering then parsing
// reproduces the value.
func TestRoundTrip_PropertyBased(t *testing.T) {
	t.Parallel()
	properties := newProperties()

	properties.Property("Parse(String(a)) == a", prop.ForAll(
		func(limbs []uint64, neg bool) bool {
			want := limbsToBig(limbs, neg)
			a := fromBig(t, want)
			if a.String() != want.String() {
				return false
			}
			b, err := Parse(a.String())
			return err == nil && b.Equal(a)
		},
		genLimbs(), gen.Bool(),
	))

	properties.TestingRun(t)
}
