package bigint

import (
	"math/rand/v2"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fromUint256 builds an Int from the 64-bit limbs of a 256-bit value.
func fromUint256(t *testing.T, u *uint256.Int) *Int {
	t.Helper()
	x := new(Int)
	for i := 3; i >= 0; i-- {
		require.NoError(t, x.LshAssign(64))
		require.NoError(t, x.AddAssign(NewUint64(u[i])))
	}
	return x
}

// TestAgainstUint256 cross-checks non-negative operands of up to 128 bits
// against fixed-width 256-bit arithmetic, where nothing can wrap.
func TestAgainstUint256(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 200; i++ {
		ua := &uint256.Int{rng.Uint64(), rng.Uint64() >> rng.UintN(64), 0, 0}
		ub := &uint256.Int{rng.Uint64(), rng.Uint64() >> rng.UintN(65), 0, 0}
		if ub.IsZero() {
			ub.SetOne()
		}
		a, b := fromUint256(t, ua), fromUint256(t, ub)
		require.Equal(t, ua.Dec(), a.String())

		sum, err := Add(a, b)
		require.NoError(t, err)
		assert.Equal(t, new(uint256.Int).Add(ua, ub).Dec(), sum.String(), "add")

		prod, err := Mul(a, b)
		require.NoError(t, err)
		assert.Equal(t, new(uint256.Int).Mul(ua, ub).Dec(), prod.String(), "mul")

		quo, err := Quo(a, b)
		require.NoError(t, err)
		assert.Equal(t, new(uint256.Int).Div(ua, ub).Dec(), quo.String(), "quo")

		rem, err := Rem(a, b)
		require.NoError(t, err)
		assert.Equal(t, new(uint256.Int).Mod(ua, ub).Dec(), rem.String(), "rem")

		and, err := And(a, b)
		require.NoError(t, err)
		assert.Equal(t, new(uint256.Int).And(ua, ub).Dec(), and.String(), "and")

		or, err := Or(a, b)
		require.NoError(t, err)
		assert.Equal(t, new(uint256.Int).Or(ua, ub).Dec(), or.String(), "or")

		xor, err := Xor(a, b)
		require.NoError(t, err)
		assert.Equal(t, new(uint256.Int).Xor(ua, ub).Dec(), xor.String(), "xor")

		k := rng.UintN(128)
		lsh, err := Lsh(a, k)
		require.NoError(t, err)
		assert.Equal(t, new(uint256.Int).Lsh(ua, k).Dec(), lsh.String(), "lsh %d", k)
		assert.Equal(t, new(uint256.Int).Rsh(ua, k).Dec(), Rsh(a, k).String(), "rsh %d", k)

		assert.Equal(t, ua.Cmp(ub), a.Cmp(b), "cmp")
		if ua.Cmp(ub) >= 0 {
			diff, err := Sub(a, b)
			require.NoError(t, err)
			assert.Equal(t, new(uint256.Int).Sub(ua, ub).Dec(), diff.String(), "sub")
		}
	}
}
