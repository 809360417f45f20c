//go:build gmp

package oracle

import (
	"fmt"

	"github.com/ncw/gmp"
)

// GMP is an Oracle backed by the GNU Multiple Precision library.
type GMP struct{}

func newGMP() (Oracle, error) { return GMP{}, nil }

// Name returns "gmp".
func (GMP) Name() string { return "gmp" }

// Compute implements Oracle.
func (GMP) Compute(op Op, a, b string) (string, error) {
	x, ok := new(gmp.Int).SetString(a, 10)
	if !ok {
		return "", fmt.Errorf("oracle gmp: bad operand %q", a)
	}
	y, ok := new(gmp.Int).SetString(b, 10)
	if !ok {
		return "", fmt.Errorf("oracle gmp: bad operand %q", b)
	}
	z := new(gmp.Int)

	switch op {
	case OpAdd:
		z.Add(x, y)
	case OpSub:
		z.Sub(x, y)
	case OpMul:
		z.Mul(x, y)
	case OpQuo, OpRem:
		if y.Sign() == 0 {
			return "", ErrUndefined
		}
		if op == OpQuo {
			z.Quo(x, y)
		} else {
			z.Rem(x, y)
		}
	case OpLsh, OpRsh:
		if y.Sign() < 0 || y.BitLen() > 32 {
			return "", ErrNegativeOperand
		}
		n := uint(y.Int64())
		if op == OpLsh {
			z.Lsh(x, n)
		} else {
			z.Rsh(new(gmp.Int).Abs(x), n)
			if x.Sign() < 0 {
				z.Neg(z)
			}
		}
	case OpAnd, OpOr, OpXor:
		if x.Sign() < 0 || y.Sign() < 0 {
			return "", ErrNegativeOperand
		}
		switch op {
		case OpAnd:
			z.And(x, y)
		case OpOr:
			z.Or(x, y)
		default:
			z.Xor(x, y)
		}
	case OpCmp:
		z.SetInt64(int64(x.Cmp(y)))
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownOp, op)
	}
	return z.String(), nil
}
