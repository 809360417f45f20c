package oracle

import (
	"fmt"
	"math/big"
)

// Big is an Oracle backed by math/big.
type Big struct{}

// Name returns "big".
func (Big) Name() string { return "big" }

// Compute implements Oracle.
func (Big) Compute(op Op, a, b string) (string, error) {
	x, ok := new(big.Int).SetString(a, 10)
	if !ok {
		return "", fmt.Errorf("oracle big: bad operand %q", a)
	}
	y, ok := new(big.Int).SetString(b, 10)
	if !ok {
		return "", fmt.Errorf("oracle big: bad operand %q", b)
	}
	z := new(big.Int)

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
		if y.Sign() < 0 || !y.IsUint64() {
			return "", ErrNegativeOperand
		}
		n := uint(y.Uint64())
		if op == OpLsh {
			z.Lsh(x, n)
		} else {
			z.Rsh(new(big.Int).Abs(x), n)
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
