package selftest

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/agbru/bigcalc/bigint"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/oracle"
)

// Outcome labels used when one side fails; they take the place of a
// numeric result in a mismatch report.
const (
	outcomeUndefined = "<undefined>"
	outcomeNegative  = "<negative operand>"
)

// check runs one case. It returns a mismatch description, or an error when
// the case could not be run at all.
func check(o oracle.Oracle, op oracle.Op, a, b string) (*apperrors.MismatchError, error) {
	want, err := o.Compute(op, a, b)
	switch {
	case errors.Is(err, oracle.ErrUndefined):
		want = outcomeUndefined
	case errors.Is(err, oracle.ErrNegativeOperand):
		want = outcomeNegative
	case err != nil:
		return nil, fmt.Errorf("oracle %s on %s %s %s: %w", o.Name(), a, op, b, err)
	}

	got, err := compute(op, a, b)
	if err != nil {
		return nil, err
	}
	if got == want {
		return nil, nil
	}
	return &apperrors.MismatchError{
		Oracle:   o.Name(),
		Op:       string(op),
		Operands: []string{a, b},
		Got:      got,
		Want:     want,
	}, nil
}

// compute evaluates op with the bigint package. Domain errors become
// outcome labels; anything else is returned as an error.
func compute(op oracle.Op, a, b string) (string, error) {
	x, err := bigint.Parse(a)
	if err != nil {
		return "", err
	}
	y, err := bigint.Parse(b)
	if err != nil {
		return "", err
	}

	var z *bigint.Int
	switch op {
	case oracle.OpAdd:
		z, err = bigint.Add(x, y)
		if err == nil {
			err = crossNative(z, x, y, bigint.AddNative[int64])
		}
	case oracle.OpSub:
		z, err = bigint.Sub(x, y)
		if err == nil {
			err = crossNative(z, x, y, bigint.SubNative[int64])
		}
	case oracle.OpMul:
		z, err = bigint.Mul(x, y)
		if err == nil {
			err = crossNative(z, x, y, bigint.MulNative[int64])
		}
	case oracle.OpQuo:
		z, err = bigint.Quo(x, y)
	case oracle.OpRem:
		z, err = bigint.Rem(x, y)
	case oracle.OpLsh:
		err = x.LshBy(y)
		z = x
	case oracle.OpRsh:
		err = x.RshBy(y)
		z = x
	case oracle.OpAnd:
		z, err = bigint.And(x, y)
	case oracle.OpOr:
		z, err = bigint.Or(x, y)
	case oracle.OpXor:
		z, err = bigint.Xor(x, y)
	case oracle.OpCmp:
		return strconv.Itoa(x.Cmp(y)), nil
	default:
		return "", fmt.Errorf("%w: %s", oracle.ErrUnknownOp, op)
	}

	switch {
	case errors.Is(err, bigint.ErrDivisionByZero):
		return outcomeUndefined, nil
	case errors.Is(err, bigint.ErrNegativeBitwiseOperand), errors.Is(err, bigint.ErrUnsupportedShift):
		return outcomeNegative, nil
	case errors.Is(err, errNativeDisagrees):
		return "native:" + z.String(), nil
	case err != nil:
		return "", err
	}
	return z.String(), nil
}

var errNativeDisagrees = errors.New("native operand result differs")

// crossNative recomputes x op y through the native-operand helper when y
// fits in an int64 and the policy allows it, and compares with want.
func crossNative(want, x, y *bigint.Int, f func(*bigint.Int, int64) error) error {
	v, ok := y.Int64()
	if !ok || !bigint.ActivePolicy().NativeOperands {
		return nil
	}
	z := x.Clone()
	if err := f(z, v); err != nil {
		return err
	}
	if !z.Equal(want) {
		return errNativeDisagrees
	}
	return nil
}
