package expr

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	"github.com/agbru/bigcalc/bigint"
)

// ErrLimitExceeded is returned when an operator would exceed the Limits of
// the Evaluator. Nothing is allocated or computed for the rejected operator.
var ErrLimitExceeded = errors.New("evaluation limit exceeded")

// Limits bounds the cost of each operator an Evaluator runs. A zero field
// is unbounded.
type Limits struct {
	// MaxBits bounds the bit length of an operator's result.
	MaxBits int
	// MaxWork bounds the estimated word operations of one multiplication,
	// division or remainder.
	MaxWork uint64
}

// WithLimits bounds the result size and work of every operator.
func WithLimits(l Limits) Option {
	return func(e *Evaluator) { e.limits = l }
}

// check estimates the cost of x op y from the operand sizes alone.
//
// Multiplication is shift-and-add: one pass over the product's words per
// bit of the smaller operand. Division brackets the quotient by bisection,
// one such multiplication per quotient bit.
func (l Limits) check(op Kind, x, y *bigint.Int) error {
	if l.MaxBits <= 0 && l.MaxWork == 0 {
		return nil
	}
	xb, yb := uint64(x.BitLen()), uint64(y.BitLen())
	var size, work uint64
	switch op {
	case Plus, Minus, Amp, Pipe, Caret:
		size = max(xb, yb) + 1
	case Star:
		size = xb + yb
		work = satMul(min(xb, yb), words(xb+yb))
	case Slash, Percent:
		if xb >= yb {
			q := xb - yb + 1
			work = satMul(satMul(q, min(q, yb)), words(xb))
		}
	case Shl:
		k, ok := y.Uint64()
		switch {
		case xb == 0 || y.Sign() < 0 || !ok:
			// LshBy rejects these or they cost nothing.
		case k > math.MaxUint64-xb:
			size = math.MaxUint64
		default:
			size = xb + k
		}
	}
	if l.MaxBits > 0 && size > uint64(l.MaxBits) {
		if size == math.MaxUint64 {
			return fmt.Errorf("%w: %s result exceeds %d bits", ErrLimitExceeded, op, l.MaxBits)
		}
		return fmt.Errorf("%w: %s result needs %d bits, limit is %d", ErrLimitExceeded, op, size, l.MaxBits)
	}
	if l.MaxWork > 0 && work > l.MaxWork {
		return fmt.Errorf("%w: %s needs about %d word operations, limit is %d", ErrLimitExceeded, op, work, l.MaxWork)
	}
	return nil
}

func words(nbits uint64) uint64 {
	return max(1, (nbits+bigint.WordBits-1)/bigint.WordBits)
}

// satMul returns a*b, saturating at math.MaxUint64.
func satMul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}
