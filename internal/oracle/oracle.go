//go:generate mockgen -source=oracle.go -destination=mocks/mock_oracle.go -package=mocks

// Package oracle provides reference arithmetic used to cross-check the
// bigint package. Operands and results travel as decimal strings so an
// oracle shares no representation with the code under test.
package oracle

import (
	"errors"
	"fmt"
)

// Op names a binary operation.
type Op string

// Operations understood by every oracle. Shift amounts are the decimal
// value of the second operand.
const (
	OpAdd Op = "+"
	OpSub Op = "-"
	OpMul Op = "*"
	OpQuo Op = "/"
	OpRem Op = "%"
	OpLsh Op = "<<"
	OpRsh Op = ">>"
	OpAnd Op = "&"
	OpOr  Op = "|"
	OpXor Op = "^"
	OpCmp Op = "cmp"
)

// Ops lists every operation in a stable order.
var Ops = []Op{OpAdd, OpSub, OpMul, OpQuo, OpRem, OpLsh, OpRsh, OpAnd, OpOr, OpXor, OpCmp}

var (
	// ErrUndefined is returned for a zero divisor.
	ErrUndefined = errors.New("oracle: undefined result")
	// ErrNegativeOperand is returned for bitwise operations on negative
	// values and for negative shift amounts.
	ErrNegativeOperand = errors.New("oracle: negative operand")
	// ErrUnknownOp is returned for an Op the oracle does not implement.
	ErrUnknownOp = errors.New("oracle: unknown operation")
	// ErrUnavailable is returned by ByName for an oracle not compiled in.
	ErrUnavailable = errors.New("oracle: not available in this build")
)

// Oracle computes reference results.
//
// Division truncates toward zero and the remainder takes the sign of the
// dividend. A right shift of a negative value shifts its magnitude. OpCmp
// yields "-1", "0" or "1".
type Oracle interface {
	// Name identifies the oracle in logs and mismatch reports.
	Name() string
	// Compute applies op to the decimal operands a and b.
	Compute(op Op, a, b string) (string, error)
}

// ByName returns the oracle registered under name ("big" or "gmp").
func ByName(name string) (Oracle, error) {
	switch name {
	case "", "big":
		return Big{}, nil
	case "gmp":
		return newGMP()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnavailable, name)
	}
}
