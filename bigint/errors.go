package bigint

import (
	"errors"
	"fmt"
)

var (
	// ErrDivisionByZero is returned by the division and modulus operators when
	// the divisor is zero.
	ErrDivisionByZero = errors.New("bigint: division by zero")

	// ErrUnsupportedShift is returned when a shift amount given as an Int is
	// negative or does not fit in a single Word.
	ErrUnsupportedShift = errors.New("bigint: unsupported shift amount")

	// ErrNegativeBitwiseOperand is returned by And, Or, Xor and Not when an
	// operand is negative. Bitwise operators act on the stored magnitude and
	// have no two's-complement meaning.
	ErrNegativeBitwiseOperand = errors.New("bigint: bitwise operand must be non-negative")

	// ErrNativeOperandsDisabled is returned by the mixed native-operand
	// helpers when the active Policy has NativeOperands unset.
	ErrNativeOperandsDisabled = errors.New("bigint: native operands disabled by policy")

	// ErrOutOfRange is returned by the checked native conversions when the
	// value does not fit the target type.
	ErrOutOfRange = errors.New("bigint: value out of range")

	// ErrPolicyLocked is returned by Configure once a policy has been chosen.
	ErrPolicyLocked = errors.New("bigint: policy already configured")
)

// AllocError reports that a magnitude buffer could not be grown.
type AllocError struct {
	// Requested is the number of words the operation asked for.
	Requested int
	// Limit is the configured Policy.MaxWords, or 0 when unbounded.
	Limit int
	// Reason carries the runtime's refusal when the failure did not come from
	// the configured limit.
	Reason string
}

func (e *AllocError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("bigint: cannot allocate %d words: %s", e.Requested, e.Reason)
	}
	return fmt.Sprintf("bigint: cannot allocate %d words (limit %d)", e.Requested, e.Limit)
}

// SyntaxError reports a malformed decimal literal.
type SyntaxError struct {
	Input string
	// Offset is the byte offset of the first offending character.
	Offset int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("bigint: invalid decimal %q at offset %d", e.Input, e.Offset)
}
