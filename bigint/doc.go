// Package bigint implements an arbitrary-precision signed integer, Int.
//
// An Int stores its magnitude as a growable slice of machine words (least
// significant word first) next to an explicit sign flag. The representation is
// sign-magnitude, not two's complement, which has two visible consequences:
//
//   - the bitwise operators (And, Or, Xor, Not) are only defined for
//     non-negative operands and report ErrNegativeBitwiseOperand otherwise;
//   - Rsh of a negative value shifts the magnitude, so it truncates toward
//     zero like Quo by a power of two.
//
// Operators come in two forms. Compound-assignment methods (AddAssign,
// MulAssign, LshAssign, ...) mutate the receiver in place and reuse its buffer
// where possible. Package-level functions (Add, Mul, Lsh, ...) leave their
// operands untouched and return a fresh value.
//
// Multiplication is binary shift-and-add and division is an exponential
// bracket followed by a binary search over the quotient. Both are quadratic or
// worse in the operand size; the package favours simple, auditable algorithms
// over asymptotic speed.
//
// Allocation behaviour is governed by a process-wide Policy that is chosen
// once with Configure. Under the default policy a failed allocation surfaces as
// an *AllocError returned from the operator that needed the memory.
//
// An Int is not safe for concurrent use. Distinct values never share storage,
// so different goroutines may work on different values freely.
package bigint
