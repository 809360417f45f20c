package apperrors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agbru/bigcalc/bigint"
)

// Application exit codes signal the outcome of a bigcalc command to the OS.
const (
	ExitSuccess       = 0   // Successful execution.
	ExitErrorGeneric  = 1   // Unclassified failure.
	ExitErrorTimeout  = 2   // The command exceeded --timeout.
	ExitErrorMismatch = 3   // The self-test found a disagreement with the oracle.
	ExitErrorConfig   = 4   // Invalid flags, environment or configuration file.
	ExitErrorEval     = 5   // An expression failed to parse or evaluate.
	ExitErrorCanceled = 130 // Interrupted (e.g. SIGINT).
)

// ConfigError represents a user configuration error, such as an invalid flag
// value or a malformed configuration file.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A ConfigError holding the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// EvalError reports that an expression could not be evaluated. It keeps the
// source text and the underlying cause, which is typically a syntax error or
// one of the bigint sentinel errors.
type EvalError struct {
	// Expr is the expression text as submitted.
	Expr string
	// Cause is the underlying error.
	Cause error
}

// Error returns the cause prefixed with the offending expression.
func (e EvalError) Error() string {
	return fmt.Sprintf("evaluating %q: %v", e.Expr, e.Cause)
}

// Unwrap returns the cause, so errors.Is(err, bigint.ErrDivisionByZero)
// works through an EvalError.
func (e EvalError) Unwrap() error { return e.Cause }

// TimeoutError represents an operation that exceeded its time budget.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was abandoned.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// MemoryError reports that a big integer could not grow its buffer, either
// because the configured word limit was reached or because the runtime
// refused the allocation.
type MemoryError struct {
	// RequestedWords is the buffer length the operation needed.
	RequestedWords int
	// LimitWords is the configured limit, 0 when unbounded.
	LimitWords int
	// Cause is the originating *bigint.AllocError.
	Cause error
}

// Error returns a formatted message describing the memory error.
func (e MemoryError) Error() string {
	if e.LimitWords > 0 {
		return fmt.Sprintf("memory error: requested %d words (limit: %d words, %d bytes)",
			e.RequestedWords, e.LimitWords, e.LimitWords*bigint.WordBits/8)
	}
	return fmt.Sprintf("memory error: requested %d words: %v", e.RequestedWords, e.Cause)
}

// Unwrap returns the originating allocation error.
func (e MemoryError) Unwrap() error { return e.Cause }

// NewMemoryError converts a *bigint.AllocError found in err's chain into a
// MemoryError. It returns nil when err carries no allocation failure.
//
// Parameters:
//   - err: The error to inspect.
//
// Returns:
//   - error: A MemoryError, or nil.
func NewMemoryError(err error) error {
	var ae *bigint.AllocError
	if !errors.As(err, &ae) {
		return nil
	}
	return MemoryError{RequestedWords: ae.Requested, LimitWords: ae.Limit, Cause: ae}
}

// MismatchError reports that the bigint core and a reference oracle
// disagreed on the result of an operation.
type MismatchError struct {
	// Oracle names the reference implementation.
	Oracle string
	// Op is the operator symbol, e.g. "*".
	Op string
	// Operands are the decimal renderings of the inputs.
	Operands []string
	// Got is the core's result and Want the oracle's.
	Got, Want string
}

// Error returns a formatted message describing the mismatch.
func (e MismatchError) Error() string {
	return fmt.Sprintf("result mismatch for %s (%s): got %s, %s says %s",
		e.Op, strings.Join(e.Operands, ", "), e.Got, e.Oracle, e.Want)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor classifies err into one of the Exit* codes. Configuration
// errors take precedence, followed by timeouts, cancellation, oracle
// mismatches and evaluation failures.
//
// Parameters:
//   - err: The error returned by a command, possibly wrapped.
//
// Returns:
//   - int: The process exit code.
func ExitCodeFor(err error) int {
	var (
		cfgErr      ConfigError
		timeoutErr  TimeoutError
		mismatchErr MismatchError
		evalErr     EvalError
		memErr      MemoryError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &cfgErr):
		return ExitErrorConfig
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &mismatchErr):
		return ExitErrorMismatch
	case errors.As(err, &evalErr), errors.As(err, &memErr):
		return ExitErrorEval
	default:
		return ExitErrorGeneric
	}
}
