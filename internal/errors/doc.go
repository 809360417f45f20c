// Package apperrors defines the structured error types of the bigcalc
// application and maps them onto process exit codes.
//
// Errors raised by the bigint core (division by zero, unsupported shift,
// allocation failure) are sentinel values or typed errors; this package
// wraps them with application context while keeping them visible to
// errors.Is and errors.As.
package apperrors
