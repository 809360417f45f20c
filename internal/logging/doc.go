// Package logging provides the logging interface used across bigcalc. It
// abstracts the backend so that the evaluator, server and self-test can log
// structured fields through zerolog in production and through a plain
// *log.Logger in tests or embedded use.
package logging
