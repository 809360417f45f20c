package config

import "runtime"

// Default resolution chain (highest priority first):
//   1. CLI flags (--workers, --max-bits)
//   2. Environment variables (BIGCALC_WORKERS, BIGCALC_MAX_BITS)
//   3. Configuration file ([selftest] workers, max_bits)
//   4. Hardware estimation (this file)

// ApplyAdaptiveDefaults fills the settings left at zero with values derived
// from the host. Explicit values are preserved.
func ApplyAdaptiveDefaults(cfg AppConfig) AppConfig {
	if cfg.SelfTest.Workers == 0 {
		cfg.SelfTest.Workers = EstimateWorkers()
	}
	if cfg.SelfTest.MaxBits == 0 {
		cfg.SelfTest.MaxBits = EstimateMaxBits()
	}
	return cfg
}

// EstimateWorkers returns the number of self-test workers to run when none
// is configured.
func EstimateWorkers() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU <= 2:
		return 1 // Leave the remaining core to the scheduler
	case numCPU <= 8:
		return numCPU - 1
	default:
		return 8 // Operands are small; more workers only contend on the pool
	}
}

// EstimateMaxBits returns the default operand size of the self-test. The
// quadratic multiply and divide make cost grow with the square of the word
// count, so the bound is expressed in words.
func EstimateMaxBits() int {
	wordSize := 32 << (^uint(0) >> 63)

	if wordSize == 64 {
		return 8 * 64 // 8 words
	}
	return 12 * 32 // 12 words on 32-bit
}
