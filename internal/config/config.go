// Package config holds the bigcalc application configuration and resolves
// it from, in increasing priority, built-in defaults, a TOML file,
// BIGCALC_* environment variables and command-line flags.
package config

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/agbru/bigcalc/bigint"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// EnvPrefix prefixes every environment variable read by bigcalc.
const EnvPrefix = "BIGCALC_"

// Oracle names accepted by --oracle.
const (
	OracleBig = "big"
	OracleGMP = "gmp"
)

// SelfTestConfig holds the settings of the randomized cross-check.
type SelfTestConfig struct {
	// Iterations is the number of random cases per operator.
	Iterations int
	// Workers is the number of concurrent workers; 0 selects one per CPU.
	Workers int
	// Seed makes a run reproducible; 0 picks a random seed.
	Seed uint64
	// MaxBits bounds the bit length of generated operands; 0 selects a
	// default based on the word size.
	MaxBits int
	// Oracle selects the reference implementation.
	Oracle string
}

// AppConfig aggregates every setting of the application.
type AppConfig struct {
	// ConfigFile is the TOML file to load, if any.
	ConfigFile string
	// Timeout bounds a single command; 0 disables it.
	Timeout time.Duration
	// MaxWords caps the length of any big integer; 0 means unbounded.
	MaxWords int
	// AllocPolicy is "propagate" or "fatal".
	AllocPolicy string
	// NativeOperands enables the mixed native-operand helpers.
	NativeOperands bool
	// FailFast makes malformed literals panic instead of returning an error.
	FailFast bool
	Verbose  bool
	NoColor  bool
	Quiet    bool

	// Dump prints the internal representation of eval results.
	Dump bool
	// Addr is the listen address of the HTTP server.
	Addr string
	// Session is the file REPL variables are loaded from and saved to.
	Session string

	SelfTest SelfTestConfig
}

// ServeMaxWords caps the length of a big integer in the HTTP server when
// MaxWords is 0. The server never runs with unbounded integers.
const ServeMaxWords = 1 << 15

// Default returns the built-in configuration.
func Default() AppConfig {
	return AppConfig{
		Timeout:        time.Minute,
		AllocPolicy:    bigint.AllocPropagate.String(),
		NativeOperands: true,
		Addr:           ":8080",
		SelfTest: SelfTestConfig{
			Iterations: 1000,
			Oracle:     OracleBig,
		},
	}
}

// BindPersistentFlags registers the flags shared by every command. The flag
// defaults are taken from cfg.
func BindPersistentFlags(fs *pflag.FlagSet, cfg *AppConfig) {
	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "path to a TOML configuration file")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "maximum duration of a command (0 disables)")
	fs.IntVar(&cfg.MaxWords, "max-words", cfg.MaxWords, "maximum length of a big integer in words (0 = unbounded)")
	fs.StringVar(&cfg.AllocPolicy, "alloc-policy", cfg.AllocPolicy, "allocation failure policy: propagate or fatal")
	fs.BoolVar(&cfg.NativeOperands, "native-operands", cfg.NativeOperands, "allow native integer operands in compound assignment")
	fs.BoolVar(&cfg.FailFast, "fail-fast", cfg.FailFast, "panic on malformed literals instead of reporting an error")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "enable debug logging")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable coloured output")
	fs.BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, "print results only")
}

// Resolve completes cfg, whose flag-backed fields already hold the parsed
// command line, with the configuration file and environment for every
// setting whose flag was not given explicitly. It then fills adaptive
// defaults and validates the result.
func Resolve(fs *pflag.FlagSet, cfg *AppConfig) error {
	path := cfg.ConfigFile
	if path == "" {
		path = getEnvString("CONFIG", "")
	}
	if path != "" {
		if err := applyFile(cfg, fs, path); err != nil {
			return err
		}
	}
	applyEnvOverrides(cfg, fs)
	*cfg = ApplyAdaptiveDefaults(*cfg)
	return cfg.Validate()
}

// Validate checks the configuration for values no command can run with.
func (c AppConfig) Validate() error {
	if c.Timeout < 0 {
		return apperrors.NewConfigError("invalid timeout %s: must not be negative", c.Timeout)
	}
	if minWords := 64 / bigint.WordBits; c.MaxWords < 0 || (c.MaxWords > 0 && c.MaxWords < minWords) {
		return apperrors.NewConfigError("invalid --max-words %d: must be 0 or at least %d", c.MaxWords, minWords)
	}
	if _, err := bigint.ParseAllocMode(c.AllocPolicy); err != nil {
		return apperrors.NewConfigError("invalid --alloc-policy %q: want propagate or fatal", c.AllocPolicy)
	}
	if c.SelfTest.Iterations <= 0 {
		return apperrors.NewConfigError("invalid --iterations %d: must be positive", c.SelfTest.Iterations)
	}
	if c.SelfTest.Workers < 0 {
		return apperrors.NewConfigError("invalid --workers %d: must not be negative", c.SelfTest.Workers)
	}
	if c.SelfTest.MaxBits < 0 {
		return apperrors.NewConfigError("invalid --max-bits %d: must not be negative", c.SelfTest.MaxBits)
	}
	switch c.SelfTest.Oracle {
	case OracleBig, OracleGMP:
	default:
		return apperrors.NewConfigError("unknown oracle %q: want %s or %s", c.SelfTest.Oracle, OracleBig, OracleGMP)
	}
	return nil
}

// ForCommand returns c adjusted for the named command. serve replaces an
// unbounded MaxWords with ServeMaxWords.
func (c AppConfig) ForCommand(name string) AppConfig {
	if name == "serve" && c.MaxWords == 0 {
		c.MaxWords = ServeMaxWords
	}
	return c
}

// Policy maps the configuration onto the process-wide bigint policy.
func (c AppConfig) Policy() bigint.Policy {
	mode, _ := bigint.ParseAllocMode(c.AllocPolicy)
	return bigint.Policy{
		OnAllocFailure:       mode,
		NativeOperands:       c.NativeOperands,
		FailFastConstruction: c.FailFast,
		MaxWords:             c.MaxWords,
	}
}
