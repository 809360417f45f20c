// This file loads the TOML configuration file.

package config

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// fileConfig mirrors the layout of a bigcalc.toml file:
//
//	timeout = "30s"
//	verbose = true
//
//	[bigint]
//	max_words = 4096
//	alloc_policy = "propagate"
//	native_operands = true
//	fail_fast = false
//
//	[server]
//	addr = ":8080"
//
//	[repl]
//	session = "~/.bigcalc_session"
//
//	[selftest]
//	iterations = 5000
//	workers = 4
//	seed = 42
//	max_bits = 512
//	oracle = "big"
type fileConfig struct {
	Timeout string `toml:"timeout"`
	Verbose bool   `toml:"verbose"`
	NoColor bool   `toml:"no_color"`
	Quiet   bool   `toml:"quiet"`

	BigInt struct {
		MaxWords       int    `toml:"max_words"`
		AllocPolicy    string `toml:"alloc_policy"`
		NativeOperands bool   `toml:"native_operands"`
		FailFast       bool   `toml:"fail_fast"`
	} `toml:"bigint"`

	Server struct {
		Addr string `toml:"addr"`
	} `toml:"server"`

	REPL struct {
		Session string `toml:"session"`
	} `toml:"repl"`

	SelfTest struct {
		Iterations int    `toml:"iterations"`
		Workers    int    `toml:"workers"`
		Seed       uint64 `toml:"seed"`
		MaxBits    int    `toml:"max_bits"`
		Oracle     string `toml:"oracle"`
	} `toml:"selftest"`
}

// fileOverride binds one TOML key to the flag(s) that take precedence over it.
type fileOverride struct {
	key   []string
	flags []string
	apply func(*AppConfig, *fileConfig) error
}

var fileOverrides = []fileOverride{
	{[]string{"timeout"}, []string{"timeout"}, func(c *AppConfig, f *fileConfig) error {
		d, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return apperrors.NewConfigError("invalid timeout %q: %v", f.Timeout, err)
		}
		c.Timeout = d
		return nil
	}},
	{[]string{"verbose"}, []string{"verbose", "v"}, func(c *AppConfig, f *fileConfig) error {
		c.Verbose = f.Verbose
		return nil
	}},
	{[]string{"no_color"}, []string{"no-color"}, func(c *AppConfig, f *fileConfig) error {
		c.NoColor = f.NoColor
		return nil
	}},
	{[]string{"quiet"}, []string{"quiet", "q"}, func(c *AppConfig, f *fileConfig) error {
		c.Quiet = f.Quiet
		return nil
	}},
	{[]string{"bigint", "max_words"}, []string{"max-words"}, func(c *AppConfig, f *fileConfig) error {
		c.MaxWords = f.BigInt.MaxWords
		return nil
	}},
	{[]string{"bigint", "alloc_policy"}, []string{"alloc-policy"}, func(c *AppConfig, f *fileConfig) error {
		c.AllocPolicy = f.BigInt.AllocPolicy
		return nil
	}},
	{[]string{"bigint", "native_operands"}, []string{"native-operands"}, func(c *AppConfig, f *fileConfig) error {
		c.NativeOperands = f.BigInt.NativeOperands
		return nil
	}},
	{[]string{"bigint", "fail_fast"}, []string{"fail-fast"}, func(c *AppConfig, f *fileConfig) error {
		c.FailFast = f.BigInt.FailFast
		return nil
	}},
	{[]string{"server", "addr"}, []string{"addr"}, func(c *AppConfig, f *fileConfig) error {
		c.Addr = f.Server.Addr
		return nil
	}},
	{[]string{"repl", "session"}, []string{"session"}, func(c *AppConfig, f *fileConfig) error {
		c.Session = f.REPL.Session
		return nil
	}},
	{[]string{"selftest", "iterations"}, []string{"iterations"}, func(c *AppConfig, f *fileConfig) error {
		c.SelfTest.Iterations = f.SelfTest.Iterations
		return nil
	}},
	{[]string{"selftest", "workers"}, []string{"workers"}, func(c *AppConfig, f *fileConfig) error {
		c.SelfTest.Workers = f.SelfTest.Workers
		return nil
	}},
	{[]string{"selftest", "seed"}, []string{"seed"}, func(c *AppConfig, f *fileConfig) error {
		c.SelfTest.Seed = f.SelfTest.Seed
		return nil
	}},
	{[]string{"selftest", "max_bits"}, []string{"max-bits"}, func(c *AppConfig, f *fileConfig) error {
		c.SelfTest.MaxBits = f.SelfTest.MaxBits
		return nil
	}},
	{[]string{"selftest", "oracle"}, []string{"oracle"}, func(c *AppConfig, f *fileConfig) error {
		c.SelfTest.Oracle = f.SelfTest.Oracle
		return nil
	}},
}

// applyFile decodes the TOML file at path and applies every key it defines,
// unless the corresponding flag was given explicitly. Unknown keys are
// rejected so that typos do not pass silently.
func applyFile(cfg *AppConfig, fs *pflag.FlagSet, path string) error {
	var fc fileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return apperrors.NewConfigError("%s: failed to parse TOML: %v", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return apperrors.NewConfigError("%s: unknown key %q", path, undecoded[0].String())
	}
	for _, o := range fileOverrides {
		if !meta.IsDefined(o.key...) || isFlagSetAny(fs, o.flags...) {
			continue
		}
		if err := o.apply(cfg, &fc); err != nil {
			return apperrors.WrapError(err, "%s", path)
		}
	}
	return nil
}
