package bigint

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// AllocMode selects how a failed buffer allocation is surfaced.
type AllocMode int

const (
	// AllocPropagate returns an *AllocError from the operator that failed.
	AllocPropagate AllocMode = iota
	// AllocFatal panics with the *AllocError.
	AllocFatal
)

// String returns the configuration name of the mode.
func (m AllocMode) String() string {
	switch m {
	case AllocPropagate:
		return "propagate"
	case AllocFatal:
		return "fatal"
	default:
		return fmt.Sprintf("AllocMode(%d)", int(m))
	}
}

// ParseAllocMode maps a configuration name onto an AllocMode.
func ParseAllocMode(s string) (AllocMode, error) {
	switch s {
	case "propagate", "":
		return AllocPropagate, nil
	case "fatal":
		return AllocFatal, nil
	}
	return AllocPropagate, fmt.Errorf("bigint: unknown allocation mode %q", s)
}

// Policy holds the process-wide toggles of the package.
type Policy struct {
	// OnAllocFailure selects between returning and panicking on allocation
	// failure.
	OnAllocFailure AllocMode
	// NativeOperands enables AddNative, SubNative, MulNative, QuoNative and
	// RemNative. Comparisons against native integers are always available.
	NativeOperands bool
	// FailFastConstruction makes the constructors that can fail (Parse and
	// UnmarshalText) panic instead of returning an error.
	FailFastConstruction bool
	// MaxWords bounds the length of any single magnitude buffer. Zero means
	// unbounded.
	MaxWords int
}

// DefaultPolicy returns the policy in effect until Configure is called.
func DefaultPolicy() Policy {
	return Policy{
		OnAllocFailure: AllocPropagate,
		NativeOperands: true,
	}
}

// minMaxWords is the smallest usable word limit: any native integer must fit.
const minMaxWords = 64 / _W

var (
	policyMu     sync.Mutex
	policyLocked bool
	activePolicy atomic.Pointer[Policy]
)

func init() {
	p := DefaultPolicy()
	activePolicy.Store(&p)
}

// Configure installs p as the process-wide policy. It may be called once;
// later calls return ErrPolicyLocked and leave the active policy unchanged.
func Configure(p Policy) error {
	if p.MaxWords < 0 || (p.MaxWords > 0 && p.MaxWords < minMaxWords) {
		return fmt.Errorf("bigint: word limit %d must be 0 or at least %d", p.MaxWords, minMaxWords)
	}
	if p.OnAllocFailure != AllocPropagate && p.OnAllocFailure != AllocFatal {
		return fmt.Errorf("bigint: invalid allocation mode %d", int(p.OnAllocFailure))
	}
	policyMu.Lock()
	defer policyMu.Unlock()
	if policyLocked {
		return ErrPolicyLocked
	}
	activePolicy.Store(&p)
	policyLocked = true
	return nil
}

// ActivePolicy returns a copy of the policy currently in effect.
func ActivePolicy() Policy {
	return *activePolicy.Load()
}

func policy() *Policy {
	return activePolicy.Load()
}

// allocFailed applies the allocation policy to err.
func allocFailed(err *AllocError) error {
	if policy().OnAllocFailure == AllocFatal {
		panic(err)
	}
	return err
}

// constructFailed applies the construction policy to err.
func constructFailed(err error) error {
	if policy().FailFastConstruction {
		panic(err)
	}
	return err
}
