package bigint

import "fmt"

// MustAdd is like [Add] but panics if computing error.
func MustAdd(x, y *Int) *Int {
	z, err := Add(x, y)
	if err != nil {
		panic(fmt.Sprintf("MustAdd(%v, %v) failed: %v", x, y, err))
	}
	return z
}

// MustSub is like [Sub] but panics if computing error.
func MustSub(x, y *Int) *Int {
	z, err := Sub(x, y)
	if err != nil {
		panic(fmt.Sprintf("MustSub(%v, %v) failed: %v", x, y, err))
	}
	return z
}

// MustMul is like [Mul] but panics if computing error.
func MustMul(x, y *Int) *Int {
	z, err := Mul(x, y)
	if err != nil {
		panic(fmt.Sprintf("MustMul(%v, %v) failed: %v", x, y, err))
	}
	return z
}

// MustQuo is like [Quo] but panics if computing error.
func MustQuo(x, y *Int) *Int {
	z, err := Quo(x, y)
	if err != nil {
		panic(fmt.Sprintf("MustQuo(%v, %v) failed: %v", x, y, err))
	}
	return z
}

// MustRem is like [Rem] but panics if computing error.
func MustRem(x, y *Int) *Int {
	z, err := Rem(x, y)
	if err != nil {
		panic(fmt.Sprintf("MustRem(%v, %v) failed: %v", x, y, err))
	}
	return z
}

// MustLsh is like [Lsh] but panics if computing error.
func MustLsh(x *Int, k uint) *Int {
	z, err := Lsh(x, k)
	if err != nil {
		panic(fmt.Sprintf("MustLsh(%v, %d) failed: %v", x, k, err))
	}
	return z
}

// MustParse is like [Parse] but panics if the string cannot be parsed.
func MustParse(s string) *Int {
	z, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("MustParse(%q) failed: %v", s, err))
	}
	return z
}
