package bigint

import (
	"fmt"
	"math"
	"math/bits"
	"slices"

	"fortio.org/safecast"
)

// Bool reports whether x != 0.
func (x *Int) Bool() bool {
	return !x.isZeroMag()
}

// Word returns the least significant word of the magnitude.
//
// The conversion is narrowing: higher words and the sign are silently
// discarded. Callers that need to know whether the value fits use Uint64,
// Int64 or ToNative instead.
func (x *Int) Word() Word {
	return x.word(0)
}

// Uint64 returns x as a uint64 and reports whether the conversion was exact.
func (x *Int) Uint64() (uint64, bool) {
	if x.neg && !x.isZeroMag() {
		return 0, false
	}
	return x.magnitude64()
}

// magnitude64 returns |x| as a uint64 and reports whether it fits.
func (x *Int) magnitude64() (uint64, bool) {
	if x.BitLen() > 64 {
		return 0, false
	}
	m := uint64(x.word(0))
	if _W == 32 {
		m |= uint64(x.word(1)) << 32
	}
	return m, true
}

// Int64 returns x as an int64 and reports whether the conversion was exact.
func (x *Int) Int64() (int64, bool) {
	m, ok := x.magnitude64()
	if !ok {
		return 0, false
	}
	if x.neg {
		if m == 1<<63 {
			return math.MinInt64, true
		}
		v, err := safecast.Conv[int64](m)
		if err != nil {
			return 0, false
		}
		return -v, true
	}
	v, err := safecast.Conv[int64](m)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ToNative converts x to the native integer type T. It returns an error
// wrapping ErrOutOfRange if x does not fit.
func ToNative[T Integer](x *Int) (T, error) {
	if x.neg && !x.isZeroMag() {
		v, ok := x.Int64()
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrOutOfRange, x)
		}
		t, err := safecast.Conv[T](v)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrOutOfRange, err)
		}
		return t, nil
	}
	v, ok := x.magnitude64()
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrOutOfRange, x)
	}
	t, err := safecast.Conv[T](v)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrOutOfRange, err)
	}
	return t, nil
}

// divWord divides |z| by the single word d in place and returns the
// remainder.
func (z *Int) divWord(d Word) Word {
	var r uint
	for i := z.digits() - 1; i >= 0; i-- {
		q, rr := bits.Div(r, uint(z.words[i]), uint(d))
		z.words[i], r = Word(q), rr
	}
	return Word(r)
}

// mulAddWord sets |z| = |z|*m + a.
func (z *Int) mulAddWord(m, a Word) error {
	c := uint(a)
	d := z.digits()
	for i := 0; i < d; i++ {
		hi, lo := bits.Mul(uint(z.words[i]), uint(m))
		lo, cc := bits.Add(lo, c, 0)
		z.words[i], c = Word(lo), hi+cc
	}
	if c != 0 {
		if err := z.ensureCapacity(d + 1); err != nil {
			return err
		}
		z.words[d] = Word(c)
	}
	return nil
}

// String renders x in decimal. The magnitude is divided by ten repeatedly,
// collecting the remainders as digits, and a leading '-' is emitted for
// negative values.
func (x *Int) String() string {
	if x == nil {
		return "<nil>"
	}
	if x.isZeroMag() {
		return "0"
	}
	m := x.Clone()
	digits := make([]byte, 0, x.BitLen()*3/10+2)
	for m.Bool() {
		digits = append(digits, '0'+byte(m.divWord(10)))
	}
	if x.neg {
		digits = append(digits, '-')
	}
	slices.Reverse(digits)
	return string(digits)
}

// Format implements fmt.Formatter for the verbs %d, %s and %v. The '+' flag
// forces a sign on non-negative values.
func (x *Int) Format(s fmt.State, verb rune) {
	switch verb {
	case 'd', 's', 'v':
	default:
		fmt.Fprintf(s, "%%!%c(bigint.Int=%s)", verb, x.String())
		return
	}
	str := x.String()
	if s.Flag('+') && x != nil && !x.neg {
		str = "+" + str
	}
	if w, ok := s.Width(); ok && len(str) < w {
		pad := make([]byte, w-len(str))
		for i := range pad {
			pad[i] = ' '
		}
		if s.Flag('-') {
			str += string(pad)
		} else {
			str = string(pad) + str
		}
	}
	fmt.Fprint(s, str)
}

// SetString sets z to the decimal value of s and returns z. An optional
// leading '+' or '-' is accepted; any other non-digit is a *SyntaxError and
// leaves z unchanged.
func (z *Int) SetString(s string) (*Int, error) {
	i, neg := 0, false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		i = 1
	}
	if i == len(s) {
		return z, &SyntaxError{Input: s, Offset: i}
	}
	var v Int
	if err := v.ensureCapacity(1); err != nil {
		return z, err
	}
	for j := i; j < len(s); j++ {
		c := s[j]
		if c < '0' || c > '9' {
			return z, &SyntaxError{Input: s, Offset: j}
		}
		if err := v.mulAddWord(10, Word(c-'0')); err != nil {
			return z, err
		}
	}
	v.neg = neg
	z.install(&v)
	return z, nil
}

// Parse returns the Int denoted by the decimal string s. Under a policy with
// FailFastConstruction it panics instead of returning an error.
func Parse(s string) (*Int, error) {
	z, err := new(Int).SetString(s)
	if err != nil {
		return nil, constructFailed(err)
	}
	return z, nil
}

// MarshalText implements encoding.TextMarshaler using the decimal form.
func (x *Int) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using the decimal form.
func (z *Int) UnmarshalText(text []byte) error {
	if _, err := z.SetString(string(text)); err != nil {
		return constructFailed(err)
	}
	return nil
}
