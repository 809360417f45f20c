package bigint

import (
	"fmt"
	"math/bits"
)

// Word is one digit of a magnitude. It has the native unsigned width.
type Word uint

// WordBits is the width of a Word in bits.
const WordBits = bits.UintSize

// _W is the internal alias used by the word loops.
const _W = WordBits

// Integer is the set of native integer types accepted by the generic
// constructors and comparisons.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Int is an arbitrary-precision signed integer.
//
// The zero value is a ready-to-use zero. words holds the magnitude, least
// significant word first; len(words) is the allocated length and every word
// above the most significant non-zero word is zero. Lengths only grow during a
// value's lifetime: shrinking results zero-fill the tail instead of freeing it.
//
// Values must not be copied by assignment (x2 := *x1); use Set, Clone or
// Move so that each Int keeps sole ownership of its buffer.
type Int struct {
	words []Word
	neg   bool
}

// intOne is a read-only 1 used by Inc and Dec.
var intOne = &Int{words: []Word{1}}

// ─────────────────────────────────────────────────────────────────────────────
// Representation layer
// ─────────────────────────────────────────────────────────────────────────────

// checkLimit enforces Policy.MaxWords for a buffer of n words.
func checkLimit(n int) error {
	if lim := policy().MaxWords; lim > 0 && n > lim {
		return allocFailed(&AllocError{Requested: n, Limit: lim})
	}
	return nil
}

// allocWords allocates a zeroed buffer of n words with some spare capacity.
// A runtime refusal (length out of range) is converted into an *AllocError.
func allocWords(n int) (w []Word, err error) {
	if err := checkLimit(n); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			w = nil
			err = allocFailed(&AllocError{Requested: n, Limit: policy().MaxWords, Reason: fmt.Sprint(r)})
		}
	}()
	c := n + n/4
	if lim := policy().MaxWords; lim > 0 && c > lim {
		c = lim
	}
	return make([]Word, n, c), nil
}

// ensureCapacity guarantees len(z.words) >= n. Existing low-order words are
// preserved and new high-order words are zero. The new buffer is installed
// only once it is fully populated, so z stays consistent on failure.
func (z *Int) ensureCapacity(n int) error {
	if n <= len(z.words) {
		return nil
	}
	if err := checkLimit(n); err != nil {
		return err
	}
	if n <= cap(z.words) {
		old := len(z.words)
		z.words = z.words[:n]
		clear(z.words[old:])
		return nil
	}
	w, err := allocWords(n)
	if err != nil {
		return err
	}
	copy(w, z.words)
	z.words = w
	return nil
}

// truncate zeroes every word at index >= n. It never releases capacity.
func (z *Int) truncate(n int) {
	if n < len(z.words) {
		clear(z.words[n:])
	}
}

// digits returns the number of significant words of the magnitude.
func (x *Int) digits() int {
	i := len(x.words)
	for i > 0 && x.words[i-1] == 0 {
		i--
	}
	return i
}

func (x *Int) isZeroMag() bool {
	for _, w := range x.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// word returns the i-th magnitude word, treating indices past the buffer as
// zero.
func (x *Int) word(i int) Word {
	if i < len(x.words) {
		return x.words[i]
	}
	return 0
}

// norm makes zero non-negative. Every mutating operator ends with it, so a
// negative zero is never observable.
func (z *Int) norm() *Int {
	if z.neg && z.isZeroMag() {
		z.neg = false
	}
	return z
}

// ─────────────────────────────────────────────────────────────────────────────
// Construction and assignment
// ─────────────────────────────────────────────────────────────────────────────

// nativeMagnitude splits v into its absolute value and sign. The most
// negative value of a signed type is handled without overflow.
func nativeMagnitude[T Integer](v T) (mag uint64, neg bool) {
	if v < 0 {
		return uint64(-(v + 1)) + 1, true
	}
	return uint64(v), false
}

// setUint64Magnitude stores m as the magnitude of z, keeping the sign.
func (z *Int) setUint64Magnitude(m uint64) error {
	n := 1
	if _W == 32 && m>>32 != 0 {
		n = 2
	}
	if err := z.ensureCapacity(n); err != nil {
		return err
	}
	z.truncate(0)
	z.words[0] = Word(m)
	if n == 2 {
		z.words[1] = Word(m >> 32)
	}
	return nil
}

// New returns a new Int holding v. The result always has at least one word.
func New[T Integer](v T) *Int {
	return SetNative(new(Int), v)
}

// NewInt64 returns a new Int holding v.
func NewInt64(v int64) *Int { return New(v) }

// NewUint64 returns a new Int holding v.
func NewUint64(v uint64) *Int { return New(v) }

// SetNative assigns v to z and returns z. The magnitude becomes |v| and the
// sign v < 0.
func SetNative[T Integer](z *Int, v T) *Int {
	mag, neg := nativeMagnitude(v)
	// Configure guarantees MaxWords leaves room for any native value.
	if err := z.setUint64Magnitude(mag); err != nil {
		panic(err)
	}
	z.neg = neg
	return z
}

// SetInt64 sets z to v and returns z.
func (z *Int) SetInt64(v int64) *Int { return SetNative(z, v) }

// SetUint64 sets z to v and returns z.
func (z *Int) SetUint64(v uint64) *Int { return SetNative(z, v) }

// Set copy-assigns x to z: the full stored magnitude and the sign are
// duplicated into z's own buffer. It returns z.
func (z *Int) Set(x *Int) (*Int, error) {
	if z == x {
		return z, nil
	}
	n := len(x.words)
	if err := z.ensureCapacity(n); err != nil {
		return z, err
	}
	copy(z.words, x.words)
	z.truncate(n)
	z.neg = x.neg
	return z, nil
}

// Clone returns a deep copy of x with the same stored length.
func (x *Int) Clone() *Int {
	c := &Int{neg: x.neg}
	if len(x.words) > 0 {
		c.words = make([]Word, len(x.words))
		copy(c.words, x.words)
	}
	return c
}

// Move transfers the buffer and sign of src to z and leaves src empty (zero
// length, no buffer). It returns z.
func (z *Int) Move(src *Int) *Int {
	if z == src {
		return z
	}
	z.words, z.neg = src.words, src.neg
	src.words, src.neg = nil, false
	return z
}

// install replaces the value of z with res, which the caller hands over. When
// res fits in the current buffer it is copied so the length of z never
// shrinks; otherwise z adopts the larger buffer of res.
func (z *Int) install(res *Int) *Int {
	if len(res.words) <= len(z.words) {
		copy(z.words, res.words)
		z.truncate(len(res.words))
		z.neg = res.neg
		return z.norm()
	}
	return z.Move(res).norm()
}

// Len returns the number of allocated words. It is at least the number of
// significant words and may be larger.
func (x *Int) Len() int { return len(x.words) }

// Words returns a copy of the stored magnitude words, least significant
// first.
func (x *Int) Words() []Word {
	w := make([]Word, len(x.words))
	copy(w, x.words)
	return w
}

// Sign returns -1, 0 or +1 depending on the sign of x.
func (x *Int) Sign() int {
	switch {
	case x.isZeroMag():
		return 0
	case x.neg:
		return -1
	default:
		return 1
	}
}

// IsZero reports whether x == 0.
func (x *Int) IsZero() bool { return x.isZeroMag() }

// BitLen returns the length of |x| in bits. The bit length of 0 is 0.
func (x *Int) BitLen() int {
	d := x.digits()
	if d == 0 {
		return 0
	}
	return (d-1)*_W + bits.Len(uint(x.words[d-1]))
}
