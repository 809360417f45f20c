package bigint

// lsh shifts |z| left by k bits. Whole words move first, then the remaining
// k % W bits are shifted word by word with the bits pushed out of one word
// carried into the next. The buffer grows only when a carry survives the
// top word.
func (z *Int) lsh(k uint) error {
	d := z.digits()
	if d == 0 || k == 0 {
		return nil
	}
	ws, s := int(k/_W), k%_W
	if ws > 0 {
		if err := z.ensureCapacity(d + ws); err != nil {
			return err
		}
		copy(z.words[ws:d+ws], z.words[:d])
		clear(z.words[:ws])
		d += ws
	}
	if s == 0 {
		return nil
	}
	var carry Word
	for i := ws; i < d; i++ {
		w := z.words[i]
		z.words[i] = w<<s | carry
		carry = w >> (_W - s)
	}
	if carry != 0 {
		// words[d] is zero if it exists already.
		if err := z.ensureCapacity(d + 1); err != nil {
			return err
		}
		z.words[d] = carry
	}
	return nil
}

// rsh shifts |z| right by k bits, carrying the low bits of each word into the
// word below. It never allocates.
func (z *Int) rsh(k uint) {
	d := z.digits()
	if d == 0 || k == 0 {
		return
	}
	ws, s := k/_W, k%_W
	if ws >= uint(d) {
		z.truncate(0)
		return
	}
	if ws > 0 {
		n := int(ws)
		copy(z.words[:d-n], z.words[n:d])
		clear(z.words[d-n : d])
		d -= n
	}
	if s == 0 {
		return
	}
	for i := 0; i+1 < d; i++ {
		z.words[i] = z.words[i]>>s | z.words[i+1]<<(_W-s)
	}
	z.words[d-1] >>= s
}

// LshAssign sets z = z << k, that is z * 2^k. The sign is kept.
func (z *Int) LshAssign(k uint) error {
	return z.lsh(k)
}

// RshAssign sets z = z >> k. The magnitude is shifted, so negative values
// truncate toward zero.
func (z *Int) RshAssign(k uint) {
	z.rsh(k)
	z.norm()
}

// shiftAmount validates a shift amount given as an Int.
func shiftAmount(n *Int) (uint, error) {
	if n.neg || n.digits() > 1 {
		return 0, ErrUnsupportedShift
	}
	return uint(n.word(0)), nil
}

// LshBy sets z = z << n. It returns ErrUnsupportedShift if n is negative or
// does not fit in one Word.
func (z *Int) LshBy(n *Int) error {
	k, err := shiftAmount(n)
	if err != nil {
		return err
	}
	return z.LshAssign(k)
}

// RshBy sets z = z >> n. It returns ErrUnsupportedShift if n is negative.
// An amount too large for one Word shifts every bit out and leaves zero.
func (z *Int) RshBy(n *Int) error {
	if n.neg && !n.isZeroMag() {
		return ErrUnsupportedShift
	}
	if n.digits() > 1 {
		z.truncate(0)
		z.norm()
		return nil
	}
	z.RshAssign(uint(n.word(0)))
	return nil
}

// bitwise applies op word-wise over the longer of the two operands, reading
// missing words of x as zero.
func (z *Int) bitwise(x *Int, op func(a, b Word) Word) error {
	if z.neg || x.neg {
		return ErrNegativeBitwiseOperand
	}
	if err := z.ensureCapacity(x.digits()); err != nil {
		return err
	}
	for i := range z.words {
		z.words[i] = op(z.words[i], x.word(i))
	}
	return nil
}

// AndAssign sets z = z & x. Both operands must be non-negative.
func (z *Int) AndAssign(x *Int) error {
	return z.bitwise(x, func(a, b Word) Word { return a & b })
}

// OrAssign sets z = z | x. Both operands must be non-negative.
func (z *Int) OrAssign(x *Int) error {
	return z.bitwise(x, func(a, b Word) Word { return a | b })
}

// XorAssign sets z = z ^ x. Both operands must be non-negative.
func (z *Int) XorAssign(x *Int) error {
	return z.bitwise(x, func(a, b Word) Word { return a ^ b })
}

// NotAssign complements every stored word of z. The result depends on the
// stored length (at least one word), not only on the value. z must be
// non-negative.
func (z *Int) NotAssign() error {
	if z.neg {
		return ErrNegativeBitwiseOperand
	}
	if err := z.ensureCapacity(1); err != nil {
		return err
	}
	for i := range z.words {
		z.words[i] = ^z.words[i]
	}
	return nil
}

// Lsh returns x << k.
func Lsh(x *Int, k uint) (*Int, error) {
	z := x.Clone()
	return z, z.LshAssign(k)
}

// Rsh returns x >> k.
func Rsh(x *Int, k uint) *Int {
	z := x.Clone()
	z.RshAssign(k)
	return z
}

// And returns x & y.
func And(x, y *Int) (*Int, error) {
	z := x.Clone()
	return z, z.AndAssign(y)
}

// Or returns x | y.
func Or(x, y *Int) (*Int, error) {
	z := x.Clone()
	return z, z.OrAssign(y)
}

// Xor returns x ^ y.
func Xor(x, y *Int) (*Int, error) {
	z := x.Clone()
	return z, z.XorAssign(y)
}

// Not returns ~x over the stored length of x.
func Not(x *Int) (*Int, error) {
	z := x.Clone()
	return z, z.NotAssign()
}
