package bigint

// addSigned sets z = z + (±|x|), where xneg gives the sign used for x. It
// dispatches on the sign pair onto the magnitude layer.
func (z *Int) addSigned(x *Int, xneg bool) error {
	var err error
	switch {
	case !z.neg && !xneg:
		err = z.magnitudeAdd(x)
	case z.neg && xneg:
		// -(|z| + |x|): the sign of z is already negative.
		err = z.magnitudeAdd(x)
	case !z.neg && xneg:
		z.neg, err = z.magnitudeSub(x)
	default:
		// -|z| + |x| = -(|z| - |x|)
		var under bool
		under, err = z.magnitudeSub(x)
		if err == nil {
			z.neg = !under
		}
	}
	z.norm()
	return err
}

// AddAssign sets z = z + x.
func (z *Int) AddAssign(x *Int) error {
	return z.addSigned(x, x.neg)
}

// SubAssign sets z = z - x, computed as z + (-x).
func (z *Int) SubAssign(x *Int) error {
	return z.addSigned(x, !x.neg)
}

// Inc sets z = z + 1.
func (z *Int) Inc() error {
	return z.AddAssign(intOne)
}

// Dec sets z = z - 1.
func (z *Int) Dec() error {
	return z.SubAssign(intOne)
}

// PostInc increments z and returns a copy of its previous value.
func (z *Int) PostInc() (*Int, error) {
	prev := z.Clone()
	return prev, z.Inc()
}

// PostDec decrements z and returns a copy of its previous value.
func (z *Int) PostDec() (*Int, error) {
	prev := z.Clone()
	return prev, z.Dec()
}

// Negate flips the sign of z. Zero stays non-negative.
func (z *Int) Negate() *Int {
	z.neg = !z.neg
	return z.norm()
}

// MulAssign sets z = z * x.
//
// The product is formed by binary shift-and-add: while the multiplier is
// non-zero, its lowest bit decides whether the current multiplicand is
// accumulated, then the multiplicand is doubled and the multiplier halved.
// The cost grows with the multiplier's bit length times the multiplicand's
// word length.
func (z *Int) MulAssign(x *Int) error {
	neg := z.neg != x.neg
	acc, err := z.mulMagnitude(x)
	if err != nil {
		return err
	}
	acc.neg = neg
	z.install(acc)
	return nil
}

// mulMagnitude returns a fresh Int holding |z| * |x|. The operand with the
// shorter bit length drives the loop as the multiplier.
func (z *Int) mulMagnitude(x *Int) (*Int, error) {
	if x.BitLen() > z.BitLen() {
		z, x = x, z
	}
	multiplicand, err := scratchCopy(z)
	if err != nil {
		return nil, err
	}
	multiplier, err := scratchCopy(x)
	if err != nil {
		release(multiplicand)
		return nil, err
	}
	defer release(multiplicand, multiplier)

	acc := &Int{words: make([]Word, 1, z.digits()+x.digits()+1)}
	for !multiplier.isZeroMag() {
		if multiplier.words[0]&1 == 1 {
			if err := acc.magnitudeAdd(multiplicand); err != nil {
				return nil, err
			}
		}
		if err := multiplicand.lsh(1); err != nil {
			return nil, err
		}
		multiplier.rsh(1)
	}
	return acc, nil
}

// QuoAssign sets z to the quotient z / x truncated toward zero. It returns
// ErrDivisionByZero if x is zero, leaving z unchanged.
func (z *Int) QuoAssign(x *Int) error {
	if x.isZeroMag() {
		return ErrDivisionByZero
	}
	neg := z.neg != x.neg
	q, err := quoMagnitude(z, x)
	if err != nil {
		return err
	}
	q.neg = neg
	z.install(q)
	return nil
}

// quoMagnitude returns a fresh Int holding floor(|a| / |b|) for b != 0.
//
// The quotient is bracketed by doubling high_q from 1 until |b|*high_q
// exceeds |a|; low_q trails as the previous value of high_q. The bracket
// [low_q, high_q) is then halved until it holds one candidate or a product
// matches |a| exactly.
func quoMagnitude(a, b *Int) (*Int, error) {
	if cmpMagnitude(a, b) < 0 {
		return &Int{words: make([]Word, 1)}, nil
	}

	n := a.digits() + 1
	low, err := scratch(n)
	if err != nil {
		return nil, err
	}
	high, err := scratch(n)
	if err != nil {
		release(low)
		return nil, err
	}
	width, err := scratch(n)
	if err != nil {
		release(low, high)
		return nil, err
	}
	defer release(low, high, width)

	high.words[0] = 1
	for {
		if _, err := low.Set(high); err != nil {
			return nil, err
		}
		if err := high.lsh(1); err != nil {
			return nil, err
		}
		prod, err := b.mulMagnitude(high)
		if err != nil {
			return nil, err
		}
		if cmpMagnitude(prod, a) > 0 {
			break
		}
	}

	for {
		// width = high - low; stop once the bracket holds a single value.
		if _, err := width.Set(high); err != nil {
			return nil, err
		}
		if _, err := width.magnitudeSub(low); err != nil {
			return nil, err
		}
		if cmpMagnitude(width, intOne) <= 0 {
			break
		}
		width.rsh(1)
		if err := width.magnitudeAdd(low); err != nil {
			return nil, err
		}
		mid := width
		prod, err := b.mulMagnitude(mid)
		if err != nil {
			return nil, err
		}
		switch cmpMagnitude(prod, a) {
		case -1:
			_, err = low.Set(mid)
		case 1:
			_, err = high.Set(mid)
		default:
			return mid.Clone(), nil
		}
		if err != nil {
			return nil, err
		}
	}
	return low.Clone(), nil
}

// RemAssign sets z to the remainder z - (z/x)*x. The remainder takes the
// sign of the dividend. It returns ErrDivisionByZero if x is zero, leaving z
// unchanged.
func (z *Int) RemAssign(x *Int) error {
	if x.isZeroMag() {
		return ErrDivisionByZero
	}
	p := z.Clone()
	if err := p.QuoAssign(x); err != nil {
		return err
	}
	if err := p.MulAssign(x); err != nil {
		return err
	}
	return z.SubAssign(p)
}

// QuoRem sets z to the quotient and returns the remainder of z / x.
func (z *Int) QuoRem(x *Int) (*Int, error) {
	if x.isZeroMag() {
		return nil, ErrDivisionByZero
	}
	if x == z {
		x = x.Clone()
	}
	r := z.Clone()
	if err := z.QuoAssign(x); err != nil {
		return nil, err
	}
	p := z.Clone()
	if err := p.MulAssign(x); err != nil {
		return nil, err
	}
	if err := r.SubAssign(p); err != nil {
		return nil, err
	}
	return r, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Value forms
// ─────────────────────────────────────────────────────────────────────────────

// Add returns x + y. The longer operand is copied and used as the
// accumulator so the shorter one is folded into an already-sized buffer.
func Add(x, y *Int) (*Int, error) {
	if len(y.words) > len(x.words) {
		x, y = y, x
	}
	z := x.Clone()
	return z, z.AddAssign(y)
}

// Sub returns x - y.
func Sub(x, y *Int) (*Int, error) {
	z := x.Clone()
	return z, z.SubAssign(y)
}

// Mul returns x * y.
func Mul(x, y *Int) (*Int, error) {
	z := x.Clone()
	return z, z.MulAssign(y)
}

// Quo returns x / y truncated toward zero.
func Quo(x, y *Int) (*Int, error) {
	z := x.Clone()
	return z, z.QuoAssign(y)
}

// Rem returns x - (x/y)*y.
func Rem(x, y *Int) (*Int, error) {
	z := x.Clone()
	return z, z.RemAssign(y)
}

// Neg returns -x.
func Neg(x *Int) *Int {
	return x.Clone().Negate()
}

// Plus returns +x, a copy of x.
func Plus(x *Int) *Int {
	return x.Clone()
}

// Abs returns |x|.
func Abs(x *Int) *Int {
	z := x.Clone()
	z.neg = false
	return z
}
