package bigint

import "math/bits"

// magnitudeAdd sets |z| = |z| + |x|, leaving the sign of z alone. z is the
// in-place accumulator; it grows to the significant length of x and by one
// more word if a carry survives the last position.
func (z *Int) magnitudeAdd(x *Int) error {
	xs := x.words[:x.digits()]
	n := max(len(z.words), len(xs))
	if err := z.ensureCapacity(n); err != nil {
		return err
	}
	w := z.words
	var c uint
	for i := 0; i < n; i++ {
		var y Word
		if i < len(xs) {
			y = xs[i]
		} else if c == 0 {
			return nil
		}
		s, cc := bits.Add(uint(w[i]), uint(y), c)
		w[i], c = Word(s), cc
	}
	if c != 0 {
		if err := z.ensureCapacity(n + 1); err != nil {
			return err
		}
		z.words[n] = Word(c)
	}
	return nil
}

// magnitudeSub sets |z| = ||z| - |x|| and reports whether |z| < |x| held.
//
// The subtraction runs word-wise with borrow over the longer operand. If a
// borrow is left over, the stored words hold 2^(W*n) - (|x| - |z|); the true
// magnitude is recovered as the complement of every word plus one, which is
// exact in wrap-around arithmetic because the magnitude is below 2^(W*n).
func (z *Int) magnitudeSub(x *Int) (negative bool, err error) {
	xs := x.words[:x.digits()]
	n := max(len(z.words), len(xs))
	if err := z.ensureCapacity(n); err != nil {
		return false, err
	}
	w := z.words
	var b uint
	for i := 0; i < n; i++ {
		var y Word
		if i < len(xs) {
			y = xs[i]
		} else if b == 0 {
			return false, nil
		}
		d, bb := bits.Sub(uint(w[i]), uint(y), b)
		w[i], b = Word(d), bb
	}
	if b == 0 {
		return false, nil
	}
	c := uint(1)
	for i := 0; i < n; i++ {
		s, cc := bits.Add(uint(^w[i]), 0, c)
		w[i], c = Word(s), cc
	}
	if c != 0 {
		panic("bigint: carry out of borrow recovery")
	}
	return true, nil
}

// cmpMagnitude compares |x| and |y| and returns -1, 0 or +1. It scans from the
// highest index present in either operand; missing words read as zero.
func cmpMagnitude(x, y *Int) int {
	for i := max(len(x.words), len(y.words)) - 1; i >= 0; i-- {
		xi, yi := x.word(i), y.word(i)
		if xi < yi {
			return -1
		}
		if xi > yi {
			return 1
		}
	}
	return 0
}
