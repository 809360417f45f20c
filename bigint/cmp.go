package bigint

// Less reports whether x < y.
//
// Values of different sign order by sign, except that two zero magnitudes are
// always equal whatever their sign flags say.
func (x *Int) Less(y *Int) bool {
	if x.neg != y.neg {
		if x.isZeroMag() && y.isZeroMag() {
			return false
		}
		return x.neg
	}
	c := cmpMagnitude(x, y)
	if x.neg {
		return c > 0
	}
	return c < 0
}

// Greater reports whether x > y.
func (x *Int) Greater(y *Int) bool {
	if x.neg != y.neg {
		if x.isZeroMag() && y.isZeroMag() {
			return false
		}
		return y.neg
	}
	c := cmpMagnitude(x, y)
	if x.neg {
		return c < 0
	}
	return c > 0
}

// Equal reports whether x == y, defined as neither x < y nor x > y.
func (x *Int) Equal(y *Int) bool { return !x.Less(y) && !x.Greater(y) }

// NotEqual reports whether x != y.
func (x *Int) NotEqual(y *Int) bool { return !x.Equal(y) }

// LessEqual reports whether x <= y.
func (x *Int) LessEqual(y *Int) bool { return !x.Greater(y) }

// GreaterEqual reports whether x >= y.
func (x *Int) GreaterEqual(y *Int) bool { return !x.Less(y) }

// Cmp compares x and y and returns -1 if x < y, 0 if x == y and +1 if x > y.
func (x *Int) Cmp(y *Int) int {
	switch {
	case x.Less(y):
		return -1
	case x.Greater(y):
		return 1
	default:
		return 0
	}
}

// CmpAbs compares |x| and |y|.
func (x *Int) CmpAbs(y *Int) int {
	return cmpMagnitude(x, y)
}

// CmpNative compares x with the native integer v.
func CmpNative[T Integer](x *Int, v T) int {
	var n Int
	return x.Cmp(SetNative(&n, v))
}

// NativeCmp compares the native integer v with x.
func NativeCmp[T Integer](v T, x *Int) int {
	return -CmpNative(x, v)
}
