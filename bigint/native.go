package bigint

// nativeOperand converts v for use as the right-hand operand of a compound
// assignment, honouring Policy.NativeOperands.
func nativeOperand[T Integer](v T) (*Int, error) {
	if !policy().NativeOperands {
		return nil, ErrNativeOperandsDisabled
	}
	return New(v), nil
}

// AddNative sets z = z + v.
func AddNative[T Integer](z *Int, v T) error {
	x, err := nativeOperand(v)
	if err != nil {
		return err
	}
	return z.AddAssign(x)
}

// SubNative sets z = z - v.
func SubNative[T Integer](z *Int, v T) error {
	x, err := nativeOperand(v)
	if err != nil {
		return err
	}
	return z.SubAssign(x)
}

// MulNative sets z = z * v.
func MulNative[T Integer](z *Int, v T) error {
	x, err := nativeOperand(v)
	if err != nil {
		return err
	}
	return z.MulAssign(x)
}

// QuoNative sets z = z / v.
func QuoNative[T Integer](z *Int, v T) error {
	x, err := nativeOperand(v)
	if err != nil {
		return err
	}
	return z.QuoAssign(x)
}

// RemNative sets z = z % v.
func RemNative[T Integer](z *Int, v T) error {
	x, err := nativeOperand(v)
	if err != nil {
		return err
	}
	return z.RemAssign(x)
}
