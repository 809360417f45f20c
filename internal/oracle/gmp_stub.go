//go:build !gmp

package oracle

import "fmt"

func newGMP() (Oracle, error) {
	return nil, fmt.Errorf("%w: gmp (rebuild with -tags gmp)", ErrUnavailable)
}
