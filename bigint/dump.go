package bigint

import (
	"fmt"
	"io"
)

// Dump writes the internal representation of x to w: the stored word count,
// the sign flag and every raw word. It is a debugging aid and its format is
// not stable.
func (x *Int) Dump(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "--- words: %d\n--- neg:   %t\n", len(x.words), x.neg); err != nil {
		return err
	}
	for i, v := range x.words {
		if _, err := fmt.Fprintf(w, "--- [%d] = %#0*x\n", i, _W/4, uint(v)); err != nil {
			return err
		}
	}
	return nil
}
