package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration renders an evaluation time with a unit suited to
// its magnitude. Most expressions finish in well under a millisecond, so
// nanoseconds and microseconds are kept as whole numbers; anything from one
// second up is rounded to the millisecond.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.Round(time.Millisecond).String()
	}
}
