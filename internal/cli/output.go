// # Naming Conventions
//
//   - Display* functions write formatted output to an [io.Writer].
//   - Format* functions return a formatted string without performing I/O.

package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/agbru/bigcalc/bigint"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// Quiet prints the bare decimal result, for scripts.
	Quiet bool
	// Verbose prints long results in full instead of eliding the middle.
	Verbose bool
	// Dump appends the internal representation of the result.
	Dump bool
	// Locale selects digit grouping in summaries.
	Locale language.Tag
}

// FormatResult renders x for display: grouped digits, elided in the middle
// when longer than format.TruncationLimit unless verbose is set.
func FormatResult(x *bigint.Int, verbose bool) string {
	s := x.String()
	if !verbose && format.CountDigits(s) > format.TruncationLimit {
		return format.Truncate(s, format.TruncationLimit, format.DisplayEdges) + " (truncated)"
	}
	return format.GroupDigits(s, ",")
}

// FormatSummary renders the size and timing line printed under a result.
func FormatSummary(x *bigint.Int, d time.Duration, tag language.Tag) string {
	if tag == language.Und {
		tag = language.English
	}
	digits := format.CountDigits(x.String())
	return fmt.Sprintf("%s, %d bits, %d words, %s",
		format.DigitSummary(tag, digits), x.BitLen(), x.Len(), format.FormatExecutionDuration(d))
}

// DisplayResult writes an evaluation result according to cfg.
func DisplayResult(out io.Writer, x *bigint.Int, d time.Duration, cfg OutputConfig) error {
	if cfg.Quiet {
		_, err := fmt.Fprintln(out, x.String())
		return err
	}
	theme := ui.GetCurrentTheme()
	if _, err := theme.Primary.Fprintln(out, FormatResult(x, cfg.Verbose)); err != nil {
		return err
	}
	if _, err := theme.Secondary.Fprintln(out, "  "+FormatSummary(x, d, cfg.Locale)); err != nil {
		return err
	}
	if cfg.Dump {
		return DisplayDump(out, x)
	}
	return nil
}

// DisplayDump writes the internal representation of x, one word per line.
func DisplayDump(out io.Writer, x *bigint.Int) error {
	var buf bytes.Buffer
	if err := x.Dump(&buf); err != nil {
		return err
	}
	info := ui.GetCurrentTheme().Info
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		if _, err := info.Fprintln(out, sc.Text()); err != nil {
			return err
		}
	}
	return sc.Err()
}

// DisplayError writes err in the error colour.
func DisplayError(out io.Writer, err error) {
	msg := strings.TrimSpace(err.Error())
	ui.GetCurrentTheme().Error.Fprintln(out, "error: "+msg)
}
