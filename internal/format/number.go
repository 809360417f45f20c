package format

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// TruncationLimit is the digit count above which Truncate elides the
	// middle of a number.
	TruncationLimit = 100
	// DisplayEdges is the number of digits kept on each side of an elided
	// number.
	DisplayEdges = 25
)

// Separator returns the digit-group separator of the given locale, as
// printed by golang.org/x/text/message for the number 1000.
func Separator(tag language.Tag) string {
	s := message.NewPrinter(tag).Sprintf("%d", 1000)
	_, n := utf8.DecodeRuneInString(s)
	return strings.TrimRight(s[n:], "0")
}

// GroupDigits inserts sep every three digits of a decimal string, counting
// from the right. A leading sign is preserved. Input that is not a plain
// decimal number is returned unchanged.
func GroupDigits(s, sep string) string {
	sign := ""
	digits := s
	if strings.HasPrefix(digits, "-") || strings.HasPrefix(digits, "+") {
		sign, digits = digits[:1], digits[1:]
	}
	if len(digits) <= 3 || sep == "" || strings.Trim(digits, "0123456789") != "" {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s) + len(digits)/3*len(sep))
	sb.WriteString(sign)
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	sb.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		sb.WriteString(sep)
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}

// FormatNumberString groups the digits of s with commas.
func FormatNumberString(s string) string {
	return GroupDigits(s, ",")
}

// CountDigits returns the number of decimal digits of s, ignoring a sign.
func CountDigits(s string) int {
	return len(strings.TrimLeft(s, "+-"))
}

// DigitSummary renders "N digits" with N grouped for the locale.
func DigitSummary(tag language.Tag, digits int) string {
	p := message.NewPrinter(tag)
	if digits == 1 {
		return p.Sprintf("%d digit", digits)
	}
	return p.Sprintf("%d digits", digits)
}

// Truncate elides the middle of a long decimal string, keeping edges
// digits on each side, once it exceeds limit digits.
func Truncate(s string, limit, edges int) string {
	if CountDigits(s) <= limit || 2*edges >= len(s) {
		return s
	}
	return s[:len(s)-CountDigits(s)+edges] + "..." + s[len(s)-edges:]
}
