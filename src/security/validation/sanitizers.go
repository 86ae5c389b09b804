package validation

import (
	"strings"
	"unicode"
)

// StripUnprintable removes non-printable characters from uploaded text,
// allowing common whitespace like space, tab, newline, and carriage return.
// Exports occasionally carry stray control bytes that would otherwise trip
// the CSV reader.
func StripUnprintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		return -1 // Drop the rune
	}, s)
}
