package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Date shapes recognized by NormalizeDate, tried in order. Slash-separated
// dates are read as US month/day order, dash-separated as day/month order;
// that is a separator heuristic, not a locale guarantee.
var (
	isoDatePrefixRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	usSlashDateRe   = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})`)
	intlDashDateRe  = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)
	utcOffsetRe     = regexp.MustCompile(`^[+-]\d{4}$`)
)

// NormalizeDate converts a raw date or datetime string into canonical
// YYYY-MM-DD form. It is total: input it cannot interpret is returned trimmed
// and truncated to 10 characters rather than rejected. The function is
// idempotent, so re-normalizing an already normalized value is a no-op.
func NormalizeDate(raw string) string {
	s := strings.TrimSpace(raw)

	if isoDatePrefixRe.MatchString(s) {
		return s[:10]
	}

	if m := usSlashDateRe.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		return fmt.Sprintf("%s-%02d-%02d", m[3], month, day)
	}

	if m := intlDashDateRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		return fmt.Sprintf("%s-%02d-%02d", m[3], month, day)
	}

	// ISO-style datetimes that did not match the strict prefix above
	// (e.g. unpadded month/day) still carry their date before the 'T'.
	if i := strings.Index(s, "T"); i > 0 {
		return truncateTo10(s[:i])
	}

	// Space-separated datetime with a trailing UTC offset, e.g.
	// "2024-6-1 10:30:00 +0000".
	if fields := strings.Fields(s); len(fields) >= 2 && utcOffsetRe.MatchString(fields[len(fields)-1]) {
		return truncateTo10(fields[0])
	}

	return truncateTo10(s)
}

func truncateTo10(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		return s[:10]
	}
	return s
}
