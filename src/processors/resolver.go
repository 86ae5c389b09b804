package processors

import (
	"strconv"
	"strings"

	"github.com/username/cafeanalyst/backend/src/models"
	"github.com/username/cafeanalyst/backend/src/utils"
)

// rowIndex is a case/space-insensitive view of a raw row. Keys are normalized
// once when the index is built, so alias resolution is a map lookup instead of
// re-normalizing every row key per probe.
type rowIndex map[string]string

func newRowIndex(row models.RawRow) rowIndex {
	idx := make(rowIndex, len(row))
	for key, value := range row {
		idx[utils.NormalizeKey(key)] = value
	}
	return idx
}

// number resolves the first alias whose column holds a parsable numeric value.
// A column that exists but holds a sentinel ("", "nan", "n/a", "-", "--") or
// garbage counts as absent and the search moves on to the next alias. The
// boolean distinguishes "field present but zero" from "field absent", which
// the format-specific fallback chains rely on.
func (idx rowIndex) number(aliases []string) (float64, bool) {
	for _, alias := range aliases {
		raw, ok := idx[utils.NormalizeKey(alias)]
		if !ok {
			continue
		}
		if value, parsed := sanitizeNumber(raw); parsed {
			return value, true
		}
	}
	return 0, false
}

// str resolves the first alias whose column holds a non-empty string value.
func (idx rowIndex) str(aliases []string) string {
	for _, alias := range aliases {
		raw, ok := idx[utils.NormalizeKey(alias)]
		if !ok {
			continue
		}
		value := strings.TrimSpace(raw)
		if value != "" && strings.ToLower(value) != "nan" {
			return value
		}
	}
	return ""
}

// sanitizeNumber parses a raw cell into a float, tolerating currency symbols,
// thousands separators and accounting-style negatives like "(123.45)". The
// boolean is false when the cell carries no usable value.
func sanitizeNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	switch strings.ToLower(s) {
	case "", "nan", "n/a", "-", "--":
		return 0, false
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = "-" + strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// ResolveNumber finds the first alias matching any column of the row and
// parses it as a sanitized number. Returns 0 when no alias resolves; a
// missing or malformed field is never an error.
func ResolveNumber(row models.RawRow, aliases []string) float64 {
	value, _ := newRowIndex(row).number(aliases)
	return value
}

// ResolveString finds the first alias matching any column of the row and
// returns its trimmed value, or "" when no alias resolves.
func ResolveString(row models.RawRow, aliases []string) string {
	return newRowIndex(row).str(aliases)
}
