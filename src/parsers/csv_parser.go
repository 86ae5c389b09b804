package parsers

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/username/cafeanalyst/backend/src/models"
)

// ParseCSVText parses raw tabular text with a header row into RawRow maps.
// The delimiter is auto-detected: tab when the first line contains more tab
// characters than commas, comma otherwise. A leading byte-order-mark is
// stripped, quoted fields are supported, and blank lines and fully-blank data
// rows are discarded. Rows with fewer cells than the header are dropped.
func ParseCSVText(text string) ([]string, []models.RawRow, error) {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil, fmt.Errorf("input is empty")
	}

	firstLine := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		firstLine = text[:i]
	}
	delimiter := ','
	if strings.Count(firstLine, "\t") > strings.Count(firstLine, ",") {
		delimiter = '\t'
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV records: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("input has no header row")
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	var rows []models.RawRow
	for _, record := range records[1:] {
		if len(record) < len(headers) {
			continue
		}
		row := make(models.RawRow, len(headers))
		blank := true
		for i, header := range headers {
			value := strings.TrimSpace(record[i])
			row[header] = value
			if value != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		rows = append(rows, row)
	}

	return headers, rows, nil
}
