package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"already canonical", "2024-03-07", "2024-03-07"},
		{"iso datetime", "2024-03-07T14:22:01Z", "2024-03-07"},
		{"iso datetime with millis", "2024-03-07 14:22:01.123", "2024-03-07"},
		{"us slash date", "3/7/2024", "2024-03-07"},
		{"us slash datetime", "12/31/2024 23:59", "2024-12-31"},
		{"international dash date", "7-3-2024", "2024-03-07"},
		{"padded dash date", "07-03-2024", "2024-03-07"},
		{"unpadded iso with T", "2024-3-7T09:00:00", "2024-3-7"},
		{"space datetime with offset", "2024-6-1 10:30:00 +0000", "2024-6-1"},
		{"unrecognized passthrough", "March 7th, 2024", "March 7th,"},
		{"short garbage", "n/a", "n/a"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeDate(tt.input))
		})
	}
}

func TestNormalizeDateIsIdempotent(t *testing.T) {
	inputs := []string{
		"2024-03-07", "3/7/2024", "7-3-2024", "2024-03-07T14:22:01Z",
		"2024-6-1 10:30:00 +0000", "March 7th, 2024", "", "garbage-in-garbage-out",
	}
	for _, input := range inputs {
		once := NormalizeDate(input)
		assert.Equal(t, once, NormalizeDate(once), "normalizing %q twice changed the result", input)
	}
}
