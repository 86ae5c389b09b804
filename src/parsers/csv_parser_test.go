package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSVTextCommaDelimited(t *testing.T) {
	headers, rows, err := ParseCSVText("item,price,quantity\nLatte,4.50,2\nMuffin,3.50,1\n")
	require.NoError(t, err)

	assert.Equal(t, []string{"item", "price", "quantity"}, headers)
	require.Len(t, rows, 2)
	assert.Equal(t, "Latte", rows[0]["item"])
	assert.Equal(t, "4.50", rows[0]["price"])
	assert.Equal(t, "1", rows[1]["quantity"])
}

func TestParseCSVTextTabDelimited(t *testing.T) {
	headers, rows, err := ParseCSVText("item\tprice\nLatte\t4.50\n")
	require.NoError(t, err)

	assert.Equal(t, []string{"item", "price"}, headers)
	require.Len(t, rows, 1)
	assert.Equal(t, "4.50", rows[0]["price"])
}

func TestParseCSVTextStripsByteOrderMark(t *testing.T) {
	headers, _, err := ParseCSVText("\uFEFFitem,price\nLatte,4.50\n")
	require.NoError(t, err)
	assert.Equal(t, "item", headers[0])
}

func TestParseCSVTextQuotedFields(t *testing.T) {
	_, rows, err := ParseCSVText("item,price\n\"Latte, Iced\",4.50\n")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Latte, Iced", rows[0]["item"])
}

func TestParseCSVTextDiscardsBlankRows(t *testing.T) {
	_, rows, err := ParseCSVText("item,price\nLatte,4.50\n\n,\nMuffin,3.50\n")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Muffin", rows[1]["item"])
}

func TestParseCSVTextDropsShortRows(t *testing.T) {
	_, rows, err := ParseCSVText("item,price,quantity\nLatte,4.50,2\nMuffin,3.50\n")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestParseCSVTextEmptyInput(t *testing.T) {
	_, _, err := ParseCSVText("")
	assert.Error(t, err)

	_, _, err = ParseCSVText("   \n  ")
	assert.Error(t, err)
}

func TestParseCSVTextHeaderOnly(t *testing.T) {
	headers, rows, err := ParseCSVText("item,price,quantity")
	require.NoError(t, err)
	assert.Equal(t, 3, len(headers))
	assert.Empty(t, rows)
}
