package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "item_name", NormalizeKey("Item Name"))
	assert.Equal(t, "item_name", NormalizeKey("  item name "))
	assert.Equal(t, "gross_sales", NormalizeKey("GROSS SALES"))
	assert.Equal(t, "net_sales", NormalizeKey("net_sales"))
	assert.Equal(t, "", NormalizeKey("   "))
}
