package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/username/cafeanalyst/backend/src/models"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		headers  []string
		expected models.FormatTag
	}{
		{
			"square by sales columns",
			[]string{"Item Name", "Category", "Qty", "Gross Sales", "Net Sales", "Date"},
			models.FormatSquare,
		},
		{
			"toast by menu columns",
			[]string{"Menu Item", "Menu Group", "Net Amount", "Business Date"},
			models.FormatToast,
		},
		{
			"shopify by lineitem columns",
			[]string{"Name", "Lineitem name", "Lineitem quantity", "Lineitem price", "Total"},
			models.FormatShopify,
		},
		{
			"clover by created_time",
			[]string{"Item", "Created Time", "Unit Qty", "Amount"},
			models.FormatClover,
		},
		{
			"lightspeed by cost_of_goods",
			[]string{"Product", "Quantity Sold", "Cost of Goods", "Revenue"},
			models.FormatLightspeed,
		},
		{
			"lightspeed by product plus revenue",
			[]string{"Product", "Total Revenue", "Date"},
			models.FormatLightspeed,
		},
		{
			"generic fallback",
			[]string{"item", "price", "quantity", "date"},
			models.FormatGeneric,
		},
		{
			"empty header set",
			nil,
			models.FormatGeneric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectFormat(tt.headers))
		})
	}
}

func TestDetectFormatRuleOrder(t *testing.T) {
	// gross_sales is Square's signature and its rule fires first, even when
	// later rules would also match the remaining columns.
	headers := []string{"Gross Sales", "Product", "Revenue", "Quantity Sold"}
	assert.Equal(t, models.FormatSquare, DetectFormat(headers))

	// menu_item alone is not enough for Toast; without the amount/date
	// columns the set falls through. "cost" alone is not distinctive either.
	assert.Equal(t, models.FormatGeneric, DetectFormat([]string{"Menu Item", "Price", "Cost"}))
}

func TestDetectFormatIsDeterministic(t *testing.T) {
	headers := []string{"Lineitem name", "Created Time", "Product Category"}
	first := DetectFormat(headers)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, DetectFormat(headers))
	}
	// Shopify's rule precedes Clover's and Lightspeed's.
	assert.Equal(t, models.FormatShopify, first)
}
