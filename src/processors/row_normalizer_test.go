package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/username/cafeanalyst/backend/src/models"
)

func TestNormalizeRowSquareNetPreferred(t *testing.T) {
	row := models.RawRow{
		"Item Name": "Latte", "Category": "Drinks", "Qty": "2",
		"Gross Sales": "10.00", "Net Sales": "9.00", "Discounts": "1.00",
		"Date": "3/7/2024",
	}
	tx := NormalizeRow(row, models.FormatSquare)

	assert.Equal(t, "Latte", tx.Item)
	assert.Equal(t, "Drinks", tx.Category)
	assert.InDelta(t, 2.0, tx.Quantity, 1e-9)
	assert.InDelta(t, 9.0, tx.Revenue, 1e-9)
	assert.Equal(t, "2024-03-07", tx.Date)
}

func TestNormalizeRowSquareGrossMinusDiscountFallback(t *testing.T) {
	// Empty net column falls back to gross minus discount.
	row := models.RawRow{"item": "Muffin", "gross_sales": "10.00", "net_sales": "", "discounts": "1.00"}
	tx := NormalizeRow(row, models.FormatSquare)
	assert.InDelta(t, 9.0, tx.Revenue, 1e-9)
}

func TestNormalizeRowGenericPriceTimesQuantity(t *testing.T) {
	row := models.RawRow{"item": "Espresso", "price": "$4.50", "quantity": "2"}
	tx := NormalizeRow(row, models.FormatGeneric)
	assert.InDelta(t, 9.0, tx.Revenue, 1e-9)
}

func TestNormalizeRowGenericLineTotalRevenue(t *testing.T) {
	row := models.RawRow{"item": "Espresso", "revenue": "18.00", "quantity": "4"}
	tx := NormalizeRow(row, models.FormatGeneric)
	assert.InDelta(t, 18.0, tx.Revenue, 1e-9)
}

func TestNormalizeRowGenericPerUnitCost(t *testing.T) {
	// Cost below the per-unit price is treated as per-unit and scaled.
	row := models.RawRow{"item": "Espresso", "price": "4.50", "cost": "1.20", "quantity": "2"}
	tx := NormalizeRow(row, models.FormatGeneric)
	assert.InDelta(t, 2.40, tx.Cost, 1e-9)

	// Cost at or above the per-unit price is already a line total.
	row = models.RawRow{"item": "Catering Box", "price": "4.50", "cost": "6.00", "quantity": "2"}
	tx = NormalizeRow(row, models.FormatGeneric)
	assert.InDelta(t, 6.00, tx.Cost, 1e-9)
}

func TestNormalizeRowLightspeed(t *testing.T) {
	row := models.RawRow{
		"Product": "Beans 1kg", "Product Category": "Retail",
		"Quantity Sold": "3", "Revenue": "45.00", "Cost of Goods": "21.00",
		"Date": "2024-02-01",
	}
	tx := NormalizeRow(row, models.FormatLightspeed)
	assert.Equal(t, "Beans 1kg", tx.Item)
	assert.Equal(t, "Retail", tx.Category)
	assert.InDelta(t, 45.0, tx.Revenue, 1e-9)
	assert.InDelta(t, 21.0, tx.Cost, 1e-9)
}

func TestNormalizeRowCostDerivedFromGrossProfit(t *testing.T) {
	row := models.RawRow{"product": "Beans 1kg", "revenue": "45.00", "gross_profit": "24.00"}
	tx := NormalizeRow(row, models.FormatLightspeed)
	assert.InDelta(t, 45.0, tx.Revenue, 1e-9)
	assert.InDelta(t, 21.0, tx.Cost, 1e-9)
}

func TestNormalizeRowToastNetAmount(t *testing.T) {
	row := models.RawRow{
		"Menu Item": "Club Sandwich", "Menu Group": "Food",
		"Net Amount": "12.50", "Gross Amount": "14.00", "Business Date": "20240307",
	}
	tx := NormalizeRow(row, models.FormatToast)
	assert.InDelta(t, 12.50, tx.Revenue, 1e-9)
	assert.Equal(t, "Food", tx.Category)
}

func TestNormalizeRowRefundZeroedOut(t *testing.T) {
	row := models.RawRow{"item": "Latte", "gross_sales": "(5.00)", "net_sales": "", "cost": "1.50", "qty": "1"}
	tx := NormalizeRow(row, models.FormatSquare)

	// Negative revenue marks a refund line: it survives as a record but
	// contributes nothing.
	assert.Equal(t, "Latte", tx.Item)
	assert.Zero(t, tx.Revenue)
	assert.Zero(t, tx.Cost)
	assert.Zero(t, tx.Quantity)
}

func TestNormalizeRowQuantityDefaultsToOne(t *testing.T) {
	for _, row := range []models.RawRow{
		{"item": "Latte", "price": "4.00"},
		{"item": "Latte", "price": "4.00", "quantity": "0"},
		{"item": "Latte", "price": "4.00", "quantity": "oops"},
	} {
		tx := NormalizeRow(row, models.FormatGeneric)
		assert.InDelta(t, 1.0, tx.Quantity, 1e-9)
		assert.InDelta(t, 4.0, tx.Revenue, 1e-9)
	}
}

func TestNormalizeRowNeverNegative(t *testing.T) {
	rows := []models.RawRow{
		{"item": "A", "gross_sales": "-3.00"},
		{"item": "B", "gross_sales": "10.00", "net_sales": "", "discounts": "12.00"},
		{"item": "C", "revenue": "5.00", "gross_profit": "9.00"},
	}
	formats := []models.FormatTag{models.FormatSquare, models.FormatSquare, models.FormatLightspeed}
	for i, row := range rows {
		tx := NormalizeRow(row, formats[i])
		assert.GreaterOrEqual(t, tx.Revenue, 0.0)
		assert.GreaterOrEqual(t, tx.Cost, 0.0)
	}
}

func TestIsEmptyTransaction(t *testing.T) {
	assert.True(t, IsEmptyTransaction(models.CanonicalTransaction{Quantity: 1}))
	assert.False(t, IsEmptyTransaction(models.CanonicalTransaction{Item: "Latte"}))
	assert.False(t, IsEmptyTransaction(models.CanonicalTransaction{Revenue: 1}))
}
