package processors

import (
	"github.com/username/cafeanalyst/backend/src/models"
	"github.com/username/cafeanalyst/backend/src/utils"
)

// fieldAliases lists, per canonical field, the column names a POS export may
// use for it, in priority order: the first alias that matches a column wins.
type fieldAliases struct {
	Item        []string
	Category    []string
	Quantity    []string
	Date        []string
	Price       []string // per-unit price, only meaningful for generic exports
	Gross       []string // gross line revenue
	Net         []string // net line revenue (discounts already applied)
	Discount    []string
	Cost        []string
	GrossProfit []string
}

// aliasTable maps every format tag to its alias set. Built once at startup;
// lookups fall back to the generic entry for safety, though DetectFormat can
// only ever produce tags present here.
var aliasTable = map[models.FormatTag]fieldAliases{
	models.FormatSquare: {
		Item:        []string{"item", "item_name", "name", "product"},
		Category:    []string{"category", "item_type"},
		Quantity:    []string{"qty", "quantity", "count"},
		Date:        []string{"date", "datetime", "time"},
		Gross:       []string{"gross_sales"},
		Net:         []string{"net_sales"},
		Discount:    []string{"discounts", "discount"},
		Cost:        []string{"cost", "unit_cost", "cost_of_goods"},
		GrossProfit: []string{"gross_profit"},
	},
	models.FormatToast: {
		Item:        []string{"menu_item", "item", "item_name"},
		Category:    []string{"menu_group", "sales_category", "category"},
		Quantity:    []string{"qty", "quantity", "item_qty"},
		Date:        []string{"business_date", "order_date", "date"},
		Gross:       []string{"gross_amount"},
		Net:         []string{"net_amount"},
		Discount:    []string{"discount_amount", "discounts", "discount"},
		Cost:        []string{"cost", "item_cost"},
		GrossProfit: []string{"gross_profit"},
	},
	models.FormatClover: {
		Item:        []string{"item", "item_name", "name"},
		Category:    []string{"category", "labels"},
		Quantity:    []string{"unit_qty", "quantity", "qty"},
		Date:        []string{"created_time", "date"},
		Gross:       []string{"amount", "gross_amount"},
		Net:         []string{"net_amount"},
		Discount:    []string{"discounts", "discount_amount"},
		Cost:        []string{"cost", "item_cost"},
		GrossProfit: []string{"gross_profit"},
	},
	models.FormatShopify: {
		Item:        []string{"lineitem_name", "product_title", "title"},
		Category:    []string{"product_type", "lineitem_category", "vendor"},
		Quantity:    []string{"lineitem_quantity", "quantity"},
		Date:        []string{"created_at", "paid_at", "date"},
		Gross:       []string{"subtotal", "lineitem_price"},
		Net:         []string{"total", "net_amount"},
		Discount:    []string{"discount_amount", "total_discounts"},
		Cost:        []string{"cost", "cost_per_item"},
		GrossProfit: []string{"gross_profit"},
	},
	models.FormatLightspeed: {
		Item:        []string{"product", "item", "product_name", "item_name"},
		Category:    []string{"product_category", "category"},
		Quantity:    []string{"quantity_sold", "qty", "quantity", "units_sold"},
		Date:        []string{"date", "sale_date", "sold_date"},
		Gross:       []string{"revenue", "total_revenue", "gross_sales", "amount"},
		Cost:        []string{"cost_of_goods", "cogs", "cost", "total_cost"},
		GrossProfit: []string{"gross_profit", "profit"},
	},
	models.FormatGeneric: {
		Item:     []string{"item", "product", "item_name", "product_name", "menu_item"},
		Category: []string{"category", "type", "group"},
		Quantity: []string{"quantity", "qty", "units_sold", "count"},
		Date:     []string{"date", "order_date", "transaction_date", "day"},
		Price:    []string{"price", "sale_price", "selling_price", "unit_price"},
		Gross:    []string{"revenue", "amount", "total", "sales", "total_revenue"},
		Cost:     []string{"cost", "cogs", "cost_price", "unit_cost"},
	},
}

// NormalizeRow converts one raw row into a canonical transaction using the
// column conventions of the given format. It never fails: fields that cannot
// be resolved degrade to zero or empty values. A row whose derived revenue is
// negative (a refund line) is kept as a record but zeroed out entirely so it
// contributes nothing to aggregates.
func NormalizeRow(row models.RawRow, format models.FormatTag) models.CanonicalTransaction {
	aliases, ok := aliasTable[format]
	if !ok {
		aliases = aliasTable[models.FormatGeneric]
	}
	idx := newRowIndex(row)

	quantity, found := idx.number(aliases.Quantity)
	if !found || quantity == 0 {
		quantity = 1
	}

	tx := models.CanonicalTransaction{
		Item:     idx.str(aliases.Item),
		Category: idx.str(aliases.Category),
		Quantity: quantity,
	}
	if rawDate := idx.str(aliases.Date); rawDate != "" {
		tx.Date = utils.NormalizeDate(rawDate)
	}

	tx.Revenue = deriveRevenue(idx, aliases, format, quantity)
	tx.Cost = deriveCost(idx, aliases, format, tx.Revenue, quantity)

	// Refund lines must not drag aggregates negative.
	if tx.Revenue < 0 {
		tx.Revenue, tx.Cost, tx.Quantity = 0, 0, 0
	}
	return tx
}

// deriveRevenue applies the format-specific revenue rule. POS systems differ
// in whether they report line totals or per-unit prices, and gross or net
// amounts, so there is one rule per family of exports.
func deriveRevenue(idx rowIndex, aliases fieldAliases, format models.FormatTag, quantity float64) float64 {
	switch format {
	case models.FormatSquare, models.FormatToast, models.FormatClover, models.FormatShopify:
		// Prefer the net figure; an empty or zero net column falls back to
		// gross minus discount.
		if net, ok := idx.number(aliases.Net); ok && net != 0 {
			return net
		}
		gross, _ := idx.number(aliases.Gross)
		discount, _ := idx.number(aliases.Discount)
		return gross - discount

	case models.FormatLightspeed:
		// Lightspeed reports revenue as a line total already.
		gross, _ := idx.number(aliases.Gross)
		return gross

	default:
		// Generic exports may carry a per-unit price or a line total.
		if price, ok := idx.number(aliases.Price); ok && price > 0 {
			return price * quantity
		}
		if gross, ok := idx.number(aliases.Gross); ok {
			return gross
		}
		return 0
	}
}

// deriveCost resolves the line cost. Named POS formats take the cost column
// when positive and otherwise derive it from a gross-profit column; generic
// exports additionally guess whether the cost column is per-unit.
func deriveCost(idx rowIndex, aliases fieldAliases, format models.FormatTag, revenue, quantity float64) float64 {
	if format == models.FormatGeneric {
		cost, costFound := idx.number(aliases.Cost)
		if !costFound || cost <= 0 {
			return 0
		}
		// A cost below the per-unit price is itself per-unit; anything else
		// is taken as a line total.
		if price, ok := idx.number(aliases.Price); ok && price > 0 && cost < price {
			return cost * quantity
		}
		return cost
	}

	if cost, ok := idx.number(aliases.Cost); ok && cost > 0 {
		return cost
	}
	if grossProfit, ok := idx.number(aliases.GrossProfit); ok {
		if cost := revenue - grossProfit; cost > 0 {
			return cost
		}
	}
	return 0
}

// IsEmptyTransaction reports whether a normalized row carries no usable
// signal: no item name and no revenue. Such rows are filtered out before
// aggregation.
func IsEmptyTransaction(tx models.CanonicalTransaction) bool {
	return tx.Item == "" && tx.Revenue == 0
}
