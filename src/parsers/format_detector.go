package parsers

import (
	"github.com/username/cafeanalyst/backend/src/models"
	"github.com/username/cafeanalyst/backend/src/utils"
)

// headerSet holds the normalized column names of an input table.
type headerSet map[string]bool

func (h headerSet) has(key string) bool {
	return h[key]
}

func (h headerSet) hasAny(keys ...string) bool {
	for _, key := range keys {
		if h[key] {
			return true
		}
	}
	return false
}

// formatRule pairs a header predicate with the POS format it identifies.
type formatRule struct {
	tag   models.FormatTag
	match func(headerSet) bool
}

// formatRules is evaluated top to bottom and short-circuits on the first
// match. The order runs from the most to the least distinctive signature:
// some column names (e.g. a bare "cost") appear across vendors, so an
// ambiguous rule must never fire before a more specific one had its chance.
var formatRules = []formatRule{
	{models.FormatSquare, func(h headerSet) bool {
		return h.hasAny("gross_sales", "net_sales")
	}},
	{models.FormatToast, func(h headerSet) bool {
		return h.hasAny("menu_item", "menu_group") && h.hasAny("gross_amount", "net_amount", "business_date")
	}},
	{models.FormatShopify, func(h headerSet) bool {
		return h.hasAny("lineitem_name", "lineitem_quantity", "lineitem_price")
	}},
	{models.FormatClover, func(h headerSet) bool {
		return h.hasAny("created_time", "unit_qty", "labels")
	}},
	{models.FormatLightspeed, func(h headerSet) bool {
		return h.hasAny("cost_of_goods", "quantity_sold", "product_category")
	}},
	{models.FormatLightspeed, func(h headerSet) bool {
		return h.has("product") && h.hasAny("revenue", "total_revenue", "gross_profit")
	}},
}

// DetectFormat classifies a header row as one of the known POS formats,
// falling back to generic. It is deterministic and total: any header set maps
// to exactly one tag.
func DetectFormat(headers []string) models.FormatTag {
	set := make(headerSet, len(headers))
	for _, h := range headers {
		set[utils.NormalizeKey(h)] = true
	}
	for _, rule := range formatRules {
		if rule.match(set) {
			return rule.tag
		}
	}
	return models.FormatGeneric
}
