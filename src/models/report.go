package models

// Summary holds the headline scalars of a metrics report. Money and
// percentage figures are rounded to two decimals when the report is built;
// accumulation happens on unrounded values.
type Summary struct {
	TotalRevenue         float64 `json:"total_revenue"`
	TotalCOGS            float64 `json:"total_cogs"`
	GrossProfit          float64 `json:"gross_profit"`
	GrossMarginPct       float64 `json:"gross_margin_pct"`
	FixedCosts           float64 `json:"fixed_costs"`
	NetProfit            float64 `json:"net_profit"`
	NetMarginPct         float64 `json:"net_margin_pct"`
	FoodCostPct          float64 `json:"food_cost_pct"`
	TotalUnitsSold       float64 `json:"total_units_sold"`
	AvgOrderValue        float64 `json:"avg_order_value"`
	BreakEvenUnits       int     `json:"break_even_units"`
	NumDays              int     `json:"num_days"`
	AvgDailyRevenue      float64 `json:"avg_daily_revenue"`
	AvgDailyTransactions float64 `json:"avg_daily_transactions"`
}

// ItemStat is one named entry of the top/worst item rankings.
type ItemStat struct {
	Name     string  `json:"name"`
	Revenue  float64 `json:"revenue"`
	Cost     float64 `json:"cost"`
	Quantity float64 `json:"quantity"`
	Profit   float64 `json:"profit"`
}

// CategoryStat is one per-category rollup entry, ordered by revenue descending.
type CategoryStat struct {
	Name     string  `json:"name"`
	Revenue  float64 `json:"revenue"`
	Cost     float64 `json:"cost"`
	Quantity float64 `json:"quantity"`
	Profit   float64 `json:"profit"`
}

// DailyStat is one per-day rollup entry, ordered by date ascending. The date
// string is the normalized YYYY-MM-DD form, so lexicographic order is
// chronological order.
type DailyStat struct {
	Date         string  `json:"date"`
	Revenue      float64 `json:"revenue"`
	Cost         float64 `json:"cost"`
	Transactions int     `json:"transactions"`
}

// MetricsReport is the final output of one analysis request. It is built once
// and not mutated afterwards. Categories and Daily are slices rather than
// maps because their order is part of the contract.
type MetricsReport struct {
	Summary    Summary        `json:"summary"`
	TopItems   []ItemStat     `json:"top_items"`
	WorstItems []ItemStat     `json:"worst_items"`
	Categories []CategoryStat `json:"categories"`
	Daily      []DailyStat    `json:"daily"`
}
