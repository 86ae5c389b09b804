package processors

import (
	"math"
	"sort"

	"github.com/username/cafeanalyst/backend/src/models"
	"github.com/username/cafeanalyst/backend/src/utils"
)

// MetricsProcessor aggregates canonical transactions into a financial report.
// It holds no state between invocations; every call allocates its own
// accumulators, so concurrent requests are safe by construction.
type MetricsProcessor struct{}

func NewMetricsProcessor() *MetricsProcessor {
	return &MetricsProcessor{}
}

// grouping is an insertion-ordered set of aggregate buckets. Order matters:
// ranking ties are broken by first appearance, so the sorts below must be
// stable over the original iteration order.
type grouping struct {
	buckets map[string]*models.AggregateBucket
	order   []string
}

func newGrouping() *grouping {
	return &grouping{buckets: make(map[string]*models.AggregateBucket)}
}

func (g *grouping) add(key string, revenue, cost, quantity float64) {
	bucket, ok := g.buckets[key]
	if !ok {
		bucket = &models.AggregateBucket{}
		g.buckets[key] = bucket
		g.order = append(g.order, key)
	}
	bucket.Revenue += revenue
	bucket.Cost += cost
	bucket.Quantity += quantity
	bucket.Profit += revenue - cost
}

// Aggregate runs a single pass over the transactions, accumulating totals and
// the item/category/day groupings, then derives the summary scalars. Records
// with an empty grouping key skip that grouping but still count toward the
// totals. All money and percentage figures are rounded to two decimals in the
// report only; accumulation is unrounded.
func (p *MetricsProcessor) Aggregate(transactions []models.CanonicalTransaction, fixedCosts float64) *models.MetricsReport {
	var totalRevenue, totalCOGS, totalUnits float64
	items := newGrouping()
	categories := newGrouping()
	daily := newGrouping()
	dailyTransactions := make(map[string]int)

	for _, tx := range transactions {
		totalRevenue += tx.Revenue
		totalCOGS += tx.Cost
		totalUnits += tx.Quantity

		if tx.Item != "" {
			items.add(tx.Item, tx.Revenue, tx.Cost, tx.Quantity)
		}
		if tx.Category != "" {
			categories.add(tx.Category, tx.Revenue, tx.Cost, tx.Quantity)
		}
		if tx.Date != "" {
			daily.add(tx.Date, tx.Revenue, tx.Cost, tx.Quantity)
			dailyTransactions[tx.Date]++
		}
	}

	grossProfit := totalRevenue - totalCOGS
	netProfit := grossProfit - fixedCosts

	// Ratio scalars are defined as 0 when their denominator is 0.
	var grossMarginPct, netMarginPct, foodCostPct, avgOrderValue float64
	if totalRevenue != 0 {
		grossMarginPct = grossProfit / totalRevenue * 100
		netMarginPct = netProfit / totalRevenue * 100
		foodCostPct = totalCOGS / totalRevenue * 100
	}
	if totalUnits != 0 {
		avgOrderValue = totalRevenue / totalUnits
	}

	// Break-even is only meaningful with a positive contribution per unit; a
	// loss-making batch (or one with no units) reports 0.
	breakEvenUnits := 0
	if totalUnits > 0 {
		if avgContribution := grossProfit / totalUnits; avgContribution > 0 {
			breakEvenUnits = int(math.Floor(fixedCosts / avgContribution))
		}
	}

	numDays := len(daily.order)
	if numDays == 0 {
		numDays = 1
	}
	transactionCount := 0
	for _, count := range dailyTransactions {
		transactionCount += count
	}

	report := &models.MetricsReport{
		Summary: models.Summary{
			TotalRevenue:         utils.Round2(totalRevenue),
			TotalCOGS:            utils.Round2(totalCOGS),
			GrossProfit:          utils.Round2(grossProfit),
			GrossMarginPct:       utils.Round2(grossMarginPct),
			FixedCosts:           utils.Round2(fixedCosts),
			NetProfit:            utils.Round2(netProfit),
			NetMarginPct:         utils.Round2(netMarginPct),
			FoodCostPct:          utils.Round2(foodCostPct),
			TotalUnitsSold:       utils.Round2(totalUnits),
			AvgOrderValue:        utils.Round2(avgOrderValue),
			BreakEvenUnits:       breakEvenUnits,
			NumDays:              numDays,
			AvgDailyRevenue:      utils.Round2(totalRevenue / float64(numDays)),
			AvgDailyTransactions: utils.Round2(float64(transactionCount) / float64(numDays)),
		},
		TopItems:   rankItems(items, false, 10),
		WorstItems: rankItems(items, true, 5),
		Categories: rankCategories(categories),
		Daily:      sortDaily(daily, dailyTransactions),
	}
	return report
}

// rankItems returns the items ordered by profit (descending for the top list,
// ascending for the worst list), truncated to limit. The sort is stable, so
// equal profits keep insertion order.
func rankItems(items *grouping, ascending bool, limit int) []models.ItemStat {
	stats := make([]models.ItemStat, 0, len(items.order))
	for _, name := range items.order {
		bucket := items.buckets[name]
		stats = append(stats, models.ItemStat{
			Name:     name,
			Revenue:  utils.Round2(bucket.Revenue),
			Cost:     utils.Round2(bucket.Cost),
			Quantity: utils.Round2(bucket.Quantity),
			Profit:   utils.Round2(bucket.Profit),
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		if ascending {
			return stats[i].Profit < stats[j].Profit
		}
		return stats[i].Profit > stats[j].Profit
	})
	if len(stats) > limit {
		stats = stats[:limit]
	}
	return stats
}

func rankCategories(categories *grouping) []models.CategoryStat {
	stats := make([]models.CategoryStat, 0, len(categories.order))
	for _, name := range categories.order {
		bucket := categories.buckets[name]
		stats = append(stats, models.CategoryStat{
			Name:     name,
			Revenue:  utils.Round2(bucket.Revenue),
			Cost:     utils.Round2(bucket.Cost),
			Quantity: utils.Round2(bucket.Quantity),
			Profit:   utils.Round2(bucket.Profit),
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Revenue > stats[j].Revenue
	})
	return stats
}

// sortDaily orders the per-day rollups ascending by date string, which is
// chronological because dates are normalized to YYYY-MM-DD.
func sortDaily(daily *grouping, counts map[string]int) []models.DailyStat {
	stats := make([]models.DailyStat, 0, len(daily.order))
	for _, date := range daily.order {
		bucket := daily.buckets[date]
		stats = append(stats, models.DailyStat{
			Date:         date,
			Revenue:      utils.Round2(bucket.Revenue),
			Cost:         utils.Round2(bucket.Cost),
			Transactions: counts[date],
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Date < stats[j].Date
	})
	return stats
}
