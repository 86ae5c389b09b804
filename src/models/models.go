package models

// RawRow is one row of an uploaded export, keyed by whatever column names the
// source file happened to contain. Values are kept as raw strings; all
// cleaning happens during normalization.
type RawRow map[string]string

// CanonicalTransaction is the unified representation every POS row is
// normalized into. Each raw row maps to exactly one canonical transaction.
// Revenue and Cost are line totals, never per-unit values.
type CanonicalTransaction struct {
	Item     string  `json:"item"`
	Category string  `json:"category"`
	Quantity float64 `json:"quantity"`
	Revenue  float64 `json:"revenue"`
	Cost     float64 `json:"cost"`
	Date     string  `json:"date"` // YYYY-MM-DD, or "" when the source row had no usable date
}

// AggregateBucket accumulates line totals for one grouping key (item name,
// category name or date). It is only ever added to, never decremented.
type AggregateBucket struct {
	Revenue  float64 `json:"revenue"`
	Cost     float64 `json:"cost"`
	Quantity float64 `json:"quantity"`
	Profit   float64 `json:"profit"`
}

// AnalysisRecord is one row of the analyses audit table: operational metadata
// about a past request. Audit rows never feed back into metric computation.
type AnalysisRecord struct {
	ID            int64   `json:"id"`
	CreatedAt     string  `json:"created_at"`
	SourceFormat  string  `json:"source_format"`
	RowsProcessed int     `json:"rows_processed"`
	TotalRevenue  float64 `json:"total_revenue"`
	NetProfit     float64 `json:"net_profit"`
}
