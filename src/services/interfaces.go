package services

import (
	"context"
	"errors"
	"time"

	"github.com/username/cafeanalyst/backend/src/models"
)

var (
	// ErrParsingFailed signals that the uploaded table could not be read at all.
	ErrParsingFailed = errors.New("parsing failed")
	// ErrNoData signals that the input parsed but yielded no usable
	// transactions; the wrapped message carries the detected format to aid
	// diagnosis.
	ErrNoData = errors.New("no data extracted")
)

// AnalysisRequest is one bounded batch to analyze. Either CSV holds raw
// tabular text, or Rows holds pre-parsed row maps (Rows wins when both are
// set, and skips delimiter/header detection entirely). Format optionally
// overrides detection; unknown values are ignored in favor of the detected
// tag.
type AnalysisRequest struct {
	CSV        string          `json:"csv"`
	Rows       []models.RawRow `json:"rows"`
	Format     string          `json:"format"`
	FixedCosts float64         `json:"fixed_costs"`
}

// AnalysisResult is the response envelope for one analysis: the metrics
// report plus the format actually used, the transaction count aggregated, and
// the optional AI recommendation text.
type AnalysisResult struct {
	Metrics           *models.MetricsReport `json:"metrics"`
	Format            models.FormatTag      `json:"format"`
	RowsProcessed     int                   `json:"rows_processed"`
	AIRecommendations string                `json:"ai_recommendations"`
	AIEnabled         bool                  `json:"ai_enabled"`
	AnalyzedAt        time.Time             `json:"analyzed_at"`
}

// AnalysisService defines the interface for the core analysis pipeline.
type AnalysisService interface {
	Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error)
}

// AIService produces free-text recommendations from a prompt. Implementations
// must degrade gracefully: a failed or disabled backend never fails the
// analysis, it only costs the recommendation text.
type AIService interface {
	Enabled() bool
	Recommend(ctx context.Context, prompt string) (string, error)
}
