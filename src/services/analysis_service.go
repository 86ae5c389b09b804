package services

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/cafeanalyst/backend/src/database"
	"github.com/username/cafeanalyst/backend/src/logger"
	"github.com/username/cafeanalyst/backend/src/models"
	"github.com/username/cafeanalyst/backend/src/parsers"
	"github.com/username/cafeanalyst/backend/src/processors"
	"github.com/username/cafeanalyst/backend/src/security/validation"
	"github.com/username/cafeanalyst/backend/src/utils"
)

const (
	// Result cache: identical input within the window returns the cached
	// report instead of re-running the pipeline.
	ckAnalysisResult = "res_analysis_%s"

	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

type analysisServiceImpl struct {
	metricsProcessor *processors.MetricsProcessor
	aiService        AIService
	resultCache      *cache.Cache
}

func NewAnalysisService(metricsProcessor *processors.MetricsProcessor, aiService AIService, resultCache *cache.Cache) AnalysisService {
	return &analysisServiceImpl{
		metricsProcessor: metricsProcessor,
		aiService:        aiService,
		resultCache:      resultCache,
	}
}

// Analyze runs the full pipeline for one request: parse (or take pre-parsed
// rows), detect the POS format, normalize every row, aggregate, and attach AI
// recommendations. All per-request state is freshly allocated; nothing is
// shared across invocations except the read-through result cache.
func (s *analysisServiceImpl) Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error) {
	overallStartTime := time.Now()

	cacheKey := ""
	if s.resultCache != nil {
		if hash, err := utils.GenerateETag(req); err == nil {
			cacheKey = fmt.Sprintf(ckAnalysisResult, hash)
			if cached, found := s.resultCache.Get(cacheKey); found {
				logger.L.Info("Cache hit for analysis request", "key", cacheKey)
				return cached.(*AnalysisResult), nil
			}
		}
	}

	rows, format, err := s.resolveInput(req)
	if err != nil {
		return nil, err
	}
	logger.L.Info("Analysis input resolved", "format", format, "rawRows", len(rows))

	transactions := make([]models.CanonicalTransaction, 0, len(rows))
	for _, row := range rows {
		tx := processors.NormalizeRow(row, format)
		if processors.IsEmptyTransaction(tx) {
			continue
		}
		transactions = append(transactions, tx)
	}
	if len(transactions) == 0 {
		return nil, fmt.Errorf("%w (detected format: %s)", ErrNoData, format)
	}

	metrics := s.metricsProcessor.Aggregate(transactions, req.FixedCosts)

	result := &AnalysisResult{
		Metrics:       metrics,
		Format:        format,
		RowsProcessed: len(transactions),
		AIEnabled:     s.aiService != nil && s.aiService.Enabled(),
		AnalyzedAt:    time.Now().UTC(),
	}
	result.AIRecommendations = s.recommend(ctx, metrics)

	if err := database.InsertAnalysis(string(format), len(transactions), metrics.Summary.TotalRevenue, metrics.Summary.NetProfit); err != nil {
		// Audit is operational metadata only; a write failure must not fail
		// the analysis.
		logger.L.Error("Failed to record analysis audit entry", "error", err)
	}

	if s.resultCache != nil && cacheKey != "" {
		s.resultCache.Set(cacheKey, result, DefaultCacheExpiration)
	}

	logger.L.Info("Analysis complete", "format", format, "transactions", len(transactions), "duration", time.Since(overallStartTime))
	return result, nil
}

// resolveInput produces the raw rows and the format tag for a request.
// Pre-parsed rows bypass delimiter/header detection and default to generic;
// CSV text goes through the parser and the header-based detector. A valid
// caller override always wins; an unknown override is ignored with a warning.
func (s *analysisServiceImpl) resolveInput(req AnalysisRequest) ([]models.RawRow, models.FormatTag, error) {
	var rows []models.RawRow
	format := models.FormatGeneric

	if len(req.Rows) > 0 {
		rows = req.Rows
	} else {
		headers, parsed, err := parsers.ParseCSVText(validation.StripUnprintable(req.CSV))
		if err != nil {
			return nil, format, fmt.Errorf("%w: %v", ErrParsingFailed, err)
		}
		rows = parsed
		format = parsers.DetectFormat(headers)
	}

	if req.Format != "" {
		if override, ok := models.ParseFormatTag(req.Format); ok {
			format = override
		} else {
			logger.L.Warn("Ignoring unknown format override", "override", req.Format, "using", format)
		}
	}
	return rows, format, nil
}

// recommend builds the prompt and calls the AI backend, degrading to a
// diagnostic string on failure and to a setup hint when no backend is
// configured.
func (s *analysisServiceImpl) recommend(ctx context.Context, metrics *models.MetricsReport) string {
	if s.aiService == nil || !s.aiService.Enabled() {
		return "Set GROQ_API_KEY to enable AI recommendations (get a free key at console.groq.com)."
	}
	text, err := s.aiService.Recommend(ctx, BuildPrompt(metrics))
	if err != nil {
		logger.L.Warn("AI recommendation call failed", "error", err)
		return fmt.Sprintf("AI analysis unavailable: %v", err)
	}
	return text
}
