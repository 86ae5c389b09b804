package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/username/cafeanalyst/backend/src/config"
	"github.com/username/cafeanalyst/backend/src/models"
)

const groqEndpoint = "https://api.groq.com/openai/v1/chat/completions"

const systemPrompt = "You are an expert cafe business and financial analyst. " +
	"Provide specific, actionable, data-driven recommendations. " +
	"Focus on: cost control, pricing strategy, menu optimization, " +
	"labor efficiency, waste reduction, and revenue growth. " +
	"Use the numbers provided. Be direct and practical. " +
	"Format with clear headers and bullet points."

// groqService calls the Groq chat-completions API. The zero-value API key
// disables it; callers are expected to check Enabled before relying on output.
type groqService struct {
	apiKey     string
	model      string
	maxTokens  int
	endpoint   string
	httpClient *http.Client
}

func NewAIService(cfg *config.AppConfig) AIService {
	return &groqService{
		apiKey:     cfg.GroqAPIKey,
		model:      cfg.GroqModel,
		maxTokens:  cfg.GroqMaxTokens,
		endpoint:   groqEndpoint,
		httpClient: &http.Client{Timeout: cfg.GroqTimeout},
	}
}

func (s *groqService) Enabled() bool {
	return s.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Recommend sends the prompt to Groq and returns the completion text. Errors
// are returned to the caller, which degrades the response rather than failing
// the request.
func (s *groqService) Recommend(ctx context.Context, prompt string) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("AI service is not configured")
	}

	body, err := json.Marshal(chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   s.maxTokens,
		Temperature: 0.4,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode AI request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build AI request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("AI request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI backend returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode AI response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("AI response contained no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// BuildPrompt renders the computed metrics into the analysis prompt: summary
// scalars, the five most and three least profitable items, and the category
// breakdown.
func BuildPrompt(metrics *models.MetricsReport) string {
	s := metrics.Summary

	var top strings.Builder
	for i, item := range metrics.TopItems {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&top, "  - %s: revenue $%.2f, cost $%.2f, profit $%.2f, qty %g\n",
			item.Name, item.Revenue, item.Cost, item.Profit, item.Quantity)
	}
	var worst strings.Builder
	for i, item := range metrics.WorstItems {
		if i >= 3 {
			break
		}
		fmt.Fprintf(&worst, "  - %s: revenue $%.2f, cost $%.2f, profit $%.2f, qty %g\n",
			item.Name, item.Revenue, item.Cost, item.Profit, item.Quantity)
	}
	var cats strings.Builder
	for _, cat := range metrics.Categories {
		fmt.Fprintf(&cats, "  - %s: revenue $%.2f, cost $%.2f, profit $%.2f\n",
			cat.Name, cat.Revenue, cat.Cost, cat.Profit)
	}

	return fmt.Sprintf(`Analyze this cafe's financial data and provide 6-8 specific, prioritized recommendations.

FINANCIAL SUMMARY:
- Total Revenue: $%.2f
- Total COGS: $%.2f
- Gross Profit: $%.2f (Margin: %.2f%%)
- Fixed Costs: $%.2f
- Net Profit: $%.2f (Margin: %.2f%%)
- Food Cost %%: %.2f%%
- Avg Order Value: $%.2f
- Break-even: %d units
- Avg Daily Revenue: $%.2f
- Avg Daily Transactions: %.2f

TOP SELLING ITEMS:
%s
LOWEST PERFORMING ITEMS:
%s
CATEGORY BREAKDOWN:
%s
Industry benchmarks: food cost 28-32%%, gross margin 65-70%%, net margin 5-15%%.

Provide:
1. URGENT actions (quick wins this week)
2. PRICING recommendations (specific items to reprice)
3. MENU optimization (what to promote, what to remove)
4. COST REDUCTION strategies
5. REVENUE GROWTH opportunities
6. CASH FLOW advice`,
		s.TotalRevenue, s.TotalCOGS, s.GrossProfit, s.GrossMarginPct,
		s.FixedCosts, s.NetProfit, s.NetMarginPct, s.FoodCostPct,
		s.AvgOrderValue, s.BreakEvenUnits, s.AvgDailyRevenue, s.AvgDailyTransactions,
		top.String(), worst.String(), cats.String())
}
