package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/cafeanalyst/backend/src/config"
	"github.com/username/cafeanalyst/backend/src/logger"
	"github.com/username/cafeanalyst/backend/src/models"
	"github.com/username/cafeanalyst/backend/src/processors"
	"github.com/username/cafeanalyst/backend/src/services"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	config.Cfg = &config.AppConfig{
		Port:               "8080",
		LogLevel:           "error",
		MaxUploadSizeBytes: 1024 * 1024,
		GroqModel:          "llama-3.3-70b-versatile",
	}
	m.Run()
}

type noopAIService struct{}

func (noopAIService) Enabled() bool { return false }

func (noopAIService) Recommend(ctx context.Context, prompt string) (string, error) {
	return "", nil
}

func newTestHandler() *AnalyzeHandler {
	svc := services.NewAnalysisService(processors.NewMetricsProcessor(), noopAIService{}, nil)
	return NewAnalyzeHandler(svc)
}

func TestHandleAnalyzeJSONBody(t *testing.T) {
	h := newTestHandler()

	body, _ := json.Marshal(map[string]interface{}{
		"csv":         "Item Name,Qty,Gross Sales,Net Sales,Date\nLatte,2,10.00,9.00,3/1/2024\n",
		"fixed_costs": 5,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.HandleAnalyze(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var result services.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, models.FormatSquare, result.Format)
	assert.Equal(t, 1, result.RowsProcessed)
	assert.InDelta(t, 9.00, result.Metrics.Summary.TotalRevenue, 1e-9)
	assert.InDelta(t, 5.00, result.Metrics.Summary.FixedCosts, 1e-9)
}

func TestHandleAnalyzeRowsBody(t *testing.T) {
	h := newTestHandler()

	body := `{"rows":[{"item":"Espresso","price":"$4.50","quantity":"2"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.HandleAnalyze(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var result services.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, models.FormatGeneric, result.Format)
	assert.InDelta(t, 9.00, result.Metrics.Summary.TotalRevenue, 1e-9)
}

func TestHandleAnalyzeMultipartUpload(t *testing.T) {
	h := newTestHandler()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "sales.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("item,price,quantity\nLatte,4.50,2\n"))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("fixed_costs", "100"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()

	h.HandleAnalyze(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var result services.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.InDelta(t, 9.00, result.Metrics.Summary.TotalRevenue, 1e-9)
	assert.InDelta(t, 100.0, result.Metrics.Summary.FixedCosts, 1e-9)
}

func TestHandleAnalyzeMissingData(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.HandleAnalyze(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No data provided")
}

func TestHandleAnalyzeNegativeFixedCosts(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze",
		strings.NewReader(`{"csv":"item,price\nLatte,4.50\n","fixed_costs":-1}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.HandleAnalyze(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAnalyzeNoUsableRows(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze",
		strings.NewReader(`{"csv":"notes,comment\nhello,world\n"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.HandleAnalyze(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no data extracted")
}

func TestHandleAnalyzeInvalidJSON(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.HandleAnalyze(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
