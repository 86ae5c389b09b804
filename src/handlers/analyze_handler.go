package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/username/cafeanalyst/backend/src/config"
	"github.com/username/cafeanalyst/backend/src/logger"
	"github.com/username/cafeanalyst/backend/src/security/validation"
	"github.com/username/cafeanalyst/backend/src/services"
	"github.com/username/cafeanalyst/backend/src/utils"
)

type AnalyzeHandler struct {
	analysisService services.AnalysisService
}

func NewAnalyzeHandler(service services.AnalysisService) *AnalyzeHandler {
	return &AnalyzeHandler{
		analysisService: service,
	}
}

// HandleAnalyze accepts one batch of POS data and returns the metrics report.
// Two request shapes are supported: a JSON body with "csv" text or pre-parsed
// "rows", and a multipart form upload with a "file" field. Both may carry a
// format override and a fixed_costs figure.
func (h *AnalyzeHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req services.AnalysisRequest
	var err error

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		req, err = h.requestFromMultipart(r)
	} else {
		req, err = h.requestFromJSON(r)
	}
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.CSV == "" && len(req.Rows) == 0 {
		utils.SendJSONError(w, `No data provided. Send "csv" (CSV text) or "rows" (array of objects).`, http.StatusBadRequest)
		return
	}
	if req.FixedCosts < 0 {
		utils.SendJSONError(w, "fixed_costs must not be negative", http.StatusBadRequest)
		return
	}

	result, err := h.analysisService.Analyze(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoData):
			logger.L.Warn("Analysis yielded no usable transactions", "error", err)
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, services.ErrParsingFailed):
			logger.L.Warn("Analysis input could not be parsed", "error", err)
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		default:
			logger.L.Error("Internal error processing analysis", "error", err)
			utils.SendJSONError(w, "An internal error occurred while processing the data. Please try again later.", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logger.L.Error("Error encoding JSON response for analysis result", "error", err)
	}
}

func (h *AnalyzeHandler) requestFromJSON(r *http.Request) (services.AnalysisRequest, error) {
	var req services.AnalysisRequest
	body := http.MaxBytesReader(nil, r.Body, config.Cfg.MaxUploadSizeBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return req, fmt.Errorf("invalid JSON request body: %v", err)
	}
	return req, nil
}

// requestFromMultipart extracts the uploaded file plus the optional "format"
// and "fixed_costs" form values, validating the file the same way any other
// user upload is validated.
func (h *AnalyzeHandler) requestFromMultipart(r *http.Request) (services.AnalysisRequest, error) {
	var req services.AnalysisRequest

	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		logger.L.Warn("Failed to parse multipart form or request too large", "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		return req, fmt.Errorf("failed to parse form or request too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024))
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		return req, fmt.Errorf("failed to retrieve file from request; ensure the 'file' field is used")
	}
	defer file.Close()

	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		return req, fmt.Errorf("file too large, max %d MB", config.Cfg.MaxUploadSizeBytes/(1024*1024))
	}

	if clientContentType := fileHeader.Header.Get("Content-Type"); clientContentType != "" {
		if err := validation.ValidateClientContentType(clientContentType); err != nil {
			return req, err
		}
	}
	if _, err := validation.ValidateFileContentByMagicBytes(file); err != nil {
		logger.L.Warn("Server-side file content validation failed", "filename", fileHeader.Filename, "error", err)
		return req, err
	}

	content, err := io.ReadAll(file)
	if err != nil {
		return req, fmt.Errorf("failed to read uploaded file: %v", err)
	}
	req.CSV = string(content)
	req.Format = r.FormValue("format")

	if raw := r.FormValue("fixed_costs"); raw != "" {
		fixedCosts, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, fmt.Errorf("invalid fixed_costs value '%s'", raw)
		}
		req.FixedCosts = fixedCosts
	}

	logger.L.Info("Processing upload request", "filename", fileHeader.Filename, "size", fileHeader.Size)
	return req, nil
}
