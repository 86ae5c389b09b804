package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/username/cafeanalyst/backend/src/database"
	"github.com/username/cafeanalyst/backend/src/logger"
	"github.com/username/cafeanalyst/backend/src/models"
	"github.com/username/cafeanalyst/backend/src/utils"
)

const defaultHistoryLimit = 50

type HistoryHandler struct{}

func NewHistoryHandler() *HistoryHandler {
	return &HistoryHandler{}
}

// HandleListAnalyses returns the most recent analysis audit entries, with
// ETag support so polling dashboards can avoid re-downloading an unchanged
// list.
func (h *HistoryHandler) HandleListAnalyses(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			utils.SendJSONError(w, fmt.Sprintf("invalid limit value '%s'", raw), http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	records, err := database.ListRecentAnalyses(limit)
	if err != nil {
		logger.L.Error("Error listing analysis audit entries", "error", err)
		utils.SendJSONError(w, "Error retrieving analysis history.", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []models.AnalysisRecord{}
	}

	w.Header().Set("Cache-Control", "no-cache, private")
	if currentETag, etagErr := utils.GenerateETag(records); etagErr == nil && currentETag != "" {
		quotedETag := fmt.Sprintf("%q", currentETag)
		w.Header().Set("ETag", quotedETag)
		for _, clientETag := range strings.Split(r.Header.Get("If-None-Match"), ",") {
			if strings.TrimSpace(clientETag) == quotedETag {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"analyses": records}); err != nil {
		logger.L.Error("Error encoding analysis history response", "error", err)
	}
}
