package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/username/cafeanalyst/backend/src/config"
	"github.com/username/cafeanalyst/backend/src/logger"
)

const serviceVersion = "1.0.0"

// HandleAPIRoot describes the service: name, version, whether AI
// recommendations are configured, and the available endpoints.
func HandleAPIRoot(w http.ResponseWriter, r *http.Request) {
	aiEnabled := config.Cfg.GroqAPIKey != ""
	var aiModel interface{}
	if aiEnabled {
		aiModel = config.Cfg.GroqModel
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(map[string]interface{}{
		"name":       "Cafe Analyst",
		"version":    serviceVersion,
		"status":     "online",
		"ai_enabled": aiEnabled,
		"ai_model":   aiModel,
		"endpoints": map[string]string{
			"POST /api/analyze": "Upload POS data and get financial analysis + AI recommendations",
			"GET /api/analyses": "List recent analysis audit entries",
			"GET /api/health":   "Health check",
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		logger.L.Error("Error encoding API root response", "error", err)
	}
}

// HandleHealth is the liveness endpoint.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"ai":        config.Cfg.GroqAPIKey != "",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		logger.L.Error("Error encoding health response", "error", err)
	}
}
