package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/api/middleware"
	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/services"
)

type HistoryHandler struct {
	service *services.PredictionService
}

func NewHistoryHandler(service *services.PredictionService) *HistoryHandler {
	return &HistoryHandler{service: service}
}

// HistoryEntry is one stored prediction, with the feature mapping decoded
// back out of its persisted encoding.
type HistoryEntry struct {
	ID            uint               `json:"id"`
	Timestamp     string             `json:"timestamp"`
	Latitude      *float64           `json:"latitude"`
	Longitude     *float64           `json:"longitude"`
	Features      map[string]float64 `json:"features"`
	RawPrediction int                `json:"raw_prediction"`
	DecisionScore float64            `json:"decision_score"`
	Label         string             `json:"label"`
}

// List returns the newest 100 predictions, newest first.
func (h *HistoryHandler) List(c *gin.Context) {
	records, err := h.service.Recent()
	if err != nil {
		middleware.GetRequestLogger(c).WithError(err).Error("history query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to load history"})
		return
	}

	entries := make([]HistoryEntry, 0, len(records))
	for _, r := range records {
		var feats map[string]float64
		if err := json.Unmarshal([]byte(r.FeaturesJSON), &feats); err != nil {
			middleware.GetRequestLogger(c).WithError(err).WithField("id", r.ID).Warn("stored features are not decodable")
		}

		entries = append(entries, HistoryEntry{
			ID:            r.ID,
			Timestamp:     r.Timestamp,
			Latitude:      r.Latitude,
			Longitude:     r.Longitude,
			Features:      feats,
			RawPrediction: r.RawPrediction,
			DecisionScore: r.DecisionScore,
			Label:         r.EffectiveLabel(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "history": entries})
}
