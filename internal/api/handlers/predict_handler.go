package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/api/middleware"
	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/features"
	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/services"
)

type PredictHandler struct {
	service *services.PredictionService
}

func NewPredictHandler(service *services.PredictionService) *PredictHandler {
	return &PredictHandler{service: service}
}

// Predict validates the submitted feature payload, runs the inference
// pipeline, and returns the final classification.
func (h *PredictHandler) Predict(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid JSON payload"})
		return
	}

	vals, err := features.Values(payload)
	if err != nil {
		if errors.Is(err, features.ErrMissingFeature) || errors.Is(err, features.ErrInvalidNumeric) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid feature payload"})
		return
	}

	record, err := h.service.Predict(services.PredictionInput{
		Values:    vals,
		Latitude:  optionalCoordinate(payload, "latitude"),
		Longitude: optionalCoordinate(payload, "longitude"),
	})
	if err != nil {
		middleware.GetRequestLogger(c).WithError(err).Error("prediction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "prediction failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"label":          record.EffectiveLabel(),
		"raw_prediction": record.RawPrediction,
		"decision_score": record.DecisionScore,
	})
}

// optionalCoordinate returns nil when the field is absent or not castable;
// coordinates never fail a request.
func optionalCoordinate(payload map[string]any, key string) *float64 {
	raw, ok := payload[key]
	if !ok || raw == nil {
		return nil
	}
	v, err := features.Numeric(raw)
	if err != nil {
		return nil
	}
	return &v
}
