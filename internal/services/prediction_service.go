package services

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/features"
	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/metrics"
	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/ml"
	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/models"
)

// historyLimit caps how many records a history query returns.
const historyLimit = 100

// PredictionInput is one validated observation to score.
type PredictionInput struct {
	Values    map[string]float64
	Latitude  *float64
	Longitude *float64
}

// PredictionService runs the inference pipeline: scale, score, apply the
// threshold override, alert, and persist.
type PredictionService struct {
	db     *gorm.DB
	forest *ml.IsolationForest
	scaler *ml.StandardScaler
	alerts AlertDispatcher
	now    func() time.Time
}

// NewPredictionService wires the pipeline. alerts may be nil to disable
// alerting entirely (used by tests).
func NewPredictionService(db *gorm.DB, forest *ml.IsolationForest, scaler *ml.StandardScaler, alerts AlertDispatcher) *PredictionService {
	return &PredictionService{
		db:     db,
		forest: forest,
		scaler: scaler,
		alerts: alerts,
		now:    time.Now,
	}
}

// Predict scores one observation and appends the result to history. The
// final label is CRITICAL when the model flags the point as an outlier OR
// any raw feature strictly exceeds its critical threshold; the two signals
// are deliberately combined with OR so either one alone forces an alert.
func (s *PredictionService) Predict(input PredictionInput) (*models.Prediction, error) {
	x := features.Vector(input.Values)

	scaled, err := s.scaler.Transform(x)
	if err != nil {
		return nil, fmt.Errorf("scale features: %w", err)
	}

	rawPred, err := s.forest.Predict(scaled)
	if err != nil {
		return nil, fmt.Errorf("model predict: %w", err)
	}

	score, err := s.forest.DecisionFunction(scaled)
	if err != nil {
		return nil, fmt.Errorf("model decision function: %w", err)
	}

	label := models.LabelSafe
	if rawPred == -1 || features.ExceedsThreshold(input.Values) {
		label = models.LabelCritical
	}

	// Alerting is synchronous and best-effort; it happens before the row is
	// written and can never fail the request.
	if s.alerts != nil {
		s.alerts.SendAlert(label, input.Latitude, input.Longitude, score)
	}

	featuresJSON, err := json.Marshal(input.Values)
	if err != nil {
		return nil, fmt.Errorf("encode features: %w", err)
	}

	record := &models.Prediction{
		Timestamp:     s.now().In(models.IST).Format(time.RFC3339),
		Latitude:      input.Latitude,
		Longitude:     input.Longitude,
		FeaturesJSON:  string(featuresJSON),
		RawPrediction: rawPred,
		DecisionScore: score,
		Label:         &label,
	}

	if err := s.db.Create(record).Error; err != nil {
		return nil, fmt.Errorf("persist prediction: %w", err)
	}

	metrics.IncPrediction(label)
	return record, nil
}

// Recent returns the newest records ordered by descending id, capped at 100.
func (s *PredictionService) Recent() ([]models.Prediction, error) {
	var records []models.Prediction
	if err := s.db.Order("id DESC").Limit(historyLimit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	return records, nil
}

// Count returns the total number of stored predictions.
func (s *PredictionService) Count() (int64, error) {
	var n int64
	if err := s.db.Model(&models.Prediction{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return n, nil
}
