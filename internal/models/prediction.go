package models

import "time"

// Final classification labels for a scored observation.
const (
	LabelCritical = "CRITICAL"
	LabelSafe     = "SAFE"
)

// IST is the fixed UTC+5:30 offset used for persisted timestamps.
var IST = time.FixedZone("IST", 5*3600+30*60)

// Prediction is one scored groundwater observation. Rows are append-only;
// nothing updates or deletes them after insert.
type Prediction struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Timestamp string `json:"timestamp"`

	// State and District are carried in the schema but never populated.
	State    *string `json:"-"`
	District *string `json:"-"`

	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	FeaturesJSON  string   `gorm:"column:features_json" json:"-"`
	RawPrediction int      `json:"raw_prediction"`
	DecisionScore float64  `json:"decision_score"`
	Label         *string  `json:"label"`
}

func (Prediction) TableName() string {
	return "predictions"
}

// EffectiveLabel returns the stored label, deriving it from the raw verdict
// for legacy rows inserted before the label column existed.
func (p *Prediction) EffectiveLabel() string {
	if p.Label != nil && *p.Label != "" {
		return *p.Label
	}
	if p.RawPrediction == -1 {
		return LabelCritical
	}
	return LabelSafe
}
