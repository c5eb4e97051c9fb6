package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveLabelStored(t *testing.T) {
	label := LabelSafe
	p := Prediction{RawPrediction: -1, Label: &label}
	assert.Equal(t, LabelSafe, p.EffectiveLabel())
}

func TestEffectiveLabelDerivedFromVerdict(t *testing.T) {
	anomalous := Prediction{RawPrediction: -1}
	assert.Equal(t, LabelCritical, anomalous.EffectiveLabel())

	normal := Prediction{RawPrediction: 1}
	assert.Equal(t, LabelSafe, normal.EffectiveLabel())

	empty := ""
	legacy := Prediction{RawPrediction: -1, Label: &empty}
	assert.Equal(t, LabelCritical, legacy.EffectiveLabel())
}

func TestISTOffset(t *testing.T) {
	ts := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC).In(IST)
	assert.Equal(t, "2026-01-15T17:30:00+05:30", ts.Format(time.RFC3339))
}
