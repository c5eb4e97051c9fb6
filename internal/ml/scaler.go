package ml

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// StandardScaler reproduces the per-feature centering and scaling fitted by
// the training pipeline. Mean and Scale come from the exported artifact and
// are immutable once loaded.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Transform returns (x - mean) / scale. The input slice is not mutated.
func (s *StandardScaler) Transform(x []float64) ([]float64, error) {
	if len(x) != len(s.Mean) {
		return nil, fmt.Errorf("scaler expects %d features, got %d", len(s.Mean), len(x))
	}

	out := make([]float64, len(x))
	copy(out, x)
	floats.Sub(out, s.Mean)
	floats.Div(out, s.Scale)
	return out, nil
}

func (s *StandardScaler) validate() error {
	if len(s.Mean) == 0 {
		return fmt.Errorf("scaler has no features")
	}
	if len(s.Mean) != len(s.Scale) {
		return fmt.Errorf("scaler mean/scale length mismatch: %d vs %d", len(s.Mean), len(s.Scale))
	}
	for i, v := range s.Scale {
		if v == 0 {
			return fmt.Errorf("scaler has zero scale for feature %d", i)
		}
	}
	return nil
}
