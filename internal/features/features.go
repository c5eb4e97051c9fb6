// Package features defines the canonical groundwater feature schema: the
// fixed input order the model was trained on and the static per-feature
// critical thresholds used for the rule-based override.
package features

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Order is the canonical feature order. The model and scaler were fitted on
// vectors in exactly this order, so it must never be rearranged.
var Order = []string{
	"Recharge from rainfall During Monsoon Season",
	"Recharge from other sources During Monsoon Season",
	"Recharge from rainfall During Non Monsoon Season",
	"Recharge from other sources During Non Monsoon Season",
	"Total Natural Discharges",
	"Current Annual Ground Water Extraction For Irrigation",
	"Current Annual Ground Water Extraction For Domestic & Industrial Use",
	"Net Ground Water Availability for future use",
	"Stage of Ground Water Extraction (%)",
}

// CriticalThresholds maps each feature to the value above which it forces a
// CRITICAL classification on its own. Constants from the historical dataset.
var CriticalThresholds = map[string]float64{
	"Recharge from rainfall During Monsoon Season":                         40075,
	"Recharge from other sources During Monsoon Season":                    9366,
	"Recharge from rainfall During Non Monsoon Season":                     4850,
	"Recharge from other sources During Non Monsoon Season":                12124,
	"Total Natural Discharges":                                             5597,
	"Current Annual Ground Water Extraction For Irrigation":                35530,
	"Current Annual Ground Water Extraction For Domestic & Industrial Use": 4215,
	"Net Ground Water Availability for future use":                         26498,
	"Stage of Ground Water Extraction (%)":                                 60.7,
}

var (
	ErrMissingFeature = errors.New("missing feature")
	ErrInvalidNumeric = errors.New("invalid numeric value")
)

// Values validates the payload against the schema and returns the named
// measurements. Every feature in Order must be present and castable to a
// float or the whole payload is rejected.
func Values(payload map[string]any) (map[string]float64, error) {
	vals := make(map[string]float64, len(Order))
	for _, name := range Order {
		raw, ok := payload[name]
		if !ok || raw == nil {
			return nil, fmt.Errorf("%w: %q", ErrMissingFeature, name)
		}
		v, err := Numeric(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidNumeric, name)
		}
		vals[name] = v
	}
	return vals, nil
}

// Vector lays the named values out in canonical order.
func Vector(vals map[string]float64) []float64 {
	x := make([]float64, len(Order))
	for i, name := range Order {
		x[i] = vals[name]
	}
	return x
}

// ExceedsThreshold reports whether any value strictly exceeds its critical
// threshold.
func ExceedsThreshold(vals map[string]float64) bool {
	for name, limit := range CriticalThresholds {
		if vals[name] > limit {
			return true
		}
	}
	return false
}

// Numeric coerces a decoded JSON value to a float64. Strings are accepted
// when they parse as floats, matching the presence-and-castability contract.
func Numeric(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		return strconv.ParseFloat(v, 64)
	default:
		return 0, fmt.Errorf("cannot interpret %T as a number", raw)
	}
}
