package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayload() map[string]any {
	payload := make(map[string]any, len(Order))
	for i, name := range Order {
		payload[name] = float64(i + 1)
	}
	return payload
}

func TestValuesAndVectorOrder(t *testing.T) {
	vals, err := Values(validPayload())
	require.NoError(t, err)
	require.Len(t, vals, 9)

	x := Vector(vals)
	require.Len(t, x, 9)
	for i := range Order {
		assert.Equal(t, float64(i+1), x[i])
	}
}

func TestValuesMissingFeature(t *testing.T) {
	payload := validPayload()
	delete(payload, "Total Natural Discharges")

	_, err := Values(payload)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingFeature)
	assert.Contains(t, err.Error(), "Total Natural Discharges")
}

func TestValuesNonNumeric(t *testing.T) {
	payload := validPayload()
	payload[Order[0]] = "not a number"

	_, err := Values(payload)
	assert.ErrorIs(t, err, ErrInvalidNumeric)

	payload[Order[0]] = map[string]any{"value": 1.0}
	_, err = Values(payload)
	assert.ErrorIs(t, err, ErrInvalidNumeric)
}

func TestValuesAcceptsNumericStrings(t *testing.T) {
	payload := validPayload()
	payload[Order[0]] = "42.5"

	vals, err := Values(payload)
	require.NoError(t, err)
	assert.Equal(t, 42.5, vals[Order[0]])
}

func TestExceedsThreshold(t *testing.T) {
	vals := make(map[string]float64, len(Order))
	for _, name := range Order {
		vals[name] = 0
	}
	assert.False(t, ExceedsThreshold(vals))

	// A value exactly at the threshold does not trigger.
	vals["Stage of Ground Water Extraction (%)"] = 60.7
	assert.False(t, ExceedsThreshold(vals))

	vals["Stage of Ground Water Extraction (%)"] = 61.0
	assert.True(t, ExceedsThreshold(vals))
}

func TestThresholdsCoverSchema(t *testing.T) {
	require.Len(t, CriticalThresholds, len(Order))
	for _, name := range Order {
		_, ok := CriticalThresholds[name]
		assert.True(t, ok, "threshold missing for %q", name)
	}
}
