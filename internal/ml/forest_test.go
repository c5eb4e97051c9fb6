package ml

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubForest splits on feature 0 at zero: negative values land in a
// singleton leaf (short path, anomalous), positive values in a full leaf
// (long path, normal).
func stubForest() *IsolationForest {
	return &IsolationForest{
		NumFeatures: 9,
		SampleSize:  256,
		Offset:      0.5,
		Trees: []Tree{{Nodes: []Node{
			{Feature: 0, Value: 0, Left: 1, Right: 2},
			{Feature: -1, Size: 1},
			{Feature: -1, Size: 256},
		}}},
	}
}

func sample(first float64) []float64 {
	x := make([]float64, 9)
	x[0] = first
	return x
}

func TestAveragePathLength(t *testing.T) {
	assert.Zero(t, averagePathLength(0))
	assert.Zero(t, averagePathLength(1))
	assert.Equal(t, 1.0, averagePathLength(2))
	assert.InDelta(t, 1.2074, averagePathLength(3), 1e-4)
	assert.Greater(t, averagePathLength(256), averagePathLength(100))
}

func TestPredictVerdictDomain(t *testing.T) {
	f := stubForest()

	for _, first := range []float64{-100, -1, 1, 100} {
		verdict, err := f.Predict(sample(first))
		require.NoError(t, err)
		assert.Contains(t, []int{-1, 1}, verdict)
	}
}

func TestPredictIsolatesShortPaths(t *testing.T) {
	f := stubForest()

	verdict, err := f.Predict(sample(-1))
	require.NoError(t, err)
	assert.Equal(t, -1, verdict)

	verdict, err = f.Predict(sample(1))
	require.NoError(t, err)
	assert.Equal(t, 1, verdict)
}

func TestDecisionFunctionSignMatchesVerdict(t *testing.T) {
	f := stubForest()

	df, err := f.DecisionFunction(sample(-1))
	require.NoError(t, err)
	assert.Negative(t, df)

	df, err = f.DecisionFunction(sample(1))
	require.NoError(t, err)
	assert.Positive(t, df)
}

func TestScoreRange(t *testing.T) {
	f := stubForest()

	for _, first := range []float64{-5, 0, 5} {
		s, err := f.Score(sample(first))
		require.NoError(t, err)
		assert.Greater(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}

func TestPredictDimensionMismatch(t *testing.T) {
	f := stubForest()

	_, err := f.Predict([]float64{1, 2, 3})
	assert.Error(t, err)
}

func TestValidateRejectsBrokenTrees(t *testing.T) {
	f := stubForest()
	require.NoError(t, f.validate())

	f.Trees[0].Nodes[0].Feature = 42
	assert.Error(t, f.validate())

	f = stubForest()
	f.Trees[0].Nodes[0].Left = 0 // child pointing back at an ancestor
	assert.Error(t, f.validate())

	f = stubForest()
	f.Trees = nil
	assert.Error(t, f.validate())
}

func TestScaledScoresAreFinite(t *testing.T) {
	f := stubForest()
	s, err := f.Score(sample(math.MaxFloat64))
	require.NoError(t, err)
	assert.False(t, math.IsNaN(s))
}
