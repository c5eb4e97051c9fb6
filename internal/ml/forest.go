package ml

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// eulerGamma is the Euler-Mascheroni constant used in the average path
// length approximation for binary search trees.
const eulerGamma = 0.5772156649015329

// Node is one split or leaf of an isolation tree, stored in a flat array.
// Feature == -1 marks a leaf; Size is the number of training samples that
// reached the node during fitting.
type Node struct {
	Feature int     `json:"feature"`
	Value   float64 `json:"value"`
	Left    int     `json:"left"`
	Right   int     `json:"right"`
	Size    int     `json:"size"`
}

// Tree is a single isolation tree rooted at Nodes[0].
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// IsolationForest is the inference-only view of a fitted isolation forest.
// Offset is the decision boundary exported by the training pipeline; with
// the default contamination setting it is 0.5.
type IsolationForest struct {
	NumFeatures int     `json:"num_features"`
	SampleSize  int     `json:"sample_size"`
	Offset      float64 `json:"offset"`
	Trees       []Tree  `json:"trees"`
}

// Score returns the anomaly score s(x) = 2^(-E[h(x)]/c(psi)) in (0, 1].
// Higher scores indicate more isolated, hence more anomalous, points.
func (f *IsolationForest) Score(x []float64) (float64, error) {
	if len(x) != f.NumFeatures {
		return 0, fmt.Errorf("model expects %d features, got %d", f.NumFeatures, len(x))
	}

	depths := make([]float64, len(f.Trees))
	for i := range f.Trees {
		depths[i] = f.Trees[i].pathLength(x)
	}

	return math.Exp2(-stat.Mean(depths, nil) / averagePathLength(f.SampleSize)), nil
}

// DecisionFunction returns offset - s(x). Negative values are anomalous,
// more negative meaning more anomalous.
func (f *IsolationForest) DecisionFunction(x []float64) (float64, error) {
	score, err := f.Score(x)
	if err != nil {
		return 0, err
	}
	return f.Offset - score, nil
}

// Predict returns -1 for anomalies and +1 for normal points.
func (f *IsolationForest) Predict(x []float64) (int, error) {
	df, err := f.DecisionFunction(x)
	if err != nil {
		return 0, err
	}
	if df < 0 {
		return -1, nil
	}
	return 1, nil
}

// pathLength walks x down the tree and returns the depth at termination
// plus the average-path-length adjustment for the leaf's sample size.
func (t *Tree) pathLength(x []float64) float64 {
	depth := 0.0
	i := 0
	for {
		n := t.Nodes[i]
		if n.Feature < 0 {
			return depth + averagePathLength(n.Size)
		}
		depth++
		if x[n.Feature] <= n.Value {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// averagePathLength is c(n), the expected path length of an unsuccessful
// search in a binary search tree of n points.
func averagePathLength(n int) float64 {
	switch {
	case n <= 1:
		return 0
	case n == 2:
		return 1
	default:
		fn := float64(n)
		return 2*(math.Log(fn-1)+eulerGamma) - 2*(fn-1)/fn
	}
}

func (f *IsolationForest) validate() error {
	if f.NumFeatures <= 0 {
		return fmt.Errorf("model has no feature dimension")
	}
	if f.SampleSize < 2 {
		return fmt.Errorf("model sample size %d is too small", f.SampleSize)
	}
	if len(f.Trees) == 0 {
		return fmt.Errorf("model has no trees")
	}
	for ti, tree := range f.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("tree %d is empty", ti)
		}
		for ni, n := range tree.Nodes {
			if n.Feature < 0 {
				continue
			}
			if n.Feature >= f.NumFeatures {
				return fmt.Errorf("tree %d node %d splits on unknown feature %d", ti, ni, n.Feature)
			}
			if n.Left <= ni || n.Left >= len(tree.Nodes) || n.Right <= ni || n.Right >= len(tree.Nodes) {
				return fmt.Errorf("tree %d node %d has out-of-range children", ti, ni)
			}
		}
	}
	return nil
}
