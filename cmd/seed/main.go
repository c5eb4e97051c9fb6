// Command seed writes a small demo scaler and isolation-forest artifact so
// the service can boot locally without the real training pipeline. The demo
// forest isolates observations with an unusually high stage of extraction;
// it is a stand-in, not a trained model.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/features"
	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/ml"
)

// Rough per-feature means and spreads from the historical assessment data
// the thresholds came from.
var demoMeans = []float64{9000, 1500, 900, 2000, 1100, 7000, 900, 5500, 45}
var demoScales = []float64{11000, 2600, 1400, 3400, 1500, 9800, 1200, 7300, 22}

func main() {
	dir := "model"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatalf("create artifact directory: %v", err)
	}

	scaler := &ml.StandardScaler{Mean: demoMeans, Scale: demoScales}

	n := len(features.Order)
	stage := n - 1 // "Stage of Ground Water Extraction (%)", scaled

	// Each tree splits on the stage of extraction at a slightly different
	// standardized cut, then on net availability, so extreme observations
	// end up in shallow singleton leaves.
	var trees []ml.Tree
	for _, cut := range []float64{0.6, 0.7, 0.8, 0.9, 1.0} {
		trees = append(trees, ml.Tree{Nodes: []ml.Node{
			{Feature: stage, Value: cut, Left: 1, Right: 4},
			{Feature: 7, Value: 1.5, Left: 2, Right: 3},
			{Feature: -1, Size: 200},
			{Feature: -1, Size: 12},
			{Feature: -1, Size: 1},
		}})
	}

	forest := &ml.IsolationForest{
		NumFeatures: n,
		SampleSize:  256,
		Offset:      0.5,
		Trees:       trees,
	}

	modelPath := filepath.Join(dir, "final_isolation_forest_model.json")
	scalerPath := filepath.Join(dir, "scaler.json")

	if err := forest.Save(modelPath); err != nil {
		log.Fatalf("write model: %v", err)
	}
	if err := scaler.Save(scalerPath); err != nil {
		log.Fatalf("write scaler: %v", err)
	}

	fmt.Printf("wrote %s and %s\n", modelPath, scalerPath)
}
