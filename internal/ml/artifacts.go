// Package ml loads and evaluates the fitted scaler and isolation-forest
// artifacts exported by the training pipeline. Artifacts are read once at
// startup and never reloaded.
package ml

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadArtifacts reads both fitted artifacts from disk. Any missing or
// corrupt file is an error; the caller treats that as fatal at startup.
func LoadArtifacts(modelPath, scalerPath string) (*IsolationForest, *StandardScaler, error) {
	forest := &IsolationForest{}
	if err := readArtifact(modelPath, forest); err != nil {
		return nil, nil, fmt.Errorf("load model: %w", err)
	}
	if err := forest.validate(); err != nil {
		return nil, nil, fmt.Errorf("load model %s: %w", modelPath, err)
	}

	scaler := &StandardScaler{}
	if err := readArtifact(scalerPath, scaler); err != nil {
		return nil, nil, fmt.Errorf("load scaler: %w", err)
	}
	if err := scaler.validate(); err != nil {
		return nil, nil, fmt.Errorf("load scaler %s: %w", scalerPath, err)
	}

	if forest.NumFeatures != len(scaler.Mean) {
		return nil, nil, fmt.Errorf("artifact mismatch: model expects %d features, scaler has %d", forest.NumFeatures, len(scaler.Mean))
	}

	return forest, scaler, nil
}

// Save writes the forest artifact as JSON.
func (f *IsolationForest) Save(path string) error {
	return writeArtifact(path, f)
}

// Save writes the scaler artifact as JSON.
func (s *StandardScaler) Save(path string) error {
	return writeArtifact(path, s)
}

func readArtifact(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeArtifact(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
