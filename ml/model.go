package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"assettco/asset"
)

// RegressionModel predicts a target and a spread from a feature vector.
type RegressionModel interface {
	Predict(features []float64) (prediction, spread float64, err error)
}

// ModelProvider is what the HTTP layer depends on: a full asset record
// in, a prediction out.
type ModelProvider interface {
	Predict(rec asset.Record) (PredictionResult, error)
}

// TrainingStats is persisted alongside the model artifact.
type TrainingStats struct {
	Timestamp         time.Time          `json:"timestamp"`
	TrainingAssets    int                `json:"n_training_assets"`
	TestAssets        int                `json:"n_test_assets"`
	OutliersRemoved   int                `json:"outliers_removed"`
	Train             EvalMetrics        `json:"train"`
	Test              EvalMetrics        `json:"test"`
	FeatureImportance map[string]float64 `json:"feature_importance"`
	FeatureCount      int                `json:"n_features"`
	TreeCount         int                `json:"n_trees"`
}

// Bundle is the single JSON model artifact: the forest plus everything
// needed to reproduce the feature pipeline at predict time.
type Bundle struct {
	Forest       *Forest                  `json:"forest"`
	Encoders     map[string]*LabelEncoder `json:"encoders"`
	Scaler       *Scaler                  `json:"scaler"`
	FeatureNames []string                 `json:"feature_names"`
	Stats        TrainingStats            `json:"training_stats"`
}

func (b *Bundle) Save(path string) error {
	if b.Forest == nil || len(b.Forest.Trees) == 0 {
		return errors.New("no trained model to save")
	}
	payload, err := json.Marshal(b)
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}

func LoadBundle(path string) (*Bundle, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var bundle Bundle
	if err := json.Unmarshal(payload, &bundle); err != nil {
		return nil, fmt.Errorf("parse model file: %w", err)
	}
	if bundle.Forest == nil || len(bundle.Forest.Trees) == 0 {
		return nil, errors.New("model file contains no trees")
	}
	if bundle.Scaler == nil || len(bundle.Encoders) == 0 {
		return nil, errors.New("model file is missing the feature pipeline")
	}
	return &bundle, nil
}
