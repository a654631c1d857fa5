package ml

import (
	"encoding/json"
	"errors"
	"math"
	"math/rand"
	"os"
)

// Forest is a bagged ensemble of regression trees. Each tree sees a
// bootstrap sample and a random subset of features; the spread of the
// per-tree predictions drives the confidence score.
type Forest struct {
	Trees        []*RegressionTree `json:"trees"`
	FeatureCount int               `json:"feature_count"`
}

type ForestConfig struct {
	NumTrees       int
	MaxDepth       int
	MinSamplesLeaf int
	Seed           int64
}

func (fc ForestConfig) normalized() ForestConfig {
	if fc.NumTrees <= 0 {
		fc.NumTrees = 100
	}
	if fc.MaxDepth <= 0 {
		fc.MaxDepth = 15
	}
	if fc.MinSamplesLeaf <= 0 {
		fc.MinSamplesLeaf = 3
	}
	if fc.Seed == 0 {
		fc.Seed = 42
	}
	return fc
}

func (f *Forest) Train(features [][]float64, targets []float64, config ForestConfig) error {
	if len(features) == 0 || len(targets) == 0 {
		return errors.New("features or targets empty")
	}
	if len(features) != len(targets) {
		return errors.New("features and targets size mismatch")
	}
	config = config.normalized()

	f.FeatureCount = len(features[0])
	f.Trees = make([]*RegressionTree, 0, config.NumTrees)
	rnd := rand.New(rand.NewSource(config.Seed))

	// 1/3 of features per tree, the usual regression-forest ratio.
	subsetSize := f.FeatureCount / 3
	if subsetSize < 2 {
		subsetSize = 2
	}
	if subsetSize > f.FeatureCount {
		subsetSize = f.FeatureCount
	}

	n := len(features)
	for t := 0; t < config.NumTrees; t++ {
		sampleFeatures := make([][]float64, n)
		sampleTargets := make([]float64, n)
		for i := 0; i < n; i++ {
			idx := rnd.Intn(n)
			sampleFeatures[i] = features[idx]
			sampleTargets[i] = targets[idx]
		}

		allowed := rnd.Perm(f.FeatureCount)[:subsetSize]

		tree := &RegressionTree{}
		err := tree.Train(sampleFeatures, sampleTargets, TreeConfig{
			MaxDepth:        config.MaxDepth,
			MinSamplesLeaf:  config.MinSamplesLeaf,
			AllowedFeatures: allowed,
		})
		if err != nil {
			return err
		}
		f.Trees = append(f.Trees, tree)
	}
	return nil
}

// Predict returns the ensemble mean and the per-tree standard deviation.
func (f *Forest) Predict(features []float64) (prediction, spread float64, err error) {
	if len(f.Trees) == 0 {
		return 0, 0, errors.New("model not trained")
	}
	values := make([]float64, 0, len(f.Trees))
	for _, tree := range f.Trees {
		v, err := tree.Predict(features)
		if err != nil {
			return 0, 0, err
		}
		values = append(values, v)
	}
	return mean(values), stdDev(values), nil
}

// FeatureImportance sums normalized variance reduction across trees.
func (f *Forest) FeatureImportance() []float64 {
	importance := make([]float64, f.FeatureCount)
	for _, tree := range f.Trees {
		for i, v := range tree.Importance {
			if i < len(importance) {
				importance[i] += v
			}
		}
	}
	total := 0.0
	for _, v := range importance {
		total += v
	}
	if total > 0 {
		for i := range importance {
			importance[i] = importance[i] / total
		}
	}
	for i := range importance {
		importance[i] = math.Round(importance[i]*10000) / 10000
	}
	return importance
}

func (f *Forest) Save(path string) error {
	if len(f.Trees) == 0 {
		return errors.New("model not trained")
	}
	payload, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}

func (f *Forest) Load(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var loaded Forest
	if err := json.Unmarshal(payload, &loaded); err != nil {
		return err
	}
	if len(loaded.Trees) == 0 {
		return errors.New("model file contains no trees")
	}
	*f = loaded
	return nil
}
