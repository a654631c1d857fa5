package ml

import (
	"errors"
	"math"
	"time"

	"assettco/asset"
)

type TrainOptions struct {
	NumTrees         int
	MaxDepth         int
	MinSamplesLeaf   int
	TestRatio        float64
	OutlierThreshold float64
	Seed             int64
}

// Train runs the whole pipeline: outlier removal, encoder fit,
// vectorization, split, scaling, forest training and evaluation.
func Train(records []asset.Record, opts TrainOptions) (*Bundle, error) {
	if len(records) < 20 {
		return nil, errors.New("need at least 20 training records")
	}

	clean := RemoveOutliers(records, opts.OutlierThreshold)
	outliersRemoved := len(records) - len(clean)

	encoders, err := FitEncoders(clean)
	if err != nil {
		return nil, err
	}
	vectors, err := VectorizeAll(clean, encoders)
	if err != nil {
		return nil, err
	}

	targets := make([]float64, len(clean))
	for i, rec := range clean {
		targets[i] = rec.AnnualMaintenance
	}

	trainX, trainY, testX, testY, err := SplitDataset(vectors, targets, opts.TestRatio, opts.Seed)
	if err != nil {
		return nil, err
	}

	scaler := &Scaler{}
	if err := scaler.Fit(trainX); err != nil {
		return nil, err
	}
	scaledTrainX, err := scaler.TransformAll(trainX)
	if err != nil {
		return nil, err
	}
	scaledTestX, err := scaler.TransformAll(testX)
	if err != nil {
		return nil, err
	}

	forest := &Forest{}
	err = forest.Train(scaledTrainX, trainY, ForestConfig{
		NumTrees:       opts.NumTrees,
		MaxDepth:       opts.MaxDepth,
		MinSamplesLeaf: opts.MinSamplesLeaf,
		Seed:           opts.Seed,
	})
	if err != nil {
		return nil, err
	}

	trainMetrics, err := evaluateSet(forest, scaledTrainX, trainY)
	if err != nil {
		return nil, err
	}
	testMetrics, err := evaluateSet(forest, scaledTestX, testY)
	if err != nil {
		return nil, err
	}

	names := FeatureNames()
	importance := make(map[string]float64, len(names))
	for i, v := range forest.FeatureImportance() {
		if i < len(names) {
			importance[names[i]] = v
		}
	}

	return &Bundle{
		Forest:       forest,
		Encoders:     encoders,
		Scaler:       scaler,
		FeatureNames: names,
		Stats: TrainingStats{
			Timestamp:         time.Now(),
			TrainingAssets:    len(trainX),
			TestAssets:        len(testX),
			OutliersRemoved:   outliersRemoved,
			Train:             roundMetrics(trainMetrics),
			Test:              roundMetrics(testMetrics),
			FeatureImportance: importance,
			FeatureCount:      len(names),
			TreeCount:         len(forest.Trees),
		},
	}, nil
}

func evaluateSet(forest *Forest, features [][]float64, targets []float64) (EvalMetrics, error) {
	if len(features) == 0 {
		return EvalMetrics{}, nil
	}
	predicted := make([]float64, len(features))
	for i, vec := range features {
		p, _, err := forest.Predict(vec)
		if err != nil {
			return EvalMetrics{}, err
		}
		predicted[i] = p
	}
	return Evaluate(targets, predicted)
}

func roundMetrics(m EvalMetrics) EvalMetrics {
	return EvalMetrics{
		MAE:  math.Round(m.MAE*100) / 100,
		RMSE: math.Round(m.RMSE*100) / 100,
		R2:   math.Round(m.R2*10000) / 10000,
	}
}
