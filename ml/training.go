package ml

import (
	"errors"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"

	"assettco/asset"
)

// RemoveOutliers drops records whose maintenance/price ratio sits more
// than threshold standard deviations from the corpus mean. Data-entry
// errors would otherwise dominate the variance splits.
func RemoveOutliers(records []asset.Record, threshold float64) []asset.Record {
	if threshold <= 0 {
		threshold = 3.0
	}
	if len(records) < 3 {
		return records
	}

	ratios := make([]float64, len(records))
	for i, rec := range records {
		if rec.PurchasePrice > 0 {
			ratios[i] = rec.AnnualMaintenance / rec.PurchasePrice
		}
	}

	m := stat.Mean(ratios, nil)
	sd := stat.StdDev(ratios, nil)
	if sd == 0 {
		return records
	}

	kept := make([]asset.Record, 0, len(records))
	for i, rec := range records {
		z := math.Abs((ratios[i] - m) / sd)
		if z < threshold {
			kept = append(kept, rec)
		}
	}
	return kept
}

// SplitDataset shuffles and partitions into train and test sets.
func SplitDataset(features [][]float64, targets []float64, testRatio float64, seed int64) (trainX [][]float64, trainY []float64, testX [][]float64, testY []float64, err error) {
	if len(features) != len(targets) {
		return nil, nil, nil, nil, errors.New("features and targets size mismatch")
	}
	if len(features) == 0 {
		return nil, nil, nil, nil, errors.New("features is empty")
	}
	if testRatio <= 0 || testRatio >= 1 {
		testRatio = 0.2
	}
	if seed == 0 {
		seed = 42
	}

	rnd := rand.New(rand.NewSource(seed))
	indices := rnd.Perm(len(features))
	split := int(math.Round(float64(len(features)) * (1 - testRatio)))

	for i, idx := range indices {
		if i < split {
			trainX = append(trainX, features[idx])
			trainY = append(trainY, targets[idx])
		} else {
			testX = append(testX, features[idx])
			testY = append(testY, targets[idx])
		}
	}
	return trainX, trainY, testX, testY, nil
}
