package ml

import (
	"math"
	"testing"
)

// step function on feature 0: at most 10 yields 10, beyond yields 100
func stepData() ([][]float64, []float64) {
	var features [][]float64
	var targets []float64
	for i := 0; i < 20; i++ {
		v := float64(i)
		features = append(features, []float64{v, 0})
		if v <= 10 {
			targets = append(targets, 10)
		} else {
			targets = append(targets, 100)
		}
	}
	return features, targets
}

func TestTreeLearnsStepFunction(t *testing.T) {
	features, targets := stepData()

	tree := &RegressionTree{}
	if err := tree.Train(features, targets, TreeConfig{MaxDepth: 4, MinSamplesLeaf: 2}); err != nil {
		t.Fatal(err)
	}

	low, err := tree.Predict([]float64{2, 0})
	if err != nil {
		t.Fatal(err)
	}
	high, err := tree.Predict([]float64{15, 0})
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(low-10) > 1 {
		t.Errorf("low prediction = %v, want ~10", low)
	}
	if math.Abs(high-100) > 1 {
		t.Errorf("high prediction = %v, want ~100", high)
	}
}

func TestTreeRespectsMinSamplesLeaf(t *testing.T) {
	features, targets := stepData()

	tree := &RegressionTree{}
	if err := tree.Train(features, targets, TreeConfig{MaxDepth: 10, MinSamplesLeaf: 5}); err != nil {
		t.Fatal(err)
	}

	for _, node := range tree.Nodes {
		if node.IsLeaf && node.Samples < 5 {
			t.Errorf("leaf with %d samples violates minimum of 5", node.Samples)
		}
	}
}

func TestTreeImportanceOnSplitFeature(t *testing.T) {
	features, targets := stepData()

	tree := &RegressionTree{}
	if err := tree.Train(features, targets, TreeConfig{MaxDepth: 4, MinSamplesLeaf: 2}); err != nil {
		t.Fatal(err)
	}

	if tree.Importance[0] <= 0 {
		t.Errorf("importance of the splitting feature = %v, want > 0", tree.Importance[0])
	}
	if tree.Importance[1] != 0 {
		t.Errorf("importance of the constant feature = %v, want 0", tree.Importance[1])
	}
}

func TestTreeSingleValueIsLeaf(t *testing.T) {
	tree := &RegressionTree{}
	err := tree.Train([][]float64{{1}, {2}, {3}}, []float64{7, 7, 7}, TreeConfig{})
	if err != nil {
		t.Fatal(err)
	}

	got, err := tree.Predict([]float64{99})
	if err != nil {
		t.Fatal(err)
	}
	if got != 7 {
		t.Errorf("prediction = %v, want 7", got)
	}
}

func TestPredictBeforeTrainFails(t *testing.T) {
	tree := &RegressionTree{}
	if _, err := tree.Predict([]float64{1}); err == nil {
		t.Error("expected error for untrained tree")
	}
}
