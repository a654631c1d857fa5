package ml

import (
	"errors"
	"math"
	"sort"
)

// RegressionTree predicts a continuous target by variance-reduction
// splits. Nodes live in a flat slice with child indexes so the whole
// tree serializes as one JSON array.
type RegressionTree struct {
	Nodes      []TreeNode `json:"nodes"`
	Importance []float64  `json:"importance,omitempty"`
}

type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	Value      float64 `json:"value"`
	Samples    int     `json:"samples"`
	IsLeaf     bool    `json:"is_leaf"`
}

type TreeConfig struct {
	MaxDepth       int
	MinSamplesLeaf int

	// AllowedFeatures restricts split candidates; nil means all.
	AllowedFeatures []int
}

func (tc TreeConfig) normalized() TreeConfig {
	if tc.MaxDepth <= 0 {
		tc.MaxDepth = 15
	}
	if tc.MinSamplesLeaf <= 0 {
		tc.MinSamplesLeaf = 3
	}
	return tc
}

func (rt *RegressionTree) Train(features [][]float64, targets []float64, config TreeConfig) error {
	if len(features) == 0 || len(targets) == 0 {
		return errors.New("features or targets empty")
	}
	if len(features) != len(targets) {
		return errors.New("features and targets size mismatch")
	}
	config = config.normalized()

	rt.Importance = make([]float64, len(features[0]))
	rt.Nodes = rt.buildNode(features, targets, 0, config)
	return nil
}

func (rt *RegressionTree) Predict(features []float64) (float64, error) {
	if len(rt.Nodes) == 0 {
		return 0, errors.New("model not trained")
	}
	idx := 0
	for {
		node := rt.Nodes[idx]
		if node.IsLeaf {
			return node.Value, nil
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(features) {
			return 0, errors.New("feature index out of range")
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
		if idx < 0 || idx >= len(rt.Nodes) {
			return 0, errors.New("invalid tree state")
		}
	}
}

func (rt *RegressionTree) buildNode(features [][]float64, targets []float64, depth int, config TreeConfig) []TreeNode {
	value := mean(targets)
	leaf := []TreeNode{{
		FeatureIdx: -1,
		LeftChild:  -1,
		RightChild: -1,
		Value:      value,
		Samples:    len(targets),
		IsLeaf:     true,
	}}

	if depth >= config.MaxDepth || len(targets) < 2*config.MinSamplesLeaf {
		return leaf
	}

	bestFeature, threshold, reduction, ok := rt.findBestSplit(features, targets, config)
	if !ok {
		return leaf
	}

	leftFeatures, leftTargets, rightFeatures, rightTargets := splitData(features, targets, bestFeature, threshold)
	if len(leftTargets) < config.MinSamplesLeaf || len(rightTargets) < config.MinSamplesLeaf {
		return leaf
	}

	rt.Importance[bestFeature] += reduction * float64(len(targets))

	leftNodes := rt.buildNode(leftFeatures, leftTargets, depth+1, config)
	rightNodes := rt.buildNode(rightFeatures, rightTargets, depth+1, config)

	root := TreeNode{
		FeatureIdx: bestFeature,
		Threshold:  threshold,
		LeftChild:  1,
		RightChild: 1 + len(leftNodes),
		Value:      value,
		Samples:    len(targets),
		IsLeaf:     false,
	}

	nodes := make([]TreeNode, 0, 1+len(leftNodes)+len(rightNodes))
	nodes = append(nodes, root)
	nodes = append(nodes, leftNodes...)
	nodes = append(nodes, rightNodes...)
	return nodes
}

func (rt *RegressionTree) findBestSplit(features [][]float64, targets []float64, config TreeConfig) (int, float64, float64, bool) {
	featureCount := len(features[0])
	candidates := config.AllowedFeatures
	if candidates == nil {
		candidates = make([]int, featureCount)
		for i := range candidates {
			candidates[i] = i
		}
	}

	parentVariance := variance(targets)
	bestFeature := -1
	bestThreshold := 0.0
	bestReduction := 0.0

	values := make([]float64, len(features))
	for _, featureIdx := range candidates {
		if featureIdx < 0 || featureIdx >= featureCount {
			continue
		}
		for i := range features {
			values[i] = features[i][featureIdx]
		}
		for _, threshold := range splitCandidates(values) {
			leftTargets, rightTargets := splitTargets(features, targets, featureIdx, threshold)
			if len(leftTargets) == 0 || len(rightTargets) == 0 {
				continue
			}
			reduction := parentVariance - weightedVariance(leftTargets, rightTargets)
			if reduction > bestReduction {
				bestReduction = reduction
				bestFeature = featureIdx
				bestThreshold = threshold
			}
		}
	}
	if bestFeature == -1 {
		return -1, 0, 0, false
	}
	return bestFeature, bestThreshold, bestReduction, true
}

// splitCandidates takes the quartiles of a column as thresholds.
func splitCandidates(values []float64) []float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n < 4 {
		return []float64{sorted[n/2]}
	}
	out := []float64{sorted[n/4], sorted[n/2], sorted[3*n/4]}
	unique := out[:0]
	for i, v := range out {
		if i == 0 || v != out[i-1] {
			unique = append(unique, v)
		}
	}
	return unique
}

func splitData(features [][]float64, targets []float64, featureIdx int, threshold float64) ([][]float64, []float64, [][]float64, []float64) {
	var leftFeatures, rightFeatures [][]float64
	var leftTargets, rightTargets []float64
	for i, feature := range features {
		if feature[featureIdx] <= threshold {
			leftFeatures = append(leftFeatures, feature)
			leftTargets = append(leftTargets, targets[i])
		} else {
			rightFeatures = append(rightFeatures, feature)
			rightTargets = append(rightTargets, targets[i])
		}
	}
	return leftFeatures, leftTargets, rightFeatures, rightTargets
}

func splitTargets(features [][]float64, targets []float64, featureIdx int, threshold float64) ([]float64, []float64) {
	var left, right []float64
	for i, feature := range features {
		if feature[featureIdx] <= threshold {
			left = append(left, targets[i])
		} else {
			right = append(right, targets[i])
		}
	}
	return left, right
}

func weightedVariance(left, right []float64) float64 {
	lw := float64(len(left))
	rw := float64(len(right))
	total := lw + rw
	return (lw/total)*variance(left) + (rw/total)*variance(right)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func variance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		diff := v - m
		sum += diff * diff
	}
	return sum / float64(len(values))
}

func stdDev(values []float64) float64 {
	return math.Sqrt(variance(values))
}
