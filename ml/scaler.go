package ml

import (
	"errors"

	"gonum.org/v1/gonum/stat"
)

// Scaler standardizes feature vectors with the mean and deviation of
// the training split. Constant columns keep a deviation of 1 so they
// pass through unscaled.
type Scaler struct {
	Means []float64 `json:"means"`
	Stds  []float64 `json:"stds"`
}

// Fit computes per-column statistics over the training vectors.
func (s *Scaler) Fit(vectors [][]float64) error {
	if len(vectors) == 0 {
		return errors.New("no vectors to fit")
	}

	cols := len(vectors[0])
	s.Means = make([]float64, cols)
	s.Stds = make([]float64, cols)

	column := make([]float64, len(vectors))
	for c := 0; c < cols; c++ {
		for r, vec := range vectors {
			if len(vec) != cols {
				return errors.New("inconsistent vector width")
			}
			column[r] = vec[c]
		}
		s.Means[c] = stat.Mean(column, nil)
		std := stat.StdDev(column, nil)
		if std == 0 || len(vectors) < 2 {
			std = 1
		}
		s.Stds[c] = std
	}
	return nil
}

// Transform standardizes one vector.
func (s *Scaler) Transform(vector []float64) ([]float64, error) {
	if len(s.Means) == 0 {
		return nil, errors.New("scaler not fitted")
	}
	if len(vector) != len(s.Means) {
		return nil, errors.New("vector width does not match scaler")
	}

	out := make([]float64, len(vector))
	for i, v := range vector {
		out[i] = (v - s.Means[i]) / s.Stds[i]
	}
	return out, nil
}

func (s *Scaler) TransformAll(vectors [][]float64) ([][]float64, error) {
	out := make([][]float64, len(vectors))
	for i, vec := range vectors {
		scaled, err := s.Transform(vec)
		if err != nil {
			return nil, err
		}
		out[i] = scaled
	}
	return out, nil
}
