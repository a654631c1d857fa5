package ml

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

// EvalMetrics are the regression quality numbers logged after training.
type EvalMetrics struct {
	MAE  float64 `json:"mae"`
	RMSE float64 `json:"rmse"`
	R2   float64 `json:"r2"`
}

func Evaluate(actual, predicted []float64) (EvalMetrics, error) {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return EvalMetrics{}, errors.New("actual and predicted must be same non-zero length")
	}

	var absSum, sqSum float64
	for i := range actual {
		diff := predicted[i] - actual[i]
		absSum += math.Abs(diff)
		sqSum += diff * diff
	}
	n := float64(len(actual))

	meanActual := stat.Mean(actual, nil)
	var totSS float64
	for _, v := range actual {
		diff := v - meanActual
		totSS += diff * diff
	}

	r2 := 0.0
	if totSS > 0 {
		r2 = 1 - sqSum/totSS
	}

	return EvalMetrics{
		MAE:  absSum / n,
		RMSE: math.Sqrt(sqSum / n),
		R2:   r2,
	}, nil
}
