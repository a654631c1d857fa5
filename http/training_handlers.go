package http

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"assettco/asset"
	"assettco/db"
	"assettco/ml"
	"assettco/monitoring"
)

var saveTrainingRun = db.SaveTrainingRun

// TrainingRequest tunes one training run. Zero values fall back to the
// forest defaults.
type TrainingRequest struct {
	NumTrees       int     `json:"num_trees,omitempty"`
	MaxDepth       int     `json:"max_depth,omitempty"`
	MinSamplesLeaf int     `json:"min_samples_leaf,omitempty"`
	TestRatio      float64 `json:"test_ratio,omitempty"`
	Seed           int64   `json:"seed,omitempty"`
	ModelPath      string  `json:"model_path,omitempty"`
}

var trainingActive atomic.Bool

func (a *api) registerTrainingHandlers(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/training/run", a.handleTrainingRun)
	mux.HandleFunc("GET /api/training/status", a.handleTrainingStatus)
}

func (a *api) handleTrainingStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"running": trainingActive.Load()})
}

// handleTrainingRun retrains the model from the stored corpus. The run
// happens in the background; this returns 202 immediately.
func (a *api) handleTrainingRun(w http.ResponseWriter, r *http.Request) {
	var req TrainingRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	if !trainingActive.CompareAndSwap(false, true) {
		writeError(w, http.StatusConflict, "training already running")
		return
	}

	records, err := queryAssets(100000)
	if err != nil {
		trainingActive.Store(false)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(records) < 20 {
		trainingActive.Store(false)
		writeError(w, http.StatusPreconditionFailed, "need at least 20 assets to train")
		return
	}

	go a.runTraining(records, req)

	writeJSON(w, http.StatusAccepted, map[string]any{
		"status":  "training started",
		"samples": len(records),
	})
}

func (a *api) runTraining(records []asset.Record, req TrainingRequest) {
	defer trainingActive.Store(false)
	start := time.Now()

	bundle, err := ml.Train(records, ml.TrainOptions{
		NumTrees:       req.NumTrees,
		MaxDepth:       req.MaxDepth,
		MinSamplesLeaf: req.MinSamplesLeaf,
		TestRatio:      req.TestRatio,
		Seed:           req.Seed,
	})
	if err != nil {
		a.Logger.Error("training failed", zap.Error(err))
		return
	}

	if req.ModelPath != "" {
		if err := os.MkdirAll(filepath.Dir(req.ModelPath), 0o755); err == nil {
			if err := bundle.Save(req.ModelPath); err != nil {
				a.Logger.Warn("failed to save model artifact",
					zap.String("path", req.ModelPath), zap.Error(err))
			}
		}
	}

	if a.Predictor != nil {
		a.Predictor.Swap(bundle)
		a.Predictor.SetCorpus(records)
	}

	run := db.TrainingRun{
		SamplesTotal:    bundle.Stats.TrainingAssets + bundle.Stats.TestAssets + bundle.Stats.OutliersRemoved,
		SamplesTrain:    bundle.Stats.TrainingAssets,
		SamplesTest:     bundle.Stats.TestAssets,
		OutliersRemoved: bundle.Stats.OutliersRemoved,
		MAE:             bundle.Stats.Test.MAE,
		RMSE:            bundle.Stats.Test.RMSE,
		R2:              bundle.Stats.Test.R2,
		TrainedAt:       bundle.Stats.Timestamp,
	}
	if err := saveTrainingRun(run); err != nil {
		a.Logger.Warn("failed to persist training run", zap.Error(err))
	}

	if a.Metrics != nil {
		a.Metrics.TrainingRunsTotal.Inc()
		a.Metrics.TrainingDuration.Observe(time.Since(start).Seconds())
		a.Metrics.ModelR2.Set(bundle.Stats.Test.R2)
	}
	if a.Hub != nil {
		a.Hub.Publish(monitoring.TrainingCompleted, run)
	}

	a.Logger.Info("training completed",
		zap.Duration("duration", time.Since(start)),
		zap.Float64("test_r2", bundle.Stats.Test.R2),
		zap.Float64("test_mae", bundle.Stats.Test.MAE))
}
