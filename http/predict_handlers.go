package http

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"assettco/asset"
	"assettco/monitoring"
)

func (a *api) registerPredictionHandlers(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/predict", a.handlePredict)
	mux.HandleFunc("GET /api/predict/{id}", a.handlePredictStored)
	mux.HandleFunc("GET /api/model/stats", a.handleModelStats)
}

func (a *api) predict(w http.ResponseWriter, rec asset.Record) {
	if a.Predictor == nil {
		writeError(w, http.StatusServiceUnavailable, "no model loaded")
		return
	}

	start := time.Now()
	result, err := a.Predictor.Predict(rec)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if a.Metrics != nil {
		a.Metrics.PredictionsTotal.Inc()
		a.Metrics.PredictionLatency.Observe(time.Since(start).Seconds())
	}

	similar := a.Predictor.SimilarAssets(rec, 3)

	if rec.ID != "" {
		if err := savePrediction(rec.ID, result); err != nil {
			a.Logger.Warn("failed to persist prediction",
				zap.String("asset_id", rec.ID), zap.Error(err))
		}
	}
	if a.Hub != nil {
		a.Hub.Publish(monitoring.PredictionMade, map[string]any{
			"asset_id":   rec.ID,
			"prediction": result,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"prediction":     result,
		"similar_assets": similar,
	})
}

// handlePredict scores an ad-hoc record from the request body.
func (a *api) handlePredict(w http.ResponseWriter, r *http.Request) {
	var rec asset.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if rec.PurchasePrice <= 0 {
		writeError(w, http.StatusBadRequest, "purchase_price must be positive")
		return
	}
	if rec.AgeYears == 0 && !rec.PurchaseDate.IsZero() {
		rec.AgeYears = rec.Age(time.Now())
	}
	a.predict(w, rec)
}

// handlePredictStored scores an asset already in the corpus.
func (a *api) handlePredictStored(w http.ResponseWriter, r *http.Request) {
	rec, err := getAsset(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "asset not found")
		return
	}
	a.predict(w, *rec)
}

func (a *api) handleModelStats(w http.ResponseWriter, r *http.Request) {
	if a.Predictor == nil {
		writeError(w, http.StatusServiceUnavailable, "no model loaded")
		return
	}
	stats, err := a.Predictor.Stats()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
