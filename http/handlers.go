package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"assettco/asset"
	"assettco/db"
	"assettco/monitoring"
)

// Injectable for tests.
var (
	queryAssets    = db.QueryAssets
	getAsset       = db.GetAsset
	saveAsset      = db.SaveAsset
	countAssets    = db.CountAssets
	savePrediction = db.SavePrediction
)

type api struct {
	Deps
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (a *api) registerAssetHandlers(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", a.handleHealth)
	mux.HandleFunc("GET /api/reference", a.handleReference)
	mux.HandleFunc("GET /api/assets", a.handleListAssets)
	mux.HandleFunc("GET /api/assets/{id}", a.handleGetAsset)
	mux.HandleFunc("POST /api/assets", a.handleCreateAsset)
}

func (a *api) handleHealth(w http.ResponseWriter, r *http.Request) {
	count, err := countAssets()
	status := map[string]any{
		"status": "ok",
		"time":   time.Now().UTC(),
	}
	if err == nil {
		status["assets"] = count
	}
	if a.Predictor != nil {
		if stats, err := a.Predictor.Stats(); err == nil {
			status["model_trained_at"] = stats.Timestamp
		}
	}
	writeJSON(w, http.StatusOK, status)
}

// handleReference serves the dropdown values the intake UI needs.
func (a *api) handleReference(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"categories":     asset.Categories(),
		"subcategories":  asset.ManufacturersByCategory(),
		"usage_patterns": asset.UsagePatterns(),
		"criticalities":  asset.Criticalities(),
		"locations":      asset.Sites(),
	})
}

func (a *api) handleListAssets(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if s := r.URL.Query().Get("limit"); s != "" {
		if l, err := strconv.Atoi(s); err == nil {
			limit = l
		}
	}

	records, err := queryAssets(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count": len(records),
		"data":  records,
	})
}

func (a *api) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "asset id is required")
		return
	}

	rec, err := getAsset(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "asset not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (a *api) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	var rec asset.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(rec.Name) < 3 {
		writeError(w, http.StatusBadRequest, "asset_name must be at least 3 characters")
		return
	}
	if rec.PurchasePrice <= 0 || rec.PurchasePrice > 10_000_000 {
		writeError(w, http.StatusBadRequest, "purchase_price must be positive and at most 10M")
		return
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.AgeYears == 0 && !rec.PurchaseDate.IsZero() {
		rec.AgeYears = rec.Age(time.Now())
	}

	if err := saveAsset(rec); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if a.Hub != nil {
		a.Hub.Publish(monitoring.AssetCreated, rec)
	}
	a.Logger.Info("asset created",
		zap.String("asset_id", rec.ID),
		zap.String("category", rec.Category))
	writeJSON(w, http.StatusCreated, rec)
}
