package http

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"assettco/db"
	"assettco/tco"
)

var saveTCOResult = db.SaveTCOResult

func (a *api) registerTCOHandlers(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/tco/extended", a.handleExtendedTCO)
	mux.HandleFunc("POST /api/tco/quick", a.handleQuickTCO)
	mux.HandleFunc("GET /api/tco/report/{id}", a.handleTCOReport)
}

func (a *api) calculator() *tco.Calculator {
	var pricer tco.EnergyPricer
	if a.Energy != nil {
		pricer = a.Energy
	}
	return tco.NewCalculator(pricer)
}

func decodeTCOInput(r *http.Request) (tco.Input, error) {
	var in tco.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return in, err
	}
	if in.AgeYears == 0 && !in.PurchaseDate.IsZero() {
		in.AgeYears = in.Age(time.Now())
	}
	return in, nil
}

// handleExtendedTCO runs the full component model on the posted asset.
func (a *api) handleExtendedTCO(w http.ResponseWriter, r *http.Request) {
	in, err := decodeTCOInput(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.PurchasePrice <= 0 {
		writeError(w, http.StatusBadRequest, "purchase_price must be positive")
		return
	}

	result := a.calculator().Calculate(in)

	if in.ID != "" {
		if err := saveTCOResult(in.ID, result.AnalysisYears, result.TotalTCO,
			result.TCOMultiple, result.AnnualAverage, result.Confidence, result); err != nil {
			a.Logger.Warn("failed to persist TCO result",
				zap.String("asset_id", in.ID), zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, result)
}

// handleQuickTCO runs the lightweight wizard projection. The caller
// may supply annual_maintenance; otherwise the model fills it in.
func (a *api) handleQuickTCO(w http.ResponseWriter, r *http.Request) {
	in, err := decodeTCOInput(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.PurchasePrice <= 0 {
		writeError(w, http.StatusBadRequest, "purchase_price must be positive")
		return
	}

	annual := in.AnnualMaintenance
	if annual <= 0 && a.Predictor != nil {
		if pred, err := a.Predictor.Predict(in.Record); err == nil {
			annual = pred.AnnualPrediction
		}
	}

	writeJSON(w, http.StatusOK, tco.Quick(in.Record, annual))
}

// handleTCOReport renders a stored asset's analysis as markdown.
func (a *api) handleTCOReport(w http.ResponseWriter, r *http.Request) {
	rec, err := getAsset(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "asset not found")
		return
	}

	result := a.calculator().Calculate(tco.Input{Record: *rec})

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write([]byte(tco.Report(result, time.Now())))
}
