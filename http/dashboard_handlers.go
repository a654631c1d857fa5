package http

import (
	"net/http"
	"time"

	"assettco/db"
	"assettco/monitoring"
)

var loadTrainingRuns = db.LoadTrainingRuns

func (a *api) registerDashboardHandlers(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/dashboard/summary", a.handleDashboardSummary)
	mux.HandleFunc("GET /api/dashboard/training-history", a.handleTrainingHistory)
	if a.Hub != nil {
		mux.HandleFunc("GET /api/ws/dashboard", a.Hub.HandleWebSocket)
	}
}

func (a *api) handleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	records, err := queryAssets(10000)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	kpis := monitoring.FleetSummary(records, time.Now())
	if a.Metrics != nil {
		a.Metrics.CorpusSize.Set(float64(kpis.TotalAssets))
	}

	summary := map[string]any{"fleet": kpis}
	if a.Predictor != nil {
		if stats, err := a.Predictor.Stats(); err == nil {
			summary["model"] = stats
		}
	}
	if a.Hub != nil {
		clients := a.Hub.ClientCount()
		summary["websocket_clients"] = clients
		if a.Metrics != nil {
			a.Metrics.WebsocketClients.Set(float64(clients))
		}
	}

	writeJSON(w, http.StatusOK, summary)
}

func (a *api) handleTrainingHistory(w http.ResponseWriter, r *http.Request) {
	runs, err := loadTrainingRuns()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count": len(runs),
		"data":  runs,
	})
}
