package http

import (
	"net/http"
	"strconv"
)

func (a *api) registerEnergyHandlers(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/energy/price", a.handleEnergyPrice)
	mux.HandleFunc("GET /api/energy/forecast", a.handleEnergyForecast)
	mux.HandleFunc("GET /api/energy/optimize", a.handleEnergyOptimize)
}

// Site names contain spaces, so location travels as a query parameter.
func location(r *http.Request) string {
	return r.URL.Query().Get("location")
}

func (a *api) handleEnergyPrice(w http.ResponseWriter, r *http.Request) {
	if a.Energy == nil {
		writeError(w, http.StatusServiceUnavailable, "energy agent not configured")
		return
	}
	loc := location(r)
	if loc == "" {
		writeError(w, http.StatusBadRequest, "location is required")
		return
	}

	stats := a.Energy.PriceStats(loc)
	if a.Metrics != nil {
		a.Metrics.EnergyPriceCurrent.WithLabelValues(stats.Country, stats.Source).Set(stats.Current)
	}
	writeJSON(w, http.StatusOK, stats)
}

func (a *api) handleEnergyForecast(w http.ResponseWriter, r *http.Request) {
	if a.Energy == nil {
		writeError(w, http.StatusServiceUnavailable, "energy agent not configured")
		return
	}
	loc := location(r)
	if loc == "" {
		writeError(w, http.StatusBadRequest, "location is required")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"location": loc,
		"curve":    a.Energy.Forecast(loc),
	})
}

func (a *api) handleEnergyOptimize(w http.ResponseWriter, r *http.Request) {
	if a.Energy == nil {
		writeError(w, http.StatusServiceUnavailable, "energy agent not configured")
		return
	}
	loc := location(r)
	if loc == "" {
		writeError(w, http.StatusBadRequest, "location is required")
		return
	}

	powerKW, _ := strconv.ParseFloat(r.URL.Query().Get("power_kw"), 64)
	annualCost, _ := strconv.ParseFloat(r.URL.Query().Get("annual_cost"), 64)

	writeJSON(w, http.StatusOK, map[string]any{
		"location":        loc,
		"recommendations": a.Energy.Optimize(loc, powerKW, annualCost),
	})
}
