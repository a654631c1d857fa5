package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"assettco/monitoring"
	"assettco/wizard"
)

func (a *api) registerWizardHandlers(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/wizard/start", a.handleWizardStart)
	mux.HandleFunc("GET /api/wizard/{id}", a.handleWizardStatus)
	mux.HandleFunc("POST /api/wizard/{id}/step/{step}", a.handleWizardStep)
	mux.HandleFunc("POST /api/wizard/{id}/complete", a.handleWizardComplete)
	mux.HandleFunc("DELETE /api/wizard/{id}", a.handleWizardCancel)
}

func writeWizardError(w http.ResponseWriter, err error) {
	var verr *wizard.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, wizard.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, wizard.ErrWrongStep), errors.Is(err, wizard.ErrNotComplete):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (a *api) trackSessions() {
	if a.Metrics != nil {
		a.Metrics.ActiveWizards.Set(float64(a.Wizard.Active()))
	}
}

func (a *api) handleWizardStart(w http.ResponseWriter, r *http.Request) {
	sess := a.Wizard.Start()
	a.trackSessions()
	writeJSON(w, http.StatusCreated, sess)
}

func (a *api) handleWizardStatus(w http.ResponseWriter, r *http.Request) {
	sess, err := a.Wizard.Get(r.PathValue("id"))
	if err != nil {
		writeWizardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (a *api) handleWizardStep(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var (
		sess any
		err  error
	)
	switch r.PathValue("step") {
	case "1":
		var st wizard.Step1
		if err := json.NewDecoder(r.Body).Decode(&st); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		sess, err = a.Wizard.SubmitStep1(id, st)
	case "2":
		var st wizard.Step2
		if err := json.NewDecoder(r.Body).Decode(&st); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		sess, err = a.Wizard.SubmitStep2(id, st)
	case "3":
		var st wizard.Step3
		if err := json.NewDecoder(r.Body).Decode(&st); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		sess, err = a.Wizard.SubmitStep3(id, st)
	default:
		writeError(w, http.StatusBadRequest, "step must be 1, 2 or 3")
		return
	}

	if err != nil {
		writeWizardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (a *api) handleWizardComplete(w http.ResponseWriter, r *http.Request) {
	outcome, err := a.Wizard.Complete(r.PathValue("id"))
	if err != nil {
		writeWizardError(w, err)
		return
	}

	if a.Hub != nil {
		a.Hub.Publish(monitoring.AssetCreated, outcome.Record)
	}
	a.trackSessions()
	writeJSON(w, http.StatusOK, outcome)
}

func (a *api) handleWizardCancel(w http.ResponseWriter, r *http.Request) {
	a.Wizard.Cancel(r.PathValue("id"))
	a.trackSessions()
	w.WriteHeader(http.StatusNoContent)
}
