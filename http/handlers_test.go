package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"assettco/asset"
	"assettco/db"
	"assettco/energy"
	"assettco/ml"
	"assettco/wizard"
)

// stubStore replaces the sqlite-backed package vars with an in-memory
// map for the duration of one test.
type stubStore struct {
	records map[string]asset.Record
}

func newStubStore(t *testing.T, seed ...asset.Record) *stubStore {
	t.Helper()
	st := &stubStore{records: map[string]asset.Record{}}
	for _, rec := range seed {
		st.records[rec.ID] = rec
	}

	origQuery, origGet, origSave, origCount, origPred := queryAssets, getAsset, saveAsset, countAssets, savePrediction
	queryAssets = func(limit int) ([]asset.Record, error) {
		out := make([]asset.Record, 0, len(st.records))
		for _, rec := range st.records {
			if len(out) == limit {
				break
			}
			out = append(out, rec)
		}
		return out, nil
	}
	getAsset = func(id string) (*asset.Record, error) {
		rec, ok := st.records[id]
		if !ok {
			return nil, errors.New("not found")
		}
		return &rec, nil
	}
	saveAsset = func(rec asset.Record) error {
		st.records[rec.ID] = rec
		return nil
	}
	countAssets = func() (int, error) { return len(st.records), nil }
	savePrediction = func(string, ml.PredictionResult) error { return nil }
	t.Cleanup(func() {
		queryAssets, getAsset, saveAsset, countAssets, savePrediction = origQuery, origGet, origSave, origCount, origPred
	})
	return st
}

func newTestMux(t *testing.T, deps Deps) *http.ServeMux {
	t.Helper()
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	mux := http.NewServeMux()
	a := &api{Deps: deps}
	a.registerAssetHandlers(mux)
	a.registerPredictionHandlers(mux)
	a.registerTCOHandlers(mux)
	a.registerWizardHandlers(mux)
	a.registerEnergyHandlers(mux)
	a.registerDashboardHandlers(mux)
	a.registerTrainingHandlers(mux)
	return mux
}

func trainedPredictor(t *testing.T) *ml.Predictor {
	t.Helper()
	records := asset.NewGenerator(42).Generate(120)
	bundle, err := ml.Train(records, ml.TrainOptions{NumTrees: 10, MaxDepth: 8, Seed: 42})
	require.NoError(t, err)
	return ml.NewPredictor(bundle, records)
}

func doJSON(mux *http.ServeMux, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func testRecord() asset.Record {
	return asset.Record{
		ID:               "a-1",
		Name:             "Test Server",
		Category:         asset.CategoryIT,
		Subcategory:      "Server",
		Manufacturer:     "Dell",
		PurchasePrice:    15000,
		AgeYears:         2,
		WarrantyYears:    3,
		ExpectedLifetime: 5,
		Location:         "Duesseldorf (HQ)",
		UsagePattern:     asset.UsageContinuous,
		Criticality:      asset.CriticalityHigh,
	}
}

func TestHealthEndpoint(t *testing.T) {
	newStubStore(t, testRecord())
	mux := newTestMux(t, Deps{})

	w := doJSON(mux, "GET", "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 1, body["assets"])
}

func TestReferenceEndpoint(t *testing.T) {
	mux := newTestMux(t, Deps{})

	w := doJSON(mux, "GET", "/api/reference", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	for _, key := range []string{"categories", "subcategories", "usage_patterns", "criticalities", "locations"} {
		assert.Contains(t, body, key)
	}
}

func TestAssetCRUD(t *testing.T) {
	newStubStore(t)
	mux := newTestMux(t, Deps{})

	w := doJSON(mux, "POST", "/api/assets", testRecord())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(mux, "GET", "/api/assets/a-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var got asset.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Test Server", got.Name)

	w = doJSON(mux, "GET", "/api/assets", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Count)

	w = doJSON(mux, "GET", "/api/assets/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateAssetValidation(t *testing.T) {
	newStubStore(t)
	mux := newTestMux(t, Deps{})

	bad := testRecord()
	bad.Name = "ab"
	w := doJSON(mux, "POST", "/api/assets", bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	bad = testRecord()
	bad.PurchasePrice = -1
	w = doJSON(mux, "POST", "/api/assets", bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest("POST", "/api/assets", bytes.NewBufferString("{broken"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPredictWithModel(t *testing.T) {
	newStubStore(t)
	mux := newTestMux(t, Deps{Predictor: trainedPredictor(t)})

	w := doJSON(mux, "POST", "/api/predict", testRecord())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Prediction ml.PredictionResult `json:"prediction"`
		Similar    []ml.SimilarAsset   `json:"similar_assets"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Greater(t, body.Prediction.AnnualPrediction, 0.0)
	assert.GreaterOrEqual(t, body.Prediction.Confidence, 50)
	assert.NotEmpty(t, body.Similar)
}

func TestPredictWithoutModel(t *testing.T) {
	newStubStore(t)
	mux := newTestMux(t, Deps{Predictor: ml.NewPredictor(nil, nil)})

	w := doJSON(mux, "POST", "/api/predict", testRecord())
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = doJSON(mux, "GET", "/api/model/stats", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestPredictRejectsBadInput(t *testing.T) {
	newStubStore(t)
	mux := newTestMux(t, Deps{Predictor: trainedPredictor(t)})

	rec := testRecord()
	rec.PurchasePrice = 0
	w := doJSON(mux, "POST", "/api/predict", rec)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExtendedTCOEndpoint(t *testing.T) {
	newStubStore(t)
	origSaveTCO := saveTCOResult
	saveTCOResult = func(string, int, float64, float64, float64, float64, any) error { return nil }
	t.Cleanup(func() { saveTCOResult = origSaveTCO })

	mux := newTestMux(t, Deps{})

	w := doJSON(mux, "POST", "/api/tco/extended", testRecord())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		TotalTCO    float64 `json:"total_tco"`
		TCOMultiple float64 `json:"tco_multiple"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Greater(t, body.TotalTCO, 15000.0)
	assert.Greater(t, body.TCOMultiple, 1.0)
}

func TestQuickTCOEndpoint(t *testing.T) {
	newStubStore(t)
	mux := newTestMux(t, Deps{})

	rec := testRecord()
	rec.AnnualMaintenance = 1200
	w := doJSON(mux, "POST", "/api/tco/quick", rec)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		YearlyCosts []float64 `json:"yearly_costs"`
		TotalTCO    float64   `json:"total_tco"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.YearlyCosts, 5)
	assert.Equal(t, 1200.0, body.YearlyCosts[0])
}

func TestTCOReportEndpoint(t *testing.T) {
	newStubStore(t, testRecord())
	mux := newTestMux(t, Deps{})

	w := doJSON(mux, "GET", "/api/tco/report/a-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/markdown")
	assert.Contains(t, w.Body.String(), "Test Server")
}

func TestWizardEndpoints(t *testing.T) {
	newStubStore(t)
	manager := wizard.NewManager(wizard.NewStore(), nil, nil)
	mux := newTestMux(t, Deps{Wizard: manager})

	w := doJSON(mux, "POST", "/api/wizard/start", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var sess struct {
		ID string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sess))
	require.NotEmpty(t, sess.ID)

	// out-of-order step submission conflicts
	w = doJSON(mux, "POST", "/api/wizard/"+sess.ID+"/step/2", wizard.Step2{PurchasePrice: 100, PurchaseDate: "2024-01-01"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// invalid payload surfaces field errors
	w = doJSON(mux, "POST", "/api/wizard/"+sess.ID+"/step/1", wizard.Step1{Name: "x"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var verr struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verr))
	assert.Contains(t, verr.Fields, "asset_name")

	w = doJSON(mux, "POST", "/api/wizard/"+sess.ID+"/step/1", wizard.Step1{
		Name: "New Laptop", Category: asset.CategoryIT, Subcategory: "Laptop",
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(mux, "GET", "/api/wizard/"+sess.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(mux, "DELETE", "/api/wizard/"+sess.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(mux, "GET", "/api/wizard/"+sess.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEnergyEndpoints(t *testing.T) {
	mux := newTestMux(t, Deps{Energy: energy.NewAgent(nil)})

	w := doJSON(mux, "GET", "/api/energy/price?location=Copenhagen", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var price struct {
		Current float64 `json:"current"`
		Source  string  `json:"source"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &price))
	assert.Equal(t, 0.32, price.Current)

	w = doJSON(mux, "GET", "/api/energy/forecast?location=Copenhagen", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(mux, "GET", "/api/energy/optimize?location=Copenhagen&power_kw=200&annual_cost=50000", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTrainingEndpoints(t *testing.T) {
	newStubStore(t, testRecord())
	mux := newTestMux(t, Deps{})

	w := doJSON(mux, "GET", "/api/training/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var status struct {
		Running bool `json:"running"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.False(t, status.Running)

	// one stored asset is not enough to train
	w = doJSON(mux, "POST", "/api/training/run", TrainingRequest{NumTrees: 5})
	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
	assert.False(t, trainingActive.Load())
}

func TestDashboardEndpoints(t *testing.T) {
	newStubStore(t, testRecord())
	origRuns := loadTrainingRuns
	loadTrainingRuns = func() ([]db.TrainingRun, error) {
		return []db.TrainingRun{{SamplesTotal: 100, R2: 0.91}}, nil
	}
	t.Cleanup(func() { loadTrainingRuns = origRuns })

	mux := newTestMux(t, Deps{})

	w := doJSON(mux, "GET", "/api/dashboard/summary", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "fleet")

	w = doJSON(mux, "GET", "/api/dashboard/training-history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	assert.Equal(t, 1, history.Count)
}
