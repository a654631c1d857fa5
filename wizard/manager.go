package wizard

import (
	"time"

	"go.uber.org/zap"

	"assettco/asset"
	"assettco/db"
	"assettco/ml"
	"assettco/tco"
)

// Injectable for tests.
var (
	saveAsset      = db.SaveAsset
	savePrediction = db.SavePrediction
)

// Predictor is the slice of the model the wizard needs.
type Predictor interface {
	Predict(rec asset.Record) (ml.PredictionResult, error)
	SimilarAssets(rec asset.Record, n int) []ml.SimilarAsset
}

// Outcome is the final wizard payload: the stored record, the
// maintenance prediction and a quick lifetime cost projection.
type Outcome struct {
	Record     asset.Record         `json:"record"`
	Prediction *ml.PredictionResult `json:"prediction,omitempty"`
	Similar    []ml.SimilarAsset    `json:"similar_assets,omitempty"`
	QuickTCO   tco.QuickResult      `json:"quick_tco"`
}

// Manager drives sessions through the four intake steps.
type Manager struct {
	store     *Store
	predictor Predictor
	logger    *zap.Logger
	now       func() time.Time
}

func NewManager(store *Store, predictor Predictor, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: store, predictor: predictor, logger: logger, now: time.Now}
}

func (m *Manager) Start() *Session {
	sess := m.store.Start()
	m.logger.Info("wizard session started", zap.String("session_id", sess.ID))
	return sess
}

func (m *Manager) Get(id string) (*Session, error) { return m.store.Get(id) }

// Active reports how many sessions are open.
func (m *Manager) Active() int { return m.store.Active() }

func (m *Manager) Cancel(id string) { m.store.Drop(id) }

// SubmitStep1 records identity data and advances to step 2.
func (m *Manager) SubmitStep1(id string, st Step1) (*Session, error) {
	sess, err := m.store.Get(id)
	if err != nil {
		return nil, err
	}
	if err := st.validate(); err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.Record.Name = st.Name
	sess.Record.Category = st.Category
	sess.Record.Subcategory = st.Subcategory
	sess.Record.Manufacturer = st.Manufacturer
	sess.Step = 2
	return sess, nil
}

// SubmitStep2 records purchase facts. Requires step 1 done.
func (m *Manager) SubmitStep2(id string, st Step2) (*Session, error) {
	sess, err := m.store.Get(id)
	if err != nil {
		return nil, err
	}
	if sess.Step < 2 {
		return nil, ErrWrongStep
	}
	date, err := st.validate(m.now())
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.Record.PurchasePrice = st.PurchasePrice
	sess.Record.PurchaseDate = date
	sess.Record.WarrantyYears = st.WarrantyYears
	sess.Record.AgeYears = sess.Record.Age(m.now())
	sess.Step = 3
	return sess, nil
}

// SubmitStep3 records operating context. Requires step 2 done.
func (m *Manager) SubmitStep3(id string, st Step3) (*Session, error) {
	sess, err := m.store.Get(id)
	if err != nil {
		return nil, err
	}
	if sess.Step < 3 {
		return nil, ErrWrongStep
	}
	if err := st.validate(); err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.Record.Location = st.Location
	sess.Record.UsagePattern = st.UsagePattern
	sess.Record.Criticality = st.Criticality
	sess.Record.ExpectedLifetime = st.ExpectedLifetime
	sess.Step = 4
	return sess, nil
}

// Complete finalizes the session: predicts maintenance, projects the
// quick TCO, persists everything and closes the session.
func (m *Manager) Complete(id string) (*Outcome, error) {
	sess, err := m.store.Get(id)
	if err != nil {
		return nil, err
	}
	if sess.Step < totalSteps {
		return nil, ErrNotComplete
	}

	sess.mu.Lock()
	rec := sess.Record
	sess.mu.Unlock()

	out := &Outcome{Record: rec}

	annualMaintenance := 0.0
	if m.predictor != nil {
		if pred, err := m.predictor.Predict(rec); err == nil {
			out.Prediction = &pred
			out.Similar = m.predictor.SimilarAssets(rec, 3)
			annualMaintenance = pred.AnnualPrediction
		} else {
			m.logger.Warn("prediction unavailable, quick TCO falls back to flat rate",
				zap.String("session_id", id), zap.Error(err))
		}
	}
	out.QuickTCO = tco.Quick(rec, annualMaintenance)

	rec.AnnualMaintenance = annualMaintenance
	if err := saveAsset(rec); err != nil {
		return nil, err
	}
	if out.Prediction != nil {
		if err := savePrediction(rec.ID, *out.Prediction); err != nil {
			m.logger.Warn("failed to persist prediction", zap.String("asset_id", rec.ID), zap.Error(err))
		}
	}

	m.store.Drop(id)
	m.logger.Info("wizard session completed",
		zap.String("session_id", id),
		zap.String("asset_id", rec.ID),
		zap.Float64("predicted_maintenance", annualMaintenance))
	return out, nil
}
