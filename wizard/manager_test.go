package wizard

import (
	"errors"
	"testing"

	"assettco/asset"
	"assettco/ml"
)

type stubPredictor struct {
	result  ml.PredictionResult
	err     error
	similar []ml.SimilarAsset
}

func (s *stubPredictor) Predict(asset.Record) (ml.PredictionResult, error) {
	return s.result, s.err
}

func (s *stubPredictor) SimilarAssets(asset.Record, int) []ml.SimilarAsset {
	return s.similar
}

func stubPersistence(t *testing.T) *[]asset.Record {
	t.Helper()
	var saved []asset.Record
	origSave, origPred := saveAsset, savePrediction
	saveAsset = func(rec asset.Record) error {
		saved = append(saved, rec)
		return nil
	}
	savePrediction = func(string, ml.PredictionResult) error { return nil }
	t.Cleanup(func() {
		saveAsset, savePrediction = origSave, origPred
	})
	return &saved
}

func validStep1() Step1 {
	return Step1{Name: "Thinkpad X1", Category: asset.CategoryIT, Subcategory: "Laptop", Manufacturer: "Lenovo"}
}

func validStep2() Step2 {
	return Step2{PurchasePrice: 1800, PurchaseDate: "2023-05-10", WarrantyYears: 3}
}

func validStep3() Step3 {
	return Step3{Location: "Duesseldorf (HQ)", UsagePattern: asset.UsageStandard, Criticality: asset.CriticalityMedium, ExpectedLifetime: 5}
}

func runWizard(t *testing.T, m *Manager) string {
	t.Helper()
	sess := m.Start()
	if _, err := m.SubmitStep1(sess.ID, validStep1()); err != nil {
		t.Fatalf("step 1: %v", err)
	}
	if _, err := m.SubmitStep2(sess.ID, validStep2()); err != nil {
		t.Fatalf("step 2: %v", err)
	}
	if _, err := m.SubmitStep3(sess.ID, validStep3()); err != nil {
		t.Fatalf("step 3: %v", err)
	}
	return sess.ID
}

func TestWizardHappyPath(t *testing.T) {
	saved := stubPersistence(t)
	predictor := &stubPredictor{
		result:  ml.PredictionResult{AnnualPrediction: 250, Confidence: 82},
		similar: []ml.SimilarAsset{{Name: "neighbor"}},
	}
	m := NewManager(NewStore(), predictor, nil)

	id := runWizard(t, m)
	out, err := m.Complete(id)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	if out.Prediction == nil || out.Prediction.AnnualPrediction != 250 {
		t.Errorf("prediction = %+v, want stub value", out.Prediction)
	}
	if len(out.Similar) != 1 {
		t.Errorf("similar = %d entries, want 1", len(out.Similar))
	}
	if out.QuickTCO.YearlyCosts[0] != 250 {
		t.Errorf("quick TCO first year = %v, want the predicted 250", out.QuickTCO.YearlyCosts[0])
	}
	if len(*saved) != 1 {
		t.Fatalf("saved %d assets, want 1", len(*saved))
	}
	if (*saved)[0].Name != "Thinkpad X1" || (*saved)[0].AnnualMaintenance != 250 {
		t.Errorf("saved record %+v", (*saved)[0])
	}

	if _, err := m.Get(id); !errors.Is(err, ErrSessionNotFound) {
		t.Error("session should be gone after completion")
	}
}

func TestWizardFallsBackWithoutPrediction(t *testing.T) {
	stubPersistence(t)
	m := NewManager(NewStore(), &stubPredictor{err: errors.New("no model")}, nil)

	out, err := m.Complete(runWizard(t, m))
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if out.Prediction != nil {
		t.Error("failed prediction should not appear in outcome")
	}
	if want := 1800 * 0.15; out.QuickTCO.YearlyCosts[0] != want {
		t.Errorf("fallback first year = %v, want flat rate %v", out.QuickTCO.YearlyCosts[0], want)
	}
}

func TestWizardEnforcesStepOrder(t *testing.T) {
	m := NewManager(NewStore(), nil, nil)
	sess := m.Start()

	if _, err := m.SubmitStep2(sess.ID, validStep2()); !errors.Is(err, ErrWrongStep) {
		t.Errorf("step 2 before 1: err = %v, want ErrWrongStep", err)
	}
	if _, err := m.SubmitStep3(sess.ID, validStep3()); !errors.Is(err, ErrWrongStep) {
		t.Errorf("step 3 before 2: err = %v, want ErrWrongStep", err)
	}
	if _, err := m.Complete(sess.ID); !errors.Is(err, ErrNotComplete) {
		t.Errorf("complete before step 3: err = %v, want ErrNotComplete", err)
	}
}

func TestWizardValidation(t *testing.T) {
	m := NewManager(NewStore(), nil, nil)
	sess := m.Start()

	_, err := m.SubmitStep1(sess.ID, Step1{Name: "ab", Category: "Nonsense"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	for _, field := range []string{"asset_name", "category", "subcategory"} {
		if verr.Fields[field] == "" {
			t.Errorf("missing message for %s", field)
		}
	}
	if sess.Step != 1 {
		t.Errorf("failed validation advanced to step %d", sess.Step)
	}

	if _, err := m.SubmitStep1(sess.ID, validStep1()); err != nil {
		t.Fatal(err)
	}
	_, err = m.SubmitStep2(sess.ID, Step2{PurchasePrice: -5, PurchaseDate: "2999-01-01", WarrantyYears: 30})
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	for _, field := range []string{"purchase_price", "purchase_date", "warranty_years"} {
		if verr.Fields[field] == "" {
			t.Errorf("missing message for %s", field)
		}
	}
}

func TestWizardSessionLifecycle(t *testing.T) {
	m := NewManager(NewStore(), nil, nil)

	sess := m.Start()
	if sess.ID == "" || sess.Record.ID == "" {
		t.Fatal("session and record ids must be assigned")
	}
	if sess.Step != 1 {
		t.Errorf("new session at step %d", sess.Step)
	}

	got, err := m.Get(sess.ID)
	if err != nil || got.ID != sess.ID {
		t.Fatalf("Get: %v", err)
	}

	m.Cancel(sess.ID)
	if _, err := m.Get(sess.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Error("canceled session still retrievable")
	}

	if _, err := m.SubmitStep1("missing", validStep1()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("unknown session: err = %v", err)
	}
}
