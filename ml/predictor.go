package ml

import (
	"errors"
	"math"
	"sort"
	"sync"

	"assettco/asset"
)

// PredictionResult is what the API returns for a single asset.
type PredictionResult struct {
	AnnualPrediction float64 `json:"annual_prediction"`
	Confidence       int     `json:"confidence"` // percent
	ConfidenceLevel  string  `json:"confidence_level"`
	RangeMin         float64 `json:"range_min"`
	RangeMax         float64 `json:"range_max"`
	PredictionStd    float64 `json:"prediction_std"`
	ModelType        string  `json:"model_type"`
}

// SimilarAsset is one benchmarking neighbor from the training corpus.
type SimilarAsset struct {
	Name              string  `json:"name"`
	Manufacturer      string  `json:"manufacturer"`
	Subcategory       string  `json:"subcategory"`
	Location          string  `json:"location"`
	PurchasePrice     float64 `json:"purchase_price"`
	AnnualMaintenance float64 `json:"annual_maintenance"`
	AgeYears          float64 `json:"age_years"`
}

// Predictor wraps a model bundle and the training corpus. Swap is safe
// to call while predictions are in flight, which is what the fsnotify
// reload path does.
type Predictor struct {
	mu     sync.RWMutex
	bundle *Bundle
	corpus []asset.Record
}

func NewPredictor(bundle *Bundle, corpus []asset.Record) *Predictor {
	return &Predictor{bundle: bundle, corpus: corpus}
}

// Swap replaces the active bundle, e.g. after retraining.
func (p *Predictor) Swap(bundle *Bundle) {
	p.mu.Lock()
	p.bundle = bundle
	p.mu.Unlock()
}

func (p *Predictor) SetCorpus(corpus []asset.Record) {
	p.mu.Lock()
	p.corpus = corpus
	p.mu.Unlock()
}

func (p *Predictor) Stats() (TrainingStats, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.bundle == nil {
		return TrainingStats{}, errors.New("model not loaded")
	}
	return p.bundle.Stats, nil
}

// Predict scores one record. Confidence shrinks as the per-tree spread
// grows, floored at 50%.
func (p *Predictor) Predict(rec asset.Record) (PredictionResult, error) {
	p.mu.RLock()
	bundle := p.bundle
	p.mu.RUnlock()

	if bundle == nil {
		return PredictionResult{}, errors.New("model not loaded")
	}

	vector, err := Vectorize(rec, bundle.Encoders)
	if err != nil {
		return PredictionResult{}, err
	}
	scaled, err := bundle.Scaler.Transform(vector)
	if err != nil {
		return PredictionResult{}, err
	}
	prediction, spread, err := bundle.Forest.Predict(scaled)
	if err != nil {
		return PredictionResult{}, err
	}
	if prediction < 0 {
		prediction = 0
	}

	relativeSpread := 0.0
	if prediction > 1 {
		relativeSpread = spread / prediction
	} else {
		relativeSpread = spread
	}
	confidence := 1 - relativeSpread*2
	if confidence < 0.5 {
		confidence = 0.5
	}

	return PredictionResult{
		AnnualPrediction: math.Round(prediction),
		Confidence:       int(math.Round(confidence * 100)),
		ConfidenceLevel:  ConfidenceLevel(confidence),
		RangeMin:         math.Round(math.Max(0, prediction*0.8)),
		RangeMax:         math.Round(prediction * 1.2),
		PredictionStd:    math.Round(spread),
		ModelType:        "Random Forest",
	}, nil
}

func ConfidenceLevel(confidence float64) string {
	switch {
	case confidence >= 0.85:
		return "Very High"
	case confidence >= 0.70:
		return "High"
	case confidence >= 0.60:
		return "Medium"
	default:
		return "Low"
	}
}

// SimilarAssets returns the n closest corpus records: same subcategory
// or manufacturer first, same category as fallback, ranked by price
// distance.
func (p *Predictor) SimilarAssets(rec asset.Record, n int) []SimilarAsset {
	p.mu.RLock()
	corpus := p.corpus
	p.mu.RUnlock()

	if n <= 0 {
		n = 3
	}
	if len(corpus) == 0 {
		return nil
	}

	var candidates []asset.Record
	for _, c := range corpus {
		if c.Subcategory == rec.Subcategory || (rec.Manufacturer != "" && c.Manufacturer == rec.Manufacturer) {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) < n {
		candidates = candidates[:0]
		for _, c := range corpus {
			if c.Category == rec.Category {
				candidates = append(candidates, c)
			}
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		return math.Abs(candidates[i].PurchasePrice-rec.PurchasePrice) <
			math.Abs(candidates[j].PurchasePrice-rec.PurchasePrice)
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	out := make([]SimilarAsset, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, SimilarAsset{
			Name:              c.Name,
			Manufacturer:      c.Manufacturer,
			Subcategory:       c.Subcategory,
			Location:          c.Location,
			PurchasePrice:     c.PurchasePrice,
			AnnualMaintenance: c.AnnualMaintenance,
			AgeYears:          c.AgeYears,
		})
	}
	return out
}
