package ml

import (
	"errors"
	"time"

	"assettco/asset"
)

var nowFunc = time.Now

// Thirteen engineered features in fixed order: four numeric fields, six
// label-encoded categoricals and three derived values.
func FeatureNames() []string {
	return []string{
		"purchase_price",
		"age_years",
		"warranty_years",
		"expected_lifetime",
		"category",
		"subcategory",
		"manufacturer",
		"location",
		"usage_pattern",
		"criticality",
		"price_age_ratio",
		"age_category",
		"warranty_active",
	}
}

var categoricalFeatures = []string{
	"category", "subcategory", "manufacturer", "location", "usage_pattern", "criticality",
}

// FitEncoders builds one encoder per categorical feature from the corpus.
func FitEncoders(records []asset.Record) (map[string]*LabelEncoder, error) {
	if len(records) == 0 {
		return nil, errors.New("records is empty")
	}
	encoders := make(map[string]*LabelEncoder, len(categoricalFeatures))
	for _, name := range categoricalFeatures {
		values := make([]string, len(records))
		for i, rec := range records {
			values[i] = categoricalValue(rec, name)
		}
		enc := &LabelEncoder{}
		if err := enc.Fit(values); err != nil {
			return nil, err
		}
		encoders[name] = enc
	}
	return encoders, nil
}

// Vectorize converts one record into the raw (unscaled) feature vector.
// Missing fields get the documented defaults first.
func Vectorize(rec asset.Record, encoders map[string]*LabelEncoder) ([]float64, error) {
	if len(encoders) == 0 {
		return nil, errors.New("encoders not fitted")
	}
	rec = applyDefaults(rec)

	vector := make([]float64, 0, len(FeatureNames()))
	vector = append(vector,
		rec.PurchasePrice,
		rec.AgeYears,
		rec.WarrantyYears,
		rec.ExpectedLifetime,
	)

	for _, name := range categoricalFeatures {
		enc, ok := encoders[name]
		if !ok {
			return nil, errors.New("missing encoder for " + name)
		}
		vector = append(vector, enc.Transform(categoricalValue(rec, name)))
	}

	vector = append(vector,
		rec.PurchasePrice/(rec.AgeYears+1),
		ageCategory(rec.AgeYears),
		boolFeature(rec.WarrantyActive()),
	)
	return vector, nil
}

func VectorizeAll(records []asset.Record, encoders map[string]*LabelEncoder) ([][]float64, error) {
	vectors := make([][]float64, len(records))
	for i, rec := range records {
		vec, err := Vectorize(rec, encoders)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}
	return vectors, nil
}

func categoricalValue(rec asset.Record, name string) string {
	switch name {
	case "category":
		return rec.Category
	case "subcategory":
		return rec.Subcategory
	case "manufacturer":
		return rec.Manufacturer
	case "location":
		return rec.Location
	case "usage_pattern":
		return rec.UsagePattern
	case "criticality":
		return rec.Criticality
	}
	return ""
}

func applyDefaults(rec asset.Record) asset.Record {
	if rec.Manufacturer == "" {
		rec.Manufacturer = "Unknown"
	}
	if rec.UsagePattern == "" {
		rec.UsagePattern = asset.UsageStandard
	}
	if rec.Criticality == "" {
		rec.Criticality = asset.CriticalityMedium
	}
	if rec.Location == "" {
		rec.Location = "Other"
	}
	if rec.WarrantyYears == 0 {
		rec.WarrantyYears = 1
	}
	if rec.ExpectedLifetime == 0 {
		rec.ExpectedLifetime = 5
	}
	if rec.AgeYears == 0 && !rec.PurchaseDate.IsZero() {
		rec.AgeYears = rec.Age(nowFunc())
	}
	if rec.AgeYears == 0 {
		rec.AgeYears = 1
	}
	return rec
}

// buckets: new (<=1y), medium (<=3y), old
func ageCategory(age float64) float64 {
	switch {
	case age <= 1:
		return 0
	case age <= 3:
		return 1
	default:
		return 2
	}
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
