package asset

import "time"

// Record is a single enterprise asset. Once generated or submitted it is
// never mutated; the training corpus is a plain slice of records.
type Record struct {
	ID               string    `json:"asset_id"`
	Name             string    `json:"asset_name"`
	Category         string    `json:"category"`
	Subcategory      string    `json:"subcategory"`
	Manufacturer     string    `json:"manufacturer"`
	PurchasePrice    float64   `json:"purchase_price"`
	PurchaseDate     time.Time `json:"purchase_date"`
	AgeYears         float64   `json:"age_years"`
	Location         string    `json:"location"`
	UsagePattern     string    `json:"usage_pattern"`
	Criticality      string    `json:"criticality"`
	WarrantyYears    float64   `json:"warranty_years"`
	ExpectedLifetime float64   `json:"expected_lifetime"`

	// AnnualMaintenance is the observed (training) or predicted label.
	AnnualMaintenance float64 `json:"annual_maintenance"`
	MaintenanceRatio  float64 `json:"maintenance_ratio"`
}

const (
	CategoryIT         = "IT-Equipment"
	CategoryIndustrial = "Industrial"
	CategorySoftware   = "Software"
	CategoryVehicles   = "Vehicles"
)

const (
	UsageOccasional = "Occasional"
	UsageStandard   = "Standard (8h/day)"
	UsageExtended   = "Extended (12h/day)"
	UsageContinuous = "24/7 Operation"
)

const (
	CriticalityLow      = "Low"
	CriticalityMedium   = "Medium"
	CriticalityHigh     = "High"
	CriticalityCritical = "Critical"
)

func Categories() []string {
	return []string{CategoryIT, CategoryIndustrial, CategorySoftware, CategoryVehicles}
}

func UsagePatterns() []string {
	return []string{UsageOccasional, UsageStandard, UsageExtended, UsageContinuous}
}

func Criticalities() []string {
	return []string{CriticalityLow, CriticalityMedium, CriticalityHigh, CriticalityCritical}
}

// UsageFactors scales maintenance effort per usage pattern.
func UsageFactors() map[string]float64 {
	return map[string]float64{
		UsageOccasional: 0.70,
		UsageStandard:   1.00,
		UsageExtended:   1.25,
		UsageContinuous: 1.80,
	}
}

func CriticalityFactors() map[string]float64 {
	return map[string]float64{
		CriticalityLow:      0.80,
		CriticalityMedium:   1.00,
		CriticalityHigh:     1.30,
		CriticalityCritical: 1.60,
	}
}

// Age derives the age in years at the given reference time.
func (r Record) Age(now time.Time) float64 {
	if r.PurchaseDate.IsZero() {
		return r.AgeYears
	}
	return now.Sub(r.PurchaseDate).Hours() / 24 / 365.25
}

// WarrantyActive reports whether the asset is still inside its warranty.
func (r Record) WarrantyActive() bool {
	return r.AgeYears < r.WarrantyYears
}
