package tco

import "assettco/asset"

// QuickResult is the lightweight projection shown at the end of the
// intake wizard. It works from the predicted maintenance cost alone
// and skips the component model.
type QuickResult struct {
	LifetimeYears    int       `json:"lifetime_years"`
	AcquisitionCost  float64   `json:"acquisition_cost"`
	MaintenanceTotal float64   `json:"maintenance_total"`
	YearlyCosts      []float64 `json:"yearly_costs"`
	ExtendedWarranty float64   `json:"extended_warranty"`
	DowntimeRisk     float64   `json:"downtime_risk"`
	TrainingCost     float64   `json:"training_cost"`
	DisposalCost     float64   `json:"disposal_cost"`
	EnergyCost       float64   `json:"energy_cost"`
	TotalTCO         float64   `json:"total_tco"`
	TCOMultiple      float64   `json:"tco_multiple"`
	AnnualAverage    float64   `json:"annual_average"`
}

// Quick projects lifetime cost from an annual maintenance estimate.
// annualMaintenance may come from the regression model; pass 0 to fall
// back to a flat 15% of purchase price.
func Quick(rec asset.Record, annualMaintenance float64) QuickResult {
	years := int(rec.ExpectedLifetime)
	if years <= 0 {
		years = 10
	}
	if annualMaintenance <= 0 {
		annualMaintenance = rec.PurchasePrice * 0.15
	}

	yearly := make([]float64, years)
	var maintenanceTotal float64
	for y := 0; y < years; y++ {
		cost := annualMaintenance * (1 + float64(y)*0.05) * (1 + float64(y)*0.02)
		yearly[y] = round2(cost)
		maintenanceTotal += cost
	}

	warrantyGap := float64(years) - rec.WarrantyYears
	if warrantyGap < 0 {
		warrantyGap = 0
	}
	extendedWarranty := rec.PurchasePrice * 0.08 * warrantyGap / float64(years)

	downtimeRate := map[string]float64{
		asset.CriticalityLow:      0.02,
		asset.CriticalityMedium:   0.05,
		asset.CriticalityHigh:     0.10,
		asset.CriticalityCritical: 0.20,
	}[rec.Criticality]
	downtime := rec.PurchasePrice * downtimeRate

	training := rec.PurchasePrice * 0.03
	disposal := rec.PurchasePrice * 0.02

	var energy float64
	if rec.Category == asset.CategoryIT || rec.Category == asset.CategoryIndustrial {
		energy = rec.PurchasePrice * 0.05 * float64(years)
	}

	total := rec.PurchasePrice + maintenanceTotal + extendedWarranty + downtime + training + disposal + energy

	res := QuickResult{
		LifetimeYears:    years,
		AcquisitionCost:  round2(rec.PurchasePrice),
		MaintenanceTotal: round2(maintenanceTotal),
		YearlyCosts:      yearly,
		ExtendedWarranty: round2(extendedWarranty),
		DowntimeRisk:     round2(downtime),
		TrainingCost:     round2(training),
		DisposalCost:     round2(disposal),
		EnergyCost:       round2(energy),
		TotalTCO:         round2(total),
		AnnualAverage:    round2(total / float64(years)),
	}
	if rec.PurchasePrice > 0 {
		res.TCOMultiple = round2(total / rec.PurchasePrice)
	}
	return res
}
