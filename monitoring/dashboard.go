package monitoring

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"assettco/asset"
)

// FleetKPIs summarizes the asset corpus for the dashboard.
type FleetKPIs struct {
	TotalAssets       int                `json:"total_assets"`
	TotalValue        float64            `json:"total_value"`
	TotalMaintenance  float64            `json:"total_maintenance"`
	MeanMaintenance   float64            `json:"mean_maintenance"`
	StdDevMaintenance float64            `json:"stddev_maintenance"`
	MeanAge           float64            `json:"mean_age"`
	MaintenanceRatio  float64            `json:"maintenance_ratio"`
	ByCategory        map[string]int     `json:"by_category"`
	ByLocation        map[string]int     `json:"by_location"`
	ByCriticality     map[string]int     `json:"by_criticality"`
	CostByCategory    map[string]float64 `json:"cost_by_category"`
	TopCostAssets     []CostEntry        `json:"top_cost_assets"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// CostEntry is one row of the most expensive assets list.
type CostEntry struct {
	AssetID     string  `json:"asset_id"`
	Name        string  `json:"asset_name"`
	Category    string  `json:"category"`
	Location    string  `json:"location"`
	Maintenance float64 `json:"annual_maintenance"`
}

// FleetSummary computes KPIs over the corpus.
func FleetSummary(records []asset.Record, now time.Time) FleetKPIs {
	kpis := FleetKPIs{
		TotalAssets:    len(records),
		ByCategory:     make(map[string]int),
		ByLocation:     make(map[string]int),
		ByCriticality:  make(map[string]int),
		CostByCategory: make(map[string]float64),
		UpdatedAt:      now.UTC(),
	}
	if len(records) == 0 {
		return kpis
	}

	maintenance := make([]float64, len(records))
	ages := make([]float64, len(records))
	for i, rec := range records {
		kpis.TotalValue += rec.PurchasePrice
		kpis.TotalMaintenance += rec.AnnualMaintenance
		maintenance[i] = rec.AnnualMaintenance
		ages[i] = rec.AgeYears

		kpis.ByCategory[rec.Category]++
		kpis.ByLocation[rec.Location]++
		kpis.ByCriticality[rec.Criticality]++
		kpis.CostByCategory[rec.Category] += rec.AnnualMaintenance
	}

	kpis.MeanMaintenance = stat.Mean(maintenance, nil)
	kpis.StdDevMaintenance = stat.StdDev(maintenance, nil)
	kpis.MeanAge = stat.Mean(ages, nil)
	if kpis.TotalValue > 0 {
		kpis.MaintenanceRatio = kpis.TotalMaintenance / kpis.TotalValue
	}

	sorted := make([]asset.Record, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].AnnualMaintenance > sorted[j].AnnualMaintenance
	})
	n := 5
	if n > len(sorted) {
		n = len(sorted)
	}
	for _, rec := range sorted[:n] {
		kpis.TopCostAssets = append(kpis.TopCostAssets, CostEntry{
			AssetID:     rec.ID,
			Name:        rec.Name,
			Category:    rec.Category,
			Location:    rec.Location,
			Maintenance: rec.AnnualMaintenance,
		})
	}
	return kpis
}
