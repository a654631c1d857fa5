package monitoring

import (
	"testing"
	"time"

	"assettco/asset"
)

func fleetRecords() []asset.Record {
	return []asset.Record{
		{ID: "1", Name: "Server A", Category: asset.CategoryIT, Location: "Duesseldorf (HQ)",
			Criticality: asset.CriticalityHigh, PurchasePrice: 20000, AnnualMaintenance: 3000, AgeYears: 2},
		{ID: "2", Name: "Server B", Category: asset.CategoryIT, Location: "Copenhagen",
			Criticality: asset.CriticalityMedium, PurchasePrice: 10000, AnnualMaintenance: 1000, AgeYears: 4},
		{ID: "3", Name: "Separator", Category: asset.CategoryIndustrial, Location: "Duesseldorf (HQ)",
			Criticality: asset.CriticalityCritical, PurchasePrice: 200000, AnnualMaintenance: 18000, AgeYears: 6},
	}
}

func TestFleetSummary(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	kpis := FleetSummary(fleetRecords(), now)

	if kpis.TotalAssets != 3 {
		t.Errorf("total assets = %d, want 3", kpis.TotalAssets)
	}
	if kpis.TotalValue != 230000 {
		t.Errorf("total value = %v, want 230000", kpis.TotalValue)
	}
	if kpis.TotalMaintenance != 22000 {
		t.Errorf("total maintenance = %v, want 22000", kpis.TotalMaintenance)
	}
	if kpis.ByCategory[asset.CategoryIT] != 2 {
		t.Errorf("IT count = %d, want 2", kpis.ByCategory[asset.CategoryIT])
	}
	if kpis.ByLocation["Duesseldorf (HQ)"] != 2 {
		t.Errorf("HQ count = %d, want 2", kpis.ByLocation["Duesseldorf (HQ)"])
	}
	if kpis.CostByCategory[asset.CategoryIndustrial] != 18000 {
		t.Errorf("industrial cost = %v", kpis.CostByCategory[asset.CategoryIndustrial])
	}
	if got := kpis.MaintenanceRatio; got < 0.09 || got > 0.10 {
		t.Errorf("maintenance ratio = %v, want about 0.0956", got)
	}

	if len(kpis.TopCostAssets) != 3 {
		t.Fatalf("top cost assets = %d entries, want 3", len(kpis.TopCostAssets))
	}
	if kpis.TopCostAssets[0].Name != "Separator" {
		t.Errorf("most expensive = %q, want Separator", kpis.TopCostAssets[0].Name)
	}
}

func TestFleetSummaryEmpty(t *testing.T) {
	kpis := FleetSummary(nil, time.Now())
	if kpis.TotalAssets != 0 || kpis.MeanMaintenance != 0 {
		t.Errorf("empty corpus KPIs not zeroed: %+v", kpis)
	}
	if kpis.ByCategory == nil {
		t.Error("maps must be initialized even for an empty corpus")
	}
}
