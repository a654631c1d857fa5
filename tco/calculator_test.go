package tco

import (
	"strings"
	"testing"
	"time"

	"assettco/asset"
)

func serverInput() Input {
	return Input{
		Record: asset.Record{
			Name:             "Rack Server",
			Category:         asset.CategoryIT,
			Subcategory:      "Server",
			PurchasePrice:    20000,
			AgeYears:         2,
			WarrantyYears:    3,
			ExpectedLifetime: 5,
			Location:         "Duesseldorf (HQ)",
			UsagePattern:     asset.UsageContinuous,
			Criticality:      asset.CriticalityHigh,
		},
	}
}

func separatorInput() Input {
	return Input{
		Record: asset.Record{
			Name:             "Milk Separator",
			Category:         asset.CategoryIndustrial,
			Subcategory:      "Separator",
			Manufacturer:     "GEA",
			PurchasePrice:    250000,
			AgeYears:         3,
			WarrantyYears:    2,
			ExpectedLifetime: 15,
			Location:         "Duesseldorf (HQ)",
			UsagePattern:     asset.UsageExtended,
			Criticality:      asset.CriticalityCritical,
		},
	}
}

func componentByName(t *testing.T, components []Component, name string) Component {
	t.Helper()
	for _, c := range components {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("component %q missing", name)
	return Component{}
}

func TestComponentsProcessEquipmentOnly(t *testing.T) {
	calc := NewCalculator(nil)

	server := calc.Components(serverInput())
	if c := componentByName(t, server, "water"); c.AnnualCost != 0 {
		t.Errorf("server water cost = %v, want 0", c.AnnualCost)
	}
	if c := componentByName(t, server, "cleaning"); c.AnnualCost != 0 {
		t.Errorf("server cleaning cost = %v, want 0", c.AnnualCost)
	}

	separator := calc.Components(separatorInput())
	if c := componentByName(t, separator, "water"); c.AnnualCost <= 0 {
		t.Errorf("separator water cost = %v, want positive", c.AnnualCost)
	}
	if c := componentByName(t, separator, "cleaning"); c.AnnualCost <= 0 {
		t.Errorf("separator cleaning cost = %v, want positive", c.AnnualCost)
	}
}

func TestMaintenanceGrowsWithAge(t *testing.T) {
	calc := NewCalculator(nil)
	young := serverInput()
	young.AgeYears = 1
	old := serverInput()
	old.AgeYears = 8

	youngCost := componentByName(t, calc.Components(young), "maintenance").AnnualCost
	oldCost := componentByName(t, calc.Components(old), "maintenance").AnnualCost
	if oldCost <= youngCost {
		t.Errorf("maintenance at age 8 (%v) not above age 1 (%v)", oldCost, youngCost)
	}
}

type fixedPricer struct {
	price    float64
	realtime bool
}

func (p fixedPricer) CurrentPrice(string) (float64, string, bool) {
	return p.price, "test", p.realtime
}

func TestEnergyComponentUsesPricer(t *testing.T) {
	in := serverInput()

	regional := componentByName(t, NewCalculator(nil).Components(in), "energy")
	spot := componentByName(t, NewCalculator(fixedPricer{price: 0.50, realtime: true}).Components(in), "energy")

	if spot.AnnualCost <= regional.AnnualCost {
		t.Errorf("spot price 0.50 should cost more than regional tariff: %v vs %v", spot.AnnualCost, regional.AnnualCost)
	}
	if spot.Confidence != 0.95 {
		t.Errorf("realtime confidence = %v, want 0.95", spot.Confidence)
	}
	if regional.Confidence != 0.90 {
		t.Errorf("tariff confidence = %v, want 0.90", regional.Confidence)
	}
}

func TestCalculateTotals(t *testing.T) {
	res := NewCalculator(nil).Calculate(serverInput())

	if res.AnalysisYears != 5 {
		t.Errorf("analysis years = %d, want 5", res.AnalysisYears)
	}
	if len(res.YearlyCosts) != 5 {
		t.Errorf("yearly costs = %d entries, want 5", len(res.YearlyCosts))
	}
	if want := round2(20000 * 1.07); res.AcquisitionCost != want {
		t.Errorf("acquisition = %v, want %v", res.AcquisitionCost, want)
	}
	if res.DisposalCost >= 0 {
		t.Errorf("disposal = %v, residual value should make it negative", res.DisposalCost)
	}
	if res.TotalTCO <= res.AcquisitionCost {
		t.Errorf("total TCO %v should exceed acquisition %v", res.TotalTCO, res.AcquisitionCost)
	}
	if res.TCOMultiple <= 1 {
		t.Errorf("TCO multiple = %v, want above 1", res.TCOMultiple)
	}
	// variable escalation compounds year over year
	if res.YearlyCosts[4] <= res.YearlyCosts[0] {
		t.Errorf("year 5 cost %v not above year 1 %v", res.YearlyCosts[4], res.YearlyCosts[0])
	}
	if res.Confidence <= 0 || res.Confidence > 1 {
		t.Errorf("confidence = %v, want within (0,1]", res.Confidence)
	}
	if res.Benchmark == nil || len(res.Benchmark.Entries) == 0 {
		t.Error("benchmark missing from result")
	}
}

func TestWeightedConfidenceIgnoresZeroCost(t *testing.T) {
	components := []Component{
		{Name: "a", AnnualCost: 1000, Confidence: 0.80},
		{Name: "b", AnnualCost: 0, Confidence: 0.10},
	}
	if got := weightedConfidence(components); got != 0.80 {
		t.Errorf("weighted confidence = %v, want 0.80", got)
	}
	if got := weightedConfidence(nil); got != 0.5 {
		t.Errorf("empty confidence = %v, want 0.5", got)
	}
}

func TestCostSharesSumToRoughly100(t *testing.T) {
	components := NewCalculator(nil).Components(separatorInput())
	shares := costShares(components)

	var sum float64
	for _, v := range shares {
		sum += v
	}
	if sum < 99 || sum > 101 {
		t.Errorf("cost shares sum = %v, want about 100", sum)
	}
}

func TestRecommendSeparatorFindsSavings(t *testing.T) {
	in := separatorInput()
	components := NewCalculator(nil).Components(in)

	recs := Recommend(in, components)
	if len(recs) == 0 {
		t.Fatal("expected recommendations for a high-cost separator")
	}
	if len(recs) > 5 {
		t.Errorf("got %d recommendations, cap is 5", len(recs))
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].AnnualSaving > recs[i-1].AnnualSaving {
			t.Error("recommendations not sorted by saving")
		}
	}
	for _, r := range recs {
		if r.Priority == "" {
			t.Errorf("recommendation %q missing priority", r.Title)
		}
	}
}

func TestBenchmarkFlagsHighRatios(t *testing.T) {
	in := serverInput()
	components := []Component{
		{Name: "maintenance", AnnualCost: in.PurchasePrice * 0.30},
		{Name: "energy", AnnualCost: in.PurchasePrice * 0.01},
	}

	bench := Benchmark(in, components, 2.0)
	for _, e := range bench.Entries {
		switch e.Metric {
		case "maintenance_ratio":
			if e.Status != "High" {
				t.Errorf("maintenance ratio 0.30 vs ref 0.12: status = %q, want High", e.Status)
			}
		case "energy_ratio":
			if e.Status != "Good" {
				t.Errorf("energy ratio 0.01 vs ref 0.03: status = %q, want Good", e.Status)
			}
		case "tco_multiple":
			if e.Status != "Good" {
				t.Errorf("tco multiple 2.0 vs ref 2.2: status = %q, want Good", e.Status)
			}
		}
	}
}

func TestQuickProjection(t *testing.T) {
	rec := serverInput().Record
	res := Quick(rec, 2400)

	if res.LifetimeYears != 5 {
		t.Errorf("lifetime = %d, want 5", res.LifetimeYears)
	}
	if len(res.YearlyCosts) != 5 {
		t.Fatalf("yearly costs = %d entries, want 5", len(res.YearlyCosts))
	}
	if res.YearlyCosts[0] != 2400 {
		t.Errorf("first year = %v, want the unescalated estimate 2400", res.YearlyCosts[0])
	}
	if res.YearlyCosts[4] <= res.YearlyCosts[0] {
		t.Error("maintenance escalation missing")
	}
	if want := round2(20000 * 0.10); res.DowntimeRisk != want {
		t.Errorf("downtime risk = %v, want %v for high criticality", res.DowntimeRisk, want)
	}
	if res.EnergyCost <= 0 {
		t.Errorf("energy cost = %v, want positive for IT equipment", res.EnergyCost)
	}
	if res.TotalTCO <= rec.PurchasePrice {
		t.Errorf("total TCO %v should exceed purchase price", res.TotalTCO)
	}
}

func TestQuickFallsBackToFlatRate(t *testing.T) {
	rec := serverInput().Record
	res := Quick(rec, 0)
	if want := round2(rec.PurchasePrice * 0.15); res.YearlyCosts[0] != want {
		t.Errorf("fallback first year = %v, want %v", res.YearlyCosts[0], want)
	}
}

func TestReportContainsSections(t *testing.T) {
	res := NewCalculator(nil).Calculate(separatorInput())
	report := Report(res, time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC))

	for _, want := range []string{"Milk Separator", "maintenance", "Total TCO", "EUR"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q", want)
		}
	}
}
