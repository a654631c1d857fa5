package tco

import "assettco/asset"

// categoryBenchmark holds typical cost ratios for a category. Ratios
// are relative to purchase price per year; tco_multiple covers the
// whole lifetime.
type categoryBenchmark struct {
	MaintenanceRatio float64
	EnergyRatio      float64
	WaterRatio       float64
	TCOMultiple      float64
	Availability     float64
}

var categoryBenchmarks = map[string]categoryBenchmark{
	asset.CategoryIT:         {0.12, 0.03, 0.0, 2.2, 0.995},
	asset.CategoryIndustrial: {0.08, 0.06, 0.02, 3.5, 0.97},
	asset.CategorySoftware:   {0.20, 0.0, 0.0, 2.8, 0.999},
	asset.CategoryVehicles:   {0.10, 0.0, 0.0, 2.0, 0.95},
}

var defaultBenchmark = categoryBenchmark{0.10, 0.04, 0.01, 2.5, 0.97}

// BenchmarkEntry compares one metric against the category reference.
type BenchmarkEntry struct {
	Metric    string  `json:"metric"`
	Actual    float64 `json:"actual"`
	Reference float64 `json:"reference"`
	Variance  float64 `json:"variance_pct"`
	Status    string  `json:"status"`
}

type BenchmarkResult struct {
	Category string           `json:"category"`
	Entries  []BenchmarkEntry `json:"entries"`
}

// Benchmark compares the component breakdown against category-typical
// ratios. A metric within 110% of the reference counts as Good.
func Benchmark(in Input, components []Component, tcoMultiple float64) BenchmarkResult {
	ref, ok := categoryBenchmarks[in.Category]
	if !ok {
		ref = defaultBenchmark
	}

	byName := make(map[string]float64, len(components))
	for _, c := range components {
		byName[c.Name] = c.AnnualCost
	}

	var entries []BenchmarkEntry
	if in.PurchasePrice > 0 {
		entries = append(entries,
			benchmarkEntry("maintenance_ratio", byName["maintenance"]/in.PurchasePrice, ref.MaintenanceRatio),
			benchmarkEntry("energy_ratio", byName["energy"]/in.PurchasePrice, ref.EnergyRatio),
			benchmarkEntry("water_ratio", byName["water"]/in.PurchasePrice, ref.WaterRatio),
		)
	}
	entries = append(entries, benchmarkEntry("tco_multiple", tcoMultiple, ref.TCOMultiple))

	return BenchmarkResult{Category: in.Category, Entries: entries}
}

func benchmarkEntry(metric string, actual, reference float64) BenchmarkEntry {
	e := BenchmarkEntry{
		Metric:    metric,
		Actual:    round2(actual),
		Reference: reference,
		Status:    "Good",
	}
	if reference > 0 {
		e.Variance = round2((actual/reference - 1) * 100)
		if actual > reference*1.1 {
			e.Status = "High"
		}
	} else if actual > 0 {
		e.Status = "High"
		e.Variance = 100
	}
	return e
}
