package tco

import "assettco/asset"

// Regional cost tables per site. Values are industrial tariffs:
// electricity in EUR/kWh, water in EUR/liter, labor in EUR/hour,
// compliance as a relative factor against the EU baseline.
type RegionalFactors struct {
	Electricity float64
	Water       float64
	Labor       float64
	Compliance  float64
	Insurance   float64
}

var regionalFactors = map[string]RegionalFactors{
	"Duesseldorf (HQ)": {0.28, 0.0025, 48, 1.2, 1.0},
	"Oelde":            {0.26, 0.0020, 42, 1.2, 1.0},
	"Berlin":           {0.27, 0.0028, 45, 1.2, 1.0},
	"Hamburg":          {0.28, 0.0024, 47, 1.2, 1.0},
	"Munich":           {0.29, 0.0030, 50, 1.2, 1.0},
	"Copenhagen":       {0.32, 0.0035, 58, 1.3, 0.95},
	"Milan":            {0.25, 0.0020, 38, 1.1, 1.1},
	"Lyon":             {0.24, 0.0022, 35, 1.1, 1.0},
	"Shanghai":         {0.08, 0.0008, 12, 0.8, 1.3},
	"Singapore":        {0.18, 0.0030, 25, 1.0, 1.1},
	"Chicago":          {0.12, 0.0015, 35, 0.9, 1.2},
	"Sao Paulo":        {0.15, 0.0010, 15, 0.7, 1.4},
}

var defaultRegionalFactors = RegionalFactors{0.25, 0.0020, 40, 1.0, 1.0}

func RegionFor(location string) RegionalFactors {
	if f, ok := regionalFactors[location]; ok {
		return f
	}
	return defaultRegionalFactors
}

// OperatingHours maps usage pattern to annual operating hours.
var OperatingHours = map[string]float64{
	asset.UsageOccasional: 1000,
	asset.UsageStandard:   2000,
	asset.UsageExtended:   3500,
	asset.UsageContinuous: 8000,
}

func operatingHours(usagePattern string) float64 {
	if h, ok := OperatingHours[usagePattern]; ok {
		return h
	}
	return 2000
}

var loadFactors = map[string]float64{
	asset.UsageOccasional: 0.60,
	asset.UsageStandard:   0.75,
	asset.UsageExtended:   0.85,
	asset.UsageContinuous: 0.80,
}

func loadFactor(usagePattern string) float64 {
	if f, ok := loadFactors[usagePattern]; ok {
		return f
	}
	return 0.75
}

// processSubcategories need CIP cleaning and carry food-grade
// compliance burdens.
var processSubcategories = map[string]bool{
	"Separator":   true,
	"Homogenizer": true,
	"Pasteurizer": true,
}

func isProcessEquipment(subcategory string) bool {
	return processSubcategories[subcategory]
}

// typicalPowerKW is used when the caller does not supply a measured
// power draw.
var typicalPowerKW = map[string]float64{
	"Server":      0.8,
	"Laptop":      0.06,
	"Workstation": 0.4,
	"Network":     0.5,
	"Separator":   45,
	"Homogenizer": 75,
	"Pump":        15,
	"Pasteurizer": 60,
	"Car":         0,
	"Truck":       0,
}

func powerEstimate(subcategory string) float64 {
	if kw, ok := typicalPowerKW[subcategory]; ok {
		return kw
	}
	return 20
}
