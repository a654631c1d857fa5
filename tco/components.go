package tco

import (
	"math"

	"assettco/asset"
)

// Component is one annual cost line in the extended TCO breakdown.
type Component struct {
	Name       string             `json:"name"`
	AnnualCost float64            `json:"annual_cost"`
	Kind       string             `json:"kind"` // fixed, variable, one_time
	Confidence float64            `json:"confidence"`
	Method     string             `json:"method"`
	Factors    map[string]float64 `json:"factors,omitempty"`
}

const (
	KindFixed    = "fixed"
	KindVariable = "variable"
	KindOneTime  = "one_time"
)

// Input is an asset record plus the operational parameters the record
// itself does not carry.
type Input struct {
	asset.Record

	PowerKW         float64 `json:"power_kw,omitempty"`
	EfficiencyClass string  `json:"efficiency_class,omitempty"` // Standard or Premium
	LifetimeYears   int     `json:"lifetime_years,omitempty"`
}

func (in Input) powerKW() float64 {
	if in.PowerKW > 0 {
		return in.PowerKW
	}
	return powerEstimate(in.Subcategory)
}

func (in Input) efficiencyFactor() float64 {
	if in.EfficiencyClass == "Premium" {
		return 0.95
	}
	return 1.0
}

func (in Input) lifetime() int {
	if in.LifetimeYears > 0 {
		return in.LifetimeYears
	}
	if in.ExpectedLifetime > 0 {
		return int(in.ExpectedLifetime)
	}
	return 15
}

func baseMaintenanceRate(subcategory string) float64 {
	for _, tpl := range asset.Templates() {
		if tpl.Subcategory == subcategory {
			return tpl.BaseMaintenance
		}
	}
	return 0.12
}

func maintenanceComponent(in Input) Component {
	rate := baseMaintenanceRate(in.Subcategory)
	ageFactor := 1.0 + in.AgeYears*0.08 + math.Pow(in.AgeYears, 1.3)*0.015
	cost := in.PurchasePrice * rate * ageFactor

	return Component{
		Name:       "maintenance",
		AnnualCost: cost,
		Kind:       KindVariable,
		Confidence: 0.85,
		Method:     "price * base_rate * age_factor",
		Factors: map[string]float64{
			"purchase_price": in.PurchasePrice,
			"base_rate":      rate,
			"age_factor":     ageFactor,
		},
	}
}

// EnergyPricer lets the realtime agent override the regional tariff.
type EnergyPricer interface {
	CurrentPrice(location string) (eurPerKWh float64, source string, realtime bool)
}

func energyComponent(in Input, pricer EnergyPricer) Component {
	powerKW := in.powerKW()
	hours := operatingHours(in.UsagePattern)
	load := loadFactor(in.UsagePattern)
	efficiency := in.efficiencyFactor()

	price := RegionFor(in.Location).Electricity
	confidence := 0.90
	realtimeFlag := 0.0
	if pricer != nil {
		if p, _, realtime := pricer.CurrentPrice(in.Location); p > 0 {
			price = p
			if realtime {
				confidence = 0.95
				realtimeFlag = 1.0
			}
		}
	}

	annualKWh := powerKW * hours * load * efficiency
	cost := annualKWh * price

	return Component{
		Name:       "energy",
		AnnualCost: cost,
		Kind:       KindVariable,
		Confidence: confidence,
		Method:     "power * hours * load_factor * efficiency * price",
		Factors: map[string]float64{
			"power_kw":          powerKW,
			"annual_hours":      hours,
			"load_factor":       load,
			"efficiency_factor": efficiency,
			"electricity_price": price,
			"annual_kwh":        annualKWh,
			"realtime_price":    realtimeFlag,
		},
	}
}

func waterComponent(in Input) Component {
	if !isProcessEquipment(in.Subcategory) {
		return Component{Name: "water", Kind: KindVariable, Confidence: 1.0, Method: "not_applicable"}
	}

	const (
		operatingWaterLS  = 0.8 // liters per second while running
		waterPerEjection  = 2.0
		ejectionsPerHour  = 3.0
		cipCleaningFactor = 1.5
	)

	hours := operatingHours(in.UsagePattern)
	price := RegionFor(in.Location).Water

	hourlyLiters := (operatingWaterLS*3600/1000 + waterPerEjection*ejectionsPerHour) * cipCleaningFactor
	annualLiters := hourlyLiters * hours
	cost := annualLiters * price

	return Component{
		Name:       "water",
		AnnualCost: cost,
		Kind:       KindVariable,
		Confidence: 0.80,
		Method:     "(operation + ejection) * cip_factor * hours * price",
		Factors: map[string]float64{
			"annual_hours":  hours,
			"water_price":   price,
			"annual_liters": annualLiters,
		},
	}
}

func personnelComponent(in Input) Component {
	const baseHours = 400.0

	crit := 1.0
	if f, ok := asset.CriticalityFactors()[in.Criticality]; ok {
		crit = f
	}
	food := 1.0
	if isProcessEquipment(in.Subcategory) {
		food = 1.4
	}
	wage := RegionFor(in.Location).Labor

	totalHours := baseHours * crit * food
	cost := totalHours * wage

	return Component{
		Name:       "personnel",
		AnnualCost: cost,
		Kind:       KindVariable,
		Confidence: 0.75,
		Method:     "base_hours * criticality * hygiene_factor * wage",
		Factors: map[string]float64{
			"base_hours":         baseHours,
			"criticality_factor": crit,
			"hygiene_factor":     food,
			"hourly_wage":        wage,
			"total_hours":        totalHours,
		},
	}
}

func sparePartsComponent(in Input) Component {
	const baseRate = 0.04

	usage := 1.0
	switch in.UsagePattern {
	case asset.UsageOccasional:
		usage = 0.6
	case asset.UsageExtended:
		usage = 1.4
	case asset.UsageContinuous:
		usage = 2.0
	}
	ageFactor := 1.0 + in.AgeYears*0.12
	manufacturer := 1.0
	if in.Manufacturer == "GEA" || in.Manufacturer == "Alfa Laval" {
		manufacturer = 1.2
	}

	cost := in.PurchasePrice * baseRate * usage * ageFactor * manufacturer

	return Component{
		Name:       "spare_parts",
		AnnualCost: cost,
		Kind:       KindVariable,
		Confidence: 0.70,
		Method:     "price * base_rate * usage * age * manufacturer",
		Factors: map[string]float64{
			"base_rate":           baseRate,
			"usage_factor":        usage,
			"age_factor":          ageFactor,
			"manufacturer_factor": manufacturer,
		},
	}
}

func cleaningComponent(in Input) Component {
	if !isProcessEquipment(in.Subcategory) {
		return Component{Name: "cleaning", Kind: KindVariable, Confidence: 1.0, Method: "not_applicable"}
	}

	const baseRate = 0.025

	usage := 1.0
	switch in.UsagePattern {
	case asset.UsageOccasional:
		usage = 0.7
	case asset.UsageExtended:
		usage = 1.3
	case asset.UsageContinuous:
		usage = 1.6
	}
	regional := RegionFor(in.Location).Compliance

	cost := in.PurchasePrice * baseRate * usage * regional

	return Component{
		Name:       "cleaning",
		AnnualCost: cost,
		Kind:       KindVariable,
		Confidence: 0.80,
		Method:     "price * cleaning_rate * usage * regional",
		Factors: map[string]float64{
			"base_rate":       baseRate,
			"usage_factor":    usage,
			"regional_factor": regional,
		},
	}
}

func monitoringComponent(in Input) Component {
	base := map[string]float64{
		asset.CriticalityLow:      0,
		asset.CriticalityMedium:   1000,
		asset.CriticalityHigh:     2500,
		asset.CriticalityCritical: 5000,
	}[in.Criticality]
	if in.PurchasePrice > 200000 {
		base += 1500
	}
	software := 0.0
	if base > 0 {
		software = base * 0.3
	}

	return Component{
		Name:       "monitoring",
		AnnualCost: base + software,
		Kind:       KindFixed,
		Confidence: 0.85,
		Method:     "base_cost + software_licenses",
		Factors: map[string]float64{
			"base_cost":     base,
			"software_cost": software,
		},
	}
}

func complianceComponent(in Input) Component {
	base := 1000.0
	if isProcessEquipment(in.Subcategory) {
		base = 2500
	}
	regional := RegionFor(in.Location).Compliance
	size := 1.0 + in.PurchasePrice/500000*0.5

	return Component{
		Name:       "compliance",
		AnnualCost: base * regional * size,
		Kind:       KindFixed,
		Confidence: 0.75,
		Method:     "base_cost * regional * size_factor",
		Factors: map[string]float64{
			"base_cost":       base,
			"regional_factor": regional,
			"size_factor":     size,
		},
	}
}

func insuranceComponent(in Input) Component {
	const baseRate = 0.008

	crit := 1.0
	if f, ok := asset.CriticalityFactors()[in.Criticality]; ok {
		crit = f
	}
	category := 1.0
	if isProcessEquipment(in.Subcategory) {
		category = 1.2
	}
	regional := RegionFor(in.Location).Insurance

	return Component{
		Name:       "insurance",
		AnnualCost: in.PurchasePrice * baseRate * crit * category * regional,
		Kind:       KindFixed,
		Confidence: 0.90,
		Method:     "price * rate * criticality * category * regional",
		Factors: map[string]float64{
			"base_rate":          baseRate,
			"criticality_factor": crit,
			"category_factor":    category,
			"regional_factor":    regional,
		},
	}
}
