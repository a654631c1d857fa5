package tco

import (
	"math"
	"sort"
)

// Result is the full multi-year TCO analysis for one asset.
type Result struct {
	AssetName       string             `json:"asset_name"`
	Location        string             `json:"location"`
	AnalysisYears   int                `json:"analysis_years"`
	Components      []Component        `json:"components"`
	AcquisitionCost float64            `json:"acquisition_cost"`
	DisposalCost    float64            `json:"disposal_cost"`
	YearlyCosts     []float64          `json:"yearly_costs"`
	TotalTCO        float64            `json:"total_tco"`
	TCOMultiple     float64            `json:"tco_multiple"`
	AnnualAverage   float64            `json:"annual_average"`
	Confidence      float64            `json:"confidence"`
	ConfidenceLevel string             `json:"confidence_level"`
	Recommendations []Recommendation   `json:"recommendations"`
	Benchmark       *BenchmarkResult   `json:"benchmark,omitempty"`
	CostShares      map[string]float64 `json:"cost_shares"`
}

const (
	inflationRate   = 0.03
	wearEscalation  = 0.02
	fixedEscalation = 0.03

	installShare  = 0.05
	trainingShare = 0.02
	disposalShare = 0.03
	residualShare = 0.15
)

// Calculator produces extended TCO analyses. The energy pricer is
// optional; without it the regional tariff tables apply.
type Calculator struct {
	pricer EnergyPricer
}

func NewCalculator(pricer EnergyPricer) *Calculator {
	return &Calculator{pricer: pricer}
}

// Components computes all annual cost lines for the asset.
func (c *Calculator) Components(in Input) []Component {
	return []Component{
		maintenanceComponent(in),
		energyComponent(in, c.pricer),
		waterComponent(in),
		personnelComponent(in),
		sparePartsComponent(in),
		cleaningComponent(in),
		monitoringComponent(in),
		complianceComponent(in),
		insuranceComponent(in),
	}
}

// Calculate runs the full analysis over the asset's expected lifetime.
func (c *Calculator) Calculate(in Input) Result {
	components := c.Components(in)
	years := in.lifetime()

	acquisition := in.PurchasePrice * (1 + installShare + trainingShare)
	disposal := in.PurchasePrice * (disposalShare - residualShare)

	yearly := make([]float64, years)
	total := acquisition
	for y := 1; y <= years; y++ {
		variableEsc := math.Pow(1+inflationRate+wearEscalation, float64(y-1))
		fixedEsc := math.Pow(1+fixedEscalation, float64(y-1))

		var yearCost float64
		for _, comp := range components {
			switch comp.Kind {
			case KindVariable:
				yearCost += comp.AnnualCost * variableEsc
			case KindFixed:
				yearCost += comp.AnnualCost * fixedEsc
			}
		}
		yearly[y-1] = round2(yearCost)
		total += yearCost
	}
	total += disposal

	res := Result{
		AssetName:       in.Name,
		Location:        in.Location,
		AnalysisYears:   years,
		Components:      components,
		AcquisitionCost: round2(acquisition),
		DisposalCost:    round2(disposal),
		YearlyCosts:     yearly,
		TotalTCO:        round2(total),
		AnnualAverage:   round2(total / float64(years)),
		CostShares:      costShares(components),
	}
	if in.PurchasePrice > 0 {
		res.TCOMultiple = round2(total / in.PurchasePrice)
	}
	res.Confidence = weightedConfidence(components)
	res.ConfidenceLevel = confidenceLevel(res.Confidence)
	res.Recommendations = Recommend(in, components)
	bench := Benchmark(in, components, res.TCOMultiple)
	res.Benchmark = &bench
	return res
}

// weightedConfidence averages component confidence weighted by each
// component's share of annual cost. Zero-cost lines do not dilute it.
func weightedConfidence(components []Component) float64 {
	var costSum, weighted float64
	for _, c := range components {
		if c.AnnualCost <= 0 {
			continue
		}
		costSum += c.AnnualCost
		weighted += c.AnnualCost * c.Confidence
	}
	if costSum == 0 {
		return 0.5
	}
	return math.Round(weighted/costSum*100) / 100
}

func confidenceLevel(conf float64) string {
	switch {
	case conf >= 0.85:
		return "High"
	case conf >= 0.75:
		return "Medium"
	case conf >= 0.65:
		return "Moderate"
	default:
		return "Low"
	}
}

func costShares(components []Component) map[string]float64 {
	var total float64
	for _, c := range components {
		total += c.AnnualCost
	}
	shares := make(map[string]float64, len(components))
	if total == 0 {
		return shares
	}
	for _, c := range components {
		shares[c.Name] = math.Round(c.AnnualCost/total*1000) / 10
	}
	return shares
}

// TopComponents returns the n most expensive annual cost lines.
func TopComponents(components []Component, n int) []Component {
	sorted := make([]Component, len(components))
	copy(sorted, components)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].AnnualCost > sorted[j].AnnualCost
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
