package tco

import "sort"

// Recommendation is one cost-reduction suggestion with an estimated
// annual saving.
type Recommendation struct {
	Title        string  `json:"title"`
	Detail       string  `json:"detail"`
	AnnualSaving float64 `json:"annual_saving"`
	Priority     string  `json:"priority"`
	TargetCost   string  `json:"target_cost"`
}

// Recommend derives savings opportunities from the component
// breakdown. Returns at most five, largest saving first.
func Recommend(in Input, components []Component) []Recommendation {
	byName := make(map[string]Component, len(components))
	var operating float64
	for _, c := range components {
		byName[c.Name] = c
		operating += c.AnnualCost
	}
	if operating == 0 {
		return nil
	}

	var recs []Recommendation

	if energy := byName["energy"]; energy.AnnualCost > operating*0.15 {
		recs = append(recs, Recommendation{
			Title:        "Energy efficiency upgrade",
			Detail:       "Energy exceeds 15% of operating cost. Evaluate premium efficiency drives and off-peak scheduling.",
			AnnualSaving: round2(energy.AnnualCost * 0.25),
			TargetCost:   "energy",
		})
	}
	if personnel := byName["personnel"]; personnel.AnnualCost > 15000 {
		recs = append(recs, Recommendation{
			Title:        "Automation of routine servicing",
			Detail:       "Personnel effort is above 15k EUR per year. Condition-based maintenance reduces scheduled interventions.",
			AnnualSaving: round2(personnel.AnnualCost * 0.30),
			TargetCost:   "personnel",
		})
	}
	maintSpares := byName["maintenance"].AnnualCost + byName["spare_parts"].AnnualCost
	if maintSpares > operating*0.25 {
		recs = append(recs, Recommendation{
			Title:        "Maintenance contract renegotiation",
			Detail:       "Maintenance and spare parts exceed 25% of operating cost. Bundle into a full-service agreement.",
			AnnualSaving: round2(maintSpares * 0.20),
			TargetCost:   "maintenance",
		})
	}
	waterCleaning := byName["water"].AnnualCost + byName["cleaning"].AnnualCost
	if waterCleaning > 5000 {
		recs = append(recs, Recommendation{
			Title:        "CIP cycle optimization",
			Detail:       "Water and cleaning exceed 5k EUR per year. Optimized CIP recipes cut water and chemical use.",
			AnnualSaving: round2(waterCleaning * 0.15),
			TargetCost:   "water",
		})
	}
	if in.Location == "Duesseldorf (HQ)" || in.Location == "Copenhagen" {
		recs = append(recs, Recommendation{
			Title:        "Remote monitoring",
			Detail:       "High-cost site. Remote diagnostics reduce on-site service visits.",
			AnnualSaving: round2(byName["personnel"].AnnualCost * 0.20),
			TargetCost:   "personnel",
		})
	}

	sort.Slice(recs, func(i, j int) bool { return recs[i].AnnualSaving > recs[j].AnnualSaving })
	if len(recs) > 5 {
		recs = recs[:5]
	}
	for i := range recs {
		switch {
		case recs[i].AnnualSaving > 10000:
			recs[i].Priority = "High"
		case recs[i].AnnualSaving > 3000:
			recs[i].Priority = "Medium"
		default:
			recs[i].Priority = "Low"
		}
	}
	return recs
}
