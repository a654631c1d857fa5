package asset

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Generator produces synthetic but realistic asset records for model
// training. The maintenance label is a multiplicative factor model plus
// gaussian noise, so a regressor has real structure to learn.
type Generator struct {
	rnd *rand.Rand
	now time.Time
}

func NewGenerator(seed int64) *Generator {
	return &Generator{
		rnd: rand.New(rand.NewSource(seed)),
		now: time.Now(),
	}
}

func (g *Generator) Generate(count int) []Record {
	templates := Templates()
	sites := Sites()

	records := make([]Record, 0, count)
	for i := 0; i < count; i++ {
		tpl := templates[g.weightedTemplate(templates)]
		site := sites[g.weightedSite(sites)]

		price := roundCents(tpl.PriceMin + g.rnd.Float64()*(tpl.PriceMax-tpl.PriceMin))
		manufacturer := tpl.Manufacturers[g.rnd.Intn(len(tpl.Manufacturers))]

		// Purchase dates skew recent, capped at five years back.
		daysAgo := g.rnd.ExpFloat64() * 365
		if daysAgo > 5*365 {
			daysAgo = 5 * 365
		}
		purchaseDate := g.now.AddDate(0, 0, -int(daysAgo))
		ageYears := g.now.Sub(purchaseDate).Hours() / 24 / 365.25

		rec := Record{
			ID:               fmt.Sprintf("A%04d", i+1),
			Name:             assetName(tpl, site, i+1),
			Category:         tpl.Category,
			Subcategory:      tpl.Subcategory,
			Manufacturer:     manufacturer,
			PurchasePrice:    price,
			PurchaseDate:     purchaseDate,
			AgeYears:         math.Round(ageYears*100) / 100,
			Location:         site.Name,
			UsagePattern:     tpl.UsagePatterns[g.rnd.Intn(len(tpl.UsagePatterns))],
			Criticality:      g.criticality(),
			WarrantyYears:    g.warrantyYears(),
			ExpectedLifetime: tpl.TypicalLifetime,
		}

		rec.AnnualMaintenance = g.maintenanceCost(rec, tpl)
		rec.MaintenanceRatio = math.Round(rec.AnnualMaintenance/rec.PurchasePrice*10000) / 10000
		records = append(records, rec)
	}
	return records
}

// maintenanceCost applies the factor model: base rate scaled by
// manufacturer, age, usage, criticality, location and warranty, with a
// ±15% gaussian variance floored at 30% of the expected value.
func (g *Generator) maintenanceCost(rec Record, tpl Template) float64 {
	base := rec.PurchasePrice * tpl.BaseMaintenance

	mfg := 1.0
	if f, ok := ManufacturerFactors()[rec.Manufacturer]; ok {
		mfg = f
	}

	age := 1.0 + rec.AgeYears*0.1 + math.Pow(rec.AgeYears, 1.5)*0.02

	usage := 1.0
	if f, ok := UsageFactors()[rec.UsagePattern]; ok {
		usage = f
	}

	crit := 1.0
	if f, ok := CriticalityFactors()[rec.Criticality]; ok {
		crit = f
	}

	location := SiteByName(rec.Location).CostFactor

	warranty := 1.0
	if rec.WarrantyActive() {
		warranty = 0.7
	}

	cost := base * mfg * age * usage * crit * location * warranty
	variance := 1.0 + g.rnd.NormFloat64()*0.15
	if variance < 0.3 {
		variance = 0.3
	}
	return roundCents(cost * variance)
}

func (g *Generator) criticality() string {
	r := g.rnd.Float64()
	switch {
	case r < 0.20:
		return CriticalityLow
	case r < 0.70:
		return CriticalityMedium
	case r < 0.95:
		return CriticalityHigh
	default:
		return CriticalityCritical
	}
}

func (g *Generator) warrantyYears() float64 {
	r := g.rnd.Float64()
	switch {
	case r < 0.4:
		return 1
	case r < 0.7:
		return 2
	case r < 0.9:
		return 3
	default:
		return 5
	}
}

func (g *Generator) weightedTemplate(templates []Template) int {
	total := 0
	for _, t := range templates {
		total += t.Weight
	}
	pick := g.rnd.Intn(total)
	for i, t := range templates {
		pick -= t.Weight
		if pick < 0 {
			return i
		}
	}
	return len(templates) - 1
}

func (g *Generator) weightedSite(sites []Site) int {
	total := 0
	for _, s := range sites {
		total += s.Weight
	}
	pick := g.rnd.Intn(total)
	for i, s := range sites {
		pick -= s.Weight
		if pick < 0 {
			return i
		}
	}
	return len(sites) - 1
}

func assetName(tpl Template, site Site, index int) string {
	if tpl.Category == CategorySoftware {
		return fmt.Sprintf("%s-%03d", tpl.NamePrefix, index)
	}
	return fmt.Sprintf("%s-%s-%03d", tpl.NamePrefix, site.Code, index)
}

// AddQualityIssues degrades a clean dataset the way real inventories look:
// missing fields, inconsistent manufacturer spellings and a few label
// outliers from fat-finger entry.
func (g *Generator) AddQualityIssues(records []Record, missingRate float64) []Record {
	out := make([]Record, len(records))
	copy(out, records)

	n := len(out)
	nMissing := int(float64(n) * missingRate)
	for i := 0; i < nMissing; i++ {
		idx := g.rnd.Intn(n)
		switch g.rnd.Intn(3) {
		case 0:
			out[idx].Manufacturer = ""
		case 1:
			out[idx].WarrantyYears = 0
		default:
			out[idx].UsagePattern = ""
		}
	}

	for i := range out {
		if out[i].Manufacturer != "Dell" {
			continue
		}
		switch r := g.rnd.Float64(); {
		case r < 0.2:
			out[i].Manufacturer = "DELL"
		case r < 0.3:
			out[i].Manufacturer = "Dell Inc."
		}
	}

	nOutliers := n / 50
	for i := 0; i < nOutliers; i++ {
		idx := g.rnd.Intn(n)
		if g.rnd.Float64() > 0.5 {
			out[idx].AnnualMaintenance *= 3 + g.rnd.Float64()*7
		} else {
			out[idx].AnnualMaintenance *= 0.1 + g.rnd.Float64()*0.2
		}
		out[idx].AnnualMaintenance = roundCents(out[idx].AnnualMaintenance)
		if out[idx].PurchasePrice > 0 {
			out[idx].MaintenanceRatio = math.Round(out[idx].AnnualMaintenance/out[idx].PurchasePrice*10000) / 10000
		}
	}

	return out
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
