package energy

import (
	"math"
	"math/rand"
	"time"
)

// HourlyPrice is one point of the synthesized 24h curve.
type HourlyPrice struct {
	Hour  int     `json:"hour"`
	Price float64 `json:"price"`
}

// Forecast synthesizes a 24h price curve around the current price.
// Morning and evening peaks run 30% above base, night hours 30% below.
func (a *Agent) Forecast(location string) []HourlyPrice {
	base, _, _ := a.CurrentPrice(location)
	rnd := rand.New(rand.NewSource(time.Now().Unix() / 3600))

	curve := make([]HourlyPrice, 24)
	for h := 0; h < 24; h++ {
		factor := 1.0
		switch {
		case (h >= 6 && h <= 9) || (h >= 18 && h <= 21):
			factor = 1.3
		case h >= 23 || h <= 5:
			factor = 0.7
		}
		jitter := 0.9 + rnd.Float64()*0.2
		curve[h] = HourlyPrice{Hour: h, Price: math.Round(base*factor*jitter*10000) / 10000}
	}
	return curve
}

// Recommendation suggests a way to exploit the price curve.
type Recommendation struct {
	Title        string  `json:"title"`
	Detail       string  `json:"detail"`
	AnnualSaving float64 `json:"annual_saving,omitempty"`
}

// Optimize derives load-management suggestions for an asset with the
// given power draw and annual energy spend.
func (a *Agent) Optimize(location string, powerKW, annualEnergyCost float64) []Recommendation {
	curve := a.Forecast(location)

	min, max := curve[0].Price, curve[0].Price
	cheapest := 0
	for _, p := range curve {
		if p.Price < min {
			min = p.Price
			cheapest = p.Hour
		}
		if p.Price > max {
			max = p.Price
		}
	}

	var recs []Recommendation

	spread := 0.0
	if min > 0 {
		spread = (max - min) / min
	}
	if spread > 0.15 {
		recs = append(recs, Recommendation{
			Title:  "Schedule flexible operation into off-peak windows",
			Detail: "Intraday price spread exceeds 15%. Cheapest hour starts at " + clockHour(cheapest) + ".",
		})
	}

	// Shifting a quarter of consumption into the cheap window, over
	// 250 workdays.
	shiftSaving := annualEnergyCost * 0.25 * spread * 250 / 365
	if shiftSaving > 1000 {
		recs = append(recs, Recommendation{
			Title:        "Load shifting",
			Detail:       "Moving deferrable load to low-price hours pays off at this consumption level.",
			AnnualSaving: math.Round(shiftSaving),
		})
	}

	if powerKW > 100 {
		recs = append(recs, Recommendation{
			Title:  "Demand response participation",
			Detail: "Loads above 100 kW qualify for grid flexibility programs.",
		})
	}

	return recs
}

func clockHour(h int) string {
	return time.Date(0, 1, 1, h, 0, 0, 0, time.UTC).Format("15:04")
}

// Stats summarizes the current curve for the dashboard.
type Stats struct {
	Current  float64 `json:"current"`
	Country  string  `json:"country"`
	Source   string  `json:"source"`
	Realtime bool    `json:"realtime"`
	DayMin   float64 `json:"day_min"`
	DayMax   float64 `json:"day_max"`
	DayMean  float64 `json:"day_mean"`
}

func (a *Agent) PriceStats(location string) Stats {
	price, source, realtime := a.CurrentPrice(location)
	curve := a.Forecast(location)

	min, max, sum := curve[0].Price, curve[0].Price, 0.0
	for _, p := range curve {
		if p.Price < min {
			min = p.Price
		}
		if p.Price > max {
			max = p.Price
		}
		sum += p.Price
	}
	return Stats{
		Current:  price,
		Country:  countryFor(location),
		Source:   source,
		Realtime: realtime,
		DayMin:   min,
		DayMax:   max,
		DayMean:  math.Round(sum/24*10000) / 10000,
	}
}
