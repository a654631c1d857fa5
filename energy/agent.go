package energy

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"assettco/asset"
)

// Static industrial tariffs in EUR/kWh, used when no live market
// source covers the country.
var staticTariffs = map[string]float64{
	"DE": 0.28,
	"DK": 0.32,
	"IT": 0.25,
	"FR": 0.24,
	"NL": 0.26,
	"BE": 0.27,
	"AT": 0.26,
	"CH": 0.22,
	"PL": 0.18,
	"CZ": 0.16,
}

const defaultTariff = 0.25

type cachedPrice struct {
	Price    float64
	Source   string
	Realtime bool
}

// Agent resolves electricity prices per site. Live sources are tried
// in order and results are cached for an hour; static tariffs always
// answer.
type Agent struct {
	client *http.Client
	cache  *expirable.LRU[string, cachedPrice]
	logger *zap.Logger

	awattarBase      string
	energyChartsBase string
}

func NewAgent(logger *zap.Logger) *Agent {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Agent{
		client:           &http.Client{Timeout: 5 * time.Second},
		cache:            expirable.NewLRU[string, cachedPrice](64, nil, time.Hour),
		logger:           logger,
		awattarBase:      "https://api.awattar.%s/v1/marketdata",
		energyChartsBase: "https://api.energy-charts.info/price",
	}
}

// CurrentPrice returns the EUR/kWh price for the asset's site, the
// provider that supplied it, and whether it is a live spot price.
func (a *Agent) CurrentPrice(location string) (float64, string, bool) {
	country := countryFor(location)

	if cached, ok := a.cache.Get(country); ok {
		return cached.Price, cached.Source, cached.Realtime
	}

	if price, source, ok := a.spotPrice(country); ok {
		a.cache.Add(country, cachedPrice{price, source, true})
		return price, source, true
	}

	price, ok := staticTariffs[country]
	if !ok {
		price = defaultTariff
	}
	a.cache.Add(country, cachedPrice{price, "static", false})
	return price, "static", false
}

func (a *Agent) spotPrice(country string) (float64, string, bool) {
	switch country {
	case "DE":
		if p, ok := a.awattar("de"); ok {
			return p, "awattar", true
		}
		if p, ok := a.energyCharts("DE"); ok {
			return p, "energy-charts", true
		}
	case "AT":
		if p, ok := a.awattar("at"); ok {
			return p, "awattar", true
		}
	}
	return 0, "", false
}

type awattarResponse struct {
	Data []struct {
		StartTimestamp int64   `json:"start_timestamp"`
		Marketprice    float64 `json:"marketprice"`
	} `json:"data"`
}

func (a *Agent) awattar(tld string) (float64, bool) {
	now := time.Now()
	url := fmt.Sprintf(a.awattarBase, tld)
	url = fmt.Sprintf("%s?start=%d&end=%d", url, now.UnixMilli(), now.Add(time.Hour).UnixMilli())

	resp, err := a.client.Get(url)
	if err != nil {
		a.logger.Warn("awattar request failed", zap.String("tld", tld), zap.Error(err))
		return 0, false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		a.logger.Warn("awattar bad status", zap.Int("status", resp.StatusCode))
		return 0, false
	}

	var parsed awattarResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil || len(parsed.Data) == 0 {
		return 0, false
	}
	// marketprice is EUR/MWh
	return parsed.Data[0].Marketprice / 1000, true
}

type energyChartsResponse struct {
	Price []float64 `json:"price"`
}

func (a *Agent) energyCharts(zone string) (float64, bool) {
	resp, err := a.client.Get(fmt.Sprintf("%s?bzn=%s", a.energyChartsBase, zone))
	if err != nil {
		a.logger.Warn("energy-charts request failed", zap.String("zone", zone), zap.Error(err))
		return 0, false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, false
	}

	var parsed energyChartsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil || len(parsed.Price) == 0 {
		return 0, false
	}
	return parsed.Price[len(parsed.Price)-1] / 1000, true
}

func countryFor(location string) string {
	for _, site := range asset.Sites() {
		if site.Name == location {
			return site.Country
		}
	}
	return ""
}
