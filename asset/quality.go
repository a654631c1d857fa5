package asset

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// CleaningRule inspects one record and may correct it in place.
// Returning an error rejects the record.
type CleaningRule interface {
	Apply(*Record) error
	Name() string
}

// QualityIssue records why a row was rejected or corrected.
type QualityIssue struct {
	Type      string    `json:"type"`
	Severity  string    `json:"severity"` // low, medium, high
	Message   string    `json:"message"`
	AssetID   string    `json:"asset_id"`
	Timestamp time.Time `json:"timestamp"`
}

type CleaningStats struct {
	TotalProcessed int64            `json:"total_processed"`
	Passed         int64            `json:"passed"`
	Rejected       int64            `json:"rejected"`
	Corrected      int64            `json:"corrected"`
	Issues         map[string]int64 `json:"issues"`
	LastClean      time.Time        `json:"last_clean"`
}

// Cleaner runs a rule chain over imported records before they reach the
// feature pipeline.
type Cleaner struct {
	rules []CleaningRule

	mu    sync.Mutex
	stats CleaningStats
}

func NewCleaner() *Cleaner {
	c := &Cleaner{stats: CleaningStats{Issues: make(map[string]int64)}}
	c.AddRule(priceRule{})
	c.AddRule(labelRule{})
	c.AddRule(ageRule{})
	c.AddRule(&manufacturerRule{})
	c.AddRule(defaultsRule{})
	return c
}

func (c *Cleaner) AddRule(rule CleaningRule) {
	c.rules = append(c.rules, rule)
}

// Clean returns the surviving records and the issues found.
func (c *Cleaner) Clean(records []Record) ([]Record, []QualityIssue) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var cleaned []Record
	var issues []QualityIssue

	for _, rec := range records {
		c.stats.TotalProcessed++
		original := rec
		rejected := false

		for _, rule := range c.rules {
			if err := rule.Apply(&rec); err != nil {
				issues = append(issues, QualityIssue{
					Type:      rule.Name(),
					Severity:  "high",
					Message:   err.Error(),
					AssetID:   rec.ID,
					Timestamp: time.Now(),
				})
				c.stats.Issues[rule.Name()]++
				rejected = true
				break
			}
		}

		if rejected {
			c.stats.Rejected++
			continue
		}
		if rec != original {
			c.stats.Corrected++
		}
		c.stats.Passed++
		cleaned = append(cleaned, rec)
	}

	c.stats.LastClean = time.Now()
	return cleaned, issues
}

func (c *Cleaner) Stats() CleaningStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := c.stats
	stats.Issues = make(map[string]int64, len(c.stats.Issues))
	for k, v := range c.stats.Issues {
		stats.Issues[k] = v
	}
	return stats
}

type priceRule struct{}

func (priceRule) Name() string { return "price_validation" }

func (priceRule) Apply(r *Record) error {
	if r.PurchasePrice <= 0 {
		return fmt.Errorf("purchase price %.2f is not positive", r.PurchasePrice)
	}
	if r.PurchasePrice > 10_000_000 {
		return fmt.Errorf("purchase price %.2f exceeds plausible range", r.PurchasePrice)
	}
	return nil
}

type labelRule struct{}

func (labelRule) Name() string { return "label_validation" }

func (labelRule) Apply(r *Record) error {
	if r.AnnualMaintenance < 0 {
		return fmt.Errorf("annual maintenance %.2f is negative", r.AnnualMaintenance)
	}
	return nil
}

type ageRule struct{}

func (ageRule) Name() string { return "age_validation" }

func (ageRule) Apply(r *Record) error {
	if r.AgeYears < 0 {
		return fmt.Errorf("age %.2f is negative", r.AgeYears)
	}
	if r.AgeYears > 50 {
		return fmt.Errorf("age %.2f exceeds plausible range", r.AgeYears)
	}
	return nil
}

// manufacturerRule folds inconsistent spellings back to canonical names.
type manufacturerRule struct{}

func (*manufacturerRule) Name() string { return "manufacturer_normalization" }

var manufacturerAliases = map[string]string{
	"dell":      "Dell",
	"dell inc.": "Dell",
	"hp inc.":   "HP",
	"lenovo":    "Lenovo",
}

func (*manufacturerRule) Apply(r *Record) error {
	key := strings.ToLower(strings.TrimSpace(r.Manufacturer))
	if canonical, ok := manufacturerAliases[key]; ok {
		r.Manufacturer = canonical
	}
	return nil
}

// defaultsRule fills the documented fallbacks for missing fields.
type defaultsRule struct{}

func (defaultsRule) Name() string { return "missing_defaults" }

func (defaultsRule) Apply(r *Record) error {
	if r.Manufacturer == "" {
		r.Manufacturer = "Unknown"
	}
	if r.UsagePattern == "" {
		r.UsagePattern = UsageStandard
	}
	if r.Criticality == "" {
		r.Criticality = CriticalityMedium
	}
	if r.Location == "" {
		r.Location = "Other"
	}
	if r.WarrantyYears == 0 {
		r.WarrantyYears = 1
	}
	if r.ExpectedLifetime == 0 {
		r.ExpectedLifetime = 5
	}
	if r.AgeYears == 0 && r.PurchaseDate.IsZero() {
		r.AgeYears = 1
	}
	return nil
}
