package wizard

import (
	"fmt"
	"strings"
	"time"

	"assettco/asset"
)

// Step1 captures identity and classification.
type Step1 struct {
	Name         string `json:"asset_name"`
	Category     string `json:"category"`
	Subcategory  string `json:"subcategory"`
	Manufacturer string `json:"manufacturer"`
}

// Step2 captures the purchase facts.
type Step2 struct {
	PurchasePrice float64 `json:"purchase_price"`
	PurchaseDate  string  `json:"purchase_date"` // 2006-01-02
	WarrantyYears float64 `json:"warranty_years"`
}

// Step3 captures operating context.
type Step3 struct {
	Location         string  `json:"location"`
	UsagePattern     string  `json:"usage_pattern"`
	Criticality      string  `json:"criticality"`
	ExpectedLifetime float64 `json:"expected_lifetime"`
}

// ValidationError carries per-field messages back to the client.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, f+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func (st Step1) validate() error {
	fields := map[string]string{}
	if len(strings.TrimSpace(st.Name)) < 3 {
		fields["asset_name"] = "must be at least 3 characters"
	}
	if !contains(asset.Categories(), st.Category) {
		fields["category"] = "unknown category"
	}
	if strings.TrimSpace(st.Subcategory) == "" {
		fields["subcategory"] = "required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (st Step2) validate(now time.Time) (time.Time, error) {
	fields := map[string]string{}
	if st.PurchasePrice <= 0 {
		fields["purchase_price"] = "must be positive"
	} else if st.PurchasePrice > 10_000_000 {
		fields["purchase_price"] = "exceeds 10M limit"
	}

	var date time.Time
	if st.PurchaseDate == "" {
		fields["purchase_date"] = "required"
	} else {
		var err error
		date, err = time.Parse("2006-01-02", st.PurchaseDate)
		switch {
		case err != nil:
			fields["purchase_date"] = "expected YYYY-MM-DD"
		case date.After(now):
			fields["purchase_date"] = "cannot be in the future"
		case date.Year() < 1990:
			fields["purchase_date"] = "too far in the past"
		}
	}

	if st.WarrantyYears < 0 || st.WarrantyYears > 20 {
		fields["warranty_years"] = "must be between 0 and 20"
	}
	if len(fields) > 0 {
		return time.Time{}, &ValidationError{Fields: fields}
	}
	return date, nil
}

func (st Step3) validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(st.Location) == "" {
		fields["location"] = "required"
	}
	if !contains(asset.UsagePatterns(), st.UsagePattern) {
		fields["usage_pattern"] = "unknown usage pattern"
	}
	if !contains(asset.Criticalities(), st.Criticality) {
		fields["criticality"] = "unknown criticality"
	}
	if st.ExpectedLifetime <= 0 || st.ExpectedLifetime > 50 {
		fields["expected_lifetime"] = fmt.Sprintf("must be between 1 and 50, got %.0f", st.ExpectedLifetime)
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
