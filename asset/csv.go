package asset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

var csvHeader = []string{
	"asset_id", "asset_name", "category", "subcategory", "manufacturer",
	"purchase_price", "purchase_date", "age_years", "location",
	"usage_pattern", "criticality", "warranty_years", "expected_lifetime",
	"annual_maintenance", "maintenance_ratio",
}

const csvDateLayout = "2006-01-02"

// WriteCSV writes records as the training corpus artifact.
func WriteCSV(path string, records []Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		date := ""
		if !r.PurchaseDate.IsZero() {
			date = r.PurchaseDate.Format(csvDateLayout)
		}
		row := []string{
			r.ID, r.Name, r.Category, r.Subcategory, r.Manufacturer,
			formatFloat(r.PurchasePrice), date, formatFloat(r.AgeYears),
			r.Location, r.UsagePattern, r.Criticality,
			formatFloat(r.WarrantyYears), formatFloat(r.ExpectedLifetime),
			formatFloat(r.AnnualMaintenance), formatFloat(r.MaintenanceRatio),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ReadCSV loads a training corpus. Empty numeric cells stay zero so the
// feature pipeline can apply its own defaults.
func ReadCSV(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("csv %s has no data rows", path)
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[name] = i
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		get := func(name string) string {
			idx, ok := col[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return row[idx]
		}
		rec := Record{
			ID:                get("asset_id"),
			Name:              get("asset_name"),
			Category:          get("category"),
			Subcategory:       get("subcategory"),
			Manufacturer:      get("manufacturer"),
			PurchasePrice:     parseFloat(get("purchase_price")),
			AgeYears:          parseFloat(get("age_years")),
			Location:          get("location"),
			UsagePattern:      get("usage_pattern"),
			Criticality:       get("criticality"),
			WarrantyYears:     parseFloat(get("warranty_years")),
			ExpectedLifetime:  parseFloat(get("expected_lifetime")),
			AnnualMaintenance: parseFloat(get("annual_maintenance")),
			MaintenanceRatio:  parseFloat(get("maintenance_ratio")),
		}
		if date := get("purchase_date"); date != "" {
			if t, err := time.Parse(csvDateLayout, date); err == nil {
				rec.PurchaseDate = t
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
