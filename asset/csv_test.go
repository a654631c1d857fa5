package asset

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCSVRoundTrip(t *testing.T) {
	records := NewGenerator(11).Generate(25)
	path := filepath.Join(t.TempDir(), "assets.csv")

	if err := WriteCSV(path, records); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	loaded, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}

	if len(loaded) != len(records) {
		t.Fatalf("loaded %d records, wrote %d", len(loaded), len(records))
	}
	for i := range records {
		if loaded[i].ID != records[i].ID {
			t.Errorf("record %d id = %q, want %q", i, loaded[i].ID, records[i].ID)
		}
		if loaded[i].PurchasePrice != records[i].PurchasePrice {
			t.Errorf("record %d price = %v, want %v", i, loaded[i].PurchasePrice, records[i].PurchasePrice)
		}
		// dates survive at day precision only
		if loaded[i].PurchaseDate.Format(csvDateLayout) != records[i].PurchaseDate.Format(csvDateLayout) {
			t.Errorf("record %d date = %v, want %v", i, loaded[i].PurchaseDate, records[i].PurchaseDate)
		}
	}
}

func TestReadCSVMissingNumericCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sparse.csv")
	content := "asset_id,asset_name,category,purchase_price,annual_maintenance\n" +
		"a-1,Laptop-001,IT-Equipment,1200,\n" +
		"a-2,Server-001,IT-Equipment,,900\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	records, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].AnnualMaintenance != 0 {
		t.Errorf("empty maintenance cell = %v, want 0", records[0].AnnualMaintenance)
	}
	if records[1].PurchasePrice != 0 {
		t.Errorf("empty price cell = %v, want 0", records[1].PurchasePrice)
	}
	if records[1].AnnualMaintenance != 900 {
		t.Errorf("maintenance = %v, want 900", records[1].AnnualMaintenance)
	}
}
