package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"assettco/asset"
	"assettco/ml"
)

var database *sql.DB

// InitDB initializes the SQLite database
func InitDB(path string) error {
	var err error
	database, err = sql.Open("sqlite3", path)
	if err != nil {
		return err
	}

	query := `
    CREATE TABLE IF NOT EXISTS assets (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        asset_id TEXT NOT NULL UNIQUE,
        asset_name TEXT NOT NULL,
        category TEXT NOT NULL,
        subcategory TEXT,
        manufacturer TEXT,
        purchase_price REAL NOT NULL,
        purchase_date DATETIME,
        age_years REAL DEFAULT 0,
        location TEXT,
        usage_pattern TEXT,
        criticality TEXT,
        warranty_years REAL DEFAULT 0,
        expected_lifetime REAL DEFAULT 0,
        annual_maintenance REAL DEFAULT 0,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );
    CREATE TABLE IF NOT EXISTS predictions (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        asset_id TEXT NOT NULL,
        annual_prediction REAL NOT NULL,
        confidence INTEGER,
        confidence_level TEXT,
        range_min REAL,
        range_max REAL,
        model_type TEXT,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );
    CREATE TABLE IF NOT EXISTS tco_results (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        asset_id TEXT NOT NULL,
        analysis_years INTEGER,
        total_tco REAL,
        tco_multiple REAL,
        annual_average REAL,
        confidence REAL,
        detail TEXT,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );
    CREATE TABLE IF NOT EXISTS training_runs (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        samples_total INTEGER,
        samples_train INTEGER,
        samples_test INTEGER,
        outliers_removed INTEGER,
        mae REAL,
        rmse REAL,
        r2 REAL,
        trained_at DATETIME
    );
    `

	_, err = database.Exec(query)
	return err
}

// Close releases the database handle.
func Close() error {
	if database == nil {
		return nil
	}
	return database.Close()
}

// SaveAsset inserts or replaces an asset record.
func SaveAsset(rec asset.Record) error {
	if database == nil {
		return errors.New("database not initialized")
	}
	_, err := database.Exec(`
        INSERT OR REPLACE INTO assets (
            asset_id, asset_name, category, subcategory, manufacturer,
            purchase_price, purchase_date, age_years, location,
            usage_pattern, criticality, warranty_years, expected_lifetime,
            annual_maintenance
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.Category, rec.Subcategory, rec.Manufacturer,
		rec.PurchasePrice, rec.PurchaseDate, rec.AgeYears, rec.Location,
		rec.UsagePattern, rec.Criticality, rec.WarrantyYears, rec.ExpectedLifetime,
		rec.AnnualMaintenance)
	return err
}

// SaveAssets stores a batch inside one transaction.
func SaveAssets(records []asset.Record) error {
	if database == nil {
		return errors.New("database not initialized")
	}
	tx, err := database.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
        INSERT OR REPLACE INTO assets (
            asset_id, asset_name, category, subcategory, manufacturer,
            purchase_price, purchase_date, age_years, location,
            usage_pattern, criticality, warranty_years, expected_lifetime,
            annual_maintenance
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.Exec(
			rec.ID, rec.Name, rec.Category, rec.Subcategory, rec.Manufacturer,
			rec.PurchasePrice, rec.PurchaseDate, rec.AgeYears, rec.Location,
			rec.UsagePattern, rec.Criticality, rec.WarrantyYears, rec.ExpectedLifetime,
			rec.AnnualMaintenance); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// QueryAssets returns the most recently created assets.
func QueryAssets(limit int) ([]asset.Record, error) {
	if database == nil {
		return nil, errors.New("database not initialized")
	}
	if limit <= 0 {
		limit = 100
	}
	rows, err := database.Query(`
        SELECT asset_id, asset_name, category, subcategory, manufacturer,
               purchase_price, purchase_date, age_years, location,
               usage_pattern, criticality, warranty_years, expected_lifetime,
               annual_maintenance
        FROM assets
        ORDER BY created_at DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]asset.Record, 0)
	for rows.Next() {
		var rec asset.Record
		var purchaseDate sql.NullTime
		if err := rows.Scan(
			&rec.ID, &rec.Name, &rec.Category, &rec.Subcategory, &rec.Manufacturer,
			&rec.PurchasePrice, &purchaseDate, &rec.AgeYears, &rec.Location,
			&rec.UsagePattern, &rec.Criticality, &rec.WarrantyYears, &rec.ExpectedLifetime,
			&rec.AnnualMaintenance); err != nil {
			return nil, err
		}
		if purchaseDate.Valid {
			rec.PurchaseDate = purchaseDate.Time
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetAsset returns one asset by its public id.
func GetAsset(assetID string) (*asset.Record, error) {
	if database == nil {
		return nil, errors.New("database not initialized")
	}
	var rec asset.Record
	var purchaseDate sql.NullTime
	err := database.QueryRow(`
        SELECT asset_id, asset_name, category, subcategory, manufacturer,
               purchase_price, purchase_date, age_years, location,
               usage_pattern, criticality, warranty_years, expected_lifetime,
               annual_maintenance
        FROM assets
        WHERE asset_id = ?`, assetID).Scan(
		&rec.ID, &rec.Name, &rec.Category, &rec.Subcategory, &rec.Manufacturer,
		&rec.PurchasePrice, &purchaseDate, &rec.AgeYears, &rec.Location,
		&rec.UsagePattern, &rec.Criticality, &rec.WarrantyYears, &rec.ExpectedLifetime,
		&rec.AnnualMaintenance)
	if err != nil {
		return nil, err
	}
	if purchaseDate.Valid {
		rec.PurchaseDate = purchaseDate.Time
	}
	return &rec, nil
}

// CountAssets reports the corpus size.
func CountAssets() (int, error) {
	if database == nil {
		return 0, errors.New("database not initialized")
	}
	var n int
	err := database.QueryRow(`SELECT COUNT(*) FROM assets`).Scan(&n)
	return n, err
}

// SavePrediction records a model output for an asset.
func SavePrediction(assetID string, p ml.PredictionResult) error {
	if database == nil {
		return errors.New("database not initialized")
	}
	_, err := database.Exec(`
        INSERT INTO predictions (
            asset_id, annual_prediction, confidence, confidence_level,
            range_min, range_max, model_type
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		assetID, p.AnnualPrediction, p.Confidence, p.ConfidenceLevel,
		p.RangeMin, p.RangeMax, p.ModelType)
	return err
}

// SaveTCOResult stores an analysis summary plus its JSON detail.
func SaveTCOResult(assetID string, analysisYears int, totalTCO, tcoMultiple, annualAverage, confidence float64, detail any) error {
	if database == nil {
		return errors.New("database not initialized")
	}
	blob, err := json.Marshal(detail)
	if err != nil {
		return err
	}
	_, err = database.Exec(`
        INSERT INTO tco_results (
            asset_id, analysis_years, total_tco, tco_multiple,
            annual_average, confidence, detail
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		assetID, analysisYears, totalTCO, tcoMultiple, annualAverage, confidence, string(blob))
	return err
}

// TrainingRun is one row of the training history.
type TrainingRun struct {
	SamplesTotal    int       `json:"samples_total"`
	SamplesTrain    int       `json:"samples_train"`
	SamplesTest     int       `json:"samples_test"`
	OutliersRemoved int       `json:"outliers_removed"`
	MAE             float64   `json:"mae"`
	RMSE            float64   `json:"rmse"`
	R2              float64   `json:"r2"`
	TrainedAt       time.Time `json:"trained_at"`
}

func SaveTrainingRun(run TrainingRun) error {
	if database == nil {
		return errors.New("database not initialized")
	}
	_, err := database.Exec(`
        INSERT INTO training_runs (
            samples_total, samples_train, samples_test, outliers_removed,
            mae, rmse, r2, trained_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.SamplesTotal, run.SamplesTrain, run.SamplesTest, run.OutliersRemoved,
		run.MAE, run.RMSE, run.R2, run.TrainedAt)
	return err
}

func LoadTrainingRuns() ([]TrainingRun, error) {
	if database == nil {
		return nil, errors.New("database not initialized")
	}
	rows, err := database.Query(`
        SELECT samples_total, samples_train, samples_test, outliers_removed,
               mae, rmse, r2, trained_at
        FROM training_runs
        ORDER BY trained_at DESC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]TrainingRun, 0)
	for rows.Next() {
		var run TrainingRun
		if err := rows.Scan(&run.SamplesTotal, &run.SamplesTrain, &run.SamplesTest,
			&run.OutliersRemoved, &run.MAE, &run.RMSE, &run.R2, &run.TrainedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}
