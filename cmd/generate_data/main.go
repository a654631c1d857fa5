package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"assettco/asset"
	"assettco/db"
)

func main() {
	count := flag.Int("count", 1000, "number of assets to generate")
	seed := flag.Int64("seed", 42, "random seed")
	csvPath := flag.String("csv", "./data/assets.csv", "CSV output path, empty to skip")
	dbPath := flag.String("db", "", "SQLite path to also persist into, empty to skip")
	messy := flag.Bool("messy", false, "inject data quality issues")
	missingRate := flag.Float64("missing_rate", 0.05, "missing field rate when messy")
	flag.Parse()

	if *count <= 0 {
		log.Fatal("count must be positive")
	}

	gen := asset.NewGenerator(*seed)
	records := gen.Generate(*count)
	if *messy {
		records = gen.AddQualityIssues(records, *missingRate)
	}

	if *csvPath != "" {
		if err := os.MkdirAll(filepath.Dir(*csvPath), 0o755); err != nil {
			log.Fatalf("failed to create output dir: %v", err)
		}
		if err := asset.WriteCSV(*csvPath, records); err != nil {
			log.Fatalf("failed to write CSV: %v", err)
		}
		fmt.Printf("wrote %d assets to %s\n", len(records), *csvPath)
	}

	if *dbPath != "" {
		if err := db.InitDB(*dbPath); err != nil {
			log.Fatalf("failed to initialize database: %v", err)
		}
		defer db.Close()
		if err := db.SaveAssets(records); err != nil {
			log.Fatalf("failed to save assets: %v", err)
		}
		fmt.Printf("saved %d assets to %s\n", len(records), *dbPath)
	}
}
