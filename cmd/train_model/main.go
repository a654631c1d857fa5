package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"assettco/asset"
	"assettco/db"
	"assettco/ml"
)

func main() {
	csvPath := flag.String("csv", "", "CSV training data path")
	dbPath := flag.String("db", "", "SQLite path to load training data from")
	modelPath := flag.String("model_path", "./models/maintenance_model.json", "model output path")
	numTrees := flag.Int("trees", 100, "number of trees")
	maxDepth := flag.Int("max_depth", 15, "max tree depth")
	minLeaf := flag.Int("min_leaf", 3, "min samples per leaf")
	testRatio := flag.Float64("test_ratio", 0.2, "test ratio")
	seed := flag.Int64("seed", 42, "random seed")
	flag.Parse()

	records, err := loadRecords(*csvPath, *dbPath)
	if err != nil {
		log.Fatalf("failed to load training data: %v", err)
	}
	log.Printf("loaded %d records", len(records))

	cleaner := asset.NewCleaner()
	clean, issues := cleaner.Clean(records)
	if len(issues) > 0 {
		log.Printf("cleaning dropped or repaired %d issues, %d records remain", len(issues), len(clean))
	}

	bundle, err := ml.Train(clean, ml.TrainOptions{
		NumTrees:       *numTrees,
		MaxDepth:       *maxDepth,
		MinSamplesLeaf: *minLeaf,
		TestRatio:      *testRatio,
		Seed:           *seed,
	})
	if err != nil {
		log.Fatalf("training failed: %v", err)
	}

	log.Printf("train: MAE=%.2f RMSE=%.2f R2=%.3f",
		bundle.Stats.Train.MAE, bundle.Stats.Train.RMSE, bundle.Stats.Train.R2)
	log.Printf("test:  MAE=%.2f RMSE=%.2f R2=%.3f",
		bundle.Stats.Test.MAE, bundle.Stats.Test.RMSE, bundle.Stats.Test.R2)

	if err := os.MkdirAll(filepath.Dir(*modelPath), 0o755); err != nil {
		log.Fatalf("failed to create model dir: %v", err)
	}
	if err := bundle.Save(*modelPath); err != nil {
		log.Fatalf("failed to save model: %v", err)
	}

	if *dbPath != "" {
		run := db.TrainingRun{
			SamplesTotal:    bundle.Stats.TrainingAssets + bundle.Stats.TestAssets + bundle.Stats.OutliersRemoved,
			SamplesTrain:    bundle.Stats.TrainingAssets,
			SamplesTest:     bundle.Stats.TestAssets,
			OutliersRemoved: bundle.Stats.OutliersRemoved,
			MAE:             bundle.Stats.Test.MAE,
			RMSE:            bundle.Stats.Test.RMSE,
			R2:              bundle.Stats.Test.R2,
			TrainedAt:       bundle.Stats.Timestamp,
		}
		if err := db.SaveTrainingRun(run); err != nil {
			log.Printf("failed to record training run: %v", err)
		}
	}

	fmt.Printf("model saved to %s\n", *modelPath)
}

func loadRecords(csvPath, dbPath string) ([]asset.Record, error) {
	switch {
	case csvPath != "":
		return asset.ReadCSV(csvPath)
	case dbPath != "":
		if err := db.InitDB(dbPath); err != nil {
			return nil, err
		}
		return db.QueryAssets(100000)
	default:
		return nil, fmt.Errorf("either -csv or -db is required")
	}
}
