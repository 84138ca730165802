// Command label runs the full dataset pipeline: synthesize the raw daily
// records, score and label them, split train/test, and write the artifacts.
// With DATABASE_URL set the run is also persisted to postgres.
package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"fiture/adapters/env"
	"fiture/adapters/postgres"
	"fiture/app"
	"fiture/domain/condition"
	"fiture/domain/life"
	"fiture/internal"
	"fiture/internal/config"
	"fiture/ports"
)

func main() {
	mode := flag.String("mode", "auto", "labeling mode: auto, absolute or quantile")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	logger := internal.DefaultLogger

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	doc, err := life.LoadProfileDoc(cfg.Paths.ProfileFile)
	if err != nil {
		log.Fatalf("Failed to load profiles: %v", err)
	}
	synthesis := app.NewSynthesisService(newEnvSource(cfg, logger), doc, cfg.Synth.Workers, logger)
	records, err := synthesis.Run(context.Background())
	if err != nil {
		log.Fatalf("Synthesis failed: %v", err)
	}

	var repo ports.DatasetRepository
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := postgres.EnsureSchema(context.Background(), db); err != nil {
			log.Fatalf("Failed to ensure schema: %v", err)
		}
		repo = postgres.NewDatasetRepository(db)
	}

	labeling := app.NewLabelingService(repo, cfg.Paths.OutDir, logger)
	result, err := labeling.Run(context.Background(), records, condition.Mode(*mode))
	if err != nil {
		log.Fatalf("Labeling failed: %v", err)
	}
	logger.Info("labeled %d rows (mode %s): %d train / %d test, artifacts in %s",
		len(result.Rows), result.UsedMode, len(result.TrainIdx), len(result.TestIdx), cfg.Paths.OutDir)
}

func newEnvSource(cfg *config.Config, logger *internal.Logger) ports.EnvironmentSource {
	if strings.HasSuffix(cfg.Paths.EnvDir, ".xlsx") {
		return env.NewExcelSource(cfg.Paths.EnvDir, logger)
	}
	return env.NewCSVSource(cfg.Paths.EnvDir, logger)
}
