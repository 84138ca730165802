// Command synth generates the raw multi-profile daily dataset and writes
// it as CSV.
package main

import (
	"context"
	"log"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"fiture/adapters/env"
	"fiture/app"
	"fiture/domain/life"
	"fiture/internal"
	"fiture/internal/config"
	"fiture/internal/dataset"
	"fiture/ports"
)

func main() {
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
	service := app.NewSynthesisService(newEnvSource(cfg, logger), doc, cfg.Synth.Workers, logger)
	records, err := service.Run(context.Background())
	if err != nil {
		log.Fatalf("Synthesis failed: %v", err)
	}

	out := filepath.Join(cfg.Paths.OutDir, "daily_raw.csv")
	if err := dataset.WriteRecords(out, records); err != nil {
		log.Fatalf("Failed to write dataset: %v", err)
	}
	logger.Info("wrote %d rows to %s", len(records), out)
}

// newEnvSource reads from an Excel workbook when the configured path names
// one, otherwise from the CSV directory.
func newEnvSource(cfg *config.Config, logger *internal.Logger) ports.EnvironmentSource {
	if strings.HasSuffix(cfg.Paths.EnvDir, ".xlsx") {
		return env.NewExcelSource(cfg.Paths.EnvDir, logger)
	}
	return env.NewCSVSource(cfg.Paths.EnvDir, logger)
}
