// Package postgres persists synthesized datasets and labeling runs.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"fiture/domain/condition"
	"fiture/domain/core"
	"fiture/domain/life"
	"fiture/ports"
)

// datasetRepository implements the DatasetRepository interface
type datasetRepository struct {
	db *sqlx.DB
}

// NewDatasetRepository creates a new dataset repository
func NewDatasetRepository(db *sqlx.DB) ports.DatasetRepository {
	return &datasetRepository{db: db}
}

// EnsureSchema creates the pipeline tables if they do not exist
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS daily_records (
			dataset_id TEXT NOT NULL,
			date DATE NOT NULL,
			pm10 DOUBLE PRECISION NOT NULL,
			temp DOUBLE PRECISION NOT NULL,
			humidity DOUBLE PRECISION NOT NULL,
			sleep_time DOUBLE PRECISION NOT NULL,
			activity_time DOUBLE PRECISION NOT NULL,
			caffeine INTEGER NOT NULL,
			phone_time DOUBLE PRECISION NOT NULL,
			mood_score DOUBLE PRECISION NOT NULL,
			profile_type TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS labeling_runs (
			run_id TEXT PRIMARY KEY,
			dataset_id TEXT NOT NULL,
			labeling_mode TEXT NOT NULL,
			row_count INTEGER NOT NULL,
			manifest JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS labeled_rows (
			run_id TEXT NOT NULL,
			date DATE NOT NULL,
			condition_score DOUBLE PRECISION NOT NULL,
			condition_label INTEGER NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// SaveDataset inserts all records of one synthesis run
func (r *datasetRepository) SaveDataset(ctx context.Context, id core.DatasetID, records []life.DailyRecord) error {
	query := `INSERT INTO daily_records (
		dataset_id, date, pm10, temp, humidity, sleep_time, activity_time,
		caffeine, phone_time, mood_score, profile_type
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin dataset insert: %w", err)
	}
	defer tx.Rollback()

	for _, rec := range records {
		_, err := tx.ExecContext(ctx, query,
			id.String(), rec.Date.Format("2006-01-02"), rec.PM10, rec.Temp, rec.Humidity,
			rec.SleepTime, rec.ActivityTime, rec.Caffeine, rec.PhoneTime, rec.MoodScore,
			rec.ProfileType,
		)
		if err != nil {
			return fmt.Errorf("failed to insert daily record: %w", err)
		}
	}
	return tx.Commit()
}

// SaveLabelingRun stores the labeled rows alongside the manifest that
// documents how labels were derived.
func (r *datasetRepository) SaveLabelingRun(ctx context.Context, runID core.RunID, datasetID core.DatasetID, rows []ports.LabeledRow, manifest condition.Manifest) error {
	manifestJSON, err := json.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin labeling insert: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO labeling_runs (run_id, dataset_id, labeling_mode, row_count, manifest, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		runID.String(), datasetID.String(), manifest.Aux.LabelingMode, len(rows), manifestJSON, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert labeling run: %w", err)
	}

	rowQuery := `INSERT INTO labeled_rows (run_id, date, condition_score, condition_label)
		VALUES ($1, $2, $3, $4)`
	for _, row := range rows {
		_, err := tx.ExecContext(ctx, rowQuery,
			runID.String(), row.Record.Date.Format("2006-01-02"), row.Score, row.Label,
		)
		if err != nil {
			return fmt.Errorf("failed to insert labeled row: %w", err)
		}
	}
	return tx.Commit()
}
