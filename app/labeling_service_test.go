package app

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"fiture/domain/condition"
	"fiture/domain/life"
	"fiture/internal/dataset"
)

func synthesizedRecords(t *testing.T) []life.DailyRecord {
	t.Helper()
	records, err := NewSynthesisService(envFixture(), twoProfileDoc(t), 1, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("synthesis failed: %v", err)
	}
	return records
}

// TestLabelingRunScoresAndSplits verifies every kept row carries its score
// and label and the partition covers all rows exactly once.
func TestLabelingRunScoresAndSplits(t *testing.T) {
	records := synthesizedRecords(t)
	service := NewLabelingService(nil, "", nil)

	result, err := service.Run(context.Background(), records, condition.ModeAbsolute)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Rows) != len(records) {
		t.Fatalf("expected %d rows, got %d", len(records), len(result.Rows))
	}
	for i, row := range result.Rows {
		if row.Score != condition.Score(row.Record) {
			t.Errorf("row %d: score mismatch", i)
		}
		if row.Label != condition.LabelAbsolute(row.Score) {
			t.Errorf("row %d: label mismatch", i)
		}
	}

	seen := make(map[int]bool)
	for _, i := range append(append([]int{}, result.TrainIdx...), result.TestIdx...) {
		if seen[i] {
			t.Fatalf("index %d in both partitions", i)
		}
		seen[i] = true
	}
	if len(seen) != len(result.Rows) {
		t.Errorf("partition covers %d of %d rows", len(seen), len(result.Rows))
	}
	if result.UsedMode != string(condition.ModeAbsolute) {
		t.Errorf("unexpected used mode %q", result.UsedMode)
	}
}

// TestLabelingRunDropsMissingRows verifies NaN rows never reach labeling
func TestLabelingRunDropsMissingRows(t *testing.T) {
	records := synthesizedRecords(t)
	records[3].MoodScore = math.NaN()
	records[7].PM10 = math.NaN()

	result, err := NewLabelingService(nil, "", nil).Run(context.Background(), records, condition.ModeAuto)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Rows) != len(records)-2 {
		t.Errorf("expected %d rows after drop, got %d", len(records)-2, len(result.Rows))
	}
}

// TestLabelingRunWritesArtifacts verifies the CSVs and manifest land in the
// output directory and agree with the returned dataset.
func TestLabelingRunWritesArtifacts(t *testing.T) {
	outDir := t.TempDir()
	records := synthesizedRecords(t)

	result, err := NewLabelingService(nil, outDir, nil).Run(context.Background(), records, condition.ModeAuto)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, name := range []string{"daily_dataset.csv", "train.csv", "test.csv", "feature_config.json"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("artifact %s missing: %v", name, err)
		}
	}

	train, err := dataset.ReadMatrix(filepath.Join(outDir, "train.csv"), []string{"ConditionLabel"})
	if err != nil {
		t.Fatalf("reading train artifact failed: %v", err)
	}
	if len(train) != len(result.TrainIdx) {
		t.Errorf("train artifact has %d rows, expected %d", len(train), len(result.TrainIdx))
	}

	if result.Manifest.Aux.LabelingMode != result.UsedMode {
		t.Errorf("manifest mode %q does not match run mode %q",
			result.Manifest.Aux.LabelingMode, result.UsedMode)
	}
	if result.Manifest.Target != "ConditionLabel" {
		t.Errorf("unexpected manifest target %q", result.Manifest.Target)
	}
}

// TestLabelingRunEmptyAfterDrop verifies an all-missing input errors
func TestLabelingRunEmptyAfterDrop(t *testing.T) {
	records := synthesizedRecords(t)[:2]
	for i := range records {
		records[i].SleepTime = math.NaN()
	}
	if _, err := NewLabelingService(nil, "", nil).Run(context.Background(), records, condition.ModeAuto); err == nil {
		t.Error("expected error for empty dataset after drop")
	}
}
