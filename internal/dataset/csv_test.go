package dataset

import (
	"path/filepath"
	"testing"
	"time"

	"fiture/domain/life"
	"fiture/ports"
)

func labeledFixture() []ports.LabeledRow {
	rec := life.DailyRecord{
		Date:         time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		PM10:         44,
		Temp:         20,
		Humidity:     50,
		SleepTime:    7.25,
		ActivityTime: 1.5,
		Caffeine:     2,
		PhoneTime:    3,
		MoodScore:    68,
		ProfileType:  "balanced",
	}
	return []ports.LabeledRow{
		{Record: rec, Score: 72, Label: 4},
		{Record: rec, Score: 55, Label: 2},
	}
}

// TestWriteLabeledReadMatrixRoundTrip verifies the labeled artifact can be
// read back as a background matrix in any column order.
func TestWriteLabeledReadMatrixRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.csv")
	if err := WriteLabeled(path, labeledFixture()); err != nil {
		t.Fatalf("WriteLabeled failed: %v", err)
	}

	matrix, err := ReadMatrix(path, []string{"SleepTime", "Caffeine", "ConditionScore"})
	if err != nil {
		t.Fatalf("ReadMatrix failed: %v", err)
	}
	if len(matrix) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(matrix))
	}
	if matrix[0][0] != 7.25 || matrix[0][1] != 2 || matrix[0][2] != 72 {
		t.Errorf("unexpected first row %v", matrix[0])
	}
	if matrix[1][2] != 55 {
		t.Errorf("unexpected second row %v", matrix[1])
	}
}

// TestReadMatrixMissingColumn verifies a column absent from the header errors
func TestReadMatrixMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.csv")
	if err := WriteLabeled(path, labeledFixture()); err != nil {
		t.Fatalf("WriteLabeled failed: %v", err)
	}
	if _, err := ReadMatrix(path, []string{"NoSuchColumn"}); err == nil {
		t.Error("expected error for unknown column")
	}
}

// TestReadMatrixMissingFile verifies a missing artifact is a data error
func TestReadMatrixMissingFile(t *testing.T) {
	if _, err := ReadMatrix(filepath.Join(t.TempDir(), "absent.csv"), []string{"A"}); err == nil {
		t.Error("expected error for missing file")
	}
}

// TestWriteRecordsCreatesDirs verifies raw dataset writes create the tree
func TestWriteRecordsCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "daily_raw.csv")
	rows := labeledFixture()
	if err := WriteRecords(path, []life.DailyRecord{rows[0].Record}); err != nil {
		t.Fatalf("WriteRecords failed: %v", err)
	}

	matrix, err := ReadMatrix(path, []string{"PM10", "MoodScore"})
	if err != nil {
		t.Fatalf("ReadMatrix failed: %v", err)
	}
	if len(matrix) != 1 || matrix[0][0] != 44 || matrix[0][1] != 68 {
		t.Errorf("unexpected matrix %v", matrix)
	}
}
