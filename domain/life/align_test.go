package life

import (
	"testing"
)

// TestAlignContract verifies the four alignment rules: training order,
// zero-fill for absent columns, one-hot for strings, and dropping unknowns.
func TestAlignContract(t *testing.T) {
	aligner, err := NewFeatureAligner([]string{"SleepTime", "Caffeine", "profile_type_night_phone", "profile_type_balanced"})
	if err != nil {
		t.Fatalf("NewFeatureAligner failed: %v", err)
	}

	x, err := aligner.Align(map[string]any{
		"SleepTime":    6.5,
		"Caffeine":     2,
		"profile_type": "night_phone",
		"Unknown":      99.0, // never trained on, must be dropped
	})
	if err != nil {
		t.Fatalf("Align failed: %v", err)
	}

	want := []float64{6.5, 2, 1, 0}
	for i := range want {
		if x[i] != want[i] {
			t.Errorf("column %d: expected %v, got %v", i, want[i], x[i])
		}
	}
}

// TestAlignMissingColumnZeroFill verifies absent training columns become zero
func TestAlignMissingColumnZeroFill(t *testing.T) {
	aligner, _ := NewFeatureAligner([]string{"PM10", "Temp"})
	x, err := aligner.Align(map[string]any{"PM10": 50.0})
	if err != nil {
		t.Fatalf("Align failed: %v", err)
	}
	if x[1] != 0 {
		t.Errorf("expected zero-fill for Temp, got %v", x[1])
	}
}

// TestAlignUnsupportedType verifies structured values are rejected
func TestAlignUnsupportedType(t *testing.T) {
	aligner, _ := NewFeatureAligner([]string{"PM10"})
	if _, err := aligner.Align(map[string]any{"PM10": []float64{1, 2}}); err == nil {
		t.Error("expected error for slice value")
	}
}

// TestNewFeatureAlignerDuplicateColumn verifies duplicate training columns fail
func TestNewFeatureAlignerDuplicateColumn(t *testing.T) {
	if _, err := NewFeatureAligner([]string{"A", "A"}); err == nil {
		t.Error("expected error for duplicate column")
	}
}

// TestAlignRecordRoundTrip verifies a generated record aligns onto the
// canonical columns plus its one-hot profile column.
func TestAlignRecordRoundTrip(t *testing.T) {
	cols := append(append([]string{}, FeatureColumns...), "profile_type_balanced")
	aligner, _ := NewFeatureAligner(cols)

	synth, _ := NewSynthesizer(DefaultParams(), "balanced")
	records, err := synth.Generate(1, 5, testEnv(3))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	x, err := aligner.AlignRecord(records[0])
	if err != nil {
		t.Fatalf("AlignRecord failed: %v", err)
	}
	if x[len(x)-1] != 1 {
		t.Errorf("expected one-hot profile column set, got %v", x[len(x)-1])
	}
	if x[0] != records[0].PM10 {
		t.Errorf("expected PM10 %v first, got %v", records[0].PM10, x[0])
	}
}
