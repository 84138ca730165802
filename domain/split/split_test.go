package split

import (
	"testing"
)

func labeledFixture() []int {
	labels := make([]int, 0, 200)
	for class := 1; class <= 5; class++ {
		for i := 0; i < 40; i++ {
			labels = append(labels, class)
		}
	}
	return labels
}

// TestStratifiedDeterminism verifies the same inputs always partition identically
func TestStratifiedDeterminism(t *testing.T) {
	labels := labeledFixture()

	trainA, testA, err := Stratified(labels, 0.2, 7)
	if err != nil {
		t.Fatalf("Stratified failed: %v", err)
	}
	trainB, testB, err := Stratified(labels, 0.2, 7)
	if err != nil {
		t.Fatalf("Stratified failed: %v", err)
	}

	if len(trainA) != len(trainB) || len(testA) != len(testB) {
		t.Fatal("partition sizes differ between runs")
	}
	for i := range trainA {
		if trainA[i] != trainB[i] {
			t.Fatalf("train index %d differs", i)
		}
	}
	for i := range testA {
		if testA[i] != testB[i] {
			t.Fatalf("test index %d differs", i)
		}
	}
}

// TestStratifiedPartition verifies the split is disjoint, covering, and
// stratified per class.
func TestStratifiedPartition(t *testing.T) {
	labels := labeledFixture()
	train, test, err := Stratified(labels, 0.2, 3)
	if err != nil {
		t.Fatalf("Stratified failed: %v", err)
	}

	if len(train)+len(test) != len(labels) {
		t.Fatalf("partition does not cover: %d + %d != %d", len(train), len(test), len(labels))
	}
	seen := make(map[int]bool)
	for _, i := range append(append([]int{}, train...), test...) {
		if seen[i] {
			t.Fatalf("index %d appears twice", i)
		}
		seen[i] = true
	}

	// Each class contributes 40 rows, so the test side holds 8 per class
	perClass := make(map[int]int)
	for _, i := range test {
		perClass[labels[i]]++
	}
	for class, n := range perClass {
		if n != 8 {
			t.Errorf("class %d: expected 8 test rows, got %d", class, n)
		}
	}
}

// TestStratifiedTinyClass verifies a multi-row class always lands at least
// one row in the test side.
func TestStratifiedTinyClass(t *testing.T) {
	labels := []int{1, 1, 1, 1, 1, 1, 1, 1, 2, 2}
	_, test, err := Stratified(labels, 0.2, 1)
	if err != nil {
		t.Fatalf("Stratified failed: %v", err)
	}
	found := false
	for _, i := range test {
		if labels[i] == 2 {
			found = true
		}
	}
	if !found {
		t.Error("small class missing from test side")
	}
}

// TestStratifiedRejectsBadFraction verifies fraction validation
func TestStratifiedRejectsBadFraction(t *testing.T) {
	for _, frac := range []float64{0, 1, -0.5, 1.5} {
		if _, _, err := Stratified([]int{1, 2}, frac, 1); err == nil {
			t.Errorf("expected error for fraction %v", frac)
		}
	}
	if _, _, err := Stratified(nil, 0.2, 1); err == nil {
		t.Error("expected error for empty labels")
	}
}

// TestTrainValidTest verifies the three-way split covers without overlap
func TestTrainValidTest(t *testing.T) {
	labels := labeledFixture()
	train, valid, test, err := TrainValidTest(labels, 0.4, 11)
	if err != nil {
		t.Fatalf("TrainValidTest failed: %v", err)
	}

	total := len(train) + len(valid) + len(test)
	if total != len(labels) {
		t.Fatalf("three-way split does not cover: %d != %d", total, len(labels))
	}
	seen := make(map[int]bool)
	for _, part := range [][]int{train, valid, test} {
		for _, i := range part {
			if seen[i] {
				t.Fatalf("index %d appears in two parts", i)
			}
			seen[i] = true
		}
	}
	if len(valid) == 0 || len(test) == 0 {
		t.Error("holdout halves must be non-empty")
	}
}
