package coach

import (
	"testing"
)

// TestBuildCardTitleAndSummary verifies the grade drives title and summary
func TestBuildCardTitleAndSummary(t *testing.T) {
	lib := DefaultLibrary()
	card := BuildCard(3, nil, lib, nil, 5)

	if card.Title != "Today's condition 3/5" {
		t.Errorf("unexpected title %q", card.Title)
	}
	if card.Summary != lib.GradeSummary["3"] {
		t.Errorf("unexpected summary %q", card.Summary)
	}
}

// TestBuildCardFallbackActions verifies exactly the three fallback actions
// appear when no factor was identified.
func TestBuildCardFallbackActions(t *testing.T) {
	card := BuildCard(2, nil, DefaultLibrary(), nil, 5)
	if len(card.Actions) != 3 {
		t.Fatalf("expected 3 fallback actions, got %d", len(card.Actions))
	}
	if card.Actions[0] != fallbackActions[0] {
		t.Errorf("unexpected first fallback action %q", card.Actions[0])
	}
	if len(card.Reasons) != 0 {
		t.Errorf("expected no reasons, got %v", card.Reasons)
	}
}

// TestSelectRankedActionsTiers verifies the i-th factor contributes its
// rank-(i+1) action set.
func TestSelectRankedActionsTiers(t *testing.T) {
	rules := map[Factor]RankedActions{
		FactorSleepLow:     {Rank1: []string{"s1", "s2"}, Rank2: []string{"sx"}},
		FactorCaffeineHigh: {Rank1: []string{"cx"}, Rank2: []string{"c2"}},
		FactorPhoneHigh:    {Rank3: []string{"p3"}},
	}
	actions := selectRankedActions([]Factor{FactorSleepLow, FactorCaffeineHigh, FactorPhoneHigh}, rules, 10)

	want := []string{"s1", "s2", "c2", "p3"}
	if len(actions) != len(want) {
		t.Fatalf("expected %v, got %v", want, actions)
	}
	for i := range want {
		if actions[i] != want[i] {
			t.Errorf("action %d: expected %q, got %q", i, want[i], actions[i])
		}
	}
}

// TestSelectRankedActionsDedupAndTruncate verifies duplicates collapse and
// the action list truncates at the cap.
func TestSelectRankedActionsDedupAndTruncate(t *testing.T) {
	rules := map[Factor]RankedActions{
		FactorSleepLow:     {Rank1: []string{"shared", "a", "b"}},
		FactorCaffeineHigh: {Rank2: []string{"shared", "c"}},
	}
	actions := selectRankedActions([]Factor{FactorSleepLow, FactorCaffeineHigh}, rules, 4)

	if len(actions) != 4 {
		t.Fatalf("expected 4 actions, got %v", actions)
	}
	seen := make(map[string]bool)
	for _, a := range actions {
		if seen[a] {
			t.Fatalf("duplicate action %q", a)
		}
		seen[a] = true
	}
}

// TestPickFoods verifies the worst grades switch to the recovery table
func TestPickFoods(t *testing.T) {
	lib := DefaultLibrary()

	normal := BuildCard(2, nil, lib, nil, 5)
	if normal.Food.Morning != lib.Foods["default"].Morning[0] {
		t.Errorf("grade 2 should eat from the default table, got %q", normal.Food.Morning)
	}

	recovery := BuildCard(5, nil, lib, nil, 5)
	if recovery.Food.Morning != lib.Foods["grade4_5"].Morning[0] {
		t.Errorf("grade 5 should eat from the recovery table, got %q", recovery.Food.Morning)
	}
}

// TestEnvironmentWarnings verifies the threshold rules and missing-key skip
func TestEnvironmentWarnings(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]float64
		expected int
	}{
		{"calm day", map[string]float64{"pm10": 30, "temp": 22, "humidity": 50}, 0},
		{"dusty only", map[string]float64{"pm10": 90, "temp": 20, "humidity": 50}, 1},
		{"everything wrong", map[string]float64{"pm10": 90, "temp": 35, "humidity": 20}, 3},
		{"missing keys skipped", map[string]float64{"pm10": 90}, 1},
		{"no context", nil, 0},
	}
	for _, test := range tests {
		card := BuildCard(3, nil, DefaultLibrary(), test.env, 5)
		if len(card.Warnings) != test.expected {
			t.Errorf("%s: expected %d warnings, got %v", test.name, test.expected, card.Warnings)
		}
	}
}
