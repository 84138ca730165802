package core

import (
	"testing"
	"time"
)

// TestDayTruncation verifies times collapse onto their UTC calendar day
func TestDayTruncation(t *testing.T) {
	morning := time.Date(2024, 7, 3, 8, 15, 0, 0, time.UTC)
	evening := time.Date(2024, 7, 3, 23, 59, 59, 0, time.UTC)

	if !Day(morning).Equal(Day(evening)) {
		t.Error("same-day times should truncate to the same day")
	}
	want := time.Date(2024, 7, 3, 0, 0, 0, 0, time.UTC)
	if !Day(morning).Equal(want) {
		t.Errorf("expected %v, got %v", want, Day(morning))
	}
}
