package condition

import (
	"math"
	"testing"
	"time"

	"fiture/domain/life"
)

func goodDay() life.DailyRecord {
	return life.DailyRecord{
		Date:         time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		PM10:         15,
		Temp:         21,
		Humidity:     50,
		SleepTime:    7.8,
		ActivityTime: 2.0,
		Caffeine:     1,
		PhoneTime:    1.5,
		MoodScore:    80,
	}
}

func badDay() life.DailyRecord {
	return life.DailyRecord{
		PM10:         160,
		Temp:         32,
		Humidity:     85,
		SleepTime:    4.5,
		ActivityTime: 0.2,
		Caffeine:     5,
		PhoneTime:    9,
		MoodScore:    25,
	}
}

// TestScoreRangeAndRounding verifies scores are integral and inside [0,100]
func TestScoreRangeAndRounding(t *testing.T) {
	for _, rec := range []life.DailyRecord{goodDay(), badDay()} {
		s := Score(rec)
		if s < 0 || s > 100 {
			t.Errorf("score %v out of range", s)
		}
		if s != math.Round(s) {
			t.Errorf("score %v not rounded", s)
		}
	}
}

// TestScoreOrdersDays verifies a good day scores above a bad one
func TestScoreOrdersDays(t *testing.T) {
	good, bad := Score(goodDay()), Score(badDay())
	if good <= bad {
		t.Errorf("good day %v should beat bad day %v", good, bad)
	}
}

// TestScoreDeterministic verifies the same row always scores identically
func TestScoreDeterministic(t *testing.T) {
	rec := goodDay()
	if Score(rec) != Score(rec) {
		t.Error("score is not deterministic")
	}
}

// TestScoreComfortBonus verifies the flat environment bonuses apply only
// inside the comfort bands.
func TestScoreComfortBonus(t *testing.T) {
	inside := goodDay()
	outside := goodDay()
	outside.Temp = 30
	outside.Humidity = 80

	if Score(inside)-Score(outside) != 8 {
		t.Errorf("expected 8 point comfort gap, got %v", Score(inside)-Score(outside))
	}
}

// TestHasMissing verifies NaN detection over the required features
func TestHasMissing(t *testing.T) {
	rec := goodDay()
	if HasMissing(rec) {
		t.Error("complete record flagged as missing")
	}
	rec.SleepTime = math.NaN()
	if !HasMissing(rec) {
		t.Error("NaN sleep not detected")
	}
}
