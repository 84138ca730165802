package condition

import (
	"math"

	"fiture/domain/life"
)

// Score weights. The baseline starts low and bad factors subtract hard so
// the resulting distribution spreads across the full grade range instead of
// piling up at the top.
const (
	scoreBaseline = 30.0

	sleepBonus     = 16.0
	sleepReference = 7.5
	sleepBonusCap  = 1.2

	activityBonus     = 8.0
	activityReference = 1.5
	activityBonusCap  = 1.5

	comfortBonus = 4.0
	moodFraction = 0.25

	caffeinePenalty   = 12.0
	caffeineReference = 3.0
	caffeineCap       = 1.5

	phonePenalty   = 18.0
	phoneReference = 5.0
	phoneCap       = 1.5

	pmPenalty   = 20.0
	pmReference = 100.0
	pmCap       = 2.0
)

// Comfort bands for the flat environment bonuses
const (
	tempComfortLow  = 18.0
	tempComfortHigh = 24.0
	humComfortLow   = 40.0
	humComfortHigh  = 60.0
)

// Score converts one row into a continuous condition score in [0,100],
// rounded to the nearest integer. Deterministic in the row values.
func Score(r life.DailyRecord) float64 {
	score := scoreBaseline

	score += sleepBonus * math.Min(r.SleepTime/sleepReference, sleepBonusCap)
	score += activityBonus * math.Min(r.ActivityTime/activityReference, activityBonusCap)
	if !math.IsNaN(r.Temp) && r.Temp >= tempComfortLow && r.Temp <= tempComfortHigh {
		score += comfortBonus
	}
	if !math.IsNaN(r.Humidity) && r.Humidity >= humComfortLow && r.Humidity <= humComfortHigh {
		score += comfortBonus
	}
	score += moodFraction * r.MoodScore

	score -= caffeinePenalty * math.Min(float64(r.Caffeine)/caffeineReference, caffeineCap)
	score -= phonePenalty * math.Min(r.PhoneTime/phoneReference, phoneCap)
	score -= pmPenalty * math.Min(r.PM10/pmReference, pmCap)

	return math.Min(math.Max(math.Round(score), 0), 100)
}

// HasMissing reports whether any required feature value is NaN. Such rows
// are dropped before label assignment, never imputed.
func HasMissing(r life.DailyRecord) bool {
	for _, v := range []float64{r.PM10, r.Temp, r.Humidity, r.SleepTime, r.ActivityTime, r.PhoneTime, r.MoodScore} {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
