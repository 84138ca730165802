package life

import (
	"time"

	"fiture/domain/core"
)

// DailyRecord is one synthesized (entity, day) row: the environmental
// context shared by every entity on that date plus the behavioral values
// generated for this entity.
type DailyRecord struct {
	Date         time.Time `json:"date"`
	PM10         float64   `json:"pm10"`
	Temp         float64   `json:"temp"`
	Humidity     float64   `json:"humidity"`
	SleepTime    float64   `json:"sleep_time"`
	ActivityTime float64   `json:"activity_time"`
	Caffeine     int       `json:"caffeine"`
	PhoneTime    float64   `json:"phone_time"`
	MoodScore    float64   `json:"mood_score"`
	ProfileType  string    `json:"profile_type"`
}

// FeatureColumns is the canonical numeric feature order used across
// labeling, training and inference.
var FeatureColumns = []string{
	"PM10", "Temp", "Humidity",
	"SleepTime", "ActivityTime", "Caffeine", "PhoneTime", "MoodScore",
}

// Features returns the record's numeric features keyed by canonical column name.
func (r DailyRecord) Features() map[string]float64 {
	return map[string]float64{
		"PM10":         r.PM10,
		"Temp":         r.Temp,
		"Humidity":     r.Humidity,
		"SleepTime":    r.SleepTime,
		"ActivityTime": r.ActivityTime,
		"Caffeine":     float64(r.Caffeine),
		"PhoneTime":    r.PhoneTime,
		"MoodScore":    r.MoodScore,
	}
}

// EnvironmentSeries is a calendar-aligned table of daily environment
// observations, sorted ascending by date. The three value slices always
// have the same length as Dates.
type EnvironmentSeries struct {
	Dates    []time.Time
	PM10     []float64
	Temp     []float64
	Humidity []float64
}

// Len returns the number of days in the series
func (s *EnvironmentSeries) Len() int {
	return len(s.Dates)
}

// Validate checks the series is non-empty and internally consistent
func (s *EnvironmentSeries) Validate() error {
	if s == nil || len(s.Dates) == 0 {
		return core.ErrEmptySeries
	}
	n := len(s.Dates)
	if len(s.PM10) != n || len(s.Temp) != n || len(s.Humidity) != n {
		return core.NewValidationError("environment_series", "column lengths differ")
	}
	return nil
}

// Resize repeats or truncates every column to exactly n entries. Dates past
// the original range continue day by day so each generated row keeps a
// unique calendar day.
func (s *EnvironmentSeries) Resize(n int) *EnvironmentSeries {
	out := &EnvironmentSeries{
		Dates:    make([]time.Time, n),
		PM10:     make([]float64, n),
		Temp:     make([]float64, n),
		Humidity: make([]float64, n),
	}
	src := s.Len()
	for i := 0; i < n; i++ {
		j := i % src
		out.PM10[i] = s.PM10[j]
		out.Temp[i] = s.Temp[j]
		out.Humidity[i] = s.Humidity[j]
		if i < src {
			out.Dates[i] = s.Dates[i]
		} else {
			out.Dates[i] = s.Dates[src-1].AddDate(0, 0, i-src+1)
		}
	}
	return out
}
