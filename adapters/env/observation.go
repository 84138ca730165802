// Package env reads raw daily environment exports (particulate matter,
// temperature, humidity) and joins them into one calendar-aligned series.
package env

import (
	"sort"
	"strings"
	"time"

	"fiture/domain/core"
	"fiture/domain/life"
)

// Observation is one (day, value) pair from a single raw export
type Observation struct {
	Date  time.Time
	Value float64
}

// dateFormats covers the shapes seen in the raw exports: compact integers,
// ISO dates, and ISO dates with a leading apostrophe added for spreadsheet
// compatibility.
var dateFormats = []string{"20060102", "2006-01-02", "2006/01/02"}

func parseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "'"))
	for _, f := range dateFormats {
		if t, err := time.Parse(f, s); err == nil {
			return core.Day(t), true
		}
	}
	return time.Time{}, false
}

// Merge inner-joins the three observation lists on calendar day and returns
// the series sorted ascending by date. Days absent from any input are
// dropped; duplicate days keep the first observation.
func Merge(pm, temp, hum []Observation) (*life.EnvironmentSeries, error) {
	pmByDay := byDay(pm)
	tempByDay := byDay(temp)
	humByDay := byDay(hum)

	days := make([]time.Time, 0, len(pmByDay))
	for d := range pmByDay {
		t := time.Unix(d, 0).UTC()
		if _, ok := tempByDay[d]; !ok {
			continue
		}
		if _, ok := humByDay[d]; !ok {
			continue
		}
		days = append(days, t)
	}
	if len(days) == 0 {
		return nil, core.ErrEmptySeries
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	series := &life.EnvironmentSeries{
		Dates:    make([]time.Time, 0, len(days)),
		PM10:     make([]float64, 0, len(days)),
		Temp:     make([]float64, 0, len(days)),
		Humidity: make([]float64, 0, len(days)),
	}
	for _, day := range days {
		key := day.Unix()
		series.Dates = append(series.Dates, day)
		series.PM10 = append(series.PM10, pmByDay[key])
		series.Temp = append(series.Temp, tempByDay[key])
		series.Humidity = append(series.Humidity, humByDay[key])
	}
	return series, nil
}

func byDay(obs []Observation) map[int64]float64 {
	out := make(map[int64]float64, len(obs))
	for _, o := range obs {
		key := core.Day(o.Date).Unix()
		if _, dup := out[key]; !dup {
			out[key] = o.Value
		}
	}
	return out
}
