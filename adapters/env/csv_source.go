package env

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"fiture/domain/life"
	"fiture/internal"
	"fiture/internal/errors"
)

// CSVSource reads the three raw environment CSVs (pm.csv, temp.csv,
// humidity.csv) from one directory. Each file carries (date, region, value)
// rows without a header; the region column is ignored.
type CSVSource struct {
	dir    string
	logger *internal.Logger
}

// NewCSVSource creates a CSV-backed environment source
func NewCSVSource(dir string, logger *internal.Logger) *CSVSource {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &CSVSource{dir: dir, logger: logger}
}

// Read loads and merges the three exports. A missing file is a
// data-availability error: synthetic values are never substituted.
func (s *CSVSource) Read(ctx context.Context) (*life.EnvironmentSeries, error) {
	pm, err := s.readObservations(filepath.Join(s.dir, "pm.csv"))
	if err != nil {
		return nil, err
	}
	temp, err := s.readObservations(filepath.Join(s.dir, "temp.csv"))
	if err != nil {
		return nil, err
	}
	hum, err := s.readObservations(filepath.Join(s.dir, "humidity.csv"))
	if err != nil {
		return nil, err
	}

	series, err := Merge(pm, temp, hum)
	if err != nil {
		return nil, errors.Wrap(err, "merging environment series")
	}
	s.logger.Info("environment series merged: %d days", series.Len())
	return series, nil
}

func (s *CSVSource) readObservations(path string) ([]Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.DataUnavailable(path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var obs []Observation
	skipped := 0
	rows, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	for _, row := range rows {
		if len(row) < 3 {
			skipped++
			continue
		}
		day, ok := parseDay(row[0])
		if !ok {
			skipped++ // header rows and malformed dates land here
			continue
		}
		value, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			skipped++
			continue
		}
		obs = append(obs, Observation{Date: day, Value: value})
	}
	if skipped > 0 {
		s.logger.Warn("%s: skipped %d unparseable rows", path, skipped)
	}
	if len(obs) == 0 {
		return nil, errors.SchemaMismatch(path + " contains no parseable observations")
	}
	return obs, nil
}
