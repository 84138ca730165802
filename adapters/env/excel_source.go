package env

import (
	"context"
	"strconv"

	"github.com/xuri/excelize/v2"

	"fiture/domain/life"
	"fiture/internal"
	"fiture/internal/errors"
)

// ExcelSource reads the environment exports from one workbook with three
// sheets, each in the same (date, region, value) layout as the raw CSVs.
type ExcelSource struct {
	path   string
	logger *internal.Logger
}

// Sheet names expected in the workbook
const (
	sheetPM       = "pm"
	sheetTemp     = "temp"
	sheetHumidity = "humidity"
)

// NewExcelSource creates an Excel-backed environment source
func NewExcelSource(path string, logger *internal.Logger) *ExcelSource {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ExcelSource{path: path, logger: logger}
}

// Read loads and merges the three sheets
func (s *ExcelSource) Read(ctx context.Context) (*life.EnvironmentSeries, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, errors.DataUnavailable(s.path)
	}
	defer f.Close()

	pm, err := s.readSheet(f, sheetPM)
	if err != nil {
		return nil, err
	}
	temp, err := s.readSheet(f, sheetTemp)
	if err != nil {
		return nil, err
	}
	hum, err := s.readSheet(f, sheetHumidity)
	if err != nil {
		return nil, err
	}

	series, err := Merge(pm, temp, hum)
	if err != nil {
		return nil, errors.Wrap(err, "merging environment series")
	}
	s.logger.Info("environment series merged from %s: %d days", s.path, series.Len())
	return series, nil
}

func (s *ExcelSource) readSheet(f *excelize.File, sheet string) ([]Observation, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.SchemaMismatch("workbook " + s.path + " is missing sheet " + sheet)
	}

	var obs []Observation
	skipped := 0
	for _, row := range rows {
		if len(row) < 3 {
			skipped++
			continue
		}
		day, ok := parseDay(row[0])
		if !ok {
			skipped++
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
		s.logger.Warn("%s/%s: skipped %d unparseable rows", s.path, sheet, skipped)
	}
	if len(obs) == 0 {
		return nil, errors.SchemaMismatch(sheet + " sheet contains no parseable observations")
	}
	return obs, nil
}
