// Package dataset reads and writes the pipeline's CSV artifacts.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"fiture/domain/core"
	"fiture/domain/life"
	"fiture/ports"
)

const dateLayout = "2006-01-02"

// labeledHeader is the column layout of every labeled CSV artifact
var labeledHeader = append(append([]string{"date"}, life.FeatureColumns...),
	"ProfileType", "ConditionScore", "ConditionLabel")

// WriteLabeled writes labeled rows as CSV, creating parent directories
func WriteLabeled(path string, rows []ports.LabeledRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(labeledHeader); err != nil {
		return err
	}
	for _, row := range rows {
		features := row.Record.Features()
		record := make([]string, 0, len(labeledHeader))
		record = append(record, row.Record.Date.Format(dateLayout))
		for _, col := range life.FeatureColumns {
			record = append(record, formatValue(col, features[col]))
		}
		record = append(record,
			row.Record.ProfileType,
			strconv.FormatFloat(row.Score, 'f', -1, 64),
			strconv.Itoa(row.Label),
		)
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteRecords writes raw synthesized records as CSV, without scores or
// labels, creating parent directories.
func WriteRecords(path string, records []life.DailyRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append(append([]string{"date"}, life.FeatureColumns...), "ProfileType")
	if err := w.Write(header); err != nil {
		return err
	}
	for _, rec := range records {
		features := rec.Features()
		row := make([]string, 0, len(header))
		row = append(row, rec.Date.Format(dateLayout))
		for _, col := range life.FeatureColumns {
			row = append(row, formatValue(col, features[col]))
		}
		row = append(row, rec.ProfileType)
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ReadMatrix reads the named numeric columns from a CSV with a header row,
// in the given column order. Used to load explainer background samples from
// a labeled artifact.
func ReadMatrix(path string, columns []string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", core.ErrDataUnavailable, path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	pos := make([]int, len(columns))
	for i, col := range columns {
		j, ok := index[col]
		if !ok {
			return nil, core.NewMissingColumnError(path, col)
		}
		pos[i] = j
	}

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read rows of %s: %w", path, err)
	}
	matrix := make([][]float64, 0, len(records))
	for _, rec := range records {
		row := make([]float64, len(columns))
		for i, j := range pos {
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				return nil, fmt.Errorf("column %s in %s: %w", columns[i], path, err)
			}
			row[i] = v
		}
		matrix = append(matrix, row)
	}
	if len(matrix) == 0 {
		return nil, core.ErrEmptySeries
	}
	return matrix, nil
}

// Caffeine is stored as a count, everything else as a float
func formatValue(col string, v float64) string {
	if col == "Caffeine" {
		return strconv.Itoa(int(v))
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
