package model

import (
	"fiture/domain/core"
	"fiture/ports"
)

// PredictGradeAndProba returns the argmax grade and the per-class
// probability row for a single sample.
func PredictGradeAndProba(m ports.Model, x []float64) (int, []float64, error) {
	proba, err := m.PredictProba([][]float64{x})
	if err != nil {
		return 0, nil, err
	}
	if len(proba) != 1 || len(proba[0]) != len(ports.GradeClasses) {
		return 0, nil, core.ErrProbaShape
	}
	best := 0
	for i, p := range proba[0] {
		if p > proba[0][best] {
			best = i
		}
	}
	return ports.GradeClasses[best], proba[0], nil
}

// ExpectedGrade computes the probability-weighted expected grade
// E[grade] = Σ_k k·P(grade=k) for each input row.
func ExpectedGrade(m ports.Model, X [][]float64) ([]float64, error) {
	proba, err := m.PredictProba(X)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(proba))
	for i, row := range proba {
		if len(row) != len(ports.GradeClasses) {
			return nil, core.ErrProbaShape
		}
		e := 0.0
		for k, p := range row {
			e += float64(ports.GradeClasses[k]) * p
		}
		out[i] = e
	}
	return out, nil
}
