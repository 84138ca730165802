package model

// Stub is a fixed-output model for tests and wiring checks: every row
// predicts the same probability vector.
type Stub struct {
	Proba []float64
}

// PredictProba returns the fixed vector for every input row
func (s *Stub) PredictProba(X [][]float64) ([][]float64, error) {
	out := make([][]float64, len(X))
	for i := range X {
		out[i] = append([]float64{}, s.Proba...)
	}
	return out, nil
}
