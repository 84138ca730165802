// Package model loads trained classifier artifacts behind the Model port.
package model

import (
	"encoding/json"
	"math"
	"os"

	"fiture/domain/core"
	"fiture/internal/errors"
	"fiture/ports"
)

// LinearSoftmax is a multinomial linear classifier loaded from a JSON
// artifact exported by the training pipeline: one weight row and bias per
// grade class, applied to the aligned feature vector and squashed through
// softmax. The artifact also carries the training column order, which is
// the source of truth for feature alignment at inference time.
type LinearSoftmax struct {
	Columns []string    `json:"columns"`
	Weights [][]float64 `json:"weights"` // [class][feature]
	Bias    []float64   `json:"bias"`    // [class]
}

// Load reads a model artifact from disk
func Load(path string) (*LinearSoftmax, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.DataUnavailable(path)
	}
	var m LinearSoftmax
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.ModelError("parsing model artifact "+path, err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *LinearSoftmax) validate() error {
	if len(m.Weights) != len(ports.GradeClasses) || len(m.Bias) != len(ports.GradeClasses) {
		return errors.ModelError("model artifact must define exactly 5 classes", nil)
	}
	for _, row := range m.Weights {
		if len(row) != len(m.Columns) {
			return errors.ModelError("weight row length does not match column count", nil)
		}
	}
	return nil
}

// PredictProba computes per-class probabilities for each input row
func (m *LinearSoftmax) PredictProba(X [][]float64) ([][]float64, error) {
	out := make([][]float64, len(X))
	for i, x := range X {
		if len(x) != len(m.Columns) {
			return nil, core.ErrMalformedInput
		}
		logits := make([]float64, len(m.Weights))
		maxLogit := math.Inf(-1)
		for c, w := range m.Weights {
			z := m.Bias[c]
			for j, v := range x {
				z += w[j] * v
			}
			logits[c] = z
			if z > maxLogit {
				maxLogit = z
			}
		}
		sum := 0.0
		proba := make([]float64, len(logits))
		for c, z := range logits {
			proba[c] = math.Exp(z - maxLogit)
			sum += proba[c]
		}
		for c := range proba {
			proba[c] /= sum
		}
		out[i] = proba
	}
	return out, nil
}
