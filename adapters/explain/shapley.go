// Package explain attributes classifier predictions to input features by
// estimating Shapley values of the expected-grade function.
package explain

import (
	"math/rand"
	"sort"

	"fiture/adapters/model"
	"fiture/domain/coach"
	"fiture/domain/core"
	"fiture/ports"
)

// defaultSamples is the number of feature permutations per explanation.
// Estimates stabilize well below this for the 8-12 feature rows this
// pipeline produces.
const defaultSamples = 64

// Engine estimates per-feature contributions to the expected grade
// E[grade] = Σ_k k·P(grade=k) via permutation sampling against a background
// sample set: for each random feature ordering, features flip one at a time
// from a background row's value to the explained row's value, and each
// feature is credited with the change in expected grade it causes.
//
// Construction is the expensive part of the contract and happens once per
// model+background pair; Explain is cheap and meant to be called many times
// sequentially. The sampling stream is stateful, so an Engine must not be
// shared across goroutines without external synchronization.
type Engine struct {
	model      ports.Model
	background [][]float64
	samples    int
	rng        *rand.Rand
}

// NewEngine builds an explainer over a model and its background samples
func NewEngine(m ports.Model, background [][]float64, samples int, seed int64) (*Engine, error) {
	if len(background) == 0 {
		return nil, core.ErrInsufficientData
	}
	width := len(background[0])
	for _, row := range background {
		if len(row) != width {
			return nil, core.NewValidationError("background", "ragged sample rows")
		}
	}
	if samples <= 0 {
		samples = defaultSamples
	}
	return &Engine{
		model:      m,
		background: background,
		samples:    samples,
		rng:        rand.New(rand.NewSource(seed)),
	}, nil
}

// Explain attributes one sample. Only features that push the expected
// grade up (worsen the condition) are returned, sorted by descending
// penalty; zero and negative contributions are dropped.
func (e *Engine) Explain(x []float64, featureNames []string) ([]coach.Attribution, error) {
	d := len(x)
	if d == 0 || len(featureNames) != d || len(e.background[0]) != d {
		return nil, core.ErrMalformedInput
	}

	phi := make([]float64, d)
	points := make([][]float64, d+1)

	for s := 0; s < e.samples; s++ {
		base := e.background[e.rng.Intn(len(e.background))]
		perm := e.rng.Perm(d)

		z := append([]float64{}, base...)
		points[0] = append([]float64{}, z...)
		for k, j := range perm {
			z[j] = x[j]
			points[k+1] = append([]float64{}, z...)
		}

		values, err := model.ExpectedGrade(e.model, points)
		if err != nil {
			return nil, err
		}
		for k, j := range perm {
			phi[j] += values[k+1] - values[k]
		}
	}

	pairs := make([]coach.Attribution, 0, d)
	for j := 0; j < d; j++ {
		penalty := phi[j] / float64(e.samples)
		if penalty > 0 {
			pairs = append(pairs, coach.Attribution{Feature: featureNames[j], Penalty: penalty})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].Penalty > pairs[j].Penalty })
	return pairs, nil
}
