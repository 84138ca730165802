package app

import (
	"context"
	"sync"

	"fiture/domain/coach"
	"fiture/domain/core"
	"fiture/domain/life"
	"fiture/internal"
	"fiture/ports"
)

const (
	topFactors     = 3
	maxCardActions = 5
)

// contextEnvKeys maps feature columns onto the raw environment context the
// card builder checks against its warning thresholds.
var contextEnvKeys = map[string]string{
	"PM10":     "pm10",
	"Temp":     "temp",
	"Humidity": "humidity",
}

// CoachPipeline runs one prediction end to end: align the raw row, predict
// the grade, attribute it, reduce attributions to factors, and assemble the
// coaching card. The explainer's sampling stream is stateful, so calls
// serialize around it.
type CoachPipeline struct {
	logger    *internal.Logger
	model     ports.Model
	explainer ports.Explainer
	aligner   *life.FeatureAligner
	lib       coach.RuleLibrary
	cache     ports.CardCache
	factors   map[string]coach.Factor

	mu sync.Mutex
}

// NewCoachPipeline wires the prediction pipeline. cache may be nil to
// disable card caching.
func NewCoachPipeline(m ports.Model, explainer ports.Explainer, aligner *life.FeatureAligner, lib coach.RuleLibrary, cache ports.CardCache, logger *internal.Logger) *CoachPipeline {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &CoachPipeline{
		logger:    logger,
		model:     m,
		explainer: explainer,
		aligner:   aligner,
		lib:       lib,
		cache:     cache,
		factors:   coach.DefaultVariableFactors,
	}
}

// PredictCard produces the coaching card for one raw input row
func (p *CoachPipeline) PredictCard(ctx context.Context, raw map[string]any) (coach.Card, error) {
	x, err := p.aligner.Align(raw)
	if err != nil {
		return coach.Card{}, err
	}
	columns := p.aligner.Columns()

	rowMap := make(map[string]float64, len(columns))
	for i, col := range columns {
		rowMap[col] = x[i]
	}
	key := core.HashRow(rowMap)

	if p.cache != nil {
		if card, ok, err := p.cache.Get(ctx, key); err != nil {
			p.logger.Warn("card cache read failed: %v", err)
		} else if ok {
			p.logger.Debug("card cache hit for %s", key)
			return *card, nil
		}
	}

	proba, err := p.model.PredictProba([][]float64{x})
	if err != nil {
		return coach.Card{}, err
	}
	grade := ports.GradeClasses[argmax(proba[0])]

	p.mu.Lock()
	attributions, err := p.explainer.Explain(x, columns)
	p.mu.Unlock()
	if err != nil {
		return coach.Card{}, err
	}
	factors := coach.ReduceFactors(attributions, p.factors, topFactors)

	contextEnv := make(map[string]float64)
	for i, col := range columns {
		if name, ok := contextEnvKeys[col]; ok {
			contextEnv[name] = x[i]
		}
	}

	card := coach.BuildCard(grade, factors, p.lib, contextEnv, maxCardActions)

	if p.cache != nil {
		if err := p.cache.Set(ctx, key, card); err != nil {
			p.logger.Warn("card cache write failed: %v", err)
		}
	}
	return card, nil
}

func argmax(xs []float64) int {
	best := 0
	for i, v := range xs {
		if v > xs[best] {
			best = i
		}
	}
	return best
}
