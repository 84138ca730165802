package condition

import (
	"sort"

	"github.com/montanaflynn/stats"

	"fiture/domain/core"
)

// Mode selects the labeling policy
type Mode string

const (
	ModeAuto     Mode = "auto"
	ModeAbsolute Mode = "absolute"
	ModeQuantile Mode = "quantile"

	// UsedModes record which policy an auto run actually applied
	UsedAutoAbsolute = "auto->absolute"
	UsedAutoQuantile = "auto->quantile"
)

// Rebalance thresholds: a class under the floor or over the ceiling marks
// the absolute-cut distribution as too skewed to train on.
const (
	rebalanceLowFloor    = 0.10
	rebalanceHighCeiling = 0.40
)

// LabelAbsolute applies the fixed threshold cut.
// <50 → 1, [50,60) → 2, [60,70) → 3, [70,80) → 4, ≥80 → 5.
func LabelAbsolute(score float64) int {
	switch {
	case score < 50:
		return 1
	case score < 60:
		return 2
	case score < 70:
		return 3
	case score < 80:
		return 4
	default:
		return 5
	}
}

// LabelQuantile bins scores at the 20/40/60/80th percentiles, labeled 1..5.
// When tie-heavy distributions collapse boundaries, duplicate edges are
// dropped and fewer than 5 bins is accepted rather than erroring.
func LabelQuantile(scores []float64) ([]int, error) {
	if len(scores) == 0 {
		return nil, core.ErrEmptySeries
	}

	edges := make([]float64, 0, 4)
	for _, q := range []float64{20, 40, 60, 80} {
		e, err := stats.Percentile(stats.Float64Data(scores), q)
		if err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	sort.Float64s(edges)
	edges = dedupeEdges(edges)

	labels := make([]int, len(scores))
	for i, s := range scores {
		// Bins are left-open: a score equal to an edge falls in the lower bin
		label := 1
		for _, e := range edges {
			if s > e {
				label++
			}
		}
		labels[i] = label
	}
	return labels, nil
}

// LabelAuto computes absolute-cut labels first, checks class balance, and
// falls back to quantile labels once if the distribution is skewed. This is
// a one-shot decision per labeling run, not iterative.
func LabelAuto(scores []float64) ([]int, string, error) {
	if len(scores) == 0 {
		return nil, "", core.ErrEmptySeries
	}
	labels := make([]int, len(scores))
	for i, s := range scores {
		labels[i] = LabelAbsolute(s)
	}
	if !NeedsRebalance(labels) {
		return labels, UsedAutoAbsolute, nil
	}
	quantile, err := LabelQuantile(scores)
	if err != nil {
		return nil, "", err
	}
	return quantile, UsedAutoQuantile, nil
}

// Label applies the requested mode to a score series
func Label(scores []float64, mode Mode) ([]int, string, error) {
	switch mode {
	case ModeAbsolute:
		labels := make([]int, len(scores))
		for i, s := range scores {
			labels[i] = LabelAbsolute(s)
		}
		return labels, string(ModeAbsolute), nil
	case ModeQuantile:
		labels, err := LabelQuantile(scores)
		return labels, string(ModeQuantile), err
	case ModeAuto, "":
		return LabelAuto(scores)
	default:
		return nil, "", core.NewValidationError("labeling_mode", string(mode))
	}
}

// NeedsRebalance reports whether any present class holds less than 10% or
// more than 40% of the rows.
func NeedsRebalance(labels []int) bool {
	if len(labels) == 0 {
		return false
	}
	counts := make(map[int]int)
	for _, l := range labels {
		counts[l]++
	}
	total := float64(len(labels))
	for _, c := range counts {
		p := float64(c) / total
		if p < rebalanceLowFloor || p > rebalanceHighCeiling {
			return true
		}
	}
	return false
}

func dedupeEdges(edges []float64) []float64 {
	out := edges[:0]
	for i, e := range edges {
		if i == 0 || e != edges[i-1] {
			out = append(out, e)
		}
	}
	return out
}
