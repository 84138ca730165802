package life

import (
	"fmt"

	"fiture/domain/core"
)

// FeatureAligner maps a raw input row onto the exact column layout the
// model was trained with. Categorical values are one-hot encoded as
// "<key>_<value>" columns, a training column absent from the input is
// filled with zero, and input keys the training set never saw are dropped.
// The output order always equals the training column order.
type FeatureAligner struct {
	columns []string
	index   map[string]int
}

// NewFeatureAligner creates an aligner for a training-time column list
func NewFeatureAligner(trainingColumns []string) (*FeatureAligner, error) {
	if len(trainingColumns) == 0 {
		return nil, core.NewValidationError("training_columns", "cannot be empty")
	}
	index := make(map[string]int, len(trainingColumns))
	for i, c := range trainingColumns {
		if _, dup := index[c]; dup {
			return nil, core.NewValidationError("training_columns", fmt.Sprintf("duplicate column %q", c))
		}
		index[c] = i
	}
	cols := append([]string{}, trainingColumns...)
	return &FeatureAligner{columns: cols, index: index}, nil
}

// Columns returns the training column order
func (a *FeatureAligner) Columns() []string {
	return append([]string{}, a.columns...)
}

// Align encodes one raw row into the training column layout. Values may be
// numeric (float64, int) or strings; strings one-hot into "<key>_<value>".
func (a *FeatureAligner) Align(raw map[string]any) ([]float64, error) {
	out := make([]float64, len(a.columns))
	for key, val := range raw {
		switch v := val.(type) {
		case float64:
			if i, ok := a.index[key]; ok {
				out[i] = v
			}
		case float32:
			if i, ok := a.index[key]; ok {
				out[i] = float64(v)
			}
		case int:
			if i, ok := a.index[key]; ok {
				out[i] = float64(v)
			}
		case int64:
			if i, ok := a.index[key]; ok {
				out[i] = float64(v)
			}
		case string:
			if i, ok := a.index[key+"_"+v]; ok {
				out[i] = 1
			}
		case bool:
			if i, ok := a.index[key]; ok && v {
				out[i] = 1
			}
		case nil:
			// treated as zero-fill, same as an absent column
		default:
			return nil, fmt.Errorf("%w: field %q has unsupported type %T", core.ErrMalformedInput, key, val)
		}
	}
	return out, nil
}

// AlignRecord encodes a DailyRecord through the same contract as Align
func (a *FeatureAligner) AlignRecord(rec DailyRecord) ([]float64, error) {
	raw := make(map[string]any, 9)
	for k, v := range rec.Features() {
		raw[k] = v
	}
	if rec.ProfileType != "" {
		raw["profile_type"] = rec.ProfileType
	}
	return a.Align(raw)
}
