package condition

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// FeatureField documents one model feature for downstream tooling
type FeatureField struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Unit        string `json:"unit"`
	Description string `json:"desc"`
}

// SplitParams record how the labeled dataset was partitioned
type SplitParams struct {
	TestSize    float64 `json:"test_size"`
	RandomState int64   `json:"random_state"`
	Stratify    bool    `json:"stratify"`
}

// ManifestAux holds labeling provenance: which mode ran, the cut rule, and
// the split parameters. Purely descriptive; never re-parsed by the pipeline.
type ManifestAux struct {
	ScoreName     string      `json:"score_name"`
	ScoreRange    [2]int      `json:"score_range"`
	LabelingMode  string      `json:"labeling_mode"`
	AbsoluteCut   string      `json:"absolute_cut"`
	RebalanceRule string      `json:"rebalance_rule"`
	LabelsUsed    []int       `json:"labels_used,omitempty"`
	Split         SplitParams `json:"split"`
}

// Manifest is the feature-config document written next to every labeled
// dataset so training and inference agree on the feature contract.
type Manifest struct {
	IDCols   []string       `json:"id_cols"`
	Target   string         `json:"target"`
	Features []FeatureField `json:"features"`
	Aux      ManifestAux    `json:"aux"`
}

// NewManifest builds the manifest for a labeling run
func NewManifest(usedMode string, labelsUsed []int, split SplitParams) Manifest {
	return Manifest{
		IDCols: []string{"date"},
		Target: "ConditionLabel",
		Features: []FeatureField{
			{Name: "PM10", Type: "numerical", Unit: "µg/m³", Description: "particulate matter, lower is better"},
			{Name: "Temp", Type: "numerical", Unit: "°C", Description: "mean temperature, 18-24°C comfortable"},
			{Name: "Humidity", Type: "numerical", Unit: "%", Description: "relative humidity, 40-60% comfortable"},
			{Name: "SleepTime", Type: "numerical", Unit: "hours", Description: "sleep duration, 7-8h recommended"},
			{Name: "ActivityTime", Type: "numerical", Unit: "hours", Description: "activity/exercise time"},
			{Name: "Caffeine", Type: "numerical", Unit: "cups", Description: "caffeine intake, lower is better"},
			{Name: "PhoneTime", Type: "numerical", Unit: "hours", Description: "phone screen time, lower is better"},
			{Name: "MoodScore", Type: "numerical", Unit: "points", Description: "self-reported mood (0-100)"},
		},
		Aux: ManifestAux{
			ScoreName:     "ConditionScore",
			ScoreRange:    [2]int{0, 100},
			LabelingMode:  usedMode,
			AbsoluteCut:   "<50→1, 50-59→2, 60-69→3, 70-79→4, ≥80→5",
			RebalanceRule: "if any class <10% or >40%, switch to quantile(20/40/60/80)",
			LabelsUsed:    labelsUsed,
			Split:         split,
		},
	}
}

// Write saves the manifest as indented JSON
func (m Manifest) Write(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// DistinctLabels returns the sorted set of labels actually assigned.
// Quantile collapse can legitimately produce fewer than five classes;
// recording them lets training code check its class assumptions.
func DistinctLabels(labels []int) []int {
	seen := make(map[int]bool)
	var out []int
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
