package app

import (
	"context"
	"path/filepath"

	"fiture/domain/condition"
	"fiture/domain/core"
	"fiture/domain/life"
	"fiture/domain/split"
	"fiture/internal"
	"fiture/internal/dataset"
	"fiture/ports"
)

// Split parameters for every labeling run
const (
	testFraction = 0.2
	splitSeed    = 20250814
)

// LabeledDataset is the output of one labeling run: scored and labeled
// rows, the stratified partition over them, and the manifest documenting
// how both were derived.
type LabeledDataset struct {
	Rows     []ports.LabeledRow
	UsedMode string
	Manifest condition.Manifest
	TrainIdx []int
	TestIdx  []int
}

// LabelingService turns raw synthesized records into a labeled training
// dataset. Rows with missing feature values are dropped up front; labels
// follow the requested mode's policy.
type LabelingService struct {
	logger *internal.Logger
	repo   ports.DatasetRepository
	outDir string
}

// NewLabelingService creates a labeling service. repo may be nil for
// file-only runs; outDir may be empty to skip artifact files.
func NewLabelingService(repo ports.DatasetRepository, outDir string, logger *internal.Logger) *LabelingService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &LabelingService{logger: logger, repo: repo, outDir: outDir}
}

// Run scores, labels, and splits the records, writes the dataset artifacts,
// and persists the run when a repository is configured.
func (s *LabelingService) Run(ctx context.Context, records []life.DailyRecord, mode condition.Mode) (*LabeledDataset, error) {
	kept := make([]life.DailyRecord, 0, len(records))
	for _, rec := range records {
		if condition.HasMissing(rec) {
			continue
		}
		kept = append(kept, rec)
	}
	if dropped := len(records) - len(kept); dropped > 0 {
		s.logger.Warn("dropped %d rows with missing feature values", dropped)
	}
	if len(kept) == 0 {
		return nil, core.ErrEmptySeries
	}

	scores := make([]float64, len(kept))
	for i, rec := range kept {
		scores[i] = condition.Score(rec)
	}

	labels, usedMode, err := condition.Label(scores, mode)
	if err != nil {
		return nil, err
	}
	s.logger.Info("labeled %d rows (mode %s, classes %v)", len(kept), usedMode, condition.DistinctLabels(labels))

	rows := make([]ports.LabeledRow, len(kept))
	for i := range kept {
		rows[i] = ports.LabeledRow{Record: kept[i], Score: scores[i], Label: labels[i]}
	}

	trainIdx, testIdx, err := split.Stratified(labels, testFraction, splitSeed)
	if err != nil {
		return nil, err
	}

	out := &LabeledDataset{
		Rows:     rows,
		UsedMode: usedMode,
		Manifest: condition.NewManifest(usedMode, condition.DistinctLabels(labels), condition.SplitParams{
			TestSize:    testFraction,
			RandomState: splitSeed,
			Stratify:    true,
		}),
		TrainIdx: trainIdx,
		TestIdx:  testIdx,
	}

	if s.outDir != "" {
		if err := s.writeArtifacts(out); err != nil {
			return nil, err
		}
	}
	if s.repo != nil {
		runID := core.RunID(core.NewID())
		datasetID := core.DatasetID(core.NewID())
		if err := s.repo.SaveDataset(ctx, datasetID, kept); err != nil {
			return nil, err
		}
		if err := s.repo.SaveLabelingRun(ctx, runID, datasetID, rows, out.Manifest); err != nil {
			return nil, err
		}
		s.logger.Info("persisted labeling run %s (dataset %s)", runID, datasetID)
	}
	return out, nil
}

// writeArtifacts saves the full dataset, the train/test partitions, and the
// feature manifest under the output directory.
func (s *LabelingService) writeArtifacts(d *LabeledDataset) error {
	if err := dataset.WriteLabeled(filepath.Join(s.outDir, "daily_dataset.csv"), d.Rows); err != nil {
		return err
	}
	if err := dataset.WriteLabeled(filepath.Join(s.outDir, "train.csv"), pick(d.Rows, d.TrainIdx)); err != nil {
		return err
	}
	if err := dataset.WriteLabeled(filepath.Join(s.outDir, "test.csv"), pick(d.Rows, d.TestIdx)); err != nil {
		return err
	}
	return d.Manifest.Write(filepath.Join(s.outDir, "feature_config.json"))
}

func pick(rows []ports.LabeledRow, idx []int) []ports.LabeledRow {
	out := make([]ports.LabeledRow, len(idx))
	for i, j := range idx {
		out[i] = rows[j]
	}
	return out
}
