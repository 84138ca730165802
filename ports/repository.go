package ports

import (
	"context"

	"fiture/domain/condition"
	"fiture/domain/core"
	"fiture/domain/life"
)

// LabeledRow pairs one record with its derived score and label
type LabeledRow struct {
	Record life.DailyRecord
	Score  float64
	Label  int
}

// DatasetRepository persists synthesized datasets and labeling runs for
// reproducibility and debugging. Optional: the pipeline runs file-only when
// no database is configured.
type DatasetRepository interface {
	SaveDataset(ctx context.Context, id core.DatasetID, records []life.DailyRecord) error
	SaveLabelingRun(ctx context.Context, runID core.RunID, datasetID core.DatasetID, rows []LabeledRow, manifest condition.Manifest) error
}
