package ports

import (
	"fiture/domain/coach"
)

// Explainer attributes a single prediction to its input features. Building
// an explainer is expensive; instances are reused across many sequential
// Explain calls but are not safe for concurrent use, since the sampling
// stream is stateful.
type Explainer interface {
	// Explain returns per-feature penalties for one sample: positive
	// contributions to the expected grade, sorted descending. Zero and
	// negative contributions are excluded entirely.
	Explain(x []float64, featureNames []string) ([]coach.Attribution, error)
}
