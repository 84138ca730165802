package ports

// Model is the boundary to an externally trained classifier artifact. The
// returned matrix holds one row per input row with exactly five per-class
// probabilities summing to 1, ordered as grades [1,2,3,4,5].
type Model interface {
	PredictProba(X [][]float64) ([][]float64, error)
}

// GradeClasses is the fixed class ordering every model artifact must honor
var GradeClasses = []int{1, 2, 3, 4, 5}
