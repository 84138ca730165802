// Package split provides deterministic stratified dataset partitioning.
package split

import (
	"math"
	"math/rand"
	"sort"

	"fiture/domain/core"
)

// Stratified partitions row indices into train/test so each label keeps
// roughly its overall proportion in both parts. The same (labels, testFrac,
// seed) always yields the same partition regardless of caller ordering.
func Stratified(labels []int, testFrac float64, seed int64) (trainIdx, testIdx []int, err error) {
	if len(labels) == 0 {
		return nil, nil, core.ErrEmptySeries
	}
	if testFrac <= 0 || testFrac >= 1 {
		return nil, nil, core.NewValidationError("test_frac", "must be in (0,1)")
	}

	byLabel := make(map[int][]int)
	for i, l := range labels {
		byLabel[l] = append(byLabel[l], i)
	}

	// Iterate classes in sorted order so the shuffle stream is stable
	classes := make([]int, 0, len(byLabel))
	for l := range byLabel {
		classes = append(classes, l)
	}
	sort.Ints(classes)

	rng := rand.New(rand.NewSource(seed))
	for _, l := range classes {
		idx := byLabel[l]
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

		nTest := int(math.Round(testFrac * float64(len(idx))))
		if nTest == 0 && len(idx) > 1 {
			nTest = 1
		}
		testIdx = append(testIdx, idx[:nTest]...)
		trainIdx = append(trainIdx, idx[nTest:]...)
	}
	sort.Ints(trainIdx)
	sort.Ints(testIdx)
	return trainIdx, testIdx, nil
}

// TrainValidTest splits indices three ways: holdFrac of the rows are held
// out, then half of the holdout becomes validation and half test, all
// stratified by label.
func TrainValidTest(labels []int, holdFrac float64, seed int64) (trainIdx, validIdx, testIdx []int, err error) {
	trainIdx, holdIdx, err := Stratified(labels, holdFrac, seed)
	if err != nil {
		return nil, nil, nil, err
	}
	holdLabels := make([]int, len(holdIdx))
	for i, idx := range holdIdx {
		holdLabels[i] = labels[idx]
	}
	vRel, tRel, err := Stratified(holdLabels, 0.5, seed+1)
	if err != nil {
		return nil, nil, nil, err
	}
	for _, r := range vRel {
		validIdx = append(validIdx, holdIdx[r])
	}
	for _, r := range tRel {
		testIdx = append(testIdx, holdIdx[r])
	}
	sort.Ints(validIdx)
	sort.Ints(testIdx)
	return trainIdx, validIdx, testIdx, nil
}
