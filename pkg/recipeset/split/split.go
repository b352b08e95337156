// Package split partitions a labeled table into train and test sets.
package split

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/cognicore/recipeset/pkg/recipeset/dataset"
	"github.com/cognicore/recipeset/pkg/recipeset/internalerr"
)

// ValidFraction reports whether f is a usable test fraction, strictly
// between 0 and 1. NaN is rejected.
func ValidFraction(f float64) bool {
	return f > 0 && f < 1
}

// Stratified partitions rows so every label keeps its share in both sets.
// Each label group is shuffled with a seeded source and round(n*testFraction)
// of its rows go to test, keeping at least one row of every label with two or
// more rows in each partition. The same seed always yields the same split.
func Stratified(rows dataset.Table, testFraction float64, seed uint64) (train, test dataset.Table, err error) {
	if !ValidFraction(testFraction) {
		return nil, nil, fmt.Errorf("%w: test fraction must be in (0,1), got %g", internalerr.ErrInvalidConfig, testFraction)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("split: %w", internalerr.ErrEmptyDataset)
	}

	groups := make(map[dataset.Label][]int)
	for i, r := range rows {
		groups[r.Label] = append(groups[r.Label], i)
	}

	// iterate labels in a fixed order so the random stream is reproducible
	labels := make([]dataset.Label, 0, len(groups))
	for l := range groups {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })

	rng := rand.New(rand.NewPCG(seed, seed))
	inTest := make([]bool, len(rows))
	for _, l := range labels {
		idx := groups[l]
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		nTest := testCount(len(idx), testFraction)
		for _, i := range idx[:nTest] {
			inTest[i] = true
		}
	}

	// keep input order inside each partition
	for i, r := range rows {
		if inTest[i] {
			test = append(test, r)
		} else {
			train = append(train, r)
		}
	}
	if len(test) == 0 {
		return nil, nil, fmt.Errorf("split %d rows at %g: test partition empty: %w", len(rows), testFraction, internalerr.ErrEmptyDataset)
	}
	return train, test, nil
}

// testCount is round(n*fraction) kept within [1, n-1] so a label with two
// or more rows appears in both partitions. A single row stays in train.
func testCount(n int, fraction float64) int {
	if n < 2 {
		return 0
	}
	k := int(math.Round(float64(n) * fraction))
	return min(max(k, 1), n-1)
}
