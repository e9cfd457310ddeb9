package kfold

import (
	"slices"

	"github.com/pkg/errors"
)

// Stratified splits samples into k folds that preserve the class balance.
// The indices of each class are cut into k contiguous blocks,
// and fold i tests block i of every class.
type Stratified struct {
	n       int
	k       int
	classes [][]int
}

// NewStratified returns a stratified splitter over the given labels.
// Every class needs at least k members.
func NewStratified(labels []int, k int) (*Stratified, error) {
	if err := checkCounts(len(labels), k); err != nil {
		return nil, err
	}
	members := make(map[int][]int)
	for i, y := range labels {
		members[y] = append(members[y], i)
	}
	keys := make([]int, 0, len(members))
	for y := range members {
		keys = append(keys, y)
	}
	slices.Sort(keys)

	classes := make([][]int, 0, len(keys))
	for _, y := range keys {
		if len(members[y]) < k {
			return nil, errors.Wrapf(ErrInvalidArgument,
				"class %d has %d members, fewer than %d folds", y, len(members[y]), k)
		}
		classes = append(classes, members[y])
	}
	return &Stratified{n: len(labels), k: k, classes: classes}, nil
}

// Len returns the number of samples.
func (s *Stratified) Len() int { return s.n }

// NumFolds returns the number of folds.
func (s *Stratified) NumFolds() int { return s.k }

// Fold returns fold i. It panics if i is not in [0, NumFolds()).
func (s *Stratified) Fold(i int) Fold {
	var test []int
	for _, idx := range s.classes {
		lo, hi := blockRange(len(idx), s.k, i)
		test = append(test, idx[lo:hi]...)
	}
	slices.Sort(test)
	return Fold{Train: complement(s.n, test), Test: test}
}
