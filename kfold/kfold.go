// Package kfold partitions sample indices into cross-validation folds.
//
// Every splitter in this package is a pure function of its inputs:
// folds are computed on demand, never mutate the splitter and
// are identical each time they are requested.
package kfold

import (
	"iter"

	"github.com/pkg/errors"
)

// ErrInvalidArgument is returned when a splitter is constructed
// with a sample or fold count that cannot be partitioned.
var ErrInvalidArgument = errors.New("invalid argument")

// Fold is one train/test split of the index range [0, n).
// Both slices are in ascending order and together cover [0, n) exactly once.
type Fold struct {
	Train []int
	Test  []int
}

// Splitter is a fixed sequence of folds.
type Splitter interface {
	NumFolds() int
	Fold(i int) Fold
}

// All iterates over the folds of s in order.
func All(s Splitter) iter.Seq2[int, Fold] {
	return func(yield func(int, Fold) bool) {
		for i := 0; i < s.NumFolds(); i++ {
			if !yield(i, s.Fold(i)) {
				return
			}
		}
	}
}

// Partitioner splits n samples into k contiguous blocks.
// The first n mod k blocks hold ceil(n/k) samples,
// the rest hold floor(n/k).
type Partitioner struct {
	n, k int
}

// New returns a partitioner of n samples into k folds.
// It requires n >= 2 and 2 <= k <= n.
func New(n, k int) (*Partitioner, error) {
	if err := checkCounts(n, k); err != nil {
		return nil, err
	}
	return &Partitioner{n: n, k: k}, nil
}

func checkCounts(n, k int) error {
	if n < 2 {
		return errors.Wrapf(ErrInvalidArgument, "need at least 2 samples, got %d", n)
	}
	if k < 2 {
		return errors.Wrapf(ErrInvalidArgument, "need at least 2 folds, got %d", k)
	}
	if k > n {
		return errors.Wrapf(ErrInvalidArgument, "cannot split %d samples into %d folds", n, k)
	}
	return nil
}

// Len returns the number of samples.
func (p *Partitioner) Len() int { return p.n }

// NumFolds returns the number of folds.
func (p *Partitioner) NumFolds() int { return p.k }

// TestRange returns the half-open interval [lo, hi) tested by fold i.
func (p *Partitioner) TestRange(i int) (lo, hi int) {
	return blockRange(p.n, p.k, i)
}

// Fold returns fold i. It panics if i is not in [0, NumFolds()).
func (p *Partitioner) Fold(i int) Fold {
	lo, hi := p.TestRange(i)
	test := make([]int, 0, hi-lo)
	train := make([]int, 0, p.n-(hi-lo))
	for j := 0; j < lo; j++ {
		train = append(train, j)
	}
	for j := lo; j < hi; j++ {
		test = append(test, j)
	}
	for j := hi; j < p.n; j++ {
		train = append(train, j)
	}
	return Fold{Train: train, Test: test}
}

// Folds iterates over all k folds in order.
// The sequence may be ranged over any number of times.
func (p *Partitioner) Folds() iter.Seq[Fold] {
	return func(yield func(Fold) bool) {
		for i := 0; i < p.k; i++ {
			if !yield(p.Fold(i)) {
				return
			}
		}
	}
}

// BlockRange returns the bounds of block i when n items
// are cut into k contiguous blocks of near-equal size.
func blockRange(n, k, i int) (lo, hi int) {
	if i < 0 || i >= k {
		panic(errors.Errorf("fold %d out of range [0, %d)", i, k))
	}
	size, rem := n/k, n%k
	if i < rem {
		lo = i * (size + 1)
		return lo, lo + size + 1
	}
	lo = rem*(size+1) + (i-rem)*size
	return lo, lo + size
}

// Complement returns the ascending indices of [0, n) not in test.
func complement(n int, test []int) []int {
	in := make([]bool, n)
	for _, j := range test {
		in[j] = true
	}
	train := make([]int, 0, n-len(test))
	for j := 0; j < n; j++ {
		if !in[j] {
			train = append(train, j)
		}
	}
	return train
}
