package kfold

import (
	"math"
	"math/rand"
	"slices"

	"github.com/pkg/errors"
)

// HoldOut randomly holds out a fraction of n samples for testing.
// The test set has ceil(testSize*n) samples.
// The same seed always gives the same split.
func HoldOut(n int, testSize float64, seed int64) (Fold, error) {
	if n < 2 {
		return Fold{}, errors.Wrapf(ErrInvalidArgument, "need at least 2 samples, got %d", n)
	}
	if !(testSize > 0 && testSize < 1) {
		return Fold{}, errors.Wrapf(ErrInvalidArgument, "test size %g not in (0, 1)", testSize)
	}
	m := int(math.Ceil(testSize * float64(n)))
	if m >= n {
		return Fold{}, errors.Wrapf(ErrInvalidArgument, "test size %g leaves no training samples of %d", testSize, n)
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	test := slices.Clone(perm[:m])
	train := slices.Clone(perm[m:])
	slices.Sort(test)
	slices.Sort(train)
	return Fold{Train: train, Test: test}, nil
}
