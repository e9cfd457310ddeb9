// Package dataset provides labelled feature matrices and the sources they are loaded from.
package dataset

import (
	"slices"

	"github.com/pkg/errors"
)

// ErrMalformed is returned when input data cannot form a dataset.
var ErrMalformed = errors.New("malformed dataset")

// Dataset is a set of feature vectors X with integer class labels Y.
// Rows are shared between a dataset and its subsets and must not be modified.
type Dataset struct {
	X            [][]float64
	Y            []int
	FeatureNames []string
	TargetNames  []string
}

// Source loads a dataset.
type Source interface {
	Load() (*Dataset, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func() (*Dataset, error)

func (f SourceFunc) Load() (*Dataset, error) { return f() }

// Len returns the number of samples.
func (d *Dataset) Len() int { return len(d.X) }

// Dim returns the dimension of the feature vectors, or zero if there are none.
func (d *Dataset) Dim() int {
	if len(d.X) == 0 {
		return 0
	}
	return len(d.X[0])
}

// Classes returns the distinct labels in ascending order.
func (d *Dataset) Classes() []int {
	c := slices.Clone(d.Y)
	slices.Sort(c)
	return slices.Compact(c)
}

// Subset returns the samples at the given positions, in that order.
func (d *Dataset) Subset(idx []int) *Dataset {
	sub := &Dataset{
		X:            make([][]float64, len(idx)),
		Y:            make([]int, len(idx)),
		FeatureNames: d.FeatureNames,
		TargetNames:  d.TargetNames,
	}
	for i, j := range idx {
		sub.X[i] = d.X[j]
		sub.Y[i] = d.Y[j]
	}
	return sub
}

// Validate checks that the dataset is non-empty,
// has one label per vector and that all vectors have the same dimension.
func (d *Dataset) Validate() error {
	if len(d.X) == 0 {
		return errors.Wrap(ErrMalformed, "no samples")
	}
	if len(d.X) != len(d.Y) {
		return errors.Wrapf(ErrMalformed, "%d vectors but %d labels", len(d.X), len(d.Y))
	}
	m := len(d.X[0])
	if m == 0 {
		return errors.Wrap(ErrMalformed, "no features")
	}
	for i, xi := range d.X {
		if len(xi) != m {
			return errors.Wrapf(ErrMalformed, "vector dims: found %d and %d at row %d", m, len(xi), i)
		}
	}
	if d.FeatureNames != nil && len(d.FeatureNames) != m {
		return errors.Wrapf(ErrMalformed, "%d feature names for %d features", len(d.FeatureNames), m)
	}
	return nil
}
