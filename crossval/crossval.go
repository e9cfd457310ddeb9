// Package crossval estimates how well a classifier generalizes
// by scoring it on data held out from training.
package crossval

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/gonum/floats"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/jvlmdr/go-crossval/dataset"
	"github.com/jvlmdr/go-crossval/kfold"
)

// Classifier is trained with Fit and evaluated with Score,
// which returns a value in [0, 1] where higher is better.
type Classifier interface {
	Fit(x [][]float64, y []int) error
	Score(x [][]float64, y []int) (float64, error)
}

// Scores holds one score per fold.
type Scores []float64

// Mean returns the average score, or zero if there are none.
func (s Scores) Mean() float64 {
	if len(s) == 0 {
		return 0
	}
	return floats.Sum(s) / float64(len(s))
}

// Std returns the population standard deviation of the scores.
func (s Scores) Std() float64 {
	if len(s) == 0 {
		return 0
	}
	mu := s.Mean()
	var ss float64
	for _, v := range s {
		ss += (v - mu) * (v - mu)
	}
	return math.Sqrt(ss / float64(len(s)))
}

// String reports the mean with a two standard deviation interval.
func (s Scores) String() string {
	return fmt.Sprintf("Accuracy: %0.2f (+/- %0.2f)", s.Mean(), 2*s.Std())
}

type options struct {
	workers int
	logger  *zap.Logger
}

type Option func(*options)

// WithWorkers sets the number of folds evaluated concurrently.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// HoldOutScore fits clf on the training samples of fold
// and scores it on the test samples.
func HoldOutScore(clf Classifier, d *dataset.Dataset, fold kfold.Fold) (float64, error) {
	if len(fold.Train) == 0 || len(fold.Test) == 0 {
		return 0, errors.Errorf("fold has %d train and %d test samples", len(fold.Train), len(fold.Test))
	}
	train := d.Subset(fold.Train)
	if err := clf.Fit(train.X, train.Y); err != nil {
		return 0, errors.Wrap(err, "fit")
	}
	test := d.Subset(fold.Test)
	score, err := clf.Score(test.X, test.Y)
	if err != nil {
		return 0, errors.Wrap(err, "score")
	}
	return score, nil
}

// CrossValScore scores a fresh classifier from newClf on every fold of s.
// The scores are in fold order regardless of how many workers are used.
// No new fold is started once ctx is done.
func CrossValScore(ctx context.Context, newClf func() Classifier, d *dataset.Dataset, s kfold.Splitter, opts ...Option) (Scores, error) {
	o := options{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers <= 0 {
		o.workers = 1
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if l, ok := s.(interface{ Len() int }); ok && l.Len() != d.Len() {
		return nil, errors.Errorf("splitter covers %d samples, dataset has %d", l.Len(), d.Len())
	}

	var (
		k      = s.NumFolds()
		scores = make(Scores, k)
		errs   = make([]error, k)
		sem    = make(chan struct{}, o.workers)
		wg     sync.WaitGroup
	)
	for i := 0; i < k; i++ {
		select {
		case <-ctx.Done():
		case sem <- struct{}{}:
		}
		if err := ctx.Err(); err != nil {
			errs[i] = err
			break
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			fold := s.Fold(i)
			score, err := HoldOutScore(newClf(), d, fold)
			if err != nil {
				errs[i] = errors.WithMessagef(err, "fold %d", i)
				return
			}
			scores[i] = score
			o.logger.Info("fold scored",
				zap.Int("fold", i),
				zap.Int("train", len(fold.Train)),
				zap.Int("test", len(fold.Test)),
				zap.Float64("score", score))
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return scores, nil
}
