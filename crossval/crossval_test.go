package crossval_test

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvlmdr/go-crossval/crossval"
	"github.com/jvlmdr/go-crossval/dataset"
	"github.com/jvlmdr/go-crossval/kfold"
	"github.com/jvlmdr/go-crossval/svm"
)

// nearest is a one-nearest-neighbour classifier on the first feature.
type nearest struct {
	x   []float64
	y   []int
	err error
}

func (c *nearest) Fit(x [][]float64, y []int) error {
	if c.err != nil {
		return c.err
	}
	for i := range x {
		c.x = append(c.x, x[i][0])
		c.y = append(c.y, y[i])
	}
	return nil
}

func (c *nearest) Score(x [][]float64, y []int) (float64, error) {
	var correct int
	for i := range x {
		best, label := -1.0, 0
		for j, v := range c.x {
			d := v - x[i][0]
			if d < 0 {
				d = -d
			}
			if best < 0 || d < best {
				best, label = d, c.y[j]
			}
		}
		if label == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(x)), nil
}

func line() *dataset.Dataset {
	d := new(dataset.Dataset)
	for i := 0; i < 12; i++ {
		d.X = append(d.X, []float64{float64(i)})
		d.Y = append(d.Y, i%2)
	}
	return d
}

func TestScores(t *testing.T) {
	s := crossval.Scores{1, 1, 0.5, 0.5}
	assert.Equal(t, 0.75, s.Mean())
	assert.Equal(t, 0.25, s.Std())
	assert.Equal(t, "Accuracy: 0.75 (+/- 0.50)", s.String())
	assert.Equal(t, 0.0, crossval.Scores{}.Mean())
	assert.Equal(t, 0.0, crossval.Scores{}.Std())
}

func TestHoldOutScore(t *testing.T) {
	d := &dataset.Dataset{
		X: [][]float64{{0}, {1}, {10}, {11}},
		Y: []int{0, 0, 1, 1},
	}
	score, err := crossval.HoldOutScore(new(nearest), d, kfold.Fold{Train: []int{0, 2}, Test: []int{1, 3}})
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)

	_, err = crossval.HoldOutScore(new(nearest), d, kfold.Fold{Train: []int{0, 1, 2, 3}})
	assert.Error(t, err)
}

func TestCrossValScore_workers(t *testing.T) {
	d := line()
	p, err := kfold.New(d.Len(), 4)
	require.NoError(t, err)
	newClf := func() crossval.Classifier { return new(nearest) }

	seq, err := crossval.CrossValScore(context.Background(), newClf, d, p)
	require.NoError(t, err)
	require.Len(t, seq, 4)
	// Only the middle sample of each block has a same-label nearest neighbour.
	third := 1.0 / 3
	assert.Equal(t, crossval.Scores{third, third, third, third}, seq)

	par, err := crossval.CrossValScore(context.Background(), newClf, d, p, crossval.WithWorkers(3))
	require.NoError(t, err)
	assert.Equal(t, seq, par)
}

func TestCrossValScore_freshClassifier(t *testing.T) {
	d := line()
	p, err := kfold.New(d.Len(), 3)
	require.NoError(t, err)
	var (
		mu    sync.Mutex
		built []*nearest
	)
	newClf := func() crossval.Classifier {
		mu.Lock()
		defer mu.Unlock()
		c := new(nearest)
		built = append(built, c)
		return c
	}
	_, err = crossval.CrossValScore(context.Background(), newClf, d, p, crossval.WithWorkers(2))
	require.NoError(t, err)
	require.Len(t, built, 3)
	for _, c := range built {
		assert.Len(t, c.x, 8)
	}
}

func TestCrossValScore_fitError(t *testing.T) {
	d := line()
	p, err := kfold.New(d.Len(), 2)
	require.NoError(t, err)
	boom := errors.New("boom")
	newClf := func() crossval.Classifier { return &nearest{err: boom} }
	_, err = crossval.CrossValScore(context.Background(), newClf, d, p)
	require.Error(t, err)
	assert.Equal(t, boom, errors.Cause(err))
	assert.Contains(t, err.Error(), "fold 0")
}

func TestCrossValScore_lengthMismatch(t *testing.T) {
	d := line()
	p, err := kfold.New(d.Len()+1, 2)
	require.NoError(t, err)
	_, err = crossval.CrossValScore(context.Background(), func() crossval.Classifier { return new(nearest) }, d, p)
	assert.Error(t, err)
}

func TestCrossValScore_cancelled(t *testing.T) {
	d := line()
	p, err := kfold.New(d.Len(), 3)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = crossval.CrossValScore(ctx, func() crossval.Classifier { return new(nearest) }, d, p)
	assert.True(t, errors.Is(err, context.Canceled), "%v", err)
}

func TestCrossValScore_iris(t *testing.T) {
	d, err := dataset.Iris().Load()
	require.NoError(t, err)

	fold, err := kfold.HoldOut(d.Len(), 0.4, 0)
	require.NoError(t, err)
	score, err := crossval.HoldOutScore(svm.NewLinear(1), d, fold)
	require.NoError(t, err)
	assert.Greater(t, score, 0.8)

	s, err := kfold.NewStratified(d.Y, 5)
	require.NoError(t, err)
	newClf := func() crossval.Classifier { return svm.NewLinear(1) }
	scores, err := crossval.CrossValScore(context.Background(), newClf, d, s, crossval.WithWorkers(5))
	require.NoError(t, err)
	require.Len(t, scores, 5)
	assert.Greater(t, scores.Mean(), 0.85)
	for _, v := range scores {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}
