package svm

import (
	"math"
	"math/rand"
	"slices"

	"github.com/gonum/floats"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrNotFitted is returned when a classifier is used before Fit.
var ErrNotFitted = errors.New("classifier not fitted")

// Default training parameters of Linear.
const (
	DefaultTol       = 1e-3
	DefaultMaxEpochs = 1000
)

// Linear is a multi-class linear SVM.
// Two classes are separated by a single hyperplane,
// more classes are handled one-vs-rest.
// The zero value is ready to use with cost 1.
type Linear struct {
	// C is the misclassification cost. Zero means 1.
	C float64
	// Bias is the constant feature appended to every vector
	// to learn an offset. Zero means 1.
	Bias float64
	// Tol is the relative duality gap at which training stops.
	Tol float64
	// MaxEpochs bounds the passes over the data per hyperplane.
	MaxEpochs int
	// Seed seeds the order in which dual variables are visited.
	Seed   int64
	Logger *zap.Logger

	dim     int
	classes []int
	weights [][]float64
}

// NewLinear returns a linear SVM with misclassification cost c.
func NewLinear(c float64) *Linear {
	return &Linear{C: c}
}

func (clf *Linear) cost() float64 {
	if clf.C == 0 {
		return 1
	}
	return clf.C
}

func (clf *Linear) bias() float64 {
	if clf.Bias == 0 {
		return 1
	}
	return clf.Bias
}

// Classes returns the labels seen by Fit in ascending order.
func (clf *Linear) Classes() []int {
	return slices.Clone(clf.classes)
}

// Fit trains the classifier on vectors x with labels y.
// At least two distinct labels are required.
func (clf *Linear) Fit(x [][]float64, y []int) error {
	m, err := dimension(x)
	if err != nil {
		return err
	}
	if len(y) != len(x) {
		return errors.Errorf("%d vectors but %d labels", len(x), len(y))
	}
	classes := slices.Clone(y)
	slices.Sort(classes)
	classes = slices.Compact(classes)
	if len(classes) < 2 {
		return errors.Errorf("need at least 2 classes, got %d", len(classes))
	}

	logger := clf.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tol := clf.Tol
	if tol <= 0 {
		tol = DefaultTol
	}
	maxEpochs := clf.MaxEpochs
	if maxEpochs <= 0 {
		maxEpochs = DefaultMaxEpochs
	}

	aug := make(Slice, len(x))
	for i, xi := range x {
		aug[i] = append(slices.Clone(xi), clf.bias())
	}
	cost := make([]float64, len(x))
	for i := range cost {
		cost[i] = clf.cost()
	}

	// A binary problem needs only the hyperplane of the second class.
	pos := classes
	if len(classes) == 2 {
		pos = classes[1:]
	}
	rng := rand.New(rand.NewSource(clf.Seed))
	weights := make([][]float64, 0, len(pos))
	for _, c := range pos {
		sign := make([]float64, len(y))
		for i, yi := range y {
			sign[i] = -1
			if yi == c {
				sign[i] = 1
			}
		}
		tr := &Trainer{Rand: rng, Logger: logger.With(zap.Int("class", c))}
		w, err := tr.Train(aug, sign, cost, GapTerminate(tol, maxEpochs))
		if err != nil {
			return errors.Wrapf(err, "train class %d", c)
		}
		weights = append(weights, w)
	}

	clf.dim = m
	clf.classes = classes
	clf.weights = weights
	return nil
}

func (clf *Linear) decision(w, x []float64) float64 {
	return floats.Dot(w[:clf.dim], x) + w[clf.dim]*clf.bias()
}

// Predict returns the label of each vector in x.
func (clf *Linear) Predict(x [][]float64) ([]int, error) {
	if clf.weights == nil {
		return nil, ErrNotFitted
	}
	pred := make([]int, len(x))
	for i, xi := range x {
		if len(xi) != clf.dim {
			return nil, errors.Errorf("vector %d has dim %d, want %d", i, len(xi), clf.dim)
		}
		if len(clf.weights) == 1 {
			pred[i] = clf.classes[0]
			if clf.decision(clf.weights[0], xi) >= 0 {
				pred[i] = clf.classes[1]
			}
			continue
		}
		best := math.Inf(-1)
		for c, w := range clf.weights {
			if s := clf.decision(w, xi); s > best {
				best = s
				pred[i] = clf.classes[c]
			}
		}
	}
	return pred, nil
}

// Score returns the fraction of vectors in x whose predicted label equals y.
func (clf *Linear) Score(x [][]float64, y []int) (float64, error) {
	if len(x) != len(y) {
		return 0, errors.Errorf("%d vectors but %d labels", len(x), len(y))
	}
	if len(x) == 0 {
		return 0, errors.New("nothing to score")
	}
	pred, err := clf.Predict(x)
	if err != nil {
		return 0, err
	}
	var correct int
	for i := range pred {
		if pred[i] == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(y)), nil
}
