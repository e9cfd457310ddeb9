package svm

import (
	"math"
	"math/rand"

	"github.com/gonum/floats"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const eps = 1e-9

// TerminateFunc is called after every epoch with the primal objective f,
// the dual objective g, the weights w and the non-zero dual variables a,
// along with their values from the previous epoch.
// Training stops when it returns true or an error.
type TerminateFunc func(epoch int, f, fPrev, g, gPrev float64, w, wPrev []float64, a, aPrev map[int]float64) (bool, error)

// GapTerminate stops training once the duality gap is within
// tol of the primal objective, or after maxEpochs epochs.
func GapTerminate(tol float64, maxEpochs int) TerminateFunc {
	return func(epoch int, f, fPrev, g, gPrev float64, w, wPrev []float64, a, aPrev map[int]float64) (bool, error) {
		if f-g <= tol*math.Max(1, math.Abs(f)) {
			return true, nil
		}
		// Dual co-ordinate descent has linear convergence.
		// Don't bother checking if f and g are stalling.
		return epoch >= maxEpochs, nil
	}
}

// Trainer holds the random source and logger used by Train.
// The zero value uses a fixed seed and discards log output.
type Trainer struct {
	Rand   *rand.Rand
	Logger *zap.Logger
}

// Train computes the weight vector of a linear SVM
// with a zero-value Trainer.
func Train(x Set, y []float64, cost []float64, termfunc TerminateFunc) ([]float64, error) {
	var t Trainer
	return t.Train(x, y, cost, termfunc)
}

// Train computes the weight vector of a linear SVM.
// Each example x.At(i) has a label y[i] and a cost cost[i].
// The vectors must all have the same dimension.
// The labels y[i] must be in {-1, 1}.
func (tr *Trainer) Train(x Set, y []float64, cost []float64, termfunc TerminateFunc) ([]float64, error) {
	if err := checkProblem(x, y, cost); err != nil {
		return nil, err
	}
	rng := tr.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	logger := tr.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Get the dimension of the vectors.
	m := x.Dim()
	// Initialize dual variables and weights to zero.
	var (
		a  = make(map[int]float64)
		w  = make([]float64, m)
		lb = math.Inf(-1)
		ub = math.Inf(1)
	)

	for epoch := 0; ; epoch++ {
		logger.Debug("epoch", zap.Int("epoch", epoch), zap.Int("support", len(a)), zap.Int("examples", x.Len()))

		wPrev := make([]float64, len(w))
		copy(wPrev, w)
		aPrev := make(map[int]float64)
		for i, val := range a {
			aPrev[i] = val
		}
		ubPrev := ub
		lbPrev := lb

		for iter := 0; iter < x.Len(); iter++ {
			i := rng.Intn(x.Len())
			// Consider the dual objective
			//   f(a + t e[i]) = 1/2 h t^2 - g t + const.
			// where
			//   h = dot(x[i], x[i])
			//   -g = sum_{j} a[j] y[i] y[j] dot(x[i], x[j]) - 1
			//   g = 1 - y[i] dot(x[i], w)
			g := 1 - y[i]*floats.Dot(x.At(i), w)
			if math.Abs(g) <= eps {
				// Consider this optimal.
				continue
			}
			h := floats.Dot(x.At(i), x.At(i))
			if h == 0 {
				// Zero vector cannot move w.
				continue
			}
			t := g / h
			if t < 0 {
				// Decrease a[i]. Ensure that a[i] >= 0.
				if tmp := a[i] + t; tmp > 0 {
					a[i] = tmp
				} else {
					if a[i] == 0 {
						continue
					}
					// Choose t such that a[i] + t = 0.
					t = -a[i]
					delete(a, i)
				}
			} else {
				if tmp := a[i] + t; tmp < cost[i] {
					a[i] = tmp
				} else {
					if a[i] == cost[i] {
						continue
					}
					// Choose t such that a[i] + t = cost[i].
					t = cost[i] - a[i]
					a[i] = cost[i]
				}
			}
			floats.AddScaled(w, t*y[i], x.At(i))
		}

		lb = dual(w, a)
		ub = primal(w, x, y, cost)
		logger.Debug("bounds", zap.Int("epoch", epoch), zap.Float64("primal", ub), zap.Float64("dual", lb))

		term, err := termfunc(epoch+1, ub, ubPrev, lb, lbPrev, w, wPrev, a, aPrev)
		if err != nil {
			return nil, err
		}
		if term {
			return w, nil
		}
	}
}

func checkProblem(x Set, y []float64, cost []float64) error {
	n := x.Len()
	if n == 0 {
		return errors.New("no examples")
	}
	if len(y) != n {
		return errors.Errorf("%d examples but %d labels", n, len(y))
	}
	if len(cost) != n {
		return errors.Errorf("%d examples but %d costs", n, len(cost))
	}
	m := x.Dim()
	for i := 0; i < n; i++ {
		if len(x.At(i)) != m {
			return errors.Errorf("vector dims: found %d and %d", m, len(x.At(i)))
		}
		if y[i] != 1 && y[i] != -1 {
			return errors.Errorf("label %d is %g, want -1 or 1", i, y[i])
		}
		if cost[i] < 0 {
			return errors.Errorf("cost %d is negative: %g", i, cost[i])
		}
	}
	return nil
}

func dual(w []float64, a map[int]float64) float64 {
	// Evaluate dual objective.
	f := -0.5 * floats.Dot(w, w)
	for _, ai := range a {
		f += ai
	}
	return f
}

func primal(w []float64, x Set, y []float64, c []float64) float64 {
	f := 0.5 * floats.Dot(w, w)
	for i := 0; i < x.Len(); i++ {
		f += c[i] * math.Max(0, 1-y[i]*floats.Dot(x.At(i), w))
	}
	return f
}
