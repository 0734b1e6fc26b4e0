package policy

import (
	"errors"
	"math"
	"testing"

	"github.com/tspooner/rsrl-sub001/basis"
	"github.com/tspooner/rsrl-sub001/fa"
	"github.com/tspooner/rsrl-sub001/optim"
	"github.com/tspooner/rsrl-sub001/param"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// newQ returns an action-value function over raw 2-dimensional states
// whose values in state [1, 0] are given by row
func newQ(t *testing.T, row ...float64) *fa.LFA {
	t.Helper()
	b, err := basis.NewRaw(2)
	if err != nil {
		t.Fatal(err)
	}
	q, err := fa.NewLFA(b, len(row), optim.NewFixedSGD(0.1), nil)
	if err != nil {
		t.Fatal(err)
	}
	w := mat.NewDense(2, len(row), nil)
	w.SetRow(0, row)
	if err := q.SetWeights(w); err != nil {
		t.Fatal(err)
	}
	return q
}

var state = mat.NewVecDense(2, []float64{1, 0})

func TestEGreedyProbabilities(t *testing.T) {
	tests := []struct {
		name    string
		row     []float64
		epsilon float64
		want    []float64
	}{
		{"greedy", []float64{0.1, 0.9, 0.3}, 0, []float64{0, 1, 0}},
		{"explore", []float64{0.1, 0.9, 0.3}, 0.3, []float64{0.1, 0.8, 0.1}},
		{"ties", []float64{1, 1, 0}, 0, []float64{0.5, 0.5, 0}},
		{"uniform", []float64{1, 2, 3, 4}, 1, []float64{0.25, 0.25, 0.25, 0.25}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := NewEGreedy(newQ(t, test.row...), param.NewFixed(test.epsilon), 1)
			probs, err := p.Probabilities(state)
			if err != nil {
				t.Fatal(err)
			}
			if !floats.EqualApprox(probs, test.want, 1e-12) {
				t.Errorf("have %v, want %v", probs, test.want)
			}
			if sum := floats.Sum(probs); math.Abs(sum-1) > 1e-12 {
				t.Errorf("probabilities sum to %v", sum)
			}
		})
	}
}

func TestGreedySelectsMaximalAction(t *testing.T) {
	p := NewGreedy(newQ(t, 0.1, 0.9, 0.3), 7)
	for i := 0; i < 100; i++ {
		a, err := p.SelectAction(state)
		if err != nil {
			t.Fatal(err)
		}
		if a.AtVec(0) != 1 {
			t.Fatalf("selected action %v, want 1", a.AtVec(0))
		}
	}

	a, v, err := p.Greedy(state)
	if err != nil {
		t.Fatal(err)
	}
	if a != 1 || v != 0.9 {
		t.Errorf("greedy action (%d, %v), want (1, 0.9)", a, v)
	}
}

func TestEGreedySeesSharedUpdates(t *testing.T) {
	q := newQ(t, 1, 0)
	p := NewGreedy(q, 3)

	// Raise the value of action 1 through the approximator, as a
	// learner would
	if err := q.UpdateAction(state, 1, 20); err != nil {
		t.Fatal(err)
	}

	a, err := p.SelectIndex(state)
	if err != nil {
		t.Fatal(err)
	}
	if a != 1 {
		t.Errorf("selected action %d after update, want 1", a)
	}
}

func TestEGreedyEpsilonSchedule(t *testing.T) {
	eps, err := param.NewExponential(1, 0.1, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	p := NewEGreedy(newQ(t, 0, 1), eps, 1)

	p.Step()
	if p.Epsilon() != 0.5 {
		t.Errorf("epsilon after one step %v, want 0.5", p.Epsilon())
	}
}

func TestEGreedyNonFinite(t *testing.T) {
	p := NewGreedy(newQ(t, math.NaN(), math.NaN()), 1)

	_, err := p.Probabilities(state)
	var numErr *fa.NumericalError
	if !errors.As(err, &numErr) {
		t.Errorf("have error %v, want *fa.NumericalError", err)
	}
}

func TestEGreedyWrongStateDimension(t *testing.T) {
	p := NewGreedy(newQ(t, 0, 1), 1)
	if _, err := p.SelectAction(mat.NewVecDense(3, nil)); err == nil {
		t.Error("expected error for 3-dimensional state")
	}
}
