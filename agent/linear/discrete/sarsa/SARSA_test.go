package sarsa

import (
	"math"
	"testing"

	"github.com/tspooner/rsrl-sub001/agent/linear/discrete/policy"
	"github.com/tspooner/rsrl-sub001/basis"
	"github.com/tspooner/rsrl-sub001/fa"
	"github.com/tspooner/rsrl-sub001/optim"
	"github.com/tspooner/rsrl-sub001/timestep"
	"github.com/tspooner/rsrl-sub001/traces"
	"gonum.org/v1/gonum/mat"
)

var (
	left  = mat.NewVecDense(2, []float64{1, 0})
	right = mat.NewVecDense(2, []float64{0, 1})
)

// fixed always selects the same action
type fixed int

func (f fixed) SelectIndex(mat.Vector) (int, error) { return int(f), nil }

func newQ(t *testing.T, w *mat.Dense, alpha float64) *fa.LFA {
	t.Helper()
	b, err := basis.NewRaw(2)
	if err != nil {
		t.Fatal(err)
	}
	_, actions := w.Dims()
	q, err := fa.NewLFA(b, actions, optim.NewFixedSGD(alpha), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := q.SetWeights(w); err != nil {
		t.Fatal(err)
	}
	return q
}

func transition(from, to mat.Vector, a int, r, discount float64,
	terminal bool) timestep.Transition {
	kind := timestep.Full
	if terminal {
		kind = timestep.Terminal
	}
	return timestep.Transition{
		From:     timestep.Observation{Kind: timestep.Full, State: from},
		To:       timestep.Observation{Kind: kind, State: to},
		Action:   mat.NewVecDense(1, []float64{float64(a)}),
		Reward:   r,
		Discount: discount,
		Last:     terminal,
	}
}

func TestSARSABootstrapsFromPolicy(t *testing.T) {
	tests := []struct {
		name string
		next int
		want float64
	}{
		{"greedy", 1, 1 + 0.5*0.9},
		{"exploratory", 0, 1 + 0.5*0.1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := mat.NewDense(2, 2, []float64{0.2, 0, 0.1, 0.9})
			q := newQ(t, w, 1)

			tr := transition(left, right, 0, 1, 0.5, false)
			if err := New(q, fixed(test.next)).Handle(tr); err != nil {
				t.Fatal(err)
			}

			// With α = 1 the updated value equals the target
			if have := q.Weights().At(0, 0); math.Abs(have-test.want) > 1e-12 {
				t.Errorf("Q(s, a) = %v, want %v", have, test.want)
			}
		})
	}
}

func TestSARSATerminal(t *testing.T) {
	q := newQ(t, mat.NewDense(2, 2, []float64{0, 0, 5, 5}), 0.1)
	tr := transition(left, right, 1, -1, 1, true)
	if err := New(q, fixed(0)).Handle(tr); err != nil {
		t.Fatal(err)
	}
	if have := q.Weights().At(0, 1); math.Abs(have+0.1) > 1e-12 {
		t.Errorf("Q(s, a) = %v, want -0.1", have)
	}
}

func TestSARSALambdaTrace(t *testing.T) {
	q := newQ(t, mat.NewDense(2, 2, nil), 0.5)
	l, err := NewLambda(q, fixed(0), traces.Replacing{}, 1)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if err := l.Handle(transition(left, left, 0, 0, 1, false)); err != nil {
			t.Fatal(err)
		}
	}
	if have := l.Trace().At(0, 0); have != 1 {
		t.Errorf("replacing trace %v, want 1", have)
	}

	if err := l.Handle(transition(right, left, 1, 1, 1, true)); err != nil {
		t.Fatal(err)
	}
	if l.Trace().Norm() != 0 {
		t.Error("trace not reset at episode end")
	}

	// The terminal update reaches both actions through the trace
	if q.Weights().At(0, 0) != 0.5 || q.Weights().At(1, 1) != 0.5 {
		t.Errorf("weights after terminal update:\n%v",
			mat.Formatted(q.Weights()))
	}
}

func TestSARSAWithGreedyPolicy(t *testing.T) {
	q := newQ(t, mat.NewDense(2, 2, []float64{0, 0, 0.3, 0.7}), 1)
	learner := New(q, policy.NewGreedy(q, 1))

	if err := learner.Handle(transition(left, right, 1, 0, 1, false)); err != nil {
		t.Fatal(err)
	}
	if have := q.Weights().At(0, 1); math.Abs(have-0.7) > 1e-12 {
		t.Errorf("Q(s, a) = %v, want 0.7", have)
	}
}
