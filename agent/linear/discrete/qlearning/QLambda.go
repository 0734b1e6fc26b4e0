package qlearning

import (
	"github.com/tspooner/rsrl-sub001/buffer"
	"github.com/tspooner/rsrl-sub001/fa"
	"github.com/tspooner/rsrl-sub001/timestep"
	"github.com/tspooner/rsrl-sub001/traces"
	"github.com/unixpickle/essentials"
)

// QLambda implements Watkins' Q(λ). The eligibility trace has the shape
// of the weights, so each action keeps its own trace column. The trace
// is cut whenever the behaviour policy takes a non-greedy action, and
// at the end of every episode.
type QLambda struct {
	q     *fa.LFA
	trace *traces.Trace
}

// NewLambda returns a new Q(λ) learner over q. The trace decays by
// γλ each step, where γ is the discount of each transition.
func NewLambda(q *fa.LFA, rule traces.Rule, lambda float64) (*QLambda,
	error) {
	if q == nil {
		panic("newLambda: action-value function cannot be nil")
	}
	if lambda < 0 || lambda > 1 {
		return nil, fa.NewConfigurationError("newLambda", "λ must be in "+
			"[0, 1], have %v", lambda)
	}

	shape := buffer.ShapeOf(q.Weights())
	return &QLambda{q, traces.New(shape, rule, lambda)}, nil
}

// Handle updates the action-values along the eligibility trace using
// the Q-Learning TD error of t
func (q *QLambda) Handle(t timestep.Transition) (err error) {
	defer essentials.AddCtxTo("qlambda: handle", &err)

	a := t.DiscreteAction()
	if err := q.q.CheckAction("handle", a); err != nil {
		return err
	}
	phi, values, err := evaluate(q.q, t.From.State)
	if err != nil {
		return err
	}
	_, greedyActions, err := greedy("handle", values)
	if err != nil {
		return err
	}

	target, err := Target(q.q, t)
	if err != nil {
		return err
	}
	delta := target - values[a]

	if contains(greedyActions, a) {
		q.trace.Scale(t.Discount * q.trace.Rate())
	} else {
		q.trace.Reset()
	}
	if err := q.trace.Update(buffer.NewColumnar(phi, q.q.Outputs(), a)); err != nil {
		return err
	}

	err = q.q.UpdateGradScaled(q.trace.Buffer(), q.q.LearningRate()*delta)
	if t.Last {
		q.trace.Reset()
	}
	return err
}

// Trace returns the eligibility trace of the learner
func (q *QLambda) Trace() *traces.Trace {
	return q.trace
}

// ActionValues returns the action-value function being learned
func (q *QLambda) ActionValues() *fa.LFA {
	return q.q
}

func contains(xs []int, x int) bool {
	for _, y := range xs {
		if x == y {
			return true
		}
	}
	return false
}
