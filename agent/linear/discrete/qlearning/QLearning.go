// Package qlearning implements the Q-Learning algorithm and Watkins'
// Q(λ) with linear function approximation.
//
// Both learners bootstrap from the greedy action in the next state,
// independently of the action the behaviour policy takes there.
package qlearning

import (
	"github.com/tspooner/rsrl-sub001/buffer"
	"github.com/tspooner/rsrl-sub001/fa"
	"github.com/tspooner/rsrl-sub001/timestep"
	"github.com/tspooner/rsrl-sub001/utils/floatutils"
	"github.com/unixpickle/essentials"
	"gonum.org/v1/gonum/mat"
)

// QLearning implements the Q-Learning learner. It updates an
// action-value function with one output per action, usually shared
// with an ε-greedy behaviour policy.
type QLearning struct {
	q *fa.LFA
}

// New returns a new QLearning learner which updates q
func New(q *fa.LFA) *QLearning {
	if q == nil {
		panic("new: action-value function cannot be nil")
	}
	return &QLearning{q}
}

// Handle updates the action-value of the transition's action towards
// r + γ max_a' Q(s', a'). The target of a transition into a terminal
// state is r.
func (q *QLearning) Handle(t timestep.Transition) (err error) {
	defer essentials.AddCtxTo("qlearning: handle", &err)

	a := t.DiscreteAction()
	if err := q.q.CheckAction("handle", a); err != nil {
		return err
	}
	phi, values, err := evaluate(q.q, t.From.State)
	if err != nil {
		return err
	}

	target, err := Target(q.q, t)
	if err != nil {
		return err
	}
	return q.q.UpdateFeatures(phi, a, target-values[a])
}

// ActionValues returns the action-value function being learned
func (q *QLearning) ActionValues() *fa.LFA {
	return q.q
}

// Target returns the Q-Learning target of transition t under the
// action-values q: the reward plus the discounted greedy value of the
// next state
func Target(q *fa.LFA, t timestep.Transition) (float64, error) {
	if t.Terminal() {
		return t.Reward, nil
	}

	_, next, err := evaluate(q, t.To.State)
	if err != nil {
		return 0, err
	}
	max, _, err := greedy("target", next)
	if err != nil {
		return 0, err
	}
	return t.Reward + t.Bootstrap()*max, nil
}

// evaluate returns the features of state and the action values there
func evaluate(q *fa.LFA, state mat.Vector) (*buffer.Features, []float64,
	error) {
	phi, err := q.Features(state)
	if err != nil {
		return nil, nil, err
	}
	values, err := q.EvaluateFeatures(phi)
	if err != nil {
		return nil, nil, err
	}
	return phi, values, nil
}

// greedy returns the maximal action value and every action attaining
// it
func greedy(op string, values []float64) (float64, []int, error) {
	max, actions := floatutils.Argmax(values)
	if !floatutils.Finite(max) {
		return 0, nil, &fa.NumericalError{Op: op, Value: max}
	}
	return max, actions, nil
}
