// Package esarsa implements the Expected Sarsa algorithm with linear
// function approximation
package esarsa

import (
	"fmt"

	"github.com/tspooner/rsrl-sub001/agent"
	"github.com/tspooner/rsrl-sub001/fa"
	"github.com/tspooner/rsrl-sub001/timestep"
	"github.com/unixpickle/essentials"
	"gonum.org/v1/gonum/floats"
)

// ESarsa implements the Expected Sarsa learner. The target of each
// transition is the reward plus the discounted expectation of the next
// action-value under a target policy, which may differ from the
// behaviour policy. With a greedy target policy ESarsa is Q-Learning.
type ESarsa struct {
	q      *fa.LFA
	target agent.DiscretePolicy
}

// New returns a new Expected Sarsa learner which updates q towards
// expectations under target
func New(q *fa.LFA, target agent.DiscretePolicy) *ESarsa {
	if q == nil || target == nil {
		panic("new: action-values and target policy cannot be nil")
	}
	return &ESarsa{q, target}
}

// Handle updates the action-value of the transition's action towards
// r + γ Σ_a' π(a'|s') Q(s', a')
func (e *ESarsa) Handle(t timestep.Transition) (err error) {
	defer essentials.AddCtxTo("esarsa: handle", &err)

	a := t.DiscreteAction()
	phi, err := e.q.Features(t.From.State)
	if err != nil {
		return err
	}
	values, err := e.q.EvaluateFeatures(phi)
	if err != nil {
		return err
	}
	if a >= len(values) {
		return fmt.Errorf("action %d out of range [0, %d)", a, len(values))
	}

	target, err := e.Target(t)
	if err != nil {
		return err
	}
	return e.q.UpdateFeatures(phi, a, target-values[a])
}

// Target returns the Expected Sarsa target of transition t
func (e *ESarsa) Target(t timestep.Transition) (float64, error) {
	if t.Terminal() {
		return t.Reward, nil
	}

	next, err := e.q.Evaluate(t.To.State)
	if err != nil {
		return 0, err
	}
	probs, err := e.target.Probabilities(t.To.State)
	if err != nil {
		return 0, err
	}
	if len(probs) != len(next) {
		return 0, fmt.Errorf("target: have %d probabilities for %d actions",
			len(probs), len(next))
	}
	return t.Reward + t.Bootstrap()*floats.Dot(probs, next), nil
}

// ActionValues returns the action-value function being learned
func (e *ESarsa) ActionValues() *fa.LFA {
	return e.q
}
