// Package sarsa implements the on-policy SARSA and SARSA(λ) algorithms
// with linear function approximation
package sarsa

import (
	"github.com/tspooner/rsrl-sub001/buffer"
	"github.com/tspooner/rsrl-sub001/fa"
	"github.com/tspooner/rsrl-sub001/timestep"
	"github.com/tspooner/rsrl-sub001/traces"
	"github.com/unixpickle/essentials"
	"gonum.org/v1/gonum/mat"
)

// Selector selects the index of an action in a state. The SARSA
// learners sample the next action of each transition from a Selector,
// usually the behaviour policy sharing their action-values.
type Selector interface {
	SelectIndex(state mat.Vector) (int, error)
}

// SARSA implements the SARSA learner
type SARSA struct {
	q      *fa.LFA
	policy Selector
}

// New returns a new SARSA learner which updates q, bootstrapping from
// the actions policy selects
func New(q *fa.LFA, policy Selector) *SARSA {
	if q == nil || policy == nil {
		panic("new: action-values and policy cannot be nil")
	}
	return &SARSA{q, policy}
}

// Handle updates the action-value of the transition's action towards
// r + γ Q(s', a'), where a' is sampled from the policy in s'
func (s *SARSA) Handle(t timestep.Transition) (err error) {
	defer essentials.AddCtxTo("sarsa: handle", &err)

	phi, delta, err := tdError(s.q, s.policy, t)
	if err != nil {
		return err
	}
	return s.q.UpdateFeatures(phi, t.DiscreteAction(), delta)
}

// ActionValues returns the action-value function being learned
func (s *SARSA) ActionValues() *fa.LFA {
	return s.q
}

// SARSALambda implements SARSA(λ) with an eligibility trace per action
type SARSALambda struct {
	q      *fa.LFA
	policy Selector
	trace  *traces.Trace
}

// NewLambda returns a new SARSA(λ) learner over q. The trace decays by
// γλ each step, where γ is the discount of each transition.
func NewLambda(q *fa.LFA, policy Selector, rule traces.Rule,
	lambda float64) (*SARSALambda, error) {
	if q == nil || policy == nil {
		panic("newLambda: action-values and policy cannot be nil")
	}
	if lambda < 0 || lambda > 1 {
		return nil, fa.NewConfigurationError("newLambda", "λ must be in "+
			"[0, 1], have %v", lambda)
	}

	shape := buffer.ShapeOf(q.Weights())
	return &SARSALambda{q, policy, traces.New(shape, rule, lambda)}, nil
}

// Handle updates the action-values along the eligibility trace using
// the SARSA TD error of t. The trace is reset at the end of each
// episode.
func (s *SARSALambda) Handle(t timestep.Transition) (err error) {
	defer essentials.AddCtxTo("sarsaLambda: handle", &err)

	phi, delta, err := tdError(s.q, s.policy, t)
	if err != nil {
		return err
	}

	s.trace.Scale(t.Discount * s.trace.Rate())
	g := buffer.NewColumnar(phi, s.q.Outputs(), t.DiscreteAction())
	if err := s.trace.Update(g); err != nil {
		return err
	}

	err = s.q.UpdateGradScaled(s.trace.Buffer(), s.q.LearningRate()*delta)
	if t.Last {
		s.trace.Reset()
	}
	return err
}

// Trace returns the eligibility trace of the learner
func (s *SARSALambda) Trace() *traces.Trace {
	return s.trace
}

// ActionValues returns the action-value function being learned
func (s *SARSALambda) ActionValues() *fa.LFA {
	return s.q
}

// tdError returns the features of the transition's starting state and
// its SARSA TD error
func tdError(q *fa.LFA, policy Selector,
	t timestep.Transition) (*buffer.Features, float64, error) {
	a := t.DiscreteAction()
	phi, err := q.Features(t.From.State)
	if err != nil {
		return nil, 0, err
	}
	values, err := q.EvaluateFeatures(phi)
	if err != nil {
		return nil, 0, err
	}
	if a >= len(values) {
		return nil, 0, fa.NewConfigurationError("sarsa", "action %d out "+
			"of range [0, %d)", a, len(values))
	}

	target := t.Reward
	if !t.Terminal() {
		next, err := policy.SelectIndex(t.To.State)
		if err != nil {
			return nil, 0, err
		}
		nextValue, err := q.EvaluateAction(t.To.State, next)
		if err != nil {
			return nil, 0, err
		}
		target += t.Bootstrap() * nextValue
	}
	return phi, target - values[a], nil
}
