// Package prediction implements policy evaluation algorithms which
// learn linear state-value functions from transitions
package prediction

import (
	"github.com/tspooner/rsrl-sub001/buffer"
	"github.com/tspooner/rsrl-sub001/fa"
	"github.com/tspooner/rsrl-sub001/timestep"
	"github.com/tspooner/rsrl-sub001/traces"
	"github.com/unixpickle/essentials"
	"gonum.org/v1/gonum/mat"
)

// TD implements TD(0)
type TD struct {
	v *fa.LFA
}

// NewTD returns a TD(0) learner which updates the scalar state-value
// function v
func NewTD(v *fa.LFA) (*TD, error) {
	if err := checkScalar("newTD", v); err != nil {
		return nil, err
	}
	return &TD{v}, nil
}

// Handle moves V(s) towards r + γV(s')
func (t *TD) Handle(tr timestep.Transition) (err error) {
	defer essentials.AddCtxTo("td: handle", &err)

	phi, delta, err := TDError(t.v, tr)
	if err != nil {
		return err
	}
	return t.v.UpdateGrad(phi, delta)
}

// StateValues returns the state-value function being learned
func (t *TD) StateValues() *fa.LFA {
	return t.v
}

// TDLambda implements TD(λ) with an eligibility trace over the weights
// of the state-value function
type TDLambda struct {
	v     *fa.LFA
	trace *traces.Trace
}

// NewTDLambda returns a new TD(λ) learner for v. The trace decays by
// γλ each step, where γ is the discount of each transition.
func NewTDLambda(v *fa.LFA, rule traces.Rule, lambda float64) (*TDLambda,
	error) {
	if err := checkScalar("newTDLambda", v); err != nil {
		return nil, err
	}
	if lambda < 0 || lambda > 1 {
		return nil, fa.NewConfigurationError("newTDLambda", "λ must be in "+
			"[0, 1], have %v", lambda)
	}
	shape := buffer.ShapeOf(v.Weights())
	return &TDLambda{v, traces.New(shape, rule, lambda)}, nil
}

// Handle updates the state-values along the eligibility trace by the
// TD error of tr
func (t *TDLambda) Handle(tr timestep.Transition) (err error) {
	defer essentials.AddCtxTo("tdLambda: handle", &err)

	phi, delta, err := TDError(t.v, tr)
	if err != nil {
		return err
	}

	t.trace.Scale(tr.Discount * t.trace.Rate())
	if err := t.trace.Update(phi); err != nil {
		return err
	}
	err = t.v.UpdateGradScaled(t.trace.Buffer(), t.v.LearningRate()*delta)
	if tr.Last {
		t.trace.Reset()
	}
	return err
}

// Trace returns the eligibility trace of the learner
func (t *TDLambda) Trace() *traces.Trace {
	return t.trace
}

// StateValues returns the state-value function being learned
func (t *TDLambda) StateValues() *fa.LFA {
	return t.v
}

// TDError returns the features of the transition's starting state and
// its TD error r + γV(s') - V(s), where V(s') = 0 for terminal s'
func TDError(v *fa.LFA, tr timestep.Transition) (*buffer.Features, float64,
	error) {
	phi, value, err := evaluate(v, tr.From.State)
	if err != nil {
		return nil, 0, err
	}

	target := tr.Reward
	if !tr.Terminal() {
		_, next, err := evaluate(v, tr.To.State)
		if err != nil {
			return nil, 0, err
		}
		target += tr.Bootstrap() * next
	}
	return phi, target - value, nil
}

func evaluate(v *fa.LFA, state mat.Vector) (*buffer.Features, float64,
	error) {
	phi, err := v.Features(state)
	if err != nil {
		return nil, 0, err
	}
	value, err := phi.Dot(v.Weights(), 0)
	if err != nil {
		return nil, 0, err
	}
	return phi, value, nil
}

func checkScalar(op string, v *fa.LFA) error {
	if v == nil {
		return fa.NewConfigurationError(op, "state-value function cannot "+
			"be nil")
	}
	if v.Outputs() != 1 {
		return fa.NewConfigurationError(op, "state-value function must "+
			"have one output, have %d", v.Outputs())
	}
	return nil
}
