package qlearning

import (
	"github.com/tspooner/rsrl-sub001/fa"
	"github.com/tspooner/rsrl-sub001/timestep"
	"github.com/unixpickle/essentials"
)

// PAL implements persistent advantage learning (Bellemare et al.,
// 2016). It increases the gap between the value of the greedy action
// and the others by replacing the Q-Learning TD error δ with
//
//	max(δ - α(V(s) - Q(s, a)), δ - α(V(s') - Q(s', a)))
//
// where V(x) = max_b Q(x, b) and α in [0, 1] is the advantage
// coefficient. Transitions into a terminal state use r - Q(s, a).
type PAL struct {
	q     *fa.LFA
	alpha float64
}

// NewPAL returns a new PAL learner over q with advantage coefficient
// alpha
func NewPAL(q *fa.LFA, alpha float64) (*PAL, error) {
	if q == nil {
		panic("newPAL: action-value function cannot be nil")
	}
	if alpha < 0 || alpha > 1 {
		return nil, fa.NewConfigurationError("newPAL", "advantage "+
			"coefficient must be in [0, 1], have %v", alpha)
	}
	return &PAL{q, alpha}, nil
}

// Handle moves Q(s, a) along the persistent advantage learning error
func (p *PAL) Handle(t timestep.Transition) (err error) {
	defer essentials.AddCtxTo("pal: handle", &err)

	a := t.DiscreteAction()
	if err := p.q.CheckAction("handle", a); err != nil {
		return err
	}
	phi, values, err := evaluate(p.q, t.From.State)
	if err != nil {
		return err
	}

	residual, err := p.Residual(t, values)
	if err != nil {
		return err
	}
	return p.q.UpdateFeatures(phi, a, residual)
}

// Residual returns the PAL error of t given the action-values of its
// starting state
func (p *PAL) Residual(t timestep.Transition, values []float64) (float64,
	error) {
	a := t.DiscreteAction()
	if t.Terminal() {
		return t.Reward - values[a], nil
	}

	_, next, err := evaluate(p.q, t.To.State)
	if err != nil {
		return 0, err
	}
	v, _, err := greedy("residual", values)
	if err != nil {
		return 0, err
	}
	nextV, _, err := greedy("residual", next)
	if err != nil {
		return 0, err
	}

	td := t.Reward + t.Bootstrap()*nextV - values[a]
	al := td - p.alpha*(v-values[a])
	persistent := td - p.alpha*(nextV-next[a])
	if persistent > al {
		return persistent, nil
	}
	return al, nil
}

// ActionValues returns the action-value function being learned
func (p *PAL) ActionValues() *fa.LFA {
	return p.q
}
