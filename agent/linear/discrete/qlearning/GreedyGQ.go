package qlearning

import (
	"github.com/tspooner/rsrl-sub001/buffer"
	"github.com/tspooner/rsrl-sub001/fa"
	"github.com/tspooner/rsrl-sub001/timestep"
	"github.com/unixpickle/essentials"
)

// GreedyGQ implements the Greedy-GQ off-policy control algorithm of
// Maei et al. (2010), the gradient TD method for action-values. The
// primary weights θ of q learn with the learning rate of q, and the
// auxiliary weights w with the learning rate of w. Both have one
// output per action over the same basis.
//
// For a transition (s, a, r, s') with greedy next action a*:
//
//	δ = r + γ max_b Q(s', b) - Q(s, a)
//	θ += α(δφ(s, a) - γ(wᵀφ(s, a))φ(s', a*))
//	w += β(δ - wᵀφ(s, a))φ(s, a)
//
// The correction term is dropped for transitions into a terminal state.
type GreedyGQ struct {
	q *fa.LFA
	w *fa.LFA
}

// NewGreedyGQ returns a new Greedy-GQ learner with action-values q and
// auxiliary weights w
func NewGreedyGQ(q, w *fa.LFA) (*GreedyGQ, error) {
	if q == nil || w == nil {
		panic("newGreedyGQ: approximators cannot be nil")
	}
	if q.Basis().Dim() != w.Basis().Dim() || q.Outputs() != w.Outputs() {
		return nil, fa.NewConfigurationError("newGreedyGQ", "θ and w must "+
			"have the same shape, have %v and %v", buffer.ShapeOf(q.Weights()),
			buffer.ShapeOf(w.Weights()))
	}
	return &GreedyGQ{q, w}, nil
}

// Handle performs one Greedy-GQ update. Both gradients are computed
// before either set of weights changes.
func (g *GreedyGQ) Handle(t timestep.Transition) (err error) {
	defer essentials.AddCtxTo("greedyGQ: handle", &err)

	a := t.DiscreteAction()
	if err := g.q.CheckAction("handle", a); err != nil {
		return err
	}
	phi, values, err := evaluate(g.q, t.From.State)
	if err != nil {
		return err
	}
	estimate, err := phi.Dot(g.w.Weights(), a)
	if err != nil {
		return err
	}

	n := g.q.Outputs()
	current := buffer.NewColumnar(phi, n, a)

	var delta float64
	var grad buffer.Buffer
	if t.Terminal() {
		delta = t.Reward - values[a]
		grad = current.Map(func(x float64) float64 { return delta * x })
	} else {
		nextPhi, next, err := evaluate(g.q, t.To.State)
		if err != nil {
			return err
		}
		max, greedyNext, err := greedy("handle", next)
		if err != nil {
			return err
		}

		gamma := t.Bootstrap()
		delta = t.Reward + gamma*max - values[a]
		correction := gamma * estimate
		grad, err = buffer.Combine(current,
			buffer.NewColumnar(nextPhi, n, greedyNext[0]),
			func(x, y float64) float64 { return delta*x - correction*y })
		if err != nil {
			return err
		}
	}

	if err := g.q.UpdateGrad(grad, 1); err != nil {
		return err
	}
	return g.w.UpdateFeatures(phi, a, delta-estimate)
}

// ActionValues returns the action-value function being learned
func (g *GreedyGQ) ActionValues() *fa.LFA {
	return g.q
}

// Auxiliary returns the auxiliary weights w
func (g *GreedyGQ) Auxiliary() *fa.LFA {
	return g.w
}
