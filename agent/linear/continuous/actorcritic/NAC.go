package actorcritic

import (
	"math"

	"github.com/tspooner/rsrl-sub001/agent/linear/continuous/policy"
	"github.com/tspooner/rsrl-sub001/buffer"
	"github.com/tspooner/rsrl-sub001/fa"
	"github.com/tspooner/rsrl-sub001/timestep"
	"github.com/unixpickle/essentials"
	"gonum.org/v1/gonum/mat"
)

// MinNaturalNorm bounds the norm the natural gradient is divided by
// from below
const MinNaturalNorm = 1e-3

// NAC implements a natural actor-critic. Alongside the TD(0) critic it
// learns the weights w of a linear function over the compatible
// features ψ(s, a) of the policy,
//
//	w += β(δ - wᵀψ)ψ
//
// which estimate the natural policy gradient. Each step the policy mean
// weights move along w:
//
//	θ += α w / max(‖w‖, MinNaturalNorm)
type NAC struct {
	critic     *fa.LFA
	actor      *policy.Gaussian
	compatible *policy.CompatibleBasis
	w          *mat.Dense
	alpha      float64
	beta       float64
}

// NewNAC returns a new natural actor-critic learner with actor step
// size alpha and compatible critic step size beta
func NewNAC(critic *fa.LFA, actor *policy.Gaussian, alpha,
	beta float64) (*NAC, error) {
	if err := checkCritic("newNAC", critic, actor); err != nil {
		return nil, err
	}
	if alpha <= 0 || beta <= 0 {
		return nil, fa.NewConfigurationError("newNAC", "step sizes must be "+
			"positive, have α = %v and β = %v", alpha, beta)
	}

	compatible := policy.NewCompatibleBasis(actor)
	shape := compatible.Shape()
	return &NAC{
		critic:     critic,
		actor:      actor,
		compatible: compatible,
		w:          mat.NewDense(shape.Rows, shape.Cols, nil),
		alpha:      alpha,
		beta:       beta,
	}, nil
}

// Handle updates the critic, the compatible weights, and the policy
// mean with a transition
func (n *NAC) Handle(tr timestep.Transition) (err error) {
	defer essentials.AddCtxTo("nac: handle", &err)

	psi, err := n.compatible.Project(tr.From.State, tr.Action)
	if err != nil {
		return err
	}
	advantage, err := n.compatible.Evaluate(n.w, tr.From.State, tr.Action)
	if err != nil {
		return err
	}

	delta, err := criticStep(n.critic, tr)
	if err != nil {
		return err
	}
	if err := psi.ScaledAddTo(n.beta*(delta-advantage), n.w); err != nil {
		return err
	}

	norm := math.Max(mat.Norm(n.w, 2), MinNaturalNorm)
	return n.actor.MeanApproximator().UpdateGradScaled(buffer.NewDense(n.w),
		n.alpha/norm)
}

// NaturalGradient returns a copy of the compatible weights
func (n *NAC) NaturalGradient() *mat.Dense {
	return mat.DenseCopyOf(n.w)
}

// Critic returns the state-value function of the learner
func (n *NAC) Critic() *fa.LFA {
	return n.critic
}
