// Package actorcritic implements linear actor-critic algorithms for
// Gaussian policies over continuous actions.
//
// Each algorithm learns a state-value critic with TD(0) and uses the TD
// error to improve the actor.
package actorcritic

import (
	"github.com/tspooner/rsrl-sub001/agent/linear/continuous/policy"
	"github.com/tspooner/rsrl-sub001/agent/linear/prediction"
	"github.com/tspooner/rsrl-sub001/fa"
	"github.com/tspooner/rsrl-sub001/timestep"
	"github.com/unixpickle/essentials"
)

// TDAC implements the one-step TD actor-critic: the critic moves
// towards the TD target, and the actor moves along ∇log π(a|s) scaled
// by the TD error
type TDAC struct {
	critic *fa.LFA
	actor  *policy.Gaussian
}

// NewTDAC returns a new TD actor-critic learner
func NewTDAC(critic *fa.LFA, actor *policy.Gaussian) (*TDAC, error) {
	if err := checkCritic("newTDAC", critic, actor); err != nil {
		return nil, err
	}
	return &TDAC{critic, actor}, nil
}

// Handle updates the critic and actor with a transition
func (t *TDAC) Handle(tr timestep.Transition) (err error) {
	defer essentials.AddCtxTo("tdac: handle", &err)

	delta, err := criticStep(t.critic, tr)
	if err != nil {
		return err
	}
	return t.actor.Update(tr.From.State, tr.Action, delta)
}

// Critic returns the state-value function of the learner
func (t *TDAC) Critic() *fa.LFA {
	return t.critic
}

// criticStep performs a TD(0) update of the critic, returning the TD
// error computed before the update
func criticStep(critic *fa.LFA, tr timestep.Transition) (float64, error) {
	phi, delta, err := prediction.TDError(critic, tr)
	if err != nil {
		return 0, err
	}
	if err := critic.UpdateGrad(phi, delta); err != nil {
		return 0, err
	}
	return delta, nil
}

func checkCritic(op string, critic *fa.LFA, actor *policy.Gaussian) error {
	if critic == nil || actor == nil {
		return fa.NewConfigurationError(op, "critic and actor cannot be nil")
	}
	if critic.Outputs() != 1 {
		return fa.NewConfigurationError(op, "critic must have one output, "+
			"have %d", critic.Outputs())
	}
	return nil
}
