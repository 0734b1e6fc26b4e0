// Package agent defines the interfaces shared by learning algorithms
// and policies, and a registry of JSON configurations which create
// agents.
package agent

import (
	"github.com/tspooner/rsrl-sub001/fa"
	"github.com/tspooner/rsrl-sub001/timestep"
	"gonum.org/v1/gonum/mat"
)

// Learner implements a learning algorithm that defines how weights are
// updated from experience.
//
// A Learner and the Policy of an Agent usually share function
// approximators by pointer, so that changes the Learner makes are
// reflected in the actions the Policy chooses at its next selection.
type Learner interface {
	// Handle updates the learner with a single transition. Errors are
	// returned to the caller and never dropped.
	Handle(t timestep.Transition) error
}

// Policy represents a policy that an agent can have.
type Policy interface {
	SelectAction(state mat.Vector) (*mat.VecDense, error)
}

// DiscretePolicy is a Policy over a finite set of actions enumerated
// (0, 1, ..., N-1) which can report the probability of each action
type DiscretePolicy interface {
	Policy
	Probabilities(state mat.Vector) ([]float64, error)
}

// Stepper is anything with a schedule that advances once per episode,
// such as learning rates and exploration rates
type Stepper interface {
	Step()
}

// Agent is composed of a Learner, which learns weights, and a Policy
// which chooses actions in each state.
type Agent interface {
	Learner
	Policy

	// EndEpisode advances every schedule of the agent
	EndEpisode()
}

// Valued is an Agent which exposes the approximator it learns values
// with, an action-value function for control or the critic of an
// actor-critic
type Valued interface {
	Agent
	Values() *fa.LFA
}

// composite pairs a Learner with a behaviour Policy
type composite struct {
	Learner
	Policy
	schedules []Stepper
}

// New returns an Agent which learns with l, acts with p and advances
// each of schedules at the end of every episode
func New(l Learner, p Policy, schedules ...Stepper) Agent {
	if l == nil || p == nil {
		panic("new: learner and policy cannot be nil")
	}
	return &composite{l, p, schedules}
}

func (c *composite) EndEpisode() {
	for _, s := range c.schedules {
		s.Step()
	}
}

// Values returns the first function approximator among the schedules
// of the agent, or nil if there is none
func (c *composite) Values() *fa.LFA {
	for _, s := range c.schedules {
		if l, ok := s.(*fa.LFA); ok {
			return l
		}
	}
	return nil
}
