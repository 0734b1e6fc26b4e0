// Package environment outlines the interfaces and structs needed to
// implement concrete environments
package environment

import (
	"github.com/tspooner/rsrl-sub001/timestep"
	"gonum.org/v1/gonum/mat"
)

// Starter implements a distribution of starting states and samples
// starting states for environments
type Starter interface {
	Start() mat.Vector
}

// Ender determines when episodes end. If an episode should end, End
// marks the argument TimeStep as the last step and returns true.
type Ender interface {
	End(*timestep.TimeStep) bool
}

// Task implements the reward scheme for taking actions in some
// environment, as well as when episodes start and end
type Task interface {
	Starter
	Ender

	// GetReward returns the reward for taking action a in state and
	// arriving in nextState
	GetReward(state, a, nextState mat.Vector) float64

	// AtGoal returns whether state is a goal state of the Task
	AtGoal(state mat.Vector) bool

	RewardSpec() Spec
}

// Environment implements a simulated environment, which includes a
// Task to complete.
//
// The Observation of the TimeStep most recently returned by Reset or
// Step is the state the agent currently observes. Step panics if given
// an action outside of its ActionSpec that cannot be clipped into it.
type Environment interface {
	Task
	Reset() timestep.TimeStep // Resets between episodes
	Step(action mat.Vector) (timestep.TimeStep, bool)
	DiscountSpec() Spec
	ObservationSpec() Spec
	ActionSpec() Spec
}
