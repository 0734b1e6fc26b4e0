package environment

import "github.com/tspooner/rsrl-sub001/timestep"

// StepLimit implements the Ender interface to end episodes at specific
// timestep limits
type StepLimit struct {
	episodeSteps int
}

// NewStepLimit creates and returns a new step limit
func NewStepLimit(episodeSteps int) *StepLimit {
	if episodeSteps < 1 {
		panic("newStepLimit: episodes must allow at least one step")
	}
	return &StepLimit{episodeSteps}
}

// End ends the episode with a Timeout once the step number reaches
// the limit
func (s *StepLimit) End(t *timestep.TimeStep) bool {
	if t.Number >= s.episodeSteps {
		t.SetEnd(timestep.Timeout)
		return true
	}
	return false
}

// Steps returns the maximum number of steps per episode
func (s *StepLimit) Steps() int {
	return s.episodeSteps
}
