package mountaincar

import (
	"fmt"

	env "github.com/tspooner/rsrl-sub001/environment"
	ts "github.com/tspooner/rsrl-sub001/timestep"
	"github.com/tspooner/rsrl-sub001/utils/floatutils"
	"gonum.org/v1/gonum/mat"
)

// Continuous implements the Mountain Car environment with continuous
// actions. Actions are 1-dimensional and determine the force to apply
// to the car and in which direction. Actions outside of
// [MinContinuousAction, MaxContinuousAction] are clipped.
type Continuous struct {
	*base
}

// NewContinuous creates a new Continuous action Mountain Car
// environment with the argument task
func NewContinuous(t env.Task, discount float64) (*Continuous,
	ts.TimeStep, error) {
	baseEnv, firstStep, err := newBase(t, discount)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newContinuous: %v", err)
	}
	return &Continuous{baseEnv}, firstStep, nil
}

// ActionSpec returns the action specification of the environment
func (m *Continuous) ActionSpec() env.Spec {
	shape := mat.NewVecDense(ActionDims, nil)
	lowerBound := mat.NewVecDense(ActionDims, []float64{MinContinuousAction})
	upperBound := mat.NewVecDense(ActionDims, []float64{MaxContinuousAction})

	return env.NewSpec(shape, env.Action, lowerBound, upperBound,
		env.Continuous)
}

// Step takes one environmental step given action a and returns the next
// timestep and whether or not the episode has ended.
func (m *Continuous) Step(a mat.Vector) (ts.TimeStep, bool) {
	if a.Len() != ActionDims {
		panic(fmt.Sprintf("step: actions should be %d-dimensional",
			ActionDims))
	}

	force := floatutils.Clip(a.AtVec(0), MinContinuousAction,
		MaxContinuousAction)
	return m.update(a, m.nextState(force))
}
