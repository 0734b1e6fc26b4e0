package mountaincar

import (
	"fmt"

	env "github.com/tspooner/rsrl-sub001/environment"
	ts "github.com/tspooner/rsrl-sub001/timestep"
	"gonum.org/v1/gonum/mat"
)

// Discrete implements the classic control Mountain Car environment.
// In this environment, the agent controls a car in a valley between two
// hills. The car is underpowered and cannot drive up the hill unless
// it rocks back and forth from hill to hill, using its momentum to
// gradually climb higher.
//
// Actions are 1-dimensional and discrete in (0, 1, 2). Actions
// determine in which direction to apply full accelerating force to the
// car:
//
//	Action	Meaning
//	  0		Accelerate left
//	  1		Do nothing
//	  2		Accelerate right
//
// Actions other than 0, 1, or 2 result in a panic
type Discrete struct {
	*base
}

// NewDiscrete creates a new Discrete action Mountain Car environment
// with the argument task
func NewDiscrete(t env.Task, discount float64) (*Discrete, ts.TimeStep,
	error) {
	baseEnv, firstStep, err := newBase(t, discount)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newDiscrete: %v", err)
	}
	return &Discrete{baseEnv}, firstStep, nil
}

// ActionSpec returns the action specification of the environment
func (m *Discrete) ActionSpec() env.Spec {
	shape := mat.NewVecDense(ActionDims, nil)
	lowerBound := mat.NewVecDense(ActionDims,
		[]float64{float64(MinDiscreteAction)})
	upperBound := mat.NewVecDense(ActionDims,
		[]float64{float64(MaxDiscreteAction)})

	return env.NewSpec(shape, env.Action, lowerBound, upperBound,
		env.Discrete)
}

// Step takes one environmental step given action a and returns the next
// timestep and whether or not the episode has ended.
func (m *Discrete) Step(a mat.Vector) (ts.TimeStep, bool) {
	if a.Len() != ActionDims {
		panic(fmt.Sprintf("step: actions should be %d-dimensional",
			ActionDims))
	}

	action := a.AtVec(0)
	intAction := int(action)
	if float64(intAction) != action || intAction > MaxDiscreteAction ||
		intAction < MinDiscreteAction {
		panic(fmt.Sprintf("step: illegal action %v ∉ (0, 1, 2)", action))
	}

	force := action - 1.0
	return m.update(a, m.nextState(force))
}
