// Package mountaincar implements the classic control environment
// "Mountain Car" with discrete and continuous actions
package mountaincar

import (
	"fmt"
	"math"

	env "github.com/tspooner/rsrl-sub001/environment"
	ts "github.com/tspooner/rsrl-sub001/timestep"
	"github.com/tspooner/rsrl-sub001/utils/floatutils"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

const (
	MinPosition float64 = -1.2
	MaxPosition float64 = 0.6
	MaxSpeed    float64 = 0.07
	Power       float64 = 0.0015 // Engine power
	Gravity     float64 = 0.0025

	ObservationDims int = 2
	ActionDims      int = 1

	// Discrete Actions Env
	MinDiscreteAction int = 0
	MaxDiscreteAction int = 2

	// Continuous Actions Env
	MinContinuousAction float64 = -1.0
	MaxContinuousAction float64 = 1.0
)

// base implements the underlying Mountain Car environment. It tracks
// the Task and current state, and computes next states given a force.
// The Discrete and Continuous environments each embed a base and
// convert their actions into forces.
//
// In Mountain Car, the environment state is continuous and consists of
// the car's x position and velocity. The x position and velocity are
// bounded by the constants defined in this package.
type base struct {
	env.Task
	positionBounds r1.Interval
	speedBounds    r1.Interval
	lastStep       ts.TimeStep
	discount       float64
}

// newBase creates a new base environment with the argument task
func newBase(t env.Task, discount float64) (*base, ts.TimeStep, error) {
	if t == nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newBase: task cannot be nil")
	}
	if discount < 0 || discount > 1 {
		return nil, ts.TimeStep{}, fmt.Errorf("newBase: discount %v not "+
			"in [0, 1]", discount)
	}

	m := &base{
		Task:           t,
		positionBounds: r1.Interval{Min: MinPosition, Max: MaxPosition},
		speedBounds:    r1.Interval{Min: -MaxSpeed, Max: MaxSpeed},
		discount:       discount,
	}
	firstStep, err := m.reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newBase: %v", err)
	}
	return m, firstStep, nil
}

// ObservationSpec returns the observation specification of the
// environment
func (m *base) ObservationSpec() env.Spec {
	shape := mat.NewVecDense(ObservationDims, nil)
	lowerBound := mat.NewVecDense(ObservationDims,
		[]float64{m.positionBounds.Min, m.speedBounds.Min})
	upperBound := mat.NewVecDense(ObservationDims,
		[]float64{m.positionBounds.Max, m.speedBounds.Max})

	return env.NewSpec(shape, env.Observation, lowerBound,
		upperBound, env.Continuous)
}

// DiscountSpec returns the discounting specification of the environment
func (m *base) DiscountSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{m.discount})
	upperBound := mat.NewVecDense(1, []float64{m.discount})

	return env.NewSpec(shape, env.Discount, lowerBound,
		upperBound, env.Continuous)
}

// Reset resets the environment and returns a starting state drawn from
// the Task's Starter. Reset panics if the Starter produces an illegal
// state.
func (m *base) Reset() ts.TimeStep {
	step, err := m.reset()
	if err != nil {
		panic(fmt.Sprintf("reset: %v", err))
	}
	return step
}

func (m *base) reset() (ts.TimeStep, error) {
	state := m.Start()
	if err := validateState(state, m.positionBounds, m.speedBounds); err != nil {
		return ts.TimeStep{}, err
	}
	m.lastStep = ts.New(ts.First, 0, m.discount, state, 0)
	return m.lastStep, nil
}

// nextState calculates the next state in the environment given a force
// in [-1, 1]
func (m *base) nextState(force float64) mat.Vector {
	state := m.lastStep.Observation
	position, velocity := state.AtVec(0), state.AtVec(1)

	velocity += force*Power - Gravity*math.Cos(3*position)
	velocity = floatutils.Clip(velocity, m.speedBounds.Min, m.speedBounds.Max)

	position += velocity
	position = floatutils.Clip(position, m.positionBounds.Min,
		m.positionBounds.Max)

	// The left wall is inelastic
	if position <= m.positionBounds.Min && velocity < 0 {
		velocity = 0
	}

	return mat.NewVecDense(ObservationDims, []float64{position, velocity})
}

// update moves the environment into newState, computing the reward
// from the Task and checking whether the episode has ended. update
// returns the next TimeStep and whether it is the last in the episode.
func (m *base) update(action, newState mat.Vector) (ts.TimeStep, bool) {
	reward := m.GetReward(m.lastStep.Observation, action, newState)
	nextStep := ts.New(ts.Mid, reward, m.discount, newState,
		m.lastStep.Number+1)

	m.End(&nextStep)

	m.lastStep = nextStep
	return nextStep, nextStep.Last()
}

// String returns a string representation of the environment
func (m *base) String() string {
	str := "Mountain Car  |  Position: %v  |  Speed: %v"
	state := m.lastStep.Observation
	return fmt.Sprintf(str, state.AtVec(0), state.AtVec(1))
}

// validateState validates the state to ensure the position and speed
// are within the environmental limits
func validateState(s mat.Vector, positionBounds,
	speedBounds r1.Interval) error {
	if s.Len() != ObservationDims {
		return fmt.Errorf("illegal state dimension %d", s.Len())
	}

	position := s.AtVec(0)
	if position < positionBounds.Min || position > positionBounds.Max {
		return fmt.Errorf("illegal position %v ∉ [%v, %v]", position,
			positionBounds.Min, positionBounds.Max)
	}

	speed := s.AtVec(1)
	if speed < speedBounds.Min || speed > speedBounds.Max {
		return fmt.Errorf("illegal speed %v ∉ [%v, %v]", speed,
			speedBounds.Min, speedBounds.Max)
	}
	return nil
}
