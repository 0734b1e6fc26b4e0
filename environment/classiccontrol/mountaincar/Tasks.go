package mountaincar

import (
	"math"

	"github.com/tspooner/rsrl-sub001/environment"
	"github.com/tspooner/rsrl-sub001/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

const (
	// Commonly used goal position
	GoalPosition float64 = 0.45
)

// Goal implements the classic control task of reaching a goal on
// Mountain Car. In this task, the agent must learn to drive the car
// up the hill and reach the goal state.
//
// Rewards are -1 on each timestep and 0 for the action which
// transitions the car to the goal.
//
// Episodes end after a step limit or when the car reaches the goal
// state, which is terminal.
type Goal struct {
	environment.Starter
	goalEnder *environment.IntervalLimit
	stepEnder *environment.StepLimit
	goalX     float64 // x position of goal
}

// NewGoal creates and returns a new Goal struct given a Starter, which
// determines the starting states; the maximum number of episode
// steps; and the goal x position.
func NewGoal(s environment.Starter, episodeSteps int, goalX float64) *Goal {
	stepEnder := environment.NewStepLimit(episodeSteps)

	// Episodes end as soon as the position reaches goalX
	interval := []r1.Interval{{Min: math.Inf(-1),
		Max: math.Nextafter(goalX, math.Inf(-1))}}
	goalEnder := environment.NewIntervalLimit(interval, []int{0},
		timestep.TerminalStateReached)

	return &Goal{s, goalEnder, stepEnder, goalX}
}

// NewDefaultGoal returns the standard Goal task: starting positions
// uniform in [-0.6, -0.4] at rest, goal at GoalPosition
func NewDefaultGoal(episodeSteps int, seed uint64) *Goal {
	bounds := []r1.Interval{{Min: -0.6, Max: -0.4}, {Min: 0, Max: 0}}
	return NewGoal(environment.NewUniformStarter(bounds, seed), episodeSteps,
		GoalPosition)
}

// AtGoal returns whether the argument state is a goal state
func (g *Goal) AtGoal(state mat.Vector) bool {
	return state.AtVec(0) >= g.goalX
}

// GetReward returns -1 for every action, except one which leads to the
// goal state, which results in a reward of 0
func (g *Goal) GetReward(_, _, nextState mat.Vector) float64 {
	if g.AtGoal(nextState) {
		return 0.0
	}
	return -1.0
}

// Min returns the minimum attainable reward over all timesteps
func (g *Goal) Min() float64 { return -1.0 }

// Max returns the maximum attainable reward over all timesteps
func (g *Goal) Max() float64 { return 0.0 }

// RewardSpec returns the reward specification of the Task
func (g *Goal) RewardSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{g.Min()})
	upperBound := mat.NewVecDense(1, []float64{g.Max()})

	return environment.NewSpec(shape, environment.Reward, lowerBound,
		upperBound, environment.Discrete)
}

// End ends the episode when the goal is reached or the step limit
// runs out. Reaching the goal takes precedence.
func (g *Goal) End(t *timestep.TimeStep) bool {
	if end := g.goalEnder.End(t); end {
		return true
	}
	return g.stepEnder.End(t)
}
