package timestep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ObservationKind describes how much of the environment an
// Observation reveals
type ObservationKind int

const (
	// Full observations reveal the complete state
	Full ObservationKind = iota

	// Partial observations reveal only part of the state
	Partial

	// Terminal observations are of terminal states, which have no
	// value
	Terminal
)

func (o ObservationKind) String() string {
	switch o {
	case Partial:
		return "Partial"
	case Terminal:
		return "Terminal"
	default:
		return "Full"
	}
}

// Observation is what a learner sees of some state
type Observation struct {
	Kind  ObservationKind
	State mat.Vector
}

// Terminal returns whether the observation is of a terminal state
func (o Observation) Terminal() bool {
	return o.Kind == Terminal
}

// Transition is a single step of experience: taking Action after
// observing From led to observing To with some Reward. Future rewards
// are discounted by Discount.
type Transition struct {
	From, To Observation
	Action   mat.Vector
	Reward   float64
	Discount float64

	// Last is true if the episode ended with this transition, whether
	// or not To is terminal
	Last bool
}

// NewTransition returns the Transition taking prev to next with
// action. If next ended its episode by reaching a terminal state, the
// To observation is Terminal.
func NewTransition(prev TimeStep, action mat.Vector,
	next TimeStep) Transition {
	to := Observation{Kind: Full, State: next.Observation}
	if next.Last() && next.EndType() == TerminalStateReached {
		to.Kind = Terminal
	}

	return Transition{
		From:     Observation{Kind: Full, State: prev.Observation},
		To:       to,
		Action:   action,
		Reward:   next.Reward,
		Discount: next.Discount,
		Last:     next.Last(),
	}
}

// Terminal returns whether the transition entered a terminal state
func (t Transition) Terminal() bool {
	return t.To.Terminal()
}

// DiscreteAction returns the action of the transition as an index. It
// panics if the action is not a single non-negative integer.
func (t Transition) DiscreteAction() int {
	if t.Action == nil || t.Action.Len() != 1 {
		panic("discreteAction: action is not 1-dimensional")
	}
	a := t.Action.AtVec(0)
	if a < 0 || a != float64(int(a)) {
		panic(fmt.Sprintf("discreteAction: action %v is not an index", a))
	}
	return int(a)
}

// Bootstrap returns the discount to apply to the value of the next
// state: zero for terminal transitions and Discount otherwise
func (t Transition) Bootstrap() float64 {
	if t.Terminal() {
		return 0
	}
	return t.Discount
}

func (t Transition) String() string {
	return fmt.Sprintf("Transition | Reward: %.2f  |  Discount: %.2f  |  "+
		"To: %v", t.Reward, t.Discount, t.To.Kind)
}
