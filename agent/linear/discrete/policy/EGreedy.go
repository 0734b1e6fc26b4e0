// Package policy implements policies over a finite set of actions using
// linear action-value functions
package policy

import (
	"fmt"

	"github.com/tspooner/rsrl-sub001/fa"
	"github.com/tspooner/rsrl-sub001/param"
	"github.com/tspooner/rsrl-sub001/utils/floatutils"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// EGreedy implements an ε-greedy policy over a linear action-value
// function with one output per action.
//
// The action-value function is shared with the learner by pointer, so
// each update the learner makes is seen at the next action selection.
type EGreedy struct {
	q       *fa.LFA
	epsilon *param.Parameter
	source  rand.Source
}

// NewEGreedy returns a new ε-greedy policy over q, where ε is the
// probability with which an action is selected uniformly at random
func NewEGreedy(q *fa.LFA, epsilon *param.Parameter, seed uint64) *EGreedy {
	if q == nil {
		panic("newEGreedy: action-value function cannot be nil")
	}
	if epsilon == nil {
		epsilon = param.NewFixed(0)
	}
	return &EGreedy{q, epsilon, rand.NewSource(seed)}
}

// Probabilities returns the probability of selecting each action in
// state. The 1 - ε greedy probability mass is split evenly between all
// actions of maximal value.
func (e *EGreedy) Probabilities(state mat.Vector) ([]float64, error) {
	values, err := e.q.Evaluate(state)
	if err != nil {
		return nil, fmt.Errorf("probabilities: %w", err)
	}
	return e.probabilities(values)
}

func (e *EGreedy) probabilities(values []float64) ([]float64, error) {
	max, greedy := floatutils.Argmax(values)
	if !floatutils.Finite(max) {
		return nil, &fa.NumericalError{Op: "probabilities", Value: max}
	}

	eps := floatutils.Clip(e.epsilon.Value(), 0, 1)
	n := float64(len(values))

	probs := make([]float64, len(values))
	for i := range probs {
		probs[i] = eps / n
	}
	for _, i := range greedy {
		probs[i] += (1 - eps) / float64(len(greedy))
	}
	return probs, nil
}

// SelectIndex samples the index of an action in state
func (e *EGreedy) SelectIndex(state mat.Vector) (int, error) {
	probs, err := e.Probabilities(state)
	if err != nil {
		return 0, err
	}

	dist := distuv.NewCategorical(probs, e.source)
	return int(dist.Rand()), nil
}

// SelectAction samples an action in state. The action is returned as
// a 1-dimensional vector holding the action's index.
func (e *EGreedy) SelectAction(state mat.Vector) (*mat.VecDense, error) {
	a, err := e.SelectIndex(state)
	if err != nil {
		return nil, err
	}
	return mat.NewVecDense(1, []float64{float64(a)}), nil
}

// Greedy returns the index of a maximal action in state, breaking
// ties by the lowest index, along with its value
func (e *EGreedy) Greedy(state mat.Vector) (int, float64, error) {
	values, err := e.q.Evaluate(state)
	if err != nil {
		return 0, 0, err
	}
	max, greedy := floatutils.Argmax(values)
	if !floatutils.Finite(max) {
		return 0, 0, &fa.NumericalError{Op: "greedy", Value: max}
	}
	return greedy[0], max, nil
}

// Step advances the exploration schedule
func (e *EGreedy) Step() {
	e.epsilon.Step()
}

// Epsilon returns the current probability of a random action
func (e *EGreedy) Epsilon() float64 {
	return e.epsilon.Value()
}

// ActionValues returns the action-value function the policy acts on
func (e *EGreedy) ActionValues() *fa.LFA {
	return e.q
}
