package policy

import (
	"fmt"
	"math"

	"github.com/tspooner/rsrl-sub001/buffer"
	"github.com/tspooner/rsrl-sub001/fa"
	"github.com/tspooner/rsrl-sub001/param"
	"github.com/tspooner/rsrl-sub001/utils/floatutils"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Softmax implements a Boltzmann policy over a linear action-value
// function:
//
//	π(a|s) = exp(Q(s, a)/τ) / Σ_b exp(Q(s, b)/τ)
//
// where the temperature τ follows a schedule. Like EGreedy, the
// action-values are shared with the learner by pointer.
type Softmax struct {
	q      *fa.LFA
	tau    *param.Parameter
	source rand.Source
}

// NewSoftmax returns a new softmax policy over q with temperature tau
func NewSoftmax(q *fa.LFA, tau *param.Parameter, seed uint64) (*Softmax,
	error) {
	if q == nil {
		panic("newSoftmax: action-value function cannot be nil")
	}
	if tau == nil || !(tau.Value() > 0) {
		return nil, fa.NewConfigurationError("newSoftmax", "temperature "+
			"must be positive")
	}
	return &Softmax{q, tau, rand.NewSource(seed)}, nil
}

// Probabilities returns the probability of selecting each action in
// state
func (s *Softmax) Probabilities(state mat.Vector) ([]float64, error) {
	values, err := s.q.Evaluate(state)
	if err != nil {
		return nil, fmt.Errorf("probabilities: %w", err)
	}
	return s.probabilities(values)
}

func (s *Softmax) probabilities(values []float64) ([]float64, error) {
	tau := s.tau.Value()
	if !(tau > 0) {
		return nil, &fa.NumericalError{Op: "probabilities", Value: tau}
	}

	probs := make([]float64, len(values))
	floats.ScaleTo(probs, 1/tau, values)
	if !floatutils.AllFinite(probs) {
		return nil, &fa.NumericalError{Op: "probabilities",
			Value: firstNonFinite(probs)}
	}

	// Shifting by the log normaliser keeps the exponentials in range
	norm := floats.LogSumExp(probs)
	for i := range probs {
		probs[i] = math.Exp(probs[i] - norm)
	}
	return probs, nil
}

// SelectIndex samples the index of an action in state
func (s *Softmax) SelectIndex(state mat.Vector) (int, error) {
	probs, err := s.Probabilities(state)
	if err != nil {
		return 0, err
	}

	dist := distuv.NewCategorical(probs, s.source)
	return int(dist.Rand()), nil
}

// SelectAction samples an action in state. The action is returned as
// a 1-dimensional vector holding the action's index.
func (s *Softmax) SelectAction(state mat.Vector) (*mat.VecDense, error) {
	a, err := s.SelectIndex(state)
	if err != nil {
		return nil, err
	}
	return mat.NewVecDense(1, []float64{float64(a)}), nil
}

// GradLog returns the gradient of log π(a|s) with respect to the
// weights of the action-values: column b is φ(s)(1[a = b] - π(b|s))/τ
func (s *Softmax) GradLog(state mat.Vector, a int) (buffer.Buffer, error) {
	if err := s.q.CheckAction("gradLog", a); err != nil {
		return nil, err
	}
	phi, err := s.q.Features(state)
	if err != nil {
		return nil, err
	}
	values, err := s.q.EvaluateFeatures(phi)
	if err != nil {
		return nil, err
	}
	probs, err := s.probabilities(values)
	if err != nil {
		return nil, err
	}

	tau := s.tau.Value()
	for b := range probs {
		probs[b] = -probs[b] / tau
	}
	probs[a] += 1 / tau
	return fa.Outer(phi, probs), nil
}

// Step advances the temperature schedule
func (s *Softmax) Step() {
	s.tau.Step()
}

// Temperature returns the current temperature
func (s *Softmax) Temperature() float64 {
	return s.tau.Value()
}

// ActionValues returns the action-value function the policy acts on
func (s *Softmax) ActionValues() *fa.LFA {
	return s.q
}

func firstNonFinite(xs []float64) float64 {
	for _, x := range xs {
		if !floatutils.Finite(x) {
			return x
		}
	}
	return math.NaN()
}
