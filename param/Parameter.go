// Package param implements scalar hyperparameters which may decay over
// the course of learning, such as learning rates and exploration rates.
package param

import (
	"fmt"
	"math"
)

// Kind describes how a Parameter changes as it is stepped
type Kind string

const (
	// Fixed parameters never change
	Fixed Kind = "Fixed"

	// Exponential parameters decay as Init * Rate^Count
	Exponential Kind = "Exponential"

	// Polynomial parameters decay as Init / (Count + 1)^Rate
	Polynomial Kind = "Polynomial"
)

// Parameter is a scalar hyperparameter that is advanced one step at the
// end of each episode. A decaying Parameter never drops below its
// Floor.
//
// Parameters are JSON serializable.
type Parameter struct {
	Kind
	Init  float64
	Floor float64
	Rate  float64
	Count int
}

// NewFixed returns a Parameter with constant value v
func NewFixed(v float64) *Parameter {
	return &Parameter{Kind: Fixed, Init: v}
}

// NewExponential returns a Parameter with value
// max(init * decay^n, floor) after n steps
func NewExponential(init, floor, decay float64) (*Parameter, error) {
	if decay <= 0 || decay > 1 {
		return nil, fmt.Errorf("newExponential: decay rate must be in "+
			"(0, 1], have %v", decay)
	}
	return &Parameter{Kind: Exponential, Init: init, Floor: floor,
		Rate: decay}, nil
}

// NewPolynomial returns a Parameter with value
// max(init / (n + 1)^exponent, floor) after n steps
func NewPolynomial(init, floor, exponent float64) (*Parameter, error) {
	if exponent < 0 {
		return nil, fmt.Errorf("newPolynomial: exponent must be "+
			"non-negative, have %v", exponent)
	}
	return &Parameter{Kind: Polynomial, Init: init, Floor: floor,
		Rate: exponent}, nil
}

// Value returns the current value of the Parameter
func (p *Parameter) Value() float64 {
	switch p.Kind {
	case Exponential:
		return math.Max(p.Init*math.Pow(p.Rate, float64(p.Count)), p.Floor)

	case Polynomial:
		return math.Max(p.Init/math.Pow(float64(p.Count+1), p.Rate), p.Floor)

	default:
		return p.Init
	}
}

// Step advances the Parameter by one step. Step should be called once
// per terminal transition.
func (p *Parameter) Step() {
	if p.Kind != Fixed {
		p.Count++
	}
}

// Reset returns the Parameter to its initial value
func (p *Parameter) Reset() {
	p.Count = 0
}

func (p *Parameter) String() string {
	return fmt.Sprintf("%v(%v)", p.Kind, p.Value())
}
