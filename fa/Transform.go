package fa

import (
	"fmt"
	"math"
)

// Transform is a differentiable scalar function applied to the output
// of a function approximator
type Transform interface {
	Apply(x float64) float64
	Grad(x float64) float64
}

// softplusThreshold is the input above which Softplus is the identity
const softplusThreshold = 10.0

// Identity implements f(x) = x
type Identity struct{}

func (Identity) Apply(x float64) float64 { return x }
func (Identity) Grad(float64) float64    { return 1 }
func (Identity) String() string          { return "Identity" }

// Softplus implements f(x) = ln(1 + eˣ), which is positive for all x.
// Above x = 10 it is taken to be exactly x with gradient 1.
type Softplus struct{}

func (Softplus) Apply(x float64) float64 {
	if x >= softplusThreshold {
		return x
	}
	return math.Log1p(math.Exp(x))
}

func (Softplus) Grad(x float64) float64 {
	if x >= softplusThreshold {
		return 1
	}
	return logistic(x)
}

func (Softplus) String() string { return "Softplus" }

// Exp implements f(x) = eˣ
type Exp struct{}

func (Exp) Apply(x float64) float64 { return math.Exp(x) }
func (Exp) Grad(x float64) float64  { return math.Exp(x) }
func (Exp) String() string          { return "Exp" }

// Logistic implements f(x) = 1 / (1 + e⁻ˣ)
type Logistic struct{}

func (Logistic) Apply(x float64) float64 { return logistic(x) }

func (Logistic) Grad(x float64) float64 {
	s := logistic(x)
	return s * (1 - s)
}

func (Logistic) String() string { return "Logistic" }

// Tanh implements f(x) = tanh(x)
type Tanh struct{}

func (Tanh) Apply(x float64) float64 { return math.Tanh(x) }

func (Tanh) Grad(x float64) float64 {
	c := math.Cosh(x)
	return 1 / (c * c)
}

func (Tanh) String() string { return "Tanh" }

// logistic computes the logistic function without overflowing for
// large negative x
func logistic(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1 + e)
}

// TransformByName returns the Transform with the given name
func TransformByName(name string) (Transform, error) {
	switch name {
	case "Identity", "":
		return Identity{}, nil
	case "Softplus":
		return Softplus{}, nil
	case "Exp":
		return Exp{}, nil
	case "Logistic":
		return Logistic{}, nil
	case "Tanh":
		return Tanh{}, nil
	}
	return nil, fmt.Errorf("transformByName: unknown transform %q", name)
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
