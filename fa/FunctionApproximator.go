// Package fa implements linear function approximation over projected
// features.
//
// An LFA holds a weight matrix with one row per feature and one column
// per output. Its outputs are the dot products of the features of a
// state with each column, and its gradient with respect to the weights
// is the feature vector itself placed in the implicated columns. An
// LFA updates its weights through an optim.Optimizer.
//
// Compositions apply a differentiable scalar Transform to the outputs
// of an LFA, for example to keep the standard deviation of a Gaussian
// policy positive with Softplus.
package fa

import (
	"github.com/tspooner/rsrl-sub001/buffer"
	"gonum.org/v1/gonum/mat"
)

// Evaluator maps states to one or more real outputs
type Evaluator interface {
	Evaluate(s mat.Vector) ([]float64, error)
	Outputs() int
}

// Differentiable is an Evaluator which can compute the gradient of its
// outputs with respect to its weights
type Differentiable interface {
	Evaluator
	Grad(s mat.Vector) (buffer.Buffer, error)
}

// Parameterised is a function with a weight matrix that can be read and
// replaced
type Parameterised interface {
	Weights() *mat.Dense
	SetWeights(*mat.Dense) error
}

// Enumerable is an Evaluator whose outputs correspond to a finite set
// of discrete actions
type Enumerable interface {
	Evaluator
	EvaluateAction(s mat.Vector, a int) (float64, error)
}

var (
	_ Differentiable = &LFA{}
	_ Parameterised  = &LFA{}
	_ Enumerable     = &LFA{}
	_ Differentiable = &Composition{}
)
