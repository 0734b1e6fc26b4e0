// Package weights implements initializers for the weight matrices of
// linear function approximators. Weight matrices have one row per
// feature and one column per output.
package weights

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"
)

// Initializer initializes weights
type Initializer interface {
	Initialize(weights *mat.Dense) // initializes weights
}

// Constant initializes every weight to the same value. Optimistic
// initial values for action-value functions can be set this way.
type Constant float64

// Zero initializes all weights to 0
const Zero Constant = 0

// Initialize sets all weights to c
func (c Constant) Initialize(weights *mat.Dense) {
	if weights == nil {
		return
	}
	r, cols := weights.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < cols; j++ {
			weights.Set(i, j, float64(c))
		}
	}
}

// Univariate initializes each weight independently with values drawn
// from a univariate distribution
type Univariate struct {
	distuv.Rander
}

// NewUnivariate creates and returns a new Univariate initializer
func NewUnivariate(rand distuv.Rander) Univariate {
	if rand == nil {
		panic("newUnivariate: rand cannot be nil")
	}
	return Univariate{rand}
}

// NewUniform returns an initializer drawing weights uniformly from
// [min, max) using a source seeded with seed
func NewUniform(min, max float64, seed uint64) Univariate {
	return NewUnivariate(distuv.Uniform{
		Min: min,
		Max: max,
		Src: rand.NewSource(seed),
	})
}

// Initialize initializes a matrix of weights using values drawn from
// a univariate distribution
func (u Univariate) Initialize(weights *mat.Dense) {
	if weights == nil {
		return
	}
	r, c := weights.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			weights.Set(i, j, u.Rand())
		}
	}
}

// Multivariate initializes a weight matrix one feature at a time. Each
// row of the matrix, holding the weights of one feature for every
// output, is a single sample from a multivariate distribution with as
// many dimensions as there are outputs. This allows the initial values
// of different actions to be drawn from different distributions.
type Multivariate struct {
	distmv.Rander
}

// NewMultivariate returns a new Multivariate initializer, with weights
// drawn from the distribution defined by rand
func NewMultivariate(rand distmv.Rander) Multivariate {
	if rand == nil {
		panic("newMultivariate: rand cannot be nil")
	}
	return Multivariate{rand}
}

// Initialize initializes the weights row by row. Initialize panics if
// the distribution's dimension differs from the number of outputs.
func (m Multivariate) Initialize(weights *mat.Dense) {
	if weights == nil {
		return
	}
	r, c := weights.Dims()

	row := make([]float64, c)
	for i := 0; i < r; i++ {
		sample := m.Rand(nil)
		if len(sample) != c {
			panic(fmt.Sprintf("initialize: incorrect sample size \n\twant: "+
				"%d \n\thave: %d", c, len(sample)))
		}
		copy(row, sample)
		weights.SetRow(i, row)
	}
}
