package basis

import (
	"fmt"
	"math"

	"github.com/tspooner/rsrl-sub001/buffer"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

// RBF implements a normalised network of Gaussian radial basis
// functions. Feature i is the Gaussian kernel
//
//	k_i(s) = exp(-Σ_j β_j (s_j - μ_ij)²),  β_j = 1 / (2σ_j²)
//
// divided by the sum of all kernels, so that features lie on the
// simplex.
type RBF struct {
	centres *mat.Dense // one centre per row
	sigma   []float64
	beta    []float64
}

// NewRBF returns an RBF network with one kernel centred on each row of
// centres. Each dimension j of the state space uses the same width
// sigma[j] for all kernels.
func NewRBF(centres *mat.Dense, sigma []float64) (*RBF, error) {
	_, dims := centres.Dims()
	if len(sigma) != dims {
		return nil, &DimensionError{Basis: "newRBF", Want: dims,
			Have: len(sigma)}
	}

	beta := make([]float64, dims)
	for j, s := range sigma {
		if !(s > 0) {
			return nil, fmt.Errorf("newRBF: kernel width must be positive, "+
				"have %v along dimension %d", s, j)
		}
		beta[j] = 0.5 / (s * s)
	}

	return &RBF{mat.DenseCopyOf(centres), append([]float64(nil), sigma...),
		beta}, nil
}

// NewRBFGrid returns an RBF network with kernels centred on an evenly
// spaced grid, perDim[j] centres along dimension j including both
// limits
func NewRBFGrid(limits []r1.Interval, perDim []int,
	sigma []float64) (*RBF, error) {
	if err := checkLimits("newRBFGrid", limits); err != nil {
		return nil, err
	}
	if len(perDim) != len(limits) {
		return nil, &DimensionError{Basis: "newRBFGrid", Want: len(limits),
			Have: len(perDim)}
	}

	points := make([][]float64, len(limits))
	n := 1
	for j, l := range limits {
		if perDim[j] < 1 {
			return nil, fmt.Errorf("newRBFGrid: %d centres along dimension "+
				"%d", perDim[j], j)
		}
		points[j] = make([]float64, perDim[j])
		if perDim[j] == 1 {
			points[j][0] = (l.Min + l.Max) / 2
		} else {
			floats.Span(points[j], l.Min, l.Max)
		}
		n *= perDim[j]
	}

	centres := mat.NewDense(n, len(limits), nil)
	for i := 0; i < n; i++ {
		rem := i
		for j := len(limits) - 1; j >= 0; j-- {
			centres.Set(i, j, points[j][rem%perDim[j]])
			rem /= perDim[j]
		}
	}
	return NewRBF(centres, sigma)
}

// Project returns the dense normalised kernel activations of state
func (r *RBF) Project(state mat.Vector) (*buffer.Features, error) {
	if err := checkInput("rbf", r, state); err != nil {
		return nil, err
	}

	n, dims := r.centres.Dims()
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		var exponent float64
		for j := 0; j < dims; j++ {
			d := state.AtVec(j) - r.centres.At(i, j)
			exponent -= r.beta[j] * d * d
		}
		values[i] = math.Exp(exponent)
	}

	sum := floats.Sum(values)
	if sum == 0 || math.IsInf(sum, 0) || math.IsNaN(sum) {
		return nil, fmt.Errorf("rbf: kernel activations of state %v cannot "+
			"be normalised, sum is %v", mat.Formatted(state.T()), sum)
	}
	floats.Scale(1/sum, values)

	return buffer.NewDenseFeatures(values), nil
}

// Dim returns the number of kernels
func (r *RBF) Dim() int {
	n, _ := r.centres.Dims()
	return n
}

// InputDim returns the dimension of states
func (r *RBF) InputDim() int {
	_, dims := r.centres.Dims()
	return dims
}

// Config returns the configuration of the basis
func (r *RBF) Config() Config {
	n, dims := r.centres.Dims()
	centres := make([][]float64, n)
	for i := range centres {
		centres[i] = make([]float64, dims)
		mat.Row(centres[i], i, r.centres)
	}
	return RBFConfig{Centres: centres, Sigma: append([]float64(nil),
		r.sigma...)}
}

// RBFConfig configures an RBF basis
type RBFConfig struct {
	Centres [][]float64
	Sigma   []float64
}

// Create returns the RBF basis described by the config
func (c RBFConfig) Create() (Basis, error) {
	if len(c.Centres) == 0 {
		return nil, fmt.Errorf("create: no RBF centres")
	}
	dims := len(c.Centres[0])
	data := make([]float64, 0, len(c.Centres)*dims)
	for i, row := range c.Centres {
		if len(row) != dims {
			return nil, &DimensionError{Basis: fmt.Sprintf("create: centre %d",
				i), Want: dims, Have: len(row)}
		}
		data = append(data, row...)
	}
	return NewRBF(mat.NewDense(len(c.Centres), dims, data), c.Sigma)
}

// ValidType returns if the given Basis type is a valid type to be
// created with this config.
func (c RBFConfig) ValidType(t Type) bool {
	return t == RBFType
}
