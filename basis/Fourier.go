package basis

import (
	"fmt"
	"math"

	"github.com/tspooner/rsrl-sub001/buffer"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

// Fourier implements the Fourier basis of Konidaris et al. (2011):
//
//	φ_i(s) = cos(π c_i · x)
//
// where x is the state normalised to [0, 1] along each dimension using
// limits, and the c_i range over every integer vector with entries in
// [0, order]. The first coefficient vector is all zeros, so the first
// feature is the constant 1.
type Fourier struct {
	order  int
	limits []r1.Interval
	coeffs [][]float64
	bias   bool
}

// NewFourier returns a Fourier basis of the given order over states
// bounded by limits. If bias is true, an extra constant feature is
// appended.
func NewFourier(order int, limits []r1.Interval, bias bool) (*Fourier,
	error) {
	if order < 0 {
		return nil, fmt.Errorf("newFourier: order must be non-negative, "+
			"have %d", order)
	}
	if err := checkLimits("newFourier", limits); err != nil {
		return nil, err
	}

	tuples := cartesian(order+1, len(limits))
	coeffs := make([][]float64, len(tuples))
	for i, tuple := range tuples {
		coeffs[i] = make([]float64, len(tuple))
		for j, c := range tuple {
			coeffs[i][j] = float64(c)
		}
	}

	return &Fourier{order, copyLimits(limits), coeffs, bias}, nil
}

// Project returns the dense Fourier features of state
func (f *Fourier) Project(state mat.Vector) (*buffer.Features, error) {
	if err := checkInput("fourier", f, state); err != nil {
		return nil, err
	}

	x := make([]float64, state.Len())
	for i := range x {
		x[i] = normalise(state.AtVec(i), f.limits[i])
	}

	values := make([]float64, f.Dim())
	for i, c := range f.coeffs {
		values[i] = math.Cos(math.Pi * floats.Dot(c, x))
	}
	if f.bias {
		values[len(values)-1] = 1.0
	}
	return buffer.NewDenseFeatures(values), nil
}

// Dim returns the number of features
func (f *Fourier) Dim() int {
	if f.bias {
		return len(f.coeffs) + 1
	}
	return len(f.coeffs)
}

// InputDim returns the dimension of states
func (f *Fourier) InputDim() int {
	return len(f.limits)
}

// Coefficients returns a copy of the coefficient vectors
func (f *Fourier) Coefficients() [][]float64 {
	coeffs := make([][]float64, len(f.coeffs))
	for i := range f.coeffs {
		coeffs[i] = append([]float64(nil), f.coeffs[i]...)
	}
	return coeffs
}

// Config returns the configuration of the basis
func (f *Fourier) Config() Config {
	return FourierConfig{Order: f.order, Limits: copyLimits(f.limits),
		Bias: f.bias}
}

// FourierConfig configures a Fourier basis
type FourierConfig struct {
	Order  int
	Limits []r1.Interval
	Bias   bool
}

// Create returns the Fourier basis described by the config
func (c FourierConfig) Create() (Basis, error) {
	return NewFourier(c.Order, c.Limits, c.Bias)
}

// ValidType returns if the given Basis type is a valid type to be
// created with this config.
func (c FourierConfig) ValidType(t Type) bool {
	return t == FourierType
}
