// Package basis implements projections of raw states into feature
// vectors for linear function approximation.
//
// A Basis is a deterministic, side-effect free mapping from a state
// vector to buffer.Features. Bases which activate only a few features
// (tile coding, uniform grids) return sparse Features, all others return
// dense Features. Bases can be combined with Stack, Sum, Bias, and
// Normalise to produce new bases.
//
// Every Basis can describe itself with a Config, which is JSON
// serializable through TypedConfig and recreates an identical Basis.
package basis

import (
	"fmt"

	"github.com/tspooner/rsrl-sub001/buffer"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

// Basis projects states into feature space
type Basis interface {
	// Project returns the features of a state
	Project(state mat.Vector) (*buffer.Features, error)

	// Dim returns the number of features produced
	Dim() int

	// InputDim returns the expected dimension of states, or 0 if states
	// of any dimension are accepted
	InputDim() int

	// Config returns a configuration that creates an identical Basis
	Config() Config
}

// DimensionError is returned when a state, or a basis combined with
// another, has the wrong dimension
type DimensionError struct {
	Basis string
	Want  int
	Have  int
}

func (d *DimensionError) Error() string {
	return fmt.Sprintf("%v: incorrect dimension \n\twant: %d \n\thave: %d",
		d.Basis, d.Want, d.Have)
}

// checkInput ensures a state has the dimension a basis expects
func checkInput(name string, b Basis, state mat.Vector) error {
	if want := b.InputDim(); want != 0 && state.Len() != want {
		return &DimensionError{Basis: name, Want: want, Have: state.Len()}
	}
	return nil
}

// checkLimits ensures each interval of limits is non-empty
func checkLimits(name string, limits []r1.Interval) error {
	if len(limits) == 0 {
		return fmt.Errorf("%v: no state limits given", name)
	}
	for i, l := range limits {
		if !(l.Max > l.Min) {
			return fmt.Errorf("%v: empty limits [%v, %v] along dimension %d",
				name, l.Min, l.Max, i)
		}
	}
	return nil
}

// normalise maps v in the interval l to [0, 1]
func normalise(v float64, l r1.Interval) float64 {
	return (v - l.Min) / (l.Max - l.Min)
}

// cartesian returns every integer tuple of length dims with entries in
// [0, n), in lexicographic order
func cartesian(n, dims int) [][]int {
	total := 1
	for i := 0; i < dims; i++ {
		total *= n
	}

	tuples := make([][]int, total)
	for k := range tuples {
		tuple := make([]int, dims)
		rem := k
		for i := dims - 1; i >= 0; i-- {
			tuple[i] = rem % n
			rem /= n
		}
		tuples[k] = tuple
	}
	return tuples
}

func copyLimits(limits []r1.Interval) []r1.Interval {
	return append([]r1.Interval(nil), limits...)
}
