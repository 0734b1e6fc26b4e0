package basis

import (
	"fmt"

	"github.com/tspooner/rsrl-sub001/buffer"
	"gonum.org/v1/gonum/mat"
)

// Raw uses the state variables themselves as dense features
type Raw struct {
	dim int
}

// NewRaw returns a Raw basis over states of dimension dim
func NewRaw(dim int) (*Raw, error) {
	if dim < 1 {
		return nil, fmt.Errorf("newRaw: state dimension must be positive, "+
			"have %d", dim)
	}
	return &Raw{dim}, nil
}

// Project returns a copy of state as Features
func (r *Raw) Project(state mat.Vector) (*buffer.Features, error) {
	if err := checkInput("raw", r, state); err != nil {
		return nil, err
	}
	values := make([]float64, state.Len())
	for i := range values {
		values[i] = state.AtVec(i)
	}
	return buffer.NewDenseFeatures(values), nil
}

// Dim returns the number of features
func (r *Raw) Dim() int {
	return r.dim
}

// InputDim returns the dimension of states
func (r *Raw) InputDim() int {
	return r.dim
}

// Config returns the configuration of the basis
func (r *Raw) Config() Config {
	return RawConfig{Dim: r.dim}
}

// RawConfig configures a Raw basis
type RawConfig struct {
	Dim int
}

// Create returns the Raw basis described by the config
func (c RawConfig) Create() (Basis, error) {
	return NewRaw(c.Dim)
}

// ValidType returns if the given Basis type is a valid type to be
// created with this config.
func (c RawConfig) ValidType(t Type) bool {
	return t == RawType
}
