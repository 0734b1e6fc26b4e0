package basis

import (
	"fmt"
	"math"

	"github.com/tspooner/rsrl-sub001/buffer"
	"github.com/tspooner/rsrl-sub001/utils/floatutils"
	"github.com/tspooner/rsrl-sub001/utils/matutils/tilecoder"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

// TileCoding is a Basis of offset grid tilings over a bounded state
// space. Exactly one tile of each tiling is active for any state, so
// features are sparse with activation 1.0.
type TileCoding struct {
	coder *tilecoder.TileCoder
}

// NewTileCoding returns a tile coding basis. See tilecoder.New for the
// meaning of the arguments.
func NewTileCoding(min, max mat.Vector, bins [][]int, seed uint64,
	bias bool) (*TileCoding, error) {
	coder, err := tilecoder.New(min, max, bins, seed, bias)
	if err != nil {
		return nil, fmt.Errorf("newTileCoding: %v", err)
	}
	return &TileCoding{coder}, nil
}

// Project returns the sparse tile coded features of state
func (t *TileCoding) Project(state mat.Vector) (*buffer.Features, error) {
	if err := checkInput("tileCoding", t, state); err != nil {
		return nil, err
	}
	return buffer.NewSparseFeatures(t.Dim(), t.coder.EncodeIndices(state)),
		nil
}

// Dim returns the number of features
func (t *TileCoding) Dim() int {
	return t.coder.VecLength()
}

// InputDim returns the dimension of states
func (t *TileCoding) InputDim() int {
	return t.coder.Dims()
}

// Config returns the configuration of the basis
func (t *TileCoding) Config() Config {
	min, max := t.coder.Bounds()
	return TileCodingConfig{
		Min:  min,
		Max:  max,
		Bins: t.coder.Bins(),
		Seed: t.coder.Seed(),
		Bias: t.coder.IncludeBias(),
	}
}

func (t *TileCoding) String() string {
	return t.coder.String()
}

// TileCodingConfig configures a TileCoding basis
type TileCodingConfig struct {
	Min, Max []float64
	Bins     [][]int
	Seed     uint64
	Bias     bool
}

// Create returns the TileCoding basis described by the config
func (c TileCodingConfig) Create() (Basis, error) {
	if len(c.Min) == 0 || len(c.Min) != len(c.Max) {
		return nil, fmt.Errorf("create: invalid tile coding bounds %v, %v",
			c.Min, c.Max)
	}
	min := mat.NewVecDense(len(c.Min), append([]float64(nil), c.Min...))
	max := mat.NewVecDense(len(c.Max), append([]float64(nil), c.Max...))
	return NewTileCoding(min, max, c.Bins, c.Seed, c.Bias)
}

// ValidType returns if the given Basis type is a valid type to be
// created with this config.
func (c TileCodingConfig) ValidType(t Type) bool {
	return t == TileCodingType
}

// UniformGrid partitions a bounded state space into a single grid of
// equally sized cells. Exactly one feature, the cell containing the
// state, is active. States outside the limits activate the outermost
// cell.
type UniformGrid struct {
	limits []r1.Interval
	cells  []int
}

// NewUniformGrid returns a uniform grid with cells[i] partitions along
// dimension i
func NewUniformGrid(limits []r1.Interval, cells []int) (*UniformGrid,
	error) {
	if err := checkLimits("newUniformGrid", limits); err != nil {
		return nil, err
	}
	if len(cells) != len(limits) {
		return nil, &DimensionError{Basis: "newUniformGrid",
			Want: len(limits), Have: len(cells)}
	}
	for i, c := range cells {
		if c < 1 {
			return nil, fmt.Errorf("newUniformGrid: %d cells along "+
				"dimension %d", c, i)
		}
	}
	return &UniformGrid{copyLimits(limits), append([]int(nil), cells...)},
		nil
}

// Index returns the index of the cell containing state, cells are
// ordered row major with the last dimension varying fastest
func (u *UniformGrid) Index(state mat.Vector) int {
	index := 0
	for i, l := range u.limits {
		cell := math.Floor(normalise(state.AtVec(i), l) * float64(u.cells[i]))
		cell = floatutils.Clip(cell, 0, float64(u.cells[i]-1))
		index = index*u.cells[i] + int(cell)
	}
	return index
}

// Project returns the sparse one-hot features of state
func (u *UniformGrid) Project(state mat.Vector) (*buffer.Features, error) {
	if err := checkInput("uniformGrid", u, state); err != nil {
		return nil, err
	}
	return buffer.NewSparseFeatures(u.Dim(), []int{u.Index(state)}), nil
}

// Dim returns the number of cells
func (u *UniformGrid) Dim() int {
	n := 1
	for _, c := range u.cells {
		n *= c
	}
	return n
}

// InputDim returns the dimension of states
func (u *UniformGrid) InputDim() int {
	return len(u.limits)
}

// Config returns the configuration of the basis
func (u *UniformGrid) Config() Config {
	return UniformGridConfig{copyLimits(u.limits),
		append([]int(nil), u.cells...)}
}

// UniformGridConfig configures a UniformGrid basis
type UniformGridConfig struct {
	Limits []r1.Interval
	Cells  []int
}

// Create returns the UniformGrid basis described by the config
func (c UniformGridConfig) Create() (Basis, error) {
	return NewUniformGrid(c.Limits, c.Cells)
}

// ValidType returns if the given Basis type is a valid type to be
// created with this config.
func (c UniformGridConfig) ValidType(t Type) bool {
	return t == UniformGridType
}
