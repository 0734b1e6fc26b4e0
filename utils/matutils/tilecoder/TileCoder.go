// Package tilecoder implements tile coding of vectors
package tilecoder

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/samplemv"

	"github.com/tspooner/rsrl-sub001/utils/floatutils"
)

// Controls tiling offsets. For each dimension, tilings are offset by
// randomly sampling from a uniform distribution with support
// [- tiling width/OffsetDiv, tiling width/OffsetDiv]
const OffsetDiv float64 = 1.5

// TileCoder implements functionality for tile coding a vector. Tile
// coding takes a low-dimensional vector and changes it into a large,
// sparse vector consisting of only 0's and 1's. Each 1 represents the
// coordinates of the original vector in some space of tilings:
//
//		[0.5, 0.1] -> [0, 0, 0, 1, 0, 0, 1, 0]
//
// The number of nonzero elements in the tile-coded representation equals
// the number of tilings used to encode the vector, plus one if a bias
// unit is used. Tile coding requires that the space to be tiled be
// bounded. Vectors outside the bounds are coded in the outermost tiles.
//
// Each dimension of state space is fully tiled by every tiling, no
// hashing is performed. Tilings may use a different number of tiles
// along each dimension.
type TileCoder struct {
	numTilings  int
	minDims     []float64
	maxDims     []float64
	offsets     [][]float64
	bins        [][]int
	binLengths  [][]float64
	seed        uint64
	includeBias bool
}

// New creates and returns a new TileCoder. The minDims and maxDims
// arguments are the bounds on each dimension between which tilings will
// be placed. These arguments should have the same shape as vectors
// which will be tile coded.
//
// The bins argument determines both the number of tilings to use and
// the number of tiles per each tiling. The number of elements in the
// outer slice determines the number of tilings to use. The sub-slices
// determine how many tiles are placed along each dimension for the
// respective tiling. For example, if bins := [][]int{{2, 2}, {4, 3}},
// then the TileCoder uses two tilings. The first tiling is a 2x2
// tiling. The second tiling uses 4 tiles along the first dimension and
// 3 tiles along the second dimension.
//
// Tiling offsets are sampled once from seed, so two TileCoders created
// with the same arguments code every vector identically.
//
// The parameter includeBias determines whether or not a bias unit is
// kept as the first unit in the tile coded representation.
func New(minDims, maxDims mat.Vector, bins [][]int,
	seed uint64, includeBias bool) (*TileCoder, error) {
	if minDims.Len() != maxDims.Len() {
		return nil, fmt.Errorf("new: cannot specify minimum with fewer "+
			"dimensions than maximum: %d != %d", minDims.Len(), maxDims.Len())
	}
	if len(bins) == 0 {
		return nil, fmt.Errorf("new: cannot have less than 1 tiling")
	}

	dims := minDims.Len()
	for j := range bins {
		if len(bins[j]) != dims {
			return nil, fmt.Errorf("new: there should be a single number of "+
				"bins for each dimension in tiling %d \n\thave: %d \n\twant: %d",
				j, len(bins[j]), dims)
		}
		for i, b := range bins[j] {
			if b < 1 {
				return nil, fmt.Errorf("new: tiling %d has %d bins along "+
					"dimension %d", j, b, i)
			}
		}
	}

	min := make([]float64, dims)
	max := make([]float64, dims)
	for i := 0; i < dims; i++ {
		min[i], max[i] = minDims.AtVec(i), maxDims.AtVec(i)
		if max[i] <= min[i] {
			return nil, fmt.Errorf("new: empty bounds [%v, %v] along "+
				"dimension %d", min[i], max[i], i)
		}
	}

	// Calculate the length of bins and the tiling offset bounds
	var bounds []r1.Interval
	numTilings := len(bins)
	binLengths := make([][]float64, numTilings)

	for j := 0; j < numTilings; j++ {
		binLengths[j] = make([]float64, dims)

		for i := 0; i < dims; i++ {
			binLength := (max[i] - min[i]) / float64(bins[j][i])
			bound := binLength / OffsetDiv // Bounds tiling offsets

			binLengths[j][i] = binLength
			bounds = append(bounds, r1.Interval{Min: -bound, Max: bound})
		}
	}

	// All tiling offsets are drawn in a single sample so that each
	// tiling's offset depends only on the seed
	source := rand.NewSource(seed)
	u := distmv.NewUniform(bounds, source)
	sampler := samplemv.IID{Dist: u}

	samples := mat.NewDense(1, len(bounds), nil)
	sampler.Sample(samples)

	offsets := make([][]float64, numTilings)
	for j := 0; j < numTilings; j++ {
		offsets[j] = make([]float64, dims)
		copy(offsets[j], samples.RawRowView(0)[j*dims:(j+1)*dims])
	}

	binsCopy := make([][]int, numTilings)
	for j := range bins {
		binsCopy[j] = append([]int(nil), bins[j]...)
	}

	return &TileCoder{numTilings, min, max, offsets, binsCopy, binLengths,
		seed, includeBias}, nil
}

// featuresBeforeTiling calculates how many features exist in the
// tile-coded representation before tiling number i
func (t *TileCoder) featuresBeforeTiling(i int) int {
	features := 0
	for j := 0; j < i; j++ {
		features += prod(t.bins[j])
	}
	return features
}

// encodeWithTiling returns the index of the tile coded feature vector
// which should be a 1.0 when the input vector v is encoded with tiling
// number tiling in the TileCoder.
func (t *TileCoder) encodeWithTiling(v mat.Vector, tiling int) int {
	bias := 0
	if t.includeBias {
		bias = 1
	}

	// indexOffset is the index into the tile-coded vector at which
	// the current tiling will start
	indexOffset := t.featuresBeforeTiling(tiling)
	index := 0
	stride := 1

	// Row major ordering of tiles, the last dimension varies fastest
	for i := len(t.bins[tiling]) - 1; i > -1; i-- {
		data := v.AtVec(i) + t.offsets[tiling][i]

		// Calculate the index of the tile along the current feature
		// dimension in which the feature falls
		tile := math.Floor((data - t.minDims[i]) / t.binLengths[tiling][i])
		tile = floatutils.Clip(tile, 0.0, float64(t.bins[tiling][i]-1))

		index += int(tile) * stride
		stride *= t.bins[tiling][i]
	}
	return indexOffset + index + bias
}

// EncodeIndices returns the non-zero indices in the tile coded vector
// when v is tile coded with the receiving TileCoder t. The bias index,
// if used, is 0 and comes first.
func (t *TileCoder) EncodeIndices(v mat.Vector) []int {
	if v.Len() != len(t.minDims) {
		panic(fmt.Sprintf("encodeIndices: incorrect size \n\twant: %d "+
			"\n\thave: %d", len(t.minDims), v.Len()))
	}

	indices := make([]int, 0, t.numTilings+1)
	if t.includeBias {
		indices = append(indices, 0)
	}
	for i := 0; i < t.numTilings; i++ {
		indices = append(indices, t.encodeWithTiling(v, i))
	}
	return indices
}

// Encode encodes a single vector as a tile-coded vector
func (t *TileCoder) Encode(v mat.Vector) *mat.VecDense {
	tileCoded := mat.NewVecDense(t.VecLength(), nil)

	for _, index := range t.EncodeIndices(v) {
		tileCoded.SetVec(index, 1.0)
	}
	return tileCoded
}

// String returns a string representation of a *TileCoder
func (t *TileCoder) String() string {
	return fmt.Sprintf("Tilings %d  |  Tiles: %v", t.numTilings, t.bins)
}

// VecLength returns the number of features in a tile-coded vector
func (t *TileCoder) VecLength() int {
	baseVec := t.featuresBeforeTiling(t.numTilings)
	if t.includeBias {
		return baseVec + 1
	}
	return baseVec
}

// NumTilings returns the number of tilings the tile coder uses for
// encoding vectors
func (t *TileCoder) NumTilings() int {
	return t.numTilings
}

// Dims returns the dimensionality of vectors that can be tile coded
func (t *TileCoder) Dims() int {
	return len(t.minDims)
}

// Bounds returns copies of the lower and upper bounds of the tiled space
func (t *TileCoder) Bounds() (min, max []float64) {
	min = append([]float64(nil), t.minDims...)
	max = append([]float64(nil), t.maxDims...)
	return min, max
}

// Bins returns a copy of the number of tiles along each dimension of
// each tiling
func (t *TileCoder) Bins() [][]int {
	bins := make([][]int, len(t.bins))
	for j := range t.bins {
		bins[j] = append([]int(nil), t.bins[j]...)
	}
	return bins
}

// Seed returns the seed used to sample tiling offsets
func (t *TileCoder) Seed() uint64 {
	return t.seed
}

// IncludeBias returns whether a bias unit is prepended to the coding
func (t *TileCoder) IncludeBias() bool {
	return t.includeBias
}

// prod calculates the product of all integers in a []int
func prod(i []int) int {
	prod := 1
	for _, v := range i {
		prod *= v
	}
	return prod
}
