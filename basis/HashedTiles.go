package basis

import (
	"fmt"
	"math"

	"github.com/tspooner/rsrl-sub001/buffer"
	"github.com/tspooner/rsrl-sub001/utils/floatutils"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

const (
	// Size of the random table used for UNH hashing
	hashTableSize = 2048

	// Offset into the random table between successive coordinates
	hashIncrement = 449

	// Largest scaled input whose tile coordinate is an exact integer
	maxTileCoordinate = 1 << 52
)

// HashedTiles implements Sutton's hashed tile coding. The state is
// scaled so that a unit interval holds one tile of each tiling, then
// quantised into nTilings offset tilings. The coordinates of the active
// tile of each tiling, together with the tiling number and any extra
// integer inputs, are hashed into [0, memory) with universal hashing
// over a random table.
//
// The random table is drawn from seed, so two HashedTiles with the same
// parameters always produce the same indices for the same input.
type HashedTiles struct {
	nTilings int
	memory   int
	scale    []float64
	ints     []int
	seed     uint64
	table    [hashTableSize]int64
}

// NewHashedTiles returns a hashed tile coding basis with nTilings
// tilings hashed into memory features. State dimension i is multiplied
// by scale[i] before tiling, so 1/scale[i] is the width of a tile. The
// optional ints are appended to the hashed coordinates of every state,
// which can be used to separate several codings sharing one memory.
func NewHashedTiles(nTilings, memory int, scale []float64, seed uint64,
	ints ...int) (*HashedTiles, error) {
	if nTilings < 1 {
		return nil, fmt.Errorf("newHashedTiles: need at least one tiling, "+
			"have %d", nTilings)
	}
	if memory < 1 {
		return nil, fmt.Errorf("newHashedTiles: memory must be positive, "+
			"have %d", memory)
	}
	if len(scale) == 0 {
		return nil, fmt.Errorf("newHashedTiles: no scale given")
	}

	h := &HashedTiles{
		nTilings: nTilings,
		memory:   memory,
		scale:    append([]float64(nil), scale...),
		ints:     append([]int(nil), ints...),
		seed:     seed,
	}

	rng := rand.New(rand.NewSource(seed))
	for i := range h.table {
		h.table[i] = int64(rng.Uint32())
	}
	return h, nil
}

// Tiles returns the nTilings active indices for the given continuous
// and integer inputs. Continuous inputs are used as given, without
// scaling.
func (h *HashedTiles) Tiles(floats []float64, ints []int) []int {
	numFloats := len(floats)
	qstate := make([]int, numFloats)
	base := make([]int, numFloats)
	for i, f := range floats {
		qstate[i] = int(math.Floor(f * float64(h.nTilings)))
	}

	// floats, then the tiling number, then the integer inputs
	coordinates := make([]int, numFloats+1+len(ints))
	copy(coordinates[numFloats+1:], ints)

	tiles := make([]int, h.nTilings)
	for j := 0; j < h.nTilings; j++ {
		for i := 0; i < numFloats; i++ {
			if qstate[i] >= base[i] {
				coordinates[i] = qstate[i] - (qstate[i]-base[i])%h.nTilings
			} else {
				coordinates[i] = qstate[i] + 1 +
					(base[i]-qstate[i]-1)%h.nTilings - h.nTilings
			}

			// Displacement of the next tiling
			base[i] += 1 + 2*i
		}
		coordinates[numFloats] = j

		tiles[j] = h.hash(coordinates)
	}
	return tiles
}

// hash implements universal hashing of coordinates into [0, memory)
func (h *HashedTiles) hash(coordinates []int) int {
	var sum int64
	for i, c := range coordinates {
		index := (c + hashIncrement*i) % hashTableSize
		if index < 0 {
			index += hashTableSize
		}
		sum += h.table[index]
	}

	index := sum % int64(h.memory)
	if index < 0 {
		index += int64(h.memory)
	}
	return int(index)
}

// Project returns the sparse hashed tile features of state
func (h *HashedTiles) Project(state mat.Vector) (*buffer.Features, error) {
	if err := checkInput("hashedTiles", h, state); err != nil {
		return nil, err
	}

	floats := make([]float64, state.Len())
	for i := range floats {
		floats[i] = state.AtVec(i) * h.scale[i]
		q := floats[i] * float64(h.nTilings)
		if !floatutils.Finite(q) || math.Abs(q) > maxTileCoordinate {
			return nil, fmt.Errorf("hashedTiles: cannot tile value %v along "+
				"dimension %d", state.AtVec(i), i)
		}
	}
	return buffer.NewSparseFeatures(h.memory, h.Tiles(floats, h.ints)), nil
}

// Dim returns the size of the hashed memory
func (h *HashedTiles) Dim() int {
	return h.memory
}

// InputDim returns the dimension of states
func (h *HashedTiles) InputDim() int {
	return len(h.scale)
}

// NumTilings returns the number of tilings
func (h *HashedTiles) NumTilings() int {
	return h.nTilings
}

// Config returns the configuration of the basis
func (h *HashedTiles) Config() Config {
	return HashedTilesConfig{
		Tilings: h.nTilings,
		Memory:  h.memory,
		Scale:   append([]float64(nil), h.scale...),
		Ints:    append([]int(nil), h.ints...),
		Seed:    h.seed,
	}
}

// HashedTilesConfig configures a HashedTiles basis
type HashedTilesConfig struct {
	Tilings int
	Memory  int
	Scale   []float64
	Ints    []int
	Seed    uint64
}

// Create returns the HashedTiles basis described by the config
func (c HashedTilesConfig) Create() (Basis, error) {
	return NewHashedTiles(c.Tilings, c.Memory, c.Scale, c.Seed, c.Ints...)
}

// ValidType returns if the given Basis type is a valid type to be
// created with this config.
func (c HashedTilesConfig) ValidType(t Type) bool {
	return t == HashedTilesType
}
