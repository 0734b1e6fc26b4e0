package buffer

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Index is the position of an entry in a Buffer
type Index struct {
	Row, Col int
}

// Sparse is a Buffer that stores only its active entries
type Sparse struct {
	shape   Shape
	entries map[Index]float64
}

// NewSparse returns an empty Sparse Buffer. All entries are zero.
func NewSparse(s Shape) *Sparse {
	return &Sparse{s, make(map[Index]float64)}
}

// Set sets the entry at (r, c). Set panics if the index is out of
// bounds.
func (s *Sparse) Set(r, c int, v float64) {
	if r < 0 || r >= s.shape.Rows || c < 0 || c >= s.shape.Cols {
		panic("set: index out of range")
	}
	s.entries[Index{r, c}] = v
}

// NumActive returns the number of stored entries
func (s *Sparse) NumActive() int {
	return len(s.entries)
}

func (s *Sparse) Shape() Shape {
	return s.shape
}

func (s *Sparse) At(r, c int) float64 {
	return s.entries[Index{r, c}]
}

// ForEachActive visits the stored entries in row major order
func (s *Sparse) ForEachActive(fn func(r, c int, v float64)) {
	for _, ind := range s.sortedIndices() {
		fn(ind.Row, ind.Col, s.entries[ind])
	}
}

func (s *Sparse) AddTo(w *mat.Dense) error {
	return s.ScaledAddTo(1.0, w)
}

func (s *Sparse) ScaledAddTo(alpha float64, w *mat.Dense) error {
	if err := checkTarget("scaledAddTo", s.shape, w); err != nil {
		return err
	}
	scaledAddActive(alpha, s, w)
	return nil
}

func (s *Sparse) ToDense() *mat.Dense {
	return toDense(s)
}

func (s *Sparse) Clone() Buffer {
	out := NewSparse(s.shape)
	for ind, v := range s.entries {
		out.entries[ind] = v
	}
	return out
}

// Map applies f to the Buffer. The result stays sparse only if f
// preserves zeros.
func (s *Sparse) Map(f func(float64) float64) Buffer {
	if f(0) != 0 {
		out := Zeros(s.shape)
		out.MapInPlace(f)
		for ind, v := range s.entries {
			out.mat.Set(ind.Row, ind.Col, f(v))
		}
		return out
	}

	out := s.Clone().(*Sparse)
	out.MapInPlace(f)
	return out
}

func (s *Sparse) MapInPlace(f func(float64) float64) {
	mustPreserveZero("mapInPlace", f)
	for ind, v := range s.entries {
		s.entries[ind] = f(v)
	}
}

func (s *Sparse) sortedIndices() []Index {
	indices := make([]Index, 0, len(s.entries))
	for ind := range s.entries {
		indices = append(indices, ind)
	}
	sort.Slice(indices, func(i, j int) bool {
		if indices[i].Row == indices[j].Row {
			return indices[i].Col < indices[j].Col
		}
		return indices[i].Row < indices[j].Row
	})
	return indices
}
