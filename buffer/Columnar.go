package buffer

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Columnar places a feature vector in some of the columns of an
// (n x k) Buffer, leaving every other column zero. It is the gradient
// of a linear function with k outputs with respect to its weights when
// only some outputs are implicated, e.g. the column of a single action
// in an action-value function.
type Columnar struct {
	features *Features
	cols     []int // sorted, distinct
	nCols    int
}

// NewColumnar returns a Columnar Buffer with k columns, where the
// argument features fill each column in cols. NewColumnar panics if
// any column is out of range.
func NewColumnar(features *Features, k int, cols ...int) *Columnar {
	seen := make(map[int]bool, len(cols))
	unique := make([]int, 0, len(cols))
	for _, c := range cols {
		if c < 0 || c >= k {
			panic(fmt.Sprintf("newColumnar: column %v out of range [0, %v)",
				c, k))
		}
		if !seen[c] {
			seen[c] = true
			unique = append(unique, c)
		}
	}
	sort.Ints(unique)

	return &Columnar{features, unique, k}
}

// Broadcast returns a Columnar Buffer with features in every one of its
// k columns
func Broadcast(features *Features, k int) *Columnar {
	cols := make([]int, k)
	for i := range cols {
		cols[i] = i
	}
	return &Columnar{features, cols, k}
}

// Features returns the feature vector held in each active column
func (c *Columnar) Features() *Features {
	return c.features
}

// Columns returns the active columns
func (c *Columnar) Columns() []int {
	cols := make([]int, len(c.cols))
	copy(cols, c.cols)
	return cols
}

func (c *Columnar) Shape() Shape {
	return Shape{c.features.Len(), c.nCols}
}

func (c *Columnar) active(col int) bool {
	i := sort.SearchInts(c.cols, col)
	return i < len(c.cols) && c.cols[i] == col
}

func (c *Columnar) At(r, col int) float64 {
	if !c.active(col) {
		return 0
	}
	return c.features.Get(r)
}

// ForEachActive visits the active entries in row major order
func (c *Columnar) ForEachActive(fn func(r, col int, v float64)) {
	c.features.ForEachFeature(func(i int, v float64) {
		for _, col := range c.cols {
			fn(i, col, v)
		}
	})
}

func (c *Columnar) AddTo(w *mat.Dense) error {
	return c.ScaledAddTo(1.0, w)
}

func (c *Columnar) ScaledAddTo(alpha float64, w *mat.Dense) error {
	if err := checkTarget("scaledAddTo", c.Shape(), w); err != nil {
		return err
	}
	scaledAddActive(alpha, c, w)
	return nil
}

func (c *Columnar) ToDense() *mat.Dense {
	return toDense(c)
}

func (c *Columnar) Clone() Buffer {
	return &Columnar{c.features.CloneFeatures(), c.Columns(), c.nCols}
}

func (c *Columnar) Map(f func(float64) float64) Buffer {
	if f(0) != 0 {
		out := Zeros(c.Shape())
		out.MapInPlace(f)
		c.ForEachActive(func(r, col int, v float64) {
			out.mat.Set(r, col, f(v))
		})
		return out
	}
	return &Columnar{c.features.MapFeatures(f), c.Columns(), c.nCols}
}

func (c *Columnar) MapInPlace(f func(float64) float64) {
	mustPreserveZero("mapInPlace", f)
	c.features.MapInPlace(f)
}
