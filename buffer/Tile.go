package buffer

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Tile is a Buffer with at most one active row per column, each active
// entry holding the same activation. It arises from tiled bases where
// a single tile is active per output.
type Tile struct {
	rows   int
	active []int // active row of each column, -1 if none
	value  float64
}

// NewTile returns a Tile Buffer with len(active) columns. active[c] is
// the active row of column c, or -1 if column c is zero. Active
// entries have activation 1.0.
func NewTile(rows int, active []int) *Tile {
	for c, r := range active {
		if r < -1 || r >= rows {
			panic(fmt.Sprintf("newTile: row %v of column %v out of range "+
				"[0, %v)", r, c, rows))
		}
	}
	a := make([]int, len(active))
	copy(a, active)
	return &Tile{rows, a, 1.0}
}

// Active returns the active row of column c, or -1 if none
func (t *Tile) Active(c int) int {
	return t.active[c]
}

func (t *Tile) Shape() Shape {
	return Shape{t.rows, len(t.active)}
}

func (t *Tile) At(r, c int) float64 {
	if t.active[c] == r {
		return t.value
	}
	return 0
}

// ForEachActive visits the active entries in row major order
func (t *Tile) ForEachActive(fn func(r, c int, v float64)) {
	s := NewSparse(t.Shape())
	for c, r := range t.active {
		if r >= 0 {
			s.entries[Index{r, c}] = t.value
		}
	}
	s.ForEachActive(fn)
}

func (t *Tile) AddTo(w *mat.Dense) error {
	return t.ScaledAddTo(1.0, w)
}

func (t *Tile) ScaledAddTo(alpha float64, w *mat.Dense) error {
	if err := checkTarget("scaledAddTo", t.Shape(), w); err != nil {
		return err
	}
	for c, r := range t.active {
		if r >= 0 {
			w.Set(r, c, w.At(r, c)+alpha*t.value)
		}
	}
	return nil
}

func (t *Tile) ToDense() *mat.Dense {
	return toDense(t)
}

func (t *Tile) Clone() Buffer {
	out := NewTile(t.rows, t.active)
	out.value = t.value
	return out
}

func (t *Tile) Map(f func(float64) float64) Buffer {
	if f(0) != 0 {
		out := Zeros(t.Shape())
		out.MapInPlace(f)
		t.ForEachActive(func(r, c int, v float64) {
			out.mat.Set(r, c, f(v))
		})
		return out
	}

	out := t.Clone()
	out.MapInPlace(f)
	return out
}

func (t *Tile) MapInPlace(f func(float64) float64) {
	mustPreserveZero("mapInPlace", f)
	t.value = f(t.value)
}
