// Package buffer implements the numeric containers that gradients,
// feature vectors, and eligibility traces are built from.
//
// Every Buffer has a logical two dimensional shape which matches the
// shape of the weight matrix it will eventually be accumulated into:
// rows index features and columns index outputs. Some Buffers store all
// their entries (Dense), while others store only their nonzero entries
// (Sparse, Columnar, Tile, and sparse Features). Entries which are not
// stored are structural zeros, and every operation treats them exactly
// as if the Buffer had been expanded to a Dense Buffer first.
package buffer

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Shape is the logical shape of a Buffer
type Shape struct {
	Rows, Cols int
}

// ShapeOf returns the shape of a matrix
func ShapeOf(m mat.Matrix) Shape {
	r, c := m.Dims()
	return Shape{r, c}
}

func (s Shape) String() string {
	return fmt.Sprintf("(%d x %d)", s.Rows, s.Cols)
}

// Buffer is a numeric container with a fixed logical shape
type Buffer interface {
	Shape() Shape

	// At returns the entry at row r and column c. Entries that are not
	// stored are zero.
	At(r, c int) float64

	// ForEachActive calls fn on each stored entry. Dense Buffers visit
	// every entry. The visiting order is deterministic.
	ForEachActive(fn func(r, c int, v float64))

	// AddTo accumulates the Buffer into w in place
	AddTo(w *mat.Dense) error

	// ScaledAddTo accumulates alpha times the Buffer into w in place
	ScaledAddTo(alpha float64, w *mat.Dense) error

	// ToDense returns a newly allocated dense copy of the Buffer
	ToDense() *mat.Dense

	Clone() Buffer

	// Map returns a new Buffer with f applied elementwise. The receiver
	// is unchanged.
	Map(f func(float64) float64) Buffer

	// MapInPlace applies f elementwise to the receiver. Buffers which
	// store only their nonzero entries panic if f(0) != 0, since their
	// structural zeros cannot change.
	MapInPlace(f func(float64) float64)
}

// Combine merges two Buffers of the same shape elementwise using f. The
// result is numerically identical to applying f to the dense expansion
// of a and b. If neither Buffer is dense and f(0, 0) == 0, the result
// is a *Sparse over the union of the active entries of a and b,
// otherwise it is a *Dense.
func Combine(a, b Buffer, f func(x, y float64) float64) (Buffer, error) {
	if a.Shape() != b.Shape() {
		return nil, &ShapeMismatch{Op: "combine", Want: a.Shape(),
			Have: b.Shape()}
	}

	if !isDense(a) && !isDense(b) && f(0, 0) == 0 {
		out := NewSparse(a.Shape())
		union := func(r, c int, _ float64) {
			out.entries[Index{r, c}] = 0
		}
		a.ForEachActive(union)
		b.ForEachActive(union)

		for ind := range out.entries {
			out.entries[ind] = f(a.At(ind.Row, ind.Col), b.At(ind.Row, ind.Col))
		}
		return out, nil
	}

	out := a.ToDense()
	out.Apply(func(i, j int, v float64) float64 {
		return f(v, b.At(i, j))
	}, out)
	return &Dense{out}, nil
}

// Sum returns the elementwise sum of two Buffers
func Sum(a, b Buffer) (Buffer, error) {
	return Combine(a, b, func(x, y float64) float64 { return x + y })
}

// Norm returns the Euclidean norm of the Buffer's entries
func Norm(b Buffer) float64 {
	var sq []float64
	b.ForEachActive(func(_, _ int, v float64) {
		sq = append(sq, v)
	})
	return floats.Norm(sq, 2)
}

// isDense returns whether a Buffer stores every one of its entries
func isDense(b Buffer) bool {
	switch b := b.(type) {
	case *Dense:
		return true
	case *Features:
		return b.IsDense()
	}
	return false
}

// checkTarget ensures that a Buffer of shape s may be accumulated into
// the weight matrix w
func checkTarget(op string, s Shape, w *mat.Dense) error {
	if w == nil {
		return fmt.Errorf("%v: cannot accumulate into nil weights", op)
	}
	if have := ShapeOf(w); have != s {
		return &ShapeMismatch{Op: op, Want: s, Have: have}
	}
	return nil
}

// scaledAddActive accumulates alpha times the active entries of b into
// w. The caller must have validated the shape of w.
func scaledAddActive(alpha float64, b Buffer, w *mat.Dense) {
	b.ForEachActive(func(r, c int, v float64) {
		w.Set(r, c, w.At(r, c)+alpha*v)
	})
}

// toDense expands any Buffer into a newly allocated *mat.Dense
func toDense(b Buffer) *mat.Dense {
	s := b.Shape()
	out := mat.NewDense(s.Rows, s.Cols, nil)
	b.ForEachActive(func(r, c int, v float64) {
		out.Set(r, c, v)
	})
	return out
}

// mustPreserveZero panics if f does not map zero to zero
func mustPreserveZero(op string, f func(float64) float64) {
	if v := f(0); v != 0 {
		panic(fmt.Sprintf("%v: cannot map structural zeros to %v in place",
			op, v))
	}
}
