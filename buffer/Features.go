package buffer

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Features is a feature vector produced by a basis. It is either dense,
// storing an activation for every feature, or sparse, storing only the
// active features. Both representations behave identically in every
// operation.
//
// Features implement Buffer with shape (Len() x 1).
type Features struct {
	n      int
	dense  []float64       // nil if sparse
	active map[int]float64 // nil if dense
}

// NewDenseFeatures returns dense Features holding values. The Features
// take ownership of values.
func NewDenseFeatures(values []float64) *Features {
	return &Features{n: len(values), dense: values}
}

// NewSparseFeatures returns sparse Features of length n where each
// index in indices has activation 1.0. Repeated indices are active
// once.
func NewSparseFeatures(n int, indices []int) *Features {
	active := make(map[int]float64, len(indices))
	for _, i := range indices {
		if i < 0 || i >= n {
			panic(fmt.Sprintf("newSparseFeatures: index %v out of range "+
				"[0, %v)", i, n))
		}
		active[i] = 1.0
	}
	return &Features{n: n, active: active}
}

// NewSparseFeaturesFrom returns sparse Features of length n with the
// given activations
func NewSparseFeaturesFrom(n int, activations map[int]float64) *Features {
	active := make(map[int]float64, len(activations))
	for i, v := range activations {
		if i < 0 || i >= n {
			panic(fmt.Sprintf("newSparseFeaturesFrom: index %v out of "+
				"range [0, %v)", i, n))
		}
		active[i] = v
	}
	return &Features{n: n, active: active}
}

// Len returns the number of features
func (f *Features) Len() int {
	return f.n
}

// IsDense returns whether every activation is stored
func (f *Features) IsDense() bool {
	return f.active == nil
}

// Get returns the activation of feature i
func (f *Features) Get(i int) float64 {
	if f.IsDense() {
		return f.dense[i]
	}
	return f.active[i]
}

// ForEachFeature calls fn on each stored activation in increasing order
// of index
func (f *Features) ForEachFeature(fn func(i int, v float64)) {
	if f.IsDense() {
		for i, v := range f.dense {
			fn(i, v)
		}
		return
	}
	for _, i := range f.Indices() {
		fn(i, f.active[i])
	}
}

// Indices returns the sorted indices of the stored activations
func (f *Features) Indices() []int {
	if f.IsDense() {
		indices := make([]int, f.n)
		for i := range indices {
			indices[i] = i
		}
		return indices
	}

	indices := make([]int, 0, len(f.active))
	for i := range f.active {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices
}

// Values returns the dense expansion of the Features as a new slice
func (f *Features) Values() []float64 {
	if f.IsDense() {
		values := make([]float64, f.n)
		copy(values, f.dense)
		return values
	}

	values := make([]float64, f.n)
	for i, v := range f.active {
		values[i] = v
	}
	return values
}

// VecDense returns the dense expansion of the Features as a vector
func (f *Features) VecDense() *mat.VecDense {
	return mat.NewVecDense(f.n, f.Values())
}

// Dot returns the dot product of the Features with column col of w
func (f *Features) Dot(w mat.Matrix, col int) (float64, error) {
	rows, cols := w.Dims()
	if rows != f.n {
		return 0, &ShapeMismatch{Op: "dot", Want: Shape{f.n, cols},
			Have: Shape{rows, cols}}
	}
	if col < 0 || col >= cols {
		return 0, fmt.Errorf("dot: column %v out of range [0, %v)", col, cols)
	}

	if f.IsDense() {
		if d, ok := w.(*mat.Dense); ok {
			return mat.Dot(mat.NewVecDense(f.n, f.dense), d.ColView(col)), nil
		}
	}

	var dot float64
	f.ForEachFeature(func(i int, v float64) {
		dot += v * w.At(i, col)
	})
	return dot, nil
}

// Concat returns the concatenation of Features. The result is sparse
// only if every argument is sparse.
func Concat(features ...*Features) *Features {
	n := 0
	allSparse := true
	for _, f := range features {
		n += f.n
		allSparse = allSparse && !f.IsDense()
	}

	if allSparse {
		active := make(map[int]float64)
		offset := 0
		for _, f := range features {
			for i, v := range f.active {
				active[offset+i] = v
			}
			offset += f.n
		}
		return &Features{n: n, active: active}
	}

	values := make([]float64, 0, n)
	for _, f := range features {
		values = append(values, f.Values()...)
	}
	return NewDenseFeatures(values)
}

// CombineFeatures merges two Features of equal length elementwise. The
// result is sparse only if both are sparse and fn(0, 0) == 0.
func CombineFeatures(a, b *Features, fn func(x, y float64) float64) (*Features,
	error) {
	if a.n != b.n {
		return nil, &ShapeMismatch{Op: "combineFeatures", Want: a.Shape(),
			Have: b.Shape()}
	}

	if !a.IsDense() && !b.IsDense() && fn(0, 0) == 0 {
		active := make(map[int]float64, len(a.active)+len(b.active))
		for i := range a.active {
			active[i] = 0
		}
		for i := range b.active {
			active[i] = 0
		}
		for i := range active {
			active[i] = fn(a.active[i], b.active[i])
		}
		return &Features{n: a.n, active: active}, nil
	}

	values := a.Values()
	for i := range values {
		values[i] = fn(values[i], b.Get(i))
	}
	return NewDenseFeatures(values), nil
}

// L1 returns the sum of absolute activations
func (f *Features) L1() float64 {
	if f.IsDense() {
		return floats.Norm(f.dense, 1)
	}
	var sum float64
	for _, v := range f.active {
		if v < 0 {
			v = -v
		}
		sum += v
	}
	return sum
}

func (f *Features) Shape() Shape {
	return Shape{f.n, 1}
}

func (f *Features) At(r, c int) float64 {
	if c != 0 {
		panic(fmt.Sprintf("at: column %v out of range for features", c))
	}
	return f.Get(r)
}

func (f *Features) ForEachActive(fn func(r, c int, v float64)) {
	f.ForEachFeature(func(i int, v float64) {
		fn(i, 0, v)
	})
}

func (f *Features) AddTo(w *mat.Dense) error {
	return f.ScaledAddTo(1.0, w)
}

func (f *Features) ScaledAddTo(alpha float64, w *mat.Dense) error {
	if err := checkTarget("scaledAddTo", f.Shape(), w); err != nil {
		return err
	}
	scaledAddActive(alpha, f, w)
	return nil
}

func (f *Features) ToDense() *mat.Dense {
	return mat.NewDense(f.n, 1, f.Values())
}

func (f *Features) Clone() Buffer {
	return f.CloneFeatures()
}

// CloneFeatures returns a deep copy of the Features
func (f *Features) CloneFeatures() *Features {
	if f.IsDense() {
		return NewDenseFeatures(f.Values())
	}
	return NewSparseFeaturesFrom(f.n, f.active)
}

// Map applies fn elementwise. Sparse Features stay sparse only if fn
// preserves zeros.
func (f *Features) Map(fn func(float64) float64) Buffer {
	return f.MapFeatures(fn)
}

// MapFeatures is Map returning *Features
func (f *Features) MapFeatures(fn func(float64) float64) *Features {
	if !f.IsDense() && fn(0) == 0 {
		out := f.CloneFeatures()
		out.MapInPlace(fn)
		return out
	}

	values := f.Values()
	for i, v := range values {
		values[i] = fn(v)
	}
	return NewDenseFeatures(values)
}

func (f *Features) MapInPlace(fn func(float64) float64) {
	if f.IsDense() {
		for i, v := range f.dense {
			f.dense[i] = fn(v)
		}
		return
	}

	mustPreserveZero("mapInPlace", fn)
	for i, v := range f.active {
		f.active[i] = fn(v)
	}
}

// Scale multiplies every activation by s in place
func (f *Features) Scale(s float64) {
	f.MapInPlace(func(v float64) float64 { return v * s })
}
