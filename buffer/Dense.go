package buffer

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Dense is a Buffer which stores every one of its entries
type Dense struct {
	mat *mat.Dense
}

// Zeros returns a Dense Buffer of zeros
func Zeros(s Shape) *Dense {
	return &Dense{mat.NewDense(s.Rows, s.Cols, nil)}
}

// NewDense returns a Dense Buffer backed by m. The Buffer takes
// ownership of m.
func NewDense(m *mat.Dense) *Dense {
	return &Dense{m}
}

// Matrix returns the matrix backing the Buffer
func (d *Dense) Matrix() *mat.Dense {
	return d.mat
}

func (d *Dense) Shape() Shape {
	return ShapeOf(d.mat)
}

func (d *Dense) At(r, c int) float64 {
	return d.mat.At(r, c)
}

func (d *Dense) ForEachActive(fn func(r, c int, v float64)) {
	rows, cols := d.mat.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			fn(i, j, d.mat.At(i, j))
		}
	}
}

func (d *Dense) AddTo(w *mat.Dense) error {
	return d.ScaledAddTo(1.0, w)
}

// ScaledAddTo performs w += alpha * d, row by row
func (d *Dense) ScaledAddTo(alpha float64, w *mat.Dense) error {
	if err := checkTarget("scaledAddTo", d.Shape(), w); err != nil {
		return err
	}

	rows, _ := d.mat.Dims()
	for i := 0; i < rows; i++ {
		floats.AddScaled(w.RawRowView(i), alpha, d.mat.RawRowView(i))
	}
	return nil
}

func (d *Dense) ToDense() *mat.Dense {
	return mat.DenseCopyOf(d.mat)
}

func (d *Dense) Clone() Buffer {
	return &Dense{mat.DenseCopyOf(d.mat)}
}

func (d *Dense) Map(f func(float64) float64) Buffer {
	out := d.Clone()
	out.MapInPlace(f)
	return out
}

func (d *Dense) MapInPlace(f func(float64) float64) {
	d.mat.Apply(func(_, _ int, v float64) float64 { return f(v) }, d.mat)
}

// CombineInPlace sets d[i, j] = f(d[i, j], other[i, j]) for all entries
func (d *Dense) CombineInPlace(other Buffer, f func(x, y float64) float64) error {
	if other.Shape() != d.Shape() {
		return &ShapeMismatch{Op: "combineInPlace", Want: d.Shape(),
			Have: other.Shape()}
	}
	d.mat.Apply(func(i, j int, v float64) float64 {
		return f(v, other.At(i, j))
	}, d.mat)
	return nil
}

// Scale multiplies every entry by f
func (d *Dense) Scale(f float64) {
	d.mat.Scale(f, d.mat)
}

// Zero sets all entries to 0
func (d *Dense) Zero() {
	d.mat.Zero()
}
