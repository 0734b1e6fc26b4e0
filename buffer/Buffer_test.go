package buffer

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func sparseFrom(rows, cols int, entries map[Index]float64) *Sparse {
	s := NewSparse(Shape{rows, cols})
	for ind, v := range entries {
		s.Set(ind.Row, ind.Col, v)
	}
	return s
}

func TestCombineSparseDenseEquivalence(t *testing.T) {
	a := sparseFrom(3, 2, map[Index]float64{{0, 0}: 1.5, {2, 1}: -2})
	b := sparseFrom(3, 2, map[Index]float64{{0, 0}: 0.5, {1, 1}: 4})

	ops := map[string]func(x, y float64) float64{
		"add": func(x, y float64) float64 { return x + y },
		"mul": func(x, y float64) float64 { return x * y },
		"max": math.Max,
		"shift": func(x, y float64) float64 {
			return x - y + 1 // f(0, 0) != 0
		},
	}

	for name, f := range ops {
		sparse, err := Combine(a, b, f)
		if err != nil {
			t.Fatalf("%v: %v", name, err)
		}
		dense, err := Combine(NewDense(a.ToDense()), NewDense(b.ToDense()), f)
		if err != nil {
			t.Fatalf("%v: %v", name, err)
		}
		mixed, err := Combine(a, NewDense(b.ToDense()), f)
		if err != nil {
			t.Fatalf("%v: %v", name, err)
		}

		want := mat.NewDense(3, 2, nil)
		want.Apply(func(i, j int, _ float64) float64 {
			return f(a.At(i, j), b.At(i, j))
		}, want)

		for _, got := range []Buffer{sparse, dense, mixed} {
			if !mat.Equal(got.ToDense(), want) {
				t.Errorf("%v: combine with %T \n\twant: %v \n\thave: %v", name,
					got, want, got.ToDense())
			}
		}

		if f(0, 0) == 0 {
			if _, ok := sparse.(*Sparse); !ok {
				t.Errorf("%v: expected sparse result, got %T", name, sparse)
			}
		} else if _, ok := sparse.(*Dense); !ok {
			t.Errorf("%v: expected dense result, got %T", name, sparse)
		}
	}
}

func TestCombineShapeMismatch(t *testing.T) {
	a := Zeros(Shape{2, 2})
	b := Zeros(Shape{2, 3})

	_, err := Combine(a, b, func(x, y float64) float64 { return x + y })
	var mismatch *ShapeMismatch
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected shape mismatch, got %v", err)
	}
	if mismatch.Want != (Shape{2, 2}) || mismatch.Have != (Shape{2, 3}) {
		t.Errorf("unexpected mismatch %v", mismatch)
	}
}

func TestFeaturesSparseDenseEquivalence(t *testing.T) {
	sparse := NewSparseFeaturesFrom(5, map[int]float64{1: 0.5, 4: -1})
	dense := NewDenseFeatures([]float64{0, 0.5, 0, 0, -1})

	w := mat.NewDense(5, 2, []float64{
		1, 2,
		3, 4,
		5, 6,
		7, 8,
		9, 10,
	})

	for col := 0; col < 2; col++ {
		s, err := sparse.Dot(w, col)
		if err != nil {
			t.Fatal(err)
		}
		d, err := dense.Dot(w, col)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(s-d) > 1e-12 {
			t.Errorf("column %v: sparse dot %v != dense dot %v", col, s, d)
		}
	}

	got, err := CombineFeatures(sparse, dense, func(x, y float64) float64 {
		return x*y + 1
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 1.25, 1, 1, 2}
	for i, v := range got.Values() {
		if v != want[i] {
			t.Errorf("combine index %v: want %v, have %v", i, want[i], v)
		}
	}
}

func TestScaledAddToExact(t *testing.T) {
	features := NewSparseFeatures(4, []int{0, 2})
	grads := []Buffer{
		features,
		NewDense(features.ToDense()),
		NewTile(4, []int{0}),
	}

	for _, g := range grads {
		w := mat.NewDense(4, 1, []float64{1, 1, 1, 1})
		if err := g.ScaledAddTo(0.25, w); err != nil {
			t.Fatal(err)
		}

		for i := 0; i < 4; i++ {
			want := 1 + 0.25*g.At(i, 0)
			if w.At(i, 0) != want {
				t.Errorf("%T row %v: want %v, have %v", g, i, want, w.At(i, 0))
			}
		}
	}
}

func TestScaledAddToShapeMismatchLeavesWeights(t *testing.T) {
	w := mat.NewDense(3, 1, []float64{1, 2, 3})
	before := mat.DenseCopyOf(w)

	g := NewDenseFeatures([]float64{1, 1})
	err := g.ScaledAddTo(1.0, w)

	var mismatch *ShapeMismatch
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected shape mismatch, got %v", err)
	}
	if !mat.Equal(w, before) {
		t.Errorf("weights modified on failed update: %v", w)
	}
}

func TestSparseMap(t *testing.T) {
	s := sparseFrom(2, 2, map[Index]float64{{1, 0}: 2})

	doubled := s.Map(func(x float64) float64 { return 2 * x })
	if _, ok := doubled.(*Sparse); !ok {
		t.Errorf("zero preserving map should stay sparse, got %T", doubled)
	}
	if doubled.At(1, 0) != 4 || s.At(1, 0) != 2 {
		t.Errorf("map should not modify receiver")
	}

	shifted := s.Map(func(x float64) float64 { return x + 1 })
	want := mat.NewDense(2, 2, []float64{1, 1, 3, 1})
	if !mat.Equal(shifted.ToDense(), want) {
		t.Errorf("want %v, have %v", want, shifted.ToDense())
	}
}

func TestSparseMapInPlacePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic when mapping structural zeros")
		}
	}()
	NewSparse(Shape{2, 2}).MapInPlace(math.Exp)
}

func TestColumnar(t *testing.T) {
	f := NewDenseFeatures([]float64{1, 2, 3})
	c := NewColumnar(f, 3, 1)

	want := mat.NewDense(3, 3, []float64{
		0, 1, 0,
		0, 2, 0,
		0, 3, 0,
	})
	if !mat.Equal(c.ToDense(), want) {
		t.Errorf("want %v, have %v", want, c.ToDense())
	}

	w := mat.NewDense(3, 3, nil)
	if err := c.ScaledAddTo(2, w); err != nil {
		t.Fatal(err)
	}
	want.Scale(2, want)
	if !mat.Equal(w, want) {
		t.Errorf("want %v, have %v", want, w)
	}

	b := Broadcast(f, 2)
	for col := 0; col < 2; col++ {
		for row := 0; row < 3; row++ {
			if b.At(row, col) != f.Get(row) {
				t.Errorf("broadcast (%v, %v): want %v, have %v", row, col,
					f.Get(row), b.At(row, col))
			}
		}
	}
}

func TestTile(t *testing.T) {
	tile := NewTile(4, []int{2, -1, 0})

	want := mat.NewDense(4, 3, []float64{
		0, 0, 1,
		0, 0, 0,
		1, 0, 0,
		0, 0, 0,
	})
	if !mat.Equal(tile.ToDense(), want) {
		t.Errorf("want %v, have %v", want, tile.ToDense())
	}

	half := tile.Map(func(x float64) float64 { return x / 2 })
	want.Scale(0.5, want)
	if !mat.Equal(half.ToDense(), want) {
		t.Errorf("want %v, have %v", want, half.ToDense())
	}
}

func TestDenseCombineInPlace(t *testing.T) {
	d := NewDense(mat.NewDense(2, 1, []float64{0.5, -0.5}))
	g := NewSparseFeatures(2, []int{0})

	if err := d.CombineInPlace(g, func(x, y float64) float64 {
		return x + y
	}); err != nil {
		t.Fatal(err)
	}
	if d.At(0, 0) != 1.5 || d.At(1, 0) != -0.5 {
		t.Errorf("unexpected result %v", d.Matrix())
	}
}

func BenchmarkSparseScaledAddTo(b *testing.B) {
	indices := make([]int, 32)
	for i := range indices {
		indices[i] = i * 31
	}
	f := NewSparseFeatures(1024, indices)
	w := mat.NewDense(1024, 1, nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.ScaledAddTo(0.01, w)
	}
}
