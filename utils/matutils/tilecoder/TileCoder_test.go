package tilecoder

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func newTestCoder(t testing.TB, seed uint64, bias bool) *TileCoder {
	min := mat.NewVecDense(2, []float64{-1.2, -0.07})
	max := mat.NewVecDense(2, []float64{0.6, 0.07})
	bins := [][]int{{4, 4}, {4, 4}, {2, 3}}

	coder, err := New(min, max, bins, seed, bias)
	if err != nil {
		t.Fatal(err)
	}
	return coder
}

func TestEncodeIndicesOnePerTiling(t *testing.T) {
	coder := newTestCoder(t, 1, false)

	if coder.VecLength() != 16+16+6 {
		t.Fatalf("vecLength: want %v, have %v", 38, coder.VecLength())
	}

	starts := []int{0, 16, 32, 38}
	for _, v := range [][]float64{{-0.5, 0.0}, {-1.2, -0.07}, {0.6, 0.07},
		{5, -5}} {
		indices := coder.EncodeIndices(mat.NewVecDense(2, v))
		if len(indices) != coder.NumTilings() {
			t.Fatalf("want %v indices, have %v", coder.NumTilings(),
				len(indices))
		}
		for tiling, index := range indices {
			if index < starts[tiling] || index >= starts[tiling+1] {
				t.Errorf("%v: index %v of tiling %v outside [%v, %v)", v,
					index, tiling, starts[tiling], starts[tiling+1])
			}
		}
	}
}

func TestEncodeIndicesDeterministic(t *testing.T) {
	a := newTestCoder(t, 42, true)
	b := newTestCoder(t, 42, true)

	v := mat.NewVecDense(2, []float64{-0.3, 0.01})
	first, second := a.EncodeIndices(v), b.EncodeIndices(v)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("same seed coded differently: %v != %v", first, second)
		}
	}
	if first[0] != 0 {
		t.Errorf("bias index should come first, have %v", first[0])
	}

	encoded := a.Encode(v)
	if mat.Sum(encoded) != float64(a.NumTilings()+1) {
		t.Errorf("encoded vector has %v active units, want %v",
			mat.Sum(encoded), a.NumTilings()+1)
	}
}

func TestNewErrors(t *testing.T) {
	min := mat.NewVecDense(2, []float64{0, 0})
	max := mat.NewVecDense(2, []float64{1, 1})

	if _, err := New(min, mat.NewVecDense(1, []float64{1}), [][]int{{2, 2}},
		0, false); err == nil {
		t.Errorf("expected error on mismatched bounds")
	}
	if _, err := New(min, max, nil, 0, false); err == nil {
		t.Errorf("expected error with no tilings")
	}
	if _, err := New(min, max, [][]int{{2}}, 0, false); err == nil {
		t.Errorf("expected error with wrong bins per dimension")
	}
	if _, err := New(min, min, [][]int{{2, 2}}, 0, false); err == nil {
		t.Errorf("expected error with empty bounds")
	}
}

func BenchmarkEncodeIndices(b *testing.B) {
	coder := newTestCoder(b, 1, true)
	v := mat.NewVecDense(2, []float64{-0.5, 0.0})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		coder.EncodeIndices(v)
	}
}
