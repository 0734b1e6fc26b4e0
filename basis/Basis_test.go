package basis

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

func vec(values ...float64) *mat.VecDense {
	return mat.NewVecDense(len(values), values)
}

func TestFourierOrderOne(t *testing.T) {
	f, err := NewFourier(1, []r1.Interval{{Min: 0, Max: 1}}, false)
	if err != nil {
		t.Fatal(err)
	}
	if f.Dim() != 2 {
		t.Fatalf("dim: want 2, have %v", f.Dim())
	}

	for _, x := range []float64{0, 0.25, 0.5, 1} {
		phi, err := f.Project(vec(x))
		if err != nil {
			t.Fatal(err)
		}
		want := []float64{1, math.Cos(math.Pi * x)}
		if !floats.EqualApprox(phi.Values(), want, 1e-12) {
			t.Errorf("project(%v): want %v, have %v", x, want, phi.Values())
		}
	}
}

func TestFourierTwoDimensionsWithBias(t *testing.T) {
	limits := []r1.Interval{{Min: -1, Max: 1}, {Min: 0, Max: 10}}
	f, err := NewFourier(2, limits, true)
	if err != nil {
		t.Fatal(err)
	}
	if f.Dim() != 10 {
		t.Fatalf("dim: want 10, have %v", f.Dim())
	}

	phi, err := f.Project(vec(0, 5))
	if err != nil {
		t.Fatal(err)
	}
	values := phi.Values()
	if values[0] != 1 || values[9] != 1 {
		t.Errorf("constant and bias features should be 1, have %v", values)
	}

	// Coefficient (1, 1) is the fifth in lexicographic order
	want := math.Cos(math.Pi * (0.5 + 0.5))
	if math.Abs(values[4]-want) > 1e-12 {
		t.Errorf("coefficient (1, 1): want %v, have %v", want, values[4])
	}
}

func TestRBFReferenceValues(t *testing.T) {
	centres := mat.NewDense(3, 1, []float64{0, 0.5, 1})
	r, err := NewRBF(centres, []float64{0.25})
	if err != nil {
		t.Fatal(err)
	}

	phi, err := r.Project(vec(0.25))
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0.49546264, 0.49546264, 0.00907471}
	if !floats.EqualApprox(phi.Values(), want, 1e-6) {
		t.Errorf("want %v, have %v", want, phi.Values())
	}
	if math.Abs(floats.Sum(phi.Values())-1) > 1e-12 {
		t.Errorf("features should sum to 1")
	}

	centres = mat.NewDense(3, 2, []float64{
		0, -10,
		0.5, -8,
		1, -6,
	})
	r, err = NewRBF(centres, []float64{0.25, 2})
	if err != nil {
		t.Fatal(err)
	}
	phi, err = r.Project(vec(0.67, -7))
	if err != nil {
		t.Fatal(err)
	}
	kernel := func(dx, dy float64) float64 {
		return math.Exp(-8*dx*dx - 0.125*dy*dy)
	}
	want = []float64{kernel(0.67, 3), kernel(0.17, 1), kernel(-0.33, -1)}
	floats.Scale(1/floats.Sum(want), want)
	if !floats.EqualApprox(phi.Values(), want, 1e-12) {
		t.Errorf("want %v, have %v", want, phi.Values())
	}
}

func TestPolynomialAndChebyshev(t *testing.T) {
	limits := []r1.Interval{{Min: 0, Max: 2}}

	p, err := NewPolynomial(3, limits)
	if err != nil {
		t.Fatal(err)
	}
	phi, err := p.Project(vec(1.5)) // scaled to 0.5
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 0.5, 0.25, 0.125}
	if !floats.EqualApprox(phi.Values(), want, 1e-12) {
		t.Errorf("polynomial: want %v, have %v", want, phi.Values())
	}

	c, err := NewChebyshev(3, limits)
	if err != nil {
		t.Fatal(err)
	}
	phi, err = c.Project(vec(1.5))
	if err != nil {
		t.Fatal(err)
	}
	want = []float64{1, 0.5, 2*0.25 - 1, 4*0.125 - 3*0.5}
	if !floats.EqualApprox(phi.Values(), want, 1e-12) {
		t.Errorf("chebyshev: want %v, have %v", want, phi.Values())
	}

	// T_n(cos θ) = cos(nθ)
	theta := 0.3
	for n := 0; n < 12; n++ {
		if got := ChebyshevT(n, math.Cos(theta)); math.Abs(got-
			math.Cos(float64(n)*theta)) > 1e-9 {
			t.Errorf("T_%d(cos θ) = %v, want %v", n, got,
				math.Cos(float64(n)*theta))
		}
	}
}

func TestHashedTilesDeterministic(t *testing.T) {
	a, err := NewHashedTiles(8, 4096, []float64{4, 4}, 7)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewHashedTiles(8, 4096, []float64{4, 4}, 7)
	if err != nil {
		t.Fatal(err)
	}

	state := vec(0.3127, -1.5)
	first, err := a.Project(state)
	if err != nil {
		t.Fatal(err)
	}
	again, err := a.Project(state)
	if err != nil {
		t.Fatal(err)
	}
	other, err := b.Project(state)
	if err != nil {
		t.Fatal(err)
	}

	for _, f := range []interface{ Indices() []int }{again, other} {
		got := f.Indices()
		want := first.Indices()
		if len(got) != len(want) {
			t.Fatalf("active indices differ: %v != %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("active indices differ: %v != %v", got, want)
			}
		}
	}

	tiles := a.Tiles([]float64{1.25, -6}, nil)
	if len(tiles) != 8 {
		t.Fatalf("want 8 tiles, have %v", len(tiles))
	}
	for _, tile := range tiles {
		if tile < 0 || tile >= 4096 {
			t.Errorf("tile %v outside memory", tile)
		}
	}
}

func TestHashedTilesInvalidState(t *testing.T) {
	h, err := NewHashedTiles(4, 1024, []float64{1, 1}, 1)
	if err != nil {
		t.Fatal(err)
	}

	for _, s := range [][]float64{
		{math.NaN(), 0},
		{0, math.Inf(-1)},
		{1e300, 0},
	} {
		if _, err := h.Project(vec(s...)); err == nil {
			t.Errorf("project %v: expected error", s)
		}
	}
	if _, err := h.Project(vec(1e6, -1e6)); err != nil {
		t.Errorf("project large finite state: %v", err)
	}
}

func TestHashedTilesNearbyStatesShareTiles(t *testing.T) {
	h, err := NewHashedTiles(16, 1<<16, []float64{1}, 3)
	if err != nil {
		t.Fatal(err)
	}

	near := h.Tiles([]float64{0.50}, nil)
	close := h.Tiles([]float64{0.52}, nil)
	far := h.Tiles([]float64{40}, nil)

	shared := func(a, b []int) int {
		n := 0
		for i := range a {
			if a[i] == b[i] {
				n++
			}
		}
		return n
	}
	if shared(near, close) <= shared(near, far) {
		t.Errorf("nearby states should share more tiles than distant ones")
	}
}

func TestTileCodingSparse(t *testing.T) {
	tc, err := NewTileCoding(vec(0, 0), vec(1, 1), [][]int{{4, 4}, {4, 4}},
		11, true)
	if err != nil {
		t.Fatal(err)
	}

	phi, err := tc.Project(vec(0.5, 0.5))
	if err != nil {
		t.Fatal(err)
	}
	if phi.IsDense() {
		t.Errorf("tile coded features should be sparse")
	}
	if phi.Len() != 33 || len(phi.Indices()) != 3 {
		t.Errorf("want 3 active of 33 features, have %v of %v",
			len(phi.Indices()), phi.Len())
	}
}

func TestUniformGrid(t *testing.T) {
	g, err := NewUniformGrid([]r1.Interval{{Min: 0, Max: 10}}, []int{10})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		phi, err := g.Project(vec(float64(i)))
		if err != nil {
			t.Fatal(err)
		}
		if idx := phi.Indices(); len(idx) != 1 || idx[0] != i {
			t.Errorf("state %v: want cell %v, have %v", i, i, idx)
		}
	}
}

func TestDimensionError(t *testing.T) {
	f, err := NewFourier(3, []r1.Interval{{Min: 0, Max: 1}}, false)
	if err != nil {
		t.Fatal(err)
	}

	_, err = f.Project(vec(0.1, 0.2))
	var dimErr *DimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("expected dimension error, got %v", err)
	}
	if dimErr.Want != 1 || dimErr.Have != 2 {
		t.Errorf("unexpected error %v", dimErr)
	}
}

func TestCombinators(t *testing.T) {
	limits := []r1.Interval{{Min: 0, Max: 1}}
	f, _ := NewFourier(2, limits, false)
	p, _ := NewPolynomial(2, limits)
	g, _ := NewUniformGrid(limits, []int{5})

	stacked, err := Stack(f, p, g)
	if err != nil {
		t.Fatal(err)
	}
	if stacked.Dim() != 3+3+5 {
		t.Errorf("stack dim: want 11, have %v", stacked.Dim())
	}
	phi, err := stacked.Project(vec(0.3))
	if err != nil {
		t.Fatal(err)
	}
	fphi, _ := f.Project(vec(0.3))
	if phi.Get(1) != fphi.Get(1) {
		t.Errorf("stacked features should begin with the first basis")
	}

	sparse, err := Stack(g, g)
	if err != nil {
		t.Fatal(err)
	}
	phi, _ = sparse.Project(vec(0.3))
	if phi.IsDense() || len(phi.Indices()) != 2 || phi.Indices()[1] != 6 {
		t.Errorf("stacking sparse bases should shift indices, have %v",
			phi.Indices())
	}

	summed, err := Sum(f, p)
	if err != nil {
		t.Fatal(err)
	}
	phi, _ = summed.Project(vec(0.3))
	pphi, _ := p.Project(vec(0.3))
	for i := 0; i < 3; i++ {
		if phi.Get(i) != fphi.Get(i)+pphi.Get(i) {
			t.Errorf("sum feature %v incorrect", i)
		}
	}
	if _, err := Sum(f, g); err == nil {
		t.Errorf("expected error summing bases of different dimension")
	}

	biased := Bias(g)
	phi, _ = biased.Project(vec(0.3))
	if biased.Dim() != 6 || phi.Get(5) != 1 {
		t.Errorf("bias feature missing")
	}

	norm := Normalise(Bias(g))
	phi, _ = norm.Project(vec(0.3))
	if math.Abs(phi.L1()-1) > 1e-12 {
		t.Errorf("normalised features should have unit L1 norm")
	}

	other, _ := NewFourier(1, []r1.Interval{{Min: 0, Max: 1},
		{Min: 0, Max: 1}}, false)
	if _, err := Stack(f, other); err == nil {
		t.Errorf("expected error stacking bases of different input dims")
	}
}

func TestConfigJSONRoundTrip(t *testing.T) {
	limits := []r1.Interval{{Min: -1.2, Max: 0.6}, {Min: -0.07, Max: 0.07}}
	f, _ := NewFourier(3, limits, true)
	tc, _ := NewTileCoding(vec(-1.2, -0.07), vec(0.6, 0.07),
		[][]int{{5, 5}, {5, 5}}, 99, false)
	h, _ := NewHashedTiles(4, 512, []float64{5, 50}, 5, 1)
	r, _ := NewRBFGrid(limits, []int{3, 3}, []float64{0.3, 0.02})
	stacked, err := Stack(f, tc, h, r)
	if err != nil {
		t.Fatal(err)
	}
	b := Normalise(Bias(stacked))

	data, err := json.Marshal(NewTypedConfig(b.Config()))
	if err != nil {
		t.Fatal(err)
	}

	var config TypedConfig
	if err := json.Unmarshal(data, &config); err != nil {
		t.Fatal(err)
	}
	if config.Type != NormaliseType {
		t.Errorf("want type %v, have %v", NormaliseType, config.Type)
	}
	rebuilt, err := config.Create()
	if err != nil {
		t.Fatal(err)
	}

	for _, s := range []*mat.VecDense{vec(-0.5, 0), vec(0.5, -0.06)} {
		want, _ := b.Project(s)
		have, err := rebuilt.Project(s)
		if err != nil {
			t.Fatal(err)
		}
		if !floats.Equal(want.Values(), have.Values()) {
			t.Errorf("rebuilt basis projects differently at %v", s)
		}
	}
}

func BenchmarkFourierProject(b *testing.B) {
	f, _ := NewFourier(5, []r1.Interval{{Min: 0, Max: 1},
		{Min: 0, Max: 1}}, false)
	s := vec(0.3, 0.6)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Project(s)
	}
}

func TestRaw(t *testing.T) {
	r, err := NewRaw(2)
	if err != nil {
		t.Fatal(err)
	}
	state := vec(0.5, -2)
	f, err := r.Project(state)
	if err != nil {
		t.Fatal(err)
	}
	if !floats.Equal(f.Values(), []float64{0.5, -2}) {
		t.Errorf("features %v, want the state", f.Values())
	}

	// the features do not alias the state
	state.SetVec(0, 1)
	if f.Get(0) != 0.5 {
		t.Error("features changed with the state")
	}

	if _, err := NewRaw(0); err == nil {
		t.Error("expected an error for dimension 0")
	}
}
