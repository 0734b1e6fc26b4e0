package optim

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/tspooner/rsrl-sub001/buffer"
	"github.com/tspooner/rsrl-sub001/param"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestSGDApply(t *testing.T) {
	w := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	g := buffer.NewColumnar(buffer.NewSparseFeatures(3, []int{1}), 2, 1)

	sgd := NewFixedSGD(0.1)
	if err := sgd.Apply(w, g, 2.0); err != nil {
		t.Fatal(err)
	}

	want := []float64{1, 2, 3, 4.2, 5, 6}
	if !floats.Equal(w.RawMatrix().Data, want) {
		t.Errorf("apply: want %v have %v", want, w.RawMatrix().Data)
	}
}

func TestSGDShapeMismatch(t *testing.T) {
	w := mat.NewDense(2, 1, []float64{1, 2})
	g := buffer.NewDenseFeatures([]float64{1, 1, 1})

	err := NewFixedSGD(0.5).Apply(w, g, 1)
	var mismatch *buffer.ShapeMismatch
	if !errors.As(err, &mismatch) {
		t.Fatalf("apply: expected shape mismatch, have %v", err)
	}
	if w.At(0, 0) != 1 || w.At(1, 0) != 2 {
		t.Errorf("apply: weights changed on error: %v", mat.Formatted(w))
	}
}

func TestSGDSchedule(t *testing.T) {
	rate, err := param.NewExponential(1.0, 0.2, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	sgd := NewSGD(rate)

	for _, want := range []float64{1, 0.5, 0.25, 0.2, 0.2} {
		if have := sgd.LearningRate(); have != want {
			t.Errorf("learningRate: want %v have %v", want, have)
		}
		sgd.Step()
	}
}

func TestVanillaMatchesSGD(t *testing.T) {
	const alpha = 0.05
	features := buffer.NewDenseFeatures([]float64{0.5, -1.5, 2.0, 0.25})
	g := buffer.Broadcast(features, 2)

	wSGD := mat.NewDense(4, 2, []float64{1, 0, -1, 2, 3, 1, 0.5, 0})
	wVanilla := mat.DenseCopyOf(wSGD)

	vanilla, err := NewVanilla(alpha, 1, -1)
	if err != nil {
		t.Fatal(err)
	}
	sgd := NewFixedSGD(alpha)

	for i := 0; i < 5; i++ {
		scale := float64(i) - 1.5
		if err := sgd.Apply(wSGD, g, scale); err != nil {
			t.Fatal(err)
		}
		if err := vanilla.Apply(wVanilla, g, scale); err != nil {
			t.Fatal(err)
		}
	}

	if !mat.EqualApprox(wSGD, wVanilla, 1e-12) {
		t.Errorf("vanilla: want %v have %v", mat.Formatted(wSGD),
			mat.Formatted(wVanilla))
	}
}

func TestSolverMatrixView(t *testing.T) {
	w := mat.NewDense(3, 3, nil)
	view := w.Slice(0, 2, 1, 3).(*mat.Dense)

	vanilla, err := NewVanilla(1.0, 1, -1)
	if err != nil {
		t.Fatal(err)
	}
	g := buffer.NewDense(mat.NewDense(2, 2, []float64{1, 2, 3, 4}))
	if err := vanilla.Apply(view, g, 1.0); err != nil {
		t.Fatal(err)
	}

	want := []float64{0, 1, 2, 0, 3, 4, 0, 0, 0}
	if !floats.EqualApprox(w.RawMatrix().Data, want, 1e-12) {
		t.Errorf("apply: want %v have %v", want, w.RawMatrix().Data)
	}
}

func TestAdamAscends(t *testing.T) {
	adam, err := NewDefaultAdam(0.01, 1)
	if err != nil {
		t.Fatal(err)
	}

	w := mat.NewDense(3, 1, nil)
	g := buffer.NewDenseFeatures([]float64{1, -2, 0})
	for i := 0; i < 3; i++ {
		if err := adam.Apply(w, g, 1.0); err != nil {
			t.Fatal(err)
		}
	}

	if !(w.At(0, 0) > 0) || !(w.At(1, 0) < 0) || w.At(2, 0) != 0 {
		t.Errorf("adam: weights did not follow the gradient: %v",
			mat.Formatted(w.T()))
	}
}

func TestTypedConfigJSON(t *testing.T) {
	rate, _ := param.NewPolynomial(0.5, 0.01, 1)
	configs := []TypedConfig{
		NewSGD(rate).TypedConfig(),
		{Vanilla, VanillaConfig{StepSize: 0.1, Batch: 1}},
		{Adam, AdamConfig{StepSize: 0.01, Epsilon: 1e-8, Beta1: 0.9,
			Beta2: 0.999, Batch: 1}},
		{RMSProp, RMSPropConfig{StepSize: 0.01, Epsilon: 1e-8, Rho: 0.9}},
	}

	for _, c := range configs {
		data, err := json.Marshal(c)
		if err != nil {
			t.Fatal(err)
		}

		var out TypedConfig
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if out != c {
			t.Errorf("json: want %+v have %+v", c, out)
		}

		opt, err := out.Create()
		if err != nil {
			t.Fatalf("create %v: %v", c.Type, err)
		}
		if opt.TypedConfig() != c {
			t.Errorf("create: want config %+v have %+v", c, opt.TypedConfig())
		}
	}
}

func TestCreateErrors(t *testing.T) {
	bad := []TypedConfig{
		{Vanilla, VanillaConfig{StepSize: 0}},
		{Adam, VanillaConfig{StepSize: 0.1}},
		{RMSProp, RMSPropConfig{StepSize: 0.1, Rho: 1.5}},
		{SGD, nil},
	}
	for _, c := range bad {
		if _, err := c.Create(); err == nil {
			t.Errorf("create: expected error for %+v", c)
		}
	}

	var out TypedConfig
	if err := json.Unmarshal([]byte(`{"Type":"Nesterov","Config":{}}`),
		&out); err == nil {
		t.Error("unmarshal: expected error for unknown type")
	}
}
