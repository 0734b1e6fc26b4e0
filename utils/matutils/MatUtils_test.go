package matutils

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestPseudoInverseInvertible(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{4, 7, 2, 6})
	pinv, err := PseudoInverse(a, 1e-12)
	if err != nil {
		t.Fatal(err)
	}

	var inv mat.Dense
	if err := inv.Inverse(a); err != nil {
		t.Fatal(err)
	}
	if !mat.EqualApprox(pinv, &inv, 1e-10) {
		t.Errorf("pseudoInverse: want %v have %v", Format(&inv), Format(pinv))
	}
}

func TestPseudoInverseSingular(t *testing.T) {
	// Rank 1
	a := mat.NewDense(2, 2, []float64{1, 2, 2, 4})
	pinv, err := PseudoInverse(a, 1e-10)
	if err != nil {
		t.Fatal(err)
	}

	// a a⁺ a = a
	var aa, aaa mat.Dense
	aa.Mul(a, pinv)
	aaa.Mul(&aa, a)
	if !mat.EqualApprox(&aaa, a, 1e-10) {
		t.Errorf("pseudoInverse: a a⁺ a = %v", Format(&aaa))
	}

	want := mat.NewDense(2, 2, []float64{0.04, 0.08, 0.08, 0.16})
	if !mat.EqualApprox(pinv, want, 1e-10) {
		t.Errorf("pseudoInverse: want %v have %v", Format(want), Format(pinv))
	}
}

func TestRowMeanAndIdentity(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{1, 2, 3, -1, -1, 2})
	if !mat.EqualApprox(RowMean(m), mat.NewVecDense(2, []float64{2, 0}),
		1e-12) {
		t.Errorf("rowMean: have %v", Format(RowMean(m)))
	}

	id := ScaledIdentity(3, 2)
	if id.At(1, 1) != 2 || id.At(0, 1) != 0 || !Finite(id) {
		t.Errorf("scaledIdentity: have %v", Format(id))
	}
}
