// Package matutils implements utility function for working with mat.Matrix
// structs
package matutils

import (
	"fmt"

	"github.com/tspooner/rsrl-sub001/utils/floatutils"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Format formats a matrix for printing
func Format(X mat.Matrix) string {
	fa := mat.Formatted(X, mat.Prefix(""), mat.Squeeze())
	return fmt.Sprintf("%v", fa)
}

// RowMean compute and returns the mean of the rows of a matrix
func RowMean(matrix *mat.Dense) *mat.VecDense {
	r, _ := matrix.Dims()
	rowMeans := make([]float64, r)

	for i := 0; i < r; i++ {
		rowMeans[i] = stat.Mean(matrix.RawRowView(i), nil)
	}
	return mat.NewVecDense(r, rowMeans)
}

// ScaledIdentity returns the (n x n) matrix scale * I
func ScaledIdentity(n int, scale float64) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, scale)
	}
	return m
}

// Finite returns whether every entry of m is finite
func Finite(m mat.Matrix) bool {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if !floatutils.Finite(m.At(i, j)) {
				return false
			}
		}
	}
	return true
}

// PseudoInverse returns the Moore-Penrose pseudo-inverse of a computed
// from its singular value decomposition. Singular values at most rcond
// times the largest singular value are treated as zero.
func PseudoInverse(a mat.Matrix, rcond float64) (*mat.Dense, error) {
	if !Finite(a) {
		return nil, fmt.Errorf("pseudoInverse: matrix has non-finite entries")
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, fmt.Errorf("pseudoInverse: singular value decomposition " +
			"failed")
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	values := svd.Values(nil)

	inv := make([]float64, len(values))
	if len(values) > 0 {
		tol := rcond * values[0]
		for i, s := range values {
			if s > tol {
				inv[i] = 1 / s
			}
		}
	}

	// a⁺ = V Σ⁺ Uᵀ
	v.Apply(func(_, j int, x float64) float64 {
		return x * inv[j]
	}, &v)

	var pinv mat.Dense
	pinv.Mul(&v, u.T())
	return &pinv, nil
}
