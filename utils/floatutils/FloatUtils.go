// Package floatutils provides utilities for working with floats
package floatutils

import (
	"math"

	"gonum.org/v1/gonum/spatial/r1"
)

// Clip clips a floating point to within a minimum and maximum value.
// If the floating point exceeds max, then the function returns the max
// If min exceeds the floating point, then the function returns the min
func Clip(value, min, max float64) float64 {
	clipped := math.Min(value, max)
	return math.Max(clipped, min)
}

// ClipInterval is a wrapper to use Clip with an r1.Interval instead of
// a separate max and min value
func ClipInterval(value float64, interval r1.Interval) float64 {
	return Clip(value, interval.Min, interval.Max)
}

// Argmax returns the maximum value in values along with every index at
// which it occurs, in increasing order. NaN values are never maximal.
// Argmax panics if values is empty.
func Argmax(values []float64) (max float64, indices []int) {
	if len(values) == 0 {
		panic("argmax: no values")
	}

	max = math.Inf(-1)
	for i, value := range values {
		switch {
		case value > max:
			max = value
			indices = append(indices[:0], i)
		case value == max:
			indices = append(indices, i)
		}
	}

	// All NaN
	if indices == nil {
		return math.NaN(), nil
	}
	return max, indices
}

// Finite returns whether x is neither NaN nor infinite
func Finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// AllFinite returns whether every value in xs is finite
func AllFinite(xs []float64) bool {
	for _, x := range xs {
		if !Finite(x) {
			return false
		}
	}
	return true
}
