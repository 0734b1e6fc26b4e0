package floatutils

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r1"
)

func TestArgmax(t *testing.T) {
	tests := []struct {
		values  []float64
		max     float64
		indices []int
	}{
		{[]float64{0.5, 0.9, 0.1}, 0.9, []int{1}},
		{[]float64{1, 0, 1}, 1, []int{0, 2}},
		{[]float64{math.NaN(), -2, -3}, -2, []int{1}},
		{[]float64{math.Inf(-1)}, math.Inf(-1), []int{0}},
	}

	for _, test := range tests {
		max, indices := Argmax(test.values)
		if max != test.max || len(indices) != len(test.indices) {
			t.Errorf("argmax(%v): want %v %v have %v %v", test.values,
				test.max, test.indices, max, indices)
			continue
		}
		for i := range indices {
			if indices[i] != test.indices[i] {
				t.Errorf("argmax(%v): want indices %v have %v", test.values,
					test.indices, indices)
			}
		}
	}
}

func TestClip(t *testing.T) {
	if Clip(3, -1, 1) != 1 || Clip(-3, -1, 1) != -1 || Clip(0.5, -1, 1) != 0.5 {
		t.Error("clip: value not clipped into range")
	}
	if ClipInterval(2, r1.Interval{Min: 0, Max: 1}) != 1 {
		t.Error("clipInterval: value not clipped into interval")
	}
}

func TestAllFinite(t *testing.T) {
	if !AllFinite([]float64{1, -2, 0}) || AllFinite([]float64{1, math.NaN()}) {
		t.Error("allFinite: incorrect result")
	}
}
