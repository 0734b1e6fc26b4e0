package report

import (
	"fmt"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/tspooner/rsrl-sub001/fa"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

// ValueFunc returns the value of a state
type ValueFunc func(state mat.Vector) (float64, error)

// MaxValue returns the ValueFunc of the largest output of l, the
// greedy state value for an action-value function
func MaxValue(l *fa.LFA) ValueFunc {
	return func(state mat.Vector) (float64, error) {
		values, err := l.Evaluate(state)
		if err != nil {
			return 0, err
		}
		return floats.Max(values), nil
	}
}

// Heatmap evaluates v on a resolution x resolution grid over the
// 2-dimensional state space bounded by limits and writes it as a PNG
// image with cellSize pixels per cell. Low values are drawn blue and
// high values red. The first state dimension runs along the x axis and
// the second upwards along the y axis.
func Heatmap(w io.Writer, v ValueFunc, limits [2]r1.Interval, resolution,
	cellSize int) error {
	if resolution < 2 || cellSize < 1 {
		return fmt.Errorf("heatmap: need a resolution of at least 2 and a "+
			"positive cell size, have %d and %d", resolution, cellSize)
	}

	xs := make([]float64, resolution)
	ys := make([]float64, resolution)
	floats.Span(xs, limits[0].Min, limits[0].Max)
	floats.Span(ys, limits[1].Min, limits[1].Max)

	values := mat.NewDense(resolution, resolution, nil)
	state := mat.NewVecDense(2, nil)
	for i, y := range ys {
		for j, x := range xs {
			state.SetVec(0, x)
			state.SetVec(1, y)
			value, err := v(state)
			if err != nil {
				return fmt.Errorf("heatmap: %v", err)
			}
			if math.IsNaN(value) || math.IsInf(value, 0) {
				return fmt.Errorf("heatmap: non-finite value %v at %v", value,
					[]float64{x, y})
			}
			values.Set(i, j, value)
		}
	}

	min, max := mat.Min(values), mat.Max(values)
	size := resolution * cellSize
	dc := gg.NewContext(size, size)
	for i := 0; i < resolution; i++ {
		for j := 0; j < resolution; j++ {
			t := 0.5
			if max > min {
				t = (values.At(i, j) - min) / (max - min)
			}
			dc.SetRGB(t, 0.2, 1-t)

			// Row 0 of the image is the top
			row := resolution - 1 - i
			dc.DrawRectangle(float64(j*cellSize), float64(row*cellSize),
				float64(cellSize), float64(cellSize))
			dc.Fill()
		}
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("heatmap: %v", err)
	}
	return nil
}
