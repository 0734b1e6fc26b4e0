package report

import (
	"bytes"
	"errors"
	"image/png"
	"strings"
	"testing"

	"github.com/tspooner/rsrl-sub001/basis"
	"github.com/tspooner/rsrl-sub001/fa"
	"github.com/tspooner/rsrl-sub001/optim"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

func TestSmooth(t *testing.T) {
	tests := []struct {
		window int
		want   []float64
	}{
		{0, []float64{1, 3, 5, 7}},
		{1, []float64{1, 3, 5, 7}},
		{2, []float64{1, 2, 4, 6}},
		{10, []float64{1, 2, 3, 4}},
	}

	for _, test := range tests {
		got := Smooth([]float64{1, 3, 5, 7}, test.window)
		if !floats.Equal(got, test.want) {
			t.Errorf("window %d: %v, want %v", test.window, got, test.want)
		}
	}
}

func TestLearningCurve(t *testing.T) {
	var buf bytes.Buffer
	err := LearningCurve(&buf, "Mountain Car", 2,
		Series{"returns", []float64{-200, -150, -120}},
		Series{"lengths", []float64{200, 150}})
	if err != nil {
		t.Fatal(err)
	}

	html := buf.String()
	for _, want := range []string{"<html", "returns", "lengths"} {
		if !strings.Contains(html, want) {
			t.Errorf("page does not contain %q", want)
		}
	}

	if err := LearningCurve(&buf, "empty", 1); err == nil {
		t.Error("expected an error without series")
	}
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	Summary{
		Agent:   "QLearning-Linear",
		Steps:   1000,
		Returns: []float64{-300, -200, -100},
		Lengths: []float64{300, 200, 100},
		LastN:   2,
	}.Print(&buf)

	out := buf.String()
	for _, want := range []string{"QLearning-Linear", "1000", "-150.00 (last 2)",
		"best -100.00", "150.0 (last 2)"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary does not contain %q:\n%v", want, out)
		}
	}

	buf.Reset()
	Summary{Agent: "SARSA-Linear"}.Print(&buf)
	if !strings.Contains(buf.String(), "no episode finished") {
		t.Errorf("empty summary:\n%v", buf.String())
	}
}

func TestHeatmap(t *testing.T) {
	b, err := basis.NewRaw(2)
	if err != nil {
		t.Fatal(err)
	}
	q, err := fa.NewLFA(b, 2, optim.NewFixedSGD(0.1), nil)
	if err != nil {
		t.Fatal(err)
	}

	// max(x, -x) = |x|, largest at both ends of the x axis
	w := mat.NewDense(2, 2, []float64{1, -1, 0, 0})
	if err := q.SetWeights(w); err != nil {
		t.Fatal(err)
	}

	limits := [2]r1.Interval{{Min: -1, Max: 1}, {Min: 0, Max: 1}}
	var buf bytes.Buffer
	if err := Heatmap(&buf, MaxValue(q), limits, 5, 4); err != nil {
		t.Fatal(err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if bounds := img.Bounds(); bounds.Dx() != 20 || bounds.Dy() != 20 {
		t.Fatalf("image is %v, want 20x20", bounds)
	}

	// the corners are red, the centre column blue
	r, _, b0, _ := img.At(1, 1).RGBA()
	if r <= b0 {
		t.Errorf("corner has red %d, blue %d", r, b0)
	}
	r, _, b0, _ = img.At(10, 10).RGBA()
	if r >= b0 {
		t.Errorf("centre has red %d, blue %d", r, b0)
	}
}

func TestHeatmapError(t *testing.T) {
	failing := func(mat.Vector) (float64, error) {
		return 0, errors.New("failed")
	}
	limits := [2]r1.Interval{{Min: 0, Max: 1}, {Min: 0, Max: 1}}
	if err := Heatmap(&bytes.Buffer{}, failing, limits, 3, 1); err == nil {
		t.Error("expected the value error")
	}
	if err := Heatmap(&bytes.Buffer{}, failing, limits, 1, 1); err == nil {
		t.Error("expected an error for a resolution of 1")
	}
}
