package param

import (
	"encoding/json"
	"math"
	"testing"
)

func TestFixed(t *testing.T) {
	p := NewFixed(0.1)
	for i := 0; i < 10; i++ {
		p.Step()
	}
	if p.Value() != 0.1 {
		t.Errorf("fixed parameter changed to %v", p.Value())
	}
}

func TestExponentialFloor(t *testing.T) {
	p, err := NewExponential(1.0, 0.05, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{1, 0.5, 0.25, 0.125, 0.0625, 0.05, 0.05}
	for i, w := range want {
		if math.Abs(p.Value()-w) > 1e-12 {
			t.Errorf("step %v: want %v, have %v", i, w, p.Value())
		}
		p.Step()
	}

	for i := 0; i < 1000; i++ {
		p.Step()
		if p.Value() < 0.05 {
			t.Fatalf("value %v dropped below floor", p.Value())
		}
	}

	p.Reset()
	if p.Value() != 1 {
		t.Errorf("reset: want 1, have %v", p.Value())
	}

	if _, err := NewExponential(1, 0, 1.5); err == nil {
		t.Errorf("expected error with decay rate above 1")
	}
}

func TestPolynomial(t *testing.T) {
	p, err := NewPolynomial(1.0, 0.2, 1)
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{1, 0.5, 1.0 / 3, 0.25, 0.2, 0.2}
	for i, w := range want {
		if math.Abs(p.Value()-w) > 1e-12 {
			t.Errorf("step %v: want %v, have %v", i, w, p.Value())
		}
		p.Step()
	}
}

func TestJSON(t *testing.T) {
	p, _ := NewExponential(0.5, 0.01, 0.99)
	p.Step()
	p.Step()

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	var q Parameter
	if err := json.Unmarshal(data, &q); err != nil {
		t.Fatal(err)
	}
	if q.Value() != p.Value() {
		t.Errorf("want %v, have %v", p.Value(), q.Value())
	}
}
