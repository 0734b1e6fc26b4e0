// Package traces implements eligibility traces for temporal difference
// learning with linear function approximation.
//
// A Trace holds a dense buffer with the same shape as the weights it is
// applied to. Each step the trace is decayed by γλ and then combined
// with the gradient of the current state according to a Rule.
package traces

import (
	"fmt"
	"math"

	"github.com/tspooner/rsrl-sub001/buffer"
)

// Rule combines the current trace x with a new gradient component y
type Rule interface {
	Combine(x, y float64) float64
}

// Accumulating traces add each gradient into the trace
type Accumulating struct{}

// Combine returns x + y
func (Accumulating) Combine(x, y float64) float64 {
	return x + y
}

// Replacing traces add each gradient into the trace, clipping the
// result to [-1, 1]
type Replacing struct{}

// Combine returns x + y clipped to [-1, 1]
func (Replacing) Combine(x, y float64) float64 {
	return math.Max(-1, math.Min(1, x+y))
}

// Dutch traces shrink the trace by the learning rate before adding the
// gradient
type Dutch struct {
	Alpha float64
}

// Combine returns (1 - α)x + y
func (d Dutch) Combine(x, y float64) float64 {
	return (1-d.Alpha)*x + y
}

// RuleByName returns the Rule with the given name: "Accumulating",
// "Replacing" or "Dutch". The learning rate alpha is only used by Dutch
// traces. An empty name gives Accumulating traces.
func RuleByName(name string, alpha float64) (Rule, error) {
	switch name {
	case "", "Accumulating":
		return Accumulating{}, nil
	case "Replacing":
		return Replacing{}, nil
	case "Dutch":
		return Dutch{Alpha: alpha}, nil
	default:
		return nil, fmt.Errorf("ruleByName: unknown trace rule %q", name)
	}
}

// Trace is an eligibility trace
type Trace struct {
	buf  *buffer.Dense
	rule Rule
	rate float64
}

// New returns a zero trace of the given shape. The rate is the factor
// Decay multiplies the trace by, usually γλ.
func New(shape buffer.Shape, rule Rule, rate float64) *Trace {
	if rule == nil {
		panic("new: trace rule cannot be nil")
	}
	if shape.Rows < 1 || shape.Cols < 1 {
		panic(fmt.Sprintf("new: invalid trace shape %v", shape))
	}
	return &Trace{buffer.Zeros(shape), rule, rate}
}

// Update combines the trace with the gradient g elementwise using the
// trace's Rule. The trace is unchanged if g has the wrong shape.
func (t *Trace) Update(g buffer.Buffer) error {
	if err := t.buf.CombineInPlace(g, t.rule.Combine); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	return nil
}

// Scale multiplies the trace by f
func (t *Trace) Scale(f float64) {
	if f == 0 {
		t.Reset()
		return
	}
	t.buf.Scale(f)
}

// Decay multiplies the trace by its decay rate
func (t *Trace) Decay() {
	t.Scale(t.rate)
}

// Reset sets the trace to zero
func (t *Trace) Reset() {
	t.buf.Zero()
}

// Buffer returns a copy of the trace
func (t *Trace) Buffer() buffer.Buffer {
	return t.buf.Clone()
}

// At returns the trace entry at row r and column c
func (t *Trace) At(r, c int) float64 {
	return t.buf.At(r, c)
}

// Shape returns the shape of the trace
func (t *Trace) Shape() buffer.Shape {
	return t.buf.Shape()
}

// Rate returns the decay rate of the trace
func (t *Trace) Rate() float64 {
	return t.rate
}

// SetRate sets the decay rate of the trace
func (t *Trace) SetRate(rate float64) {
	t.rate = rate
}

// Norm returns the Euclidean norm of the trace
func (t *Trace) Norm() float64 {
	return buffer.Norm(t.buf)
}
