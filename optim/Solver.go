package optim

import (
	"fmt"

	"github.com/tspooner/rsrl-sub001/buffer"
	"gonum.org/v1/gonum/mat"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// solverConfig is a Config which describes a Gorgonia Solver
type solverConfig interface {
	Config
	solver() G.Solver
	learningRate() float64
}

// Solver wraps a Gorgonia Solver so that it can be used to update the
// weights of linear function approximators. Gorgonia solvers perform
// gradient descent, so Apply negates the gradient it is given.
//
// A Solver keeps per-parameter state such as moment estimates. It
// should therefore only ever be used to update a single weight matrix.
type Solver struct {
	Type
	config solverConfig
	solver G.Solver
}

// newSolver returns a new solver with the given type and configuration.
func newSolver(t Type, c solverConfig) (*Solver, error) {
	if !c.ValidType(t) {
		return nil, fmt.Errorf("newSolver: invalid solver type %v for "+
			"configuration %T", t, c)
	}
	if c.learningRate() <= 0 {
		return nil, fmt.Errorf("newSolver: step size must be positive, "+
			"have %v", c.learningRate())
	}
	return &Solver{Type: t, config: c, solver: c.solver()}, nil
}

// Apply moves w in the direction of scale * g using the wrapped
// Gorgonia Solver
func (s *Solver) Apply(w *mat.Dense, g buffer.Buffer, scale float64) error {
	if shape := buffer.ShapeOf(w); shape != g.Shape() {
		return &buffer.ShapeMismatch{Op: "apply", Want: shape,
			Have: g.Shape()}
	}

	// Gorgonia needs contiguous backing data, views of larger matrices
	// are updated through a copy
	target := w
	raw := w.RawMatrix()
	if raw.Stride != raw.Cols {
		target = mat.DenseCopyOf(w)
		raw = target.RawMatrix()
	}

	grad := g.ToDense()
	grad.Scale(-scale, grad)

	weights := tensor.New(
		tensor.WithShape(raw.Rows, raw.Cols),
		tensor.WithBacking(raw.Data),
	)
	gradient := tensor.New(
		tensor.WithShape(raw.Rows, raw.Cols),
		tensor.WithBacking(grad.RawMatrix().Data),
	)

	if err := s.solver.Step([]G.ValueGrad{&valueGrad{weights, gradient}}); err != nil {
		return fmt.Errorf("apply: %v solver step: %v", s.Type, err)
	}

	if target != w {
		w.Copy(target)
	}
	return nil
}

// LearningRate returns the step size of the solver
func (s *Solver) LearningRate() float64 {
	return s.config.learningRate()
}

// Step is a no-op, Gorgonia solvers have fixed step sizes
func (s *Solver) Step() {}

// TypedConfig returns the configuration of the solver
func (s *Solver) TypedConfig() TypedConfig {
	return TypedConfig{s.Type, s.config}
}

// valueGrad pairs a weight tensor with its gradient so that it can be
// passed to a Gorgonia Solver
type valueGrad struct {
	value, grad *tensor.Dense
}

// Value implements the gorgonia.Valuer interface
func (v *valueGrad) Value() G.Value {
	return v.value
}

// Grad implements the gorgonia.ValueGrad interface
func (v *valueGrad) Grad() (G.Value, error) {
	return v.grad, nil
}

// batchSize returns the batch size to hand to Gorgonia, a batch size
// below 1 means no batching
func batchSize(batch int) float64 {
	if batch < 1 {
		return 1
	}
	return float64(batch)
}
