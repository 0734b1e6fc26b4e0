package fa

import (
	"github.com/tspooner/rsrl-sub001/buffer"
	"gonum.org/v1/gonum/mat"
)

// Composition applies a Transform g to each output of an LFA f, giving
// the function g(f(s)). Gradients are taken with respect to the weights
// of f by the chain rule.
type Composition struct {
	f *LFA
	t Transform
}

// Compose returns the composition t(f(s))
func Compose(f *LFA, t Transform) *Composition {
	if f == nil || t == nil {
		panic("compose: function and transform cannot be nil")
	}
	return &Composition{f, t}
}

// forward projects s and returns its features along with the outputs
// of f, and the value and gradient of the transform at each output
func (c *Composition) forward(op string, s mat.Vector) (phi *buffer.Features,
	values, grads []float64, err error) {
	phi, err = c.f.Features(s)
	if err != nil {
		return nil, nil, nil, err
	}

	outputs, err := c.f.EvaluateFeatures(phi)
	if err != nil {
		return nil, nil, nil, err
	}

	values = make([]float64, len(outputs))
	grads = make([]float64, len(outputs))
	for i, x := range outputs {
		values[i] = c.t.Apply(x)
		grads[i] = c.t.Grad(x)

		if !isFinite(values[i]) {
			return nil, nil, nil, &NumericalError{Op: op, Value: values[i]}
		}
		if !isFinite(grads[i]) {
			return nil, nil, nil, &NumericalError{Op: op + " gradient",
				Value: grads[i]}
		}
	}
	return phi, values, grads, nil
}

// Evaluate returns g(f(s)) for each output
func (c *Composition) Evaluate(s mat.Vector) ([]float64, error) {
	_, values, _, err := c.forward("evaluate", s)
	return values, err
}

// EvaluateScalar returns g(f(s)) for a composition with one output
func (c *Composition) EvaluateScalar(s mat.Vector) (float64, error) {
	values, err := c.Evaluate(s)
	if err != nil {
		return 0, err
	}
	if len(values) != 1 {
		return 0, NewConfigurationError("evaluateScalar",
			"composition has %d outputs", len(values))
	}
	return values[0], nil
}

// Grad returns the gradient g'(f(s)) ∇f(s) of each output with respect
// to the weights of f
func (c *Composition) Grad(s mat.Vector) (buffer.Buffer, error) {
	phi, _, grads, err := c.forward("grad", s)
	if err != nil {
		return nil, err
	}
	return Outer(phi, grads), nil
}

// GradLog returns the gradient of ln g(f(s)), which is
// g'(f(s)) / g(f(s)) ∇f(s), with respect to the weights of f
func (c *Composition) GradLog(s mat.Vector) (buffer.Buffer, error) {
	phi, values, grads, err := c.forward("gradLog", s)
	if err != nil {
		return nil, err
	}

	scales := make([]float64, len(grads))
	for i := range grads {
		scales[i] = grads[i] / values[i]
		if !isFinite(scales[i]) {
			return nil, &NumericalError{Op: "gradLog", Value: scales[i]}
		}
	}
	return Outer(phi, scales), nil
}

// Update moves every output of the composition in state s in the
// direction of err. The LFA receives err g'(f(s)) for each output.
func (c *Composition) Update(s mat.Vector, err float64) error {
	phi, _, grads, e := c.forward("update", s)
	if e != nil {
		return e
	}

	errs := make([]float64, len(grads))
	for i, g := range grads {
		errs[i] = err * g
	}
	return c.f.updateFeaturesAll(phi, errs)
}

// UpdateAll moves output c of the composition in state s in the
// direction of errs[c]. The LFA receives errs[c] g'(f(s)_c) for output
// c.
func (c *Composition) UpdateAll(s mat.Vector, errs []float64) error {
	if len(errs) != c.Outputs() {
		return NewConfigurationError("updateAll", "have %d errors for %d "+
			"outputs", len(errs), c.Outputs())
	}
	phi, _, grads, err := c.forward("updateAll", s)
	if err != nil {
		return err
	}

	scaled := make([]float64, len(grads))
	for i, g := range grads {
		scaled[i] = errs[i] * g
	}
	return c.f.updateFeaturesAll(phi, scaled)
}

// Outputs returns the number of outputs of the composition
func (c *Composition) Outputs() int {
	return c.f.Outputs()
}

// LFA returns the inner function approximator
func (c *Composition) LFA() *LFA {
	return c.f
}

// Transform returns the outer transform
func (c *Composition) Transform() Transform {
	return c.t
}
