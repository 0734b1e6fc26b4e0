package policy

import (
	"github.com/tspooner/rsrl-sub001/buffer"
	"github.com/tspooner/rsrl-sub001/fa"
	"gonum.org/v1/gonum/mat"
)

// CompatibleBasis produces the compatible features of a Gaussian
// policy, ψ(s, a) = ∇_θ log π(a|s), where θ are the weights of the
// policy mean. A linear function of these features is compatible with
// the policy in the sense of the policy gradient theorem, and its
// weights are the natural gradient of the policy.
type CompatibleBasis struct {
	policy *Gaussian
}

// NewCompatibleBasis returns the compatible basis of policy
func NewCompatibleBasis(policy *Gaussian) *CompatibleBasis {
	if policy == nil {
		panic("newCompatibleBasis: policy cannot be nil")
	}
	return &CompatibleBasis{policy}
}

// Project returns ψ(s, a), with the shape of the mean weights
func (c *CompatibleBasis) Project(state, action mat.Vector) (buffer.Buffer,
	error) {
	sc, err := c.policy.scores(state, action)
	if err != nil {
		return nil, err
	}
	return fa.Outer(sc.meanPhi, sc.mean), nil
}

// Shape returns the shape of the compatible features
func (c *CompatibleBasis) Shape() buffer.Shape {
	return buffer.ShapeOf(c.policy.MeanApproximator().Weights())
}

// Evaluate returns ⟨w, ψ(s, a)⟩, the value of the compatible linear
// function with weights w
func (c *CompatibleBasis) Evaluate(w mat.Matrix, state,
	action mat.Vector) (float64, error) {
	psi, err := c.Project(state, action)
	if err != nil {
		return 0, err
	}
	if buffer.ShapeOf(w) != psi.Shape() {
		return 0, &buffer.ShapeMismatch{Op: "evaluate", Want: psi.Shape(),
			Have: buffer.ShapeOf(w)}
	}

	var v float64
	psi.ForEachActive(func(r, col int, x float64) {
		v += w.At(r, col) * x
	})
	return v, nil
}
