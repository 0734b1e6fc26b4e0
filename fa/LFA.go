package fa

import (
	"fmt"

	"github.com/tspooner/rsrl-sub001/basis"
	"github.com/tspooner/rsrl-sub001/buffer"
	"github.com/tspooner/rsrl-sub001/optim"
	"github.com/tspooner/rsrl-sub001/utils/matutils/initializers/weights"
	"gonum.org/v1/gonum/mat"
)

// LFA is a linear function approximator. Output c of the LFA in state s
// is phi(s)ᵀW[:,c], where phi is a Basis and W the (features x outputs)
// weight matrix.
//
// An LFA is shared by pointer: a learner updating the LFA and a policy
// reading it always see the same weights.
type LFA struct {
	weights *mat.Dense
	basis   basis.Basis
	opt     optim.Optimizer
}

// NewLFA returns a new LFA with the given number of outputs whose
// weights are updated by opt. If init is nil, weights start at zero.
func NewLFA(b basis.Basis, outputs int, opt optim.Optimizer,
	init weights.Initializer) (*LFA, error) {
	if b == nil {
		return nil, NewConfigurationError("newLFA", "basis cannot be nil")
	}
	if opt == nil {
		return nil, NewConfigurationError("newLFA", "optimizer cannot be nil")
	}
	if outputs < 1 {
		return nil, NewConfigurationError("newLFA", "need at least one "+
			"output, have %d", outputs)
	}
	if b.Dim() < 1 {
		return nil, NewConfigurationError("newLFA", "basis has no features")
	}

	w := mat.NewDense(b.Dim(), outputs, nil)
	if init != nil {
		init.Initialize(w)
	}

	return &LFA{weights: w, basis: b, opt: opt}, nil
}

// NewScalar returns a new LFA with a single output, for example a
// state-value function
func NewScalar(b basis.Basis, opt optim.Optimizer,
	init weights.Initializer) (*LFA, error) {
	return NewLFA(b, 1, opt, init)
}

// Features projects s onto the basis of the LFA
func (l *LFA) Features(s mat.Vector) (*buffer.Features, error) {
	phi, err := l.basis.Project(s)
	if err != nil {
		return nil, err
	}
	if err := l.checkFeatures("features", phi); err != nil {
		return nil, err
	}
	return phi, nil
}

// checkFeatures ensures phi has exactly one entry per weight row
func (l *LFA) checkFeatures(op string, phi *buffer.Features) error {
	rows, cols := l.weights.Dims()
	if phi.Len() != rows {
		return &buffer.ShapeMismatch{
			Op:   op,
			Want: buffer.Shape{Rows: rows, Cols: cols},
			Have: buffer.Shape{Rows: phi.Len(), Cols: cols},
		}
	}
	return nil
}

// Evaluate returns every output of the LFA in state s
func (l *LFA) Evaluate(s mat.Vector) ([]float64, error) {
	phi, err := l.basis.Project(s)
	if err != nil {
		return nil, err
	}
	return l.EvaluateFeatures(phi)
}

// EvaluateFeatures returns every output of the LFA for an already
// projected feature vector
func (l *LFA) EvaluateFeatures(phi *buffer.Features) ([]float64, error) {
	if err := l.checkFeatures("evaluateFeatures", phi); err != nil {
		return nil, err
	}

	out := make([]float64, l.Outputs())
	for c := range out {
		v, err := phi.Dot(l.weights, c)
		if err != nil {
			return nil, err
		}
		out[c] = v
	}
	return out, nil
}

// EvaluateScalar returns the single output of the LFA in state s. It
// returns an error if the LFA has more than one output.
func (l *LFA) EvaluateScalar(s mat.Vector) (float64, error) {
	if l.Outputs() != 1 {
		return 0, fmt.Errorf("evaluateScalar: approximator has %d outputs",
			l.Outputs())
	}
	phi, err := l.Features(s)
	if err != nil {
		return 0, err
	}
	return phi.Dot(l.weights, 0)
}

// EvaluateAction returns output a of the LFA in state s
func (l *LFA) EvaluateAction(s mat.Vector, a int) (float64, error) {
	if err := l.CheckAction("evaluateAction", a); err != nil {
		return 0, err
	}
	phi, err := l.Features(s)
	if err != nil {
		return 0, err
	}
	return phi.Dot(l.weights, a)
}

// CheckAction returns an error if a is not the index of an output
func (l *LFA) CheckAction(op string, a int) error {
	if a < 0 || a >= l.Outputs() {
		return fmt.Errorf("%v: action %d out of range [0, %d)", op, a,
			l.Outputs())
	}
	return nil
}

// Grad returns the gradient of the outputs of the LFA in state s with
// respect to its weights: the features of s in every column
func (l *LFA) Grad(s mat.Vector) (buffer.Buffer, error) {
	phi, err := l.Features(s)
	if err != nil {
		return nil, err
	}
	if l.Outputs() == 1 {
		return phi, nil
	}
	return buffer.Broadcast(phi, l.Outputs()), nil
}

// GradAction returns the gradient of output a in state s with respect
// to the weights, which is zero outside of column a
func (l *LFA) GradAction(s mat.Vector, a int) (buffer.Buffer, error) {
	if err := l.CheckAction("gradAction", a); err != nil {
		return nil, err
	}
	phi, err := l.Features(s)
	if err != nil {
		return nil, err
	}
	return buffer.NewColumnar(phi, l.Outputs(), a), nil
}

// Update moves every output of the LFA in state s in the direction of
// err using the optimizer
func (l *LFA) Update(s mat.Vector, err float64) error {
	g, e := l.Grad(s)
	if e != nil {
		return e
	}
	return l.opt.Apply(l.weights, g, err)
}

// UpdateAll moves output c of the LFA in state s in the direction of
// errs[c] for each output c
func (l *LFA) UpdateAll(s mat.Vector, errs []float64) error {
	phi, err := l.Features(s)
	if err != nil {
		return err
	}
	return l.updateFeaturesAll(phi, errs)
}

func (l *LFA) updateFeaturesAll(phi *buffer.Features, errs []float64) error {
	if len(errs) != l.Outputs() {
		return fmt.Errorf("updateAll: have %d errors for %d outputs",
			len(errs), l.Outputs())
	}
	if err := l.checkFeatures("updateAll", phi); err != nil {
		return err
	}
	return l.opt.Apply(l.weights, Outer(phi, errs), 1.0)
}

// UpdateAction moves output a of the LFA in state s in the direction of
// err
func (l *LFA) UpdateAction(s mat.Vector, a int, err float64) error {
	phi, e := l.Features(s)
	if e != nil {
		return e
	}
	return l.UpdateFeatures(phi, a, err)
}

// UpdateFeatures moves output a of the LFA in the direction of err for
// an already projected feature vector
func (l *LFA) UpdateFeatures(phi *buffer.Features, a int, err float64) error {
	if e := l.CheckAction("updateFeatures", a); e != nil {
		return e
	}
	if e := l.checkFeatures("updateFeatures", phi); e != nil {
		return e
	}
	return l.opt.Apply(l.weights, buffer.NewColumnar(phi, l.Outputs(), a), err)
}

// UpdateGrad asks the optimizer to move the weights along the
// gradient g, scaled by err. The shape of g must match the weights.
func (l *LFA) UpdateGrad(g buffer.Buffer, err float64) error {
	return l.opt.Apply(l.weights, g, err)
}

// UpdateGradScaled performs W += alpha * g exactly, without the
// optimizer. It is used to apply eligibility traces and natural
// gradients.
func (l *LFA) UpdateGradScaled(g buffer.Buffer, alpha float64) error {
	return g.ScaledAddTo(alpha, l.weights)
}

// Step advances the learning rate schedule of the optimizer, it should
// be called once per episode
func (l *LFA) Step() {
	l.opt.Step()
}

// LearningRate returns the current learning rate of the optimizer
func (l *LFA) LearningRate() float64 {
	return l.opt.LearningRate()
}

// Weights returns the weights of the LFA. The returned matrix is shared
// with the LFA and must not be modified.
func (l *LFA) Weights() *mat.Dense {
	return l.weights
}

// SetWeights copies w into the weights of the LFA
func (l *LFA) SetWeights(w *mat.Dense) error {
	if buffer.ShapeOf(w) != buffer.ShapeOf(l.weights) {
		return &buffer.ShapeMismatch{Op: "setWeights",
			Want: buffer.ShapeOf(l.weights), Have: buffer.ShapeOf(w)}
	}
	l.weights.Copy(w)
	return nil
}

// Basis returns the basis of the LFA
func (l *LFA) Basis() basis.Basis {
	return l.basis
}

// Optimizer returns the optimizer of the LFA
func (l *LFA) Optimizer() optim.Optimizer {
	return l.opt
}

// Outputs returns the number of outputs of the LFA
func (l *LFA) Outputs() int {
	_, c := l.weights.Dims()
	return c
}

func (l *LFA) String() string {
	r, c := l.weights.Dims()
	return fmt.Sprintf("LFA(%T, %d features, %d outputs)", l.basis, r, c)
}

// Outer returns a Buffer whose column c is scales[c] * phi. Sparse
// features give a sparse Buffer.
func Outer(phi *buffer.Features, scales []float64) buffer.Buffer {
	shape := buffer.Shape{Rows: phi.Len(), Cols: len(scales)}

	if phi.IsDense() {
		out := buffer.Zeros(shape)
		m := out.Matrix()
		phi.ForEachFeature(func(i int, v float64) {
			for c, k := range scales {
				m.Set(i, c, k*v)
			}
		})
		return out
	}

	out := buffer.NewSparse(shape)
	phi.ForEachFeature(func(i int, v float64) {
		for c, k := range scales {
			if k != 0 {
				out.Set(i, c, k*v)
			}
		}
	})
	return out
}
