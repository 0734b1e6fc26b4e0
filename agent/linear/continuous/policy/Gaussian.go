// Package policy implements linear continuous-action policies
package policy

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/tspooner/rsrl-sub001/buffer"
	"github.com/tspooner/rsrl-sub001/fa"
	"github.com/tspooner/rsrl-sub001/utils/floatutils"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// StdOffset is added to the standard deviation of each action
// dimension so that it is always positive
const StdOffset float64 = 1e-3

// Gaussian implements a multi-dimensional linear Gaussian policy with
// independent action dimensions. Action dimension i has mean μ_i(s),
// output i of a linear function approximator, and standard deviation
//
//	σ_i(s) = softplus(f_i(s)) + StdOffset
//
// where f is a second linear function approximator.
type Gaussian struct {
	mean   *fa.LFA
	stddev *fa.Composition
	source rand.Source
}

// NewGaussian creates a new Gaussian policy. The mean and standard
// deviation approximators must have one output per action dimension.
func NewGaussian(mean, stddev *fa.LFA, seed uint64) (*Gaussian, error) {
	if mean == nil || stddev == nil {
		return nil, fa.NewConfigurationError("newGaussian", "mean and "+
			"standard deviation cannot be nil")
	}
	if mean.Outputs() != stddev.Outputs() {
		return nil, fa.NewConfigurationError("newGaussian", "mean has %d "+
			"outputs but standard deviation has %d", mean.Outputs(),
			stddev.Outputs())
	}

	return &Gaussian{
		mean:   mean,
		stddev: fa.Compose(stddev, fa.Softplus{}),
		source: rand.NewSource(seed),
	}, nil
}

// Mean returns the mean of the policy in state
func (g *Gaussian) Mean(state mat.Vector) ([]float64, error) {
	return g.mean.Evaluate(state)
}

// Std returns the standard deviation of each action dimension in state
func (g *Gaussian) Std(state mat.Vector) ([]float64, error) {
	std, err := g.stddev.Evaluate(state)
	if err != nil {
		return nil, err
	}
	for i := range std {
		std[i] += StdOffset
	}
	return std, nil
}

// SelectAction samples an action from the policy in state
func (g *Gaussian) SelectAction(state mat.Vector) (*mat.VecDense, error) {
	mean, std, err := g.moments(state)
	if err != nil {
		return nil, fmt.Errorf("selectAction: %w", err)
	}

	action := mat.NewVecDense(len(mean), nil)
	for i := range mean {
		dist := distuv.Normal{Mu: mean[i], Sigma: std[i], Src: g.source}
		action.SetVec(i, dist.Rand())
	}
	return action, nil
}

// LogProb returns the log density of action a in state
func (g *Gaussian) LogProb(state, a mat.Vector) (float64, error) {
	mean, std, err := g.moments(state)
	if err != nil {
		return 0, err
	}
	if err := g.checkAction("logProb", a); err != nil {
		return 0, err
	}

	var logProb float64
	for i := range mean {
		dist := distuv.Normal{Mu: mean[i], Sigma: std[i]}
		logProb += dist.LogProb(a.AtVec(i))
	}
	return logProb, nil
}

// GradLog returns the gradient of log π(a|s) with respect to the mean
// weights and to the standard deviation weights
func (g *Gaussian) GradLog(state, a mat.Vector) (mean, std buffer.Buffer,
	err error) {
	sc, err := g.scores(state, a)
	if err != nil {
		return nil, nil, err
	}

	stdScales := make([]float64, len(sc.sigma))
	for i := range stdScales {
		stdScales[i] = sc.sigma[i] * sc.softplusGrad[i]
	}
	return fa.Outer(sc.meanPhi, sc.mean), fa.Outer(sc.stdPhi, stdScales), nil
}

// score holds the derivatives of log π(a|s) with respect to the mean
// and standard deviation of each action dimension
type score struct {
	meanPhi, stdPhi *buffer.Features

	// ∂/∂μ_i = (a_i - μ_i) / σ_i²
	mean []float64

	// ∂/∂σ_i = ((a_i - μ_i)² - σ_i²) / σ_i³
	sigma []float64

	// softplus'(f_i(s))
	softplusGrad []float64
}

func (g *Gaussian) scores(state, a mat.Vector) (score, error) {
	if err := g.checkAction("gradLog", a); err != nil {
		return score{}, err
	}

	meanPhi, err := g.mean.Features(state)
	if err != nil {
		return score{}, err
	}
	mean, err := g.mean.EvaluateFeatures(meanPhi)
	if err != nil {
		return score{}, err
	}

	stdPhi, err := g.stddev.LFA().Features(state)
	if err != nil {
		return score{}, err
	}
	raw, err := g.stddev.LFA().EvaluateFeatures(stdPhi)
	if err != nil {
		return score{}, err
	}

	transform := g.stddev.Transform()
	sc := score{
		meanPhi:      meanPhi,
		stdPhi:       stdPhi,
		mean:         make([]float64, len(mean)),
		sigma:        make([]float64, len(mean)),
		softplusGrad: make([]float64, len(mean)),
	}
	for i := range mean {
		std := transform.Apply(raw[i]) + StdOffset
		diff := a.AtVec(i) - mean[i]

		sc.mean[i] = diff / (std * std)
		sc.sigma[i] = (diff*diff - std*std) / (std * std * std)
		sc.softplusGrad[i] = transform.Grad(raw[i])

		for _, x := range []float64{sc.mean[i], sc.sigma[i]} {
			if !floatutils.Finite(x) {
				return score{}, &fa.NumericalError{Op: "gradLog", Value: x}
			}
		}
	}
	return sc, nil
}

// Update moves the parameters of the policy along ∇log π(a|s) scaled
// by err, through the optimizers of both approximators. Both gradients
// are computed before either approximator changes.
func (g *Gaussian) Update(state, a mat.Vector, err float64) error {
	meanGrad, stdGrad, e := g.GradLog(state, a)
	if e != nil {
		return e
	}
	if e := checkShape("update", g.mean, meanGrad); e != nil {
		return e
	}
	if e := checkShape("update", g.stddev.LFA(), stdGrad); e != nil {
		return e
	}

	if e := g.mean.UpdateGrad(meanGrad, err); e != nil {
		return e
	}
	return g.stddev.LFA().UpdateGrad(stdGrad, err)
}

func checkShape(op string, l *fa.LFA, grad buffer.Buffer) error {
	if shape := buffer.ShapeOf(l.Weights()); shape != grad.Shape() {
		return &buffer.ShapeMismatch{Op: op, Want: shape, Have: grad.Shape()}
	}
	return nil
}

// Step advances the learning rate schedules of both approximators
func (g *Gaussian) Step() {
	g.mean.Step()
	g.stddev.LFA().Step()
}

// MeanApproximator returns the approximator of the mean
func (g *Gaussian) MeanApproximator() *fa.LFA {
	return g.mean
}

// StdApproximator returns the composed approximator of the standard
// deviation, without the offset
func (g *Gaussian) StdApproximator() *fa.Composition {
	return g.stddev
}

// ActionDims returns the dimension of actions
func (g *Gaussian) ActionDims() int {
	return g.mean.Outputs()
}

func (g *Gaussian) moments(state mat.Vector) (mean, std []float64,
	err error) {
	mean, err = g.Mean(state)
	if err != nil {
		return nil, nil, err
	}
	std, err = g.Std(state)
	if err != nil {
		return nil, nil, err
	}
	return mean, std, nil
}

func (g *Gaussian) checkAction(op string, a mat.Vector) error {
	if a == nil || a.Len() != g.ActionDims() {
		have := 0
		if a != nil {
			have = a.Len()
		}
		return fmt.Errorf("%v: action has dimension %d, want %d", op, have,
			g.ActionDims())
	}
	return nil
}
