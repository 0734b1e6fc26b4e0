package prediction

import (
	"github.com/tspooner/rsrl-sub001/buffer"
	"github.com/tspooner/rsrl-sub001/fa"
	"github.com/tspooner/rsrl-sub001/timestep"
	"github.com/unixpickle/essentials"
)

// gradientTD holds the primary weights θ, whose learning rate is α, and
// the auxiliary weights w, whose learning rate is β, of the gradient TD
// methods
type gradientTD struct {
	theta *fa.LFA
	w     *fa.LFA
}

func newGradientTD(op string, theta, w *fa.LFA) (gradientTD, error) {
	if err := checkScalar(op, theta); err != nil {
		return gradientTD{}, err
	}
	if err := checkScalar(op, w); err != nil {
		return gradientTD{}, err
	}
	if theta.Basis().Dim() != w.Basis().Dim() {
		return gradientTD{}, fa.NewConfigurationError(op, "θ and w must "+
			"share a basis dimension, have %d and %d", theta.Basis().Dim(),
			w.Basis().Dim())
	}
	return gradientTD{theta, w}, nil
}

// step computes the features of both states, the TD error δ and the
// estimate wᵀφ. Nothing is updated.
func (g gradientTD) step(tr timestep.Transition) (phi, next *buffer.Features,
	delta, estimate float64, err error) {
	phi, delta, err = TDError(g.theta, tr)
	if err != nil {
		return nil, nil, 0, 0, err
	}
	next, err = g.theta.Features(tr.To.State)
	if err != nil {
		return nil, nil, 0, 0, err
	}
	estimate, err = phi.Dot(g.w.Weights(), 0)
	if err != nil {
		return nil, nil, 0, 0, err
	}
	return phi, next, delta, estimate, nil
}

// apply moves w by β(δ - wᵀφ)φ and θ along thetaGrad. Both shapes are
// checked first, so either both weights change or neither does.
func (g gradientTD) apply(phi *buffer.Features, delta, estimate float64,
	thetaGrad buffer.Buffer) error {
	for _, c := range []struct {
		l    *fa.LFA
		grad buffer.Buffer
	}{{g.w, phi}, {g.theta, thetaGrad}} {
		if shape := buffer.ShapeOf(c.l.Weights()); shape != c.grad.Shape() {
			return &buffer.ShapeMismatch{Op: "apply", Want: shape,
				Have: c.grad.Shape()}
		}
	}

	if err := g.w.UpdateGrad(phi, delta-estimate); err != nil {
		return err
	}
	return g.theta.UpdateGrad(thetaGrad, 1)
}

// GTD2 implements the GTD2 gradient TD algorithm
type GTD2 struct {
	gradientTD
}

// NewGTD2 returns a new GTD2 learner with primary weights θ and
// auxiliary weights w
func NewGTD2(theta, w *fa.LFA) (*GTD2, error) {
	g, err := newGradientTD("newGTD2", theta, w)
	if err != nil {
		return nil, err
	}
	return &GTD2{g}, nil
}

// Handle performs
//
//	w += β(δ - wᵀφ)φ
//	θ += α(φ - γφ')(wᵀφ)
func (g *GTD2) Handle(tr timestep.Transition) (err error) {
	defer essentials.AddCtxTo("gtd2: handle", &err)

	phi, next, delta, estimate, err := g.step(tr)
	if err != nil {
		return err
	}

	gamma := tr.Bootstrap()
	grad, err := buffer.CombineFeatures(phi, next, func(x, y float64) float64 {
		return estimate * (x - gamma*y)
	})
	if err != nil {
		return err
	}
	return g.apply(phi, delta, estimate, grad)
}

// StateValues returns the primary state-value function
func (g *GTD2) StateValues() *fa.LFA {
	return g.theta
}

// TDC implements TD with gradient correction
type TDC struct {
	gradientTD
}

// NewTDC returns a new TDC learner with primary weights θ and auxiliary
// weights w
func NewTDC(theta, w *fa.LFA) (*TDC, error) {
	g, err := newGradientTD("newTDC", theta, w)
	if err != nil {
		return nil, err
	}
	return &TDC{g}, nil
}

// Handle performs
//
//	w += β(δ - wᵀφ)φ
//	θ += α(δφ - γ(wᵀφ)φ')
func (t *TDC) Handle(tr timestep.Transition) (err error) {
	defer essentials.AddCtxTo("tdc: handle", &err)

	phi, next, delta, estimate, err := t.step(tr)
	if err != nil {
		return err
	}

	gamma := tr.Bootstrap()
	grad, err := buffer.CombineFeatures(phi, next, func(x, y float64) float64 {
		return delta*x - gamma*estimate*y
	})
	if err != nil {
		return err
	}
	return t.apply(phi, delta, estimate, grad)
}

// StateValues returns the primary state-value function
func (t *TDC) StateValues() *fa.LFA {
	return t.theta
}
