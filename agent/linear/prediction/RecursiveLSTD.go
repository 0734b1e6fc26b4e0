package prediction

import (
	"github.com/tspooner/rsrl-sub001/fa"
	"github.com/tspooner/rsrl-sub001/timestep"
	"github.com/tspooner/rsrl-sub001/utils/floatutils"
	"github.com/tspooner/rsrl-sub001/utils/matutils"
	"github.com/unixpickle/essentials"
	"gonum.org/v1/gonum/mat"
)

// RecursiveLSTD implements recursive least-squares TD. It tracks
// C = A⁻¹ directly with the Sherman-Morrison identity, so the weights
// are the LSTD solution after every transition without solving a
// linear system:
//
//	d = φ - γφ'
//	θ += δCφ / (1 + dᵀCφ)
//	C -= Cφ dᵀC / (1 + dᵀCφ)
type RecursiveLSTD struct {
	v *fa.LFA
	c *mat.Dense
}

// NewRecursiveLSTD returns a new recursive LSTD learner for v with C
// initialised to scale times the identity, which corresponds to
// starting A at I/scale
func NewRecursiveLSTD(v *fa.LFA, scale float64) (*RecursiveLSTD, error) {
	if err := checkScalar("newRecursiveLSTD", v); err != nil {
		return nil, err
	}
	if !(scale > 0) {
		return nil, fa.NewConfigurationError("newRecursiveLSTD", "initial "+
			"scale must be positive, have %v", scale)
	}
	return &RecursiveLSTD{v, matutils.ScaledIdentity(v.Basis().Dim(), scale)},
		nil
}

// Handle performs one recursive least-squares step on tr. The weights
// and C are unchanged if the step is not finite.
func (r *RecursiveLSTD) Handle(tr timestep.Transition) (err error) {
	defer essentials.AddCtxTo("recursiveLSTD: handle", &err)

	phi, delta, err := TDError(r.v, tr)
	if err != nil {
		return err
	}
	x := phi.VecDense()
	d := mat.VecDenseCopyOf(x)
	if !tr.Terminal() {
		next, err := r.v.Features(tr.To.State)
		if err != nil {
			return err
		}
		d.AddScaledVec(d, -tr.Bootstrap(), next.VecDense())
	}

	var cx, ctd mat.VecDense
	cx.MulVec(r.c, x)
	ctd.MulVec(r.c.T(), d)
	denom := 1 + mat.Dot(d, &cx)
	if !floatutils.Finite(denom) || denom == 0 {
		return &fa.NumericalError{Op: "handle", Value: denom}
	}

	theta := mat.VecDenseCopyOf(r.v.Weights().ColView(0))
	theta.AddScaledVec(theta, delta/denom, &cx)
	if !finite(theta) {
		return &fa.NumericalError{Op: "handle", Value: firstNonFinite(theta)}
	}
	w := mat.NewDense(theta.Len(), 1, theta.RawVector().Data)
	if err := r.v.SetWeights(w); err != nil {
		return err
	}
	r.c.RankOne(r.c, -1/denom, &cx, &ctd)
	return nil
}

// C returns a copy of the current estimate of A⁻¹
func (r *RecursiveLSTD) C() *mat.Dense {
	return mat.DenseCopyOf(r.c)
}

// StateValues returns the state-value function being learned
func (r *RecursiveLSTD) StateValues() *fa.LFA {
	return r.v
}
