package prediction

import (
	"math"

	"github.com/tspooner/rsrl-sub001/buffer"
	"github.com/tspooner/rsrl-sub001/fa"
	"github.com/tspooner/rsrl-sub001/timestep"
	"github.com/tspooner/rsrl-sub001/traces"
	"github.com/tspooner/rsrl-sub001/utils/floatutils"
	"github.com/tspooner/rsrl-sub001/utils/matutils"
	"github.com/unixpickle/essentials"
	"gonum.org/v1/gonum/mat"
)

const (
	// DefaultRegularisation is the multiple of the identity A starts at
	DefaultRegularisation = 1e-6

	// Relative tolerance for singular values in the pseudo-inverse
	pinvTolerance = 1e-12
)

// LSTD implements least-squares temporal difference learning, LSTD(λ).
// It accumulates
//
//	z = γλz + φ
//	A = εI + Σ z(φ - γφ')ᵀ
//	b = Σ rz
//
// and solves Aθ = b for the weights of the state-value function at the
// end of each episode, or whenever Solve is called. With λ = 0 the
// trace z is φ.
type LSTD struct {
	v     *fa.LFA
	a     *mat.Dense
	b     *mat.VecDense
	trace *traces.Trace
}

// NewLSTD returns a new LSTD(0) learner for v, with A initialised to
// epsilon times the identity
func NewLSTD(v *fa.LFA, epsilon float64) (*LSTD, error) {
	return NewLSTDLambda(v, epsilon, 0)
}

// NewLSTDLambda returns a new LSTD(λ) learner for v, with A initialised
// to epsilon times the identity
func NewLSTDLambda(v *fa.LFA, epsilon, lambda float64) (*LSTD, error) {
	if err := checkScalar("newLSTD", v); err != nil {
		return nil, err
	}
	if epsilon < 0 {
		return nil, fa.NewConfigurationError("newLSTD", "regularisation "+
			"must be non-negative, have %v", epsilon)
	}
	if lambda < 0 || lambda > 1 {
		return nil, fa.NewConfigurationError("newLSTD", "λ must be in "+
			"[0, 1], have %v", lambda)
	}

	n := v.Basis().Dim()
	return &LSTD{
		v:     v,
		a:     matutils.ScaledIdentity(n, epsilon),
		b:     mat.NewVecDense(n, nil),
		trace: traces.New(buffer.Shape{Rows: n, Cols: 1},
			traces.Accumulating{}, lambda),
	}, nil
}

// Handle accumulates the statistics of tr, solving for the weights if
// tr ends its episode
func (l *LSTD) Handle(tr timestep.Transition) (err error) {
	defer essentials.AddCtxTo("lstd: handle", &err)

	phi, err := l.v.Features(tr.From.State)
	if err != nil {
		return err
	}
	next, err := l.v.Features(tr.To.State)
	if err != nil {
		return err
	}

	l.trace.Scale(tr.Discount * l.trace.Rate())
	if err := l.trace.Update(phi); err != nil {
		return err
	}
	z := mat.NewVecDense(phi.Len(), mat.Col(nil, 0, l.trace.Buffer().ToDense()))

	diff := mat.NewVecDense(phi.Len(), nil)
	diff.AddScaledVec(phi.VecDense(), -tr.Bootstrap(), next.VecDense())

	l.a.RankOne(l.a, 1, z, diff)
	l.b.AddScaledVec(l.b, tr.Reward, z)

	if tr.Last {
		l.trace.Reset()
		return l.Solve()
	}
	return nil
}

// Solve solves Aθ = b and writes θ into the state-value function. If
// A is singular or the solution is not finite, θ = A⁺b is used
// instead, where A⁺ is the pseudo-inverse of A. A NumericalError is
// returned only if both fail, in which case the weights are unchanged.
func (l *LSTD) Solve() error {
	theta, err := l.solve()
	if err != nil {
		return err
	}
	return l.v.SetWeights(mat.NewDense(theta.Len(), 1, theta.RawVector().Data))
}

func (l *LSTD) solve() (*mat.VecDense, error) {
	var theta mat.VecDense
	if err := theta.SolveVec(l.a, l.b); err == nil && finite(&theta) {
		return &theta, nil
	}

	pinv, err := matutils.PseudoInverse(l.a, pinvTolerance)
	if err != nil {
		return nil, &fa.NumericalError{Op: "solve", Value: math.NaN()}
	}
	theta.Reset()
	theta.MulVec(pinv, l.b)
	if !finite(&theta) {
		return nil, &fa.NumericalError{Op: "solve", Value: firstNonFinite(&theta)}
	}
	return &theta, nil
}

// A returns a copy of the accumulated A matrix
func (l *LSTD) A() *mat.Dense {
	return mat.DenseCopyOf(l.a)
}

// B returns a copy of the accumulated b vector
func (l *LSTD) B() *mat.VecDense {
	return mat.VecDenseCopyOf(l.b)
}

// Trace returns the eligibility trace z
func (l *LSTD) Trace() *traces.Trace {
	return l.trace
}

// StateValues returns the state-value function being learned
func (l *LSTD) StateValues() *fa.LFA {
	return l.v
}

func finite(v *mat.VecDense) bool {
	return floatutils.AllFinite(v.RawVector().Data)
}

func firstNonFinite(v *mat.VecDense) float64 {
	for _, x := range v.RawVector().Data {
		if !floatutils.Finite(x) {
			return x
		}
	}
	return math.NaN()
}
