package basis

import (
	"fmt"
	"math"

	"github.com/tspooner/rsrl-sub001/buffer"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

// Polynomial implements a full polynomial basis. Each dimension of the
// state is scaled to [-1, 1] using limits, and each feature is a product
// of powers of the scaled dimensions:
//
//	φ_e(s) = Π_j x_j^e_j
//
// where the exponent tuples e range over every integer vector with
// entries in [0, order].
type Polynomial struct {
	order     int
	limits    []r1.Interval
	exponents [][]int
	factor    func(n int, x float64) float64
	chebyshev bool
}

// NewPolynomial returns a polynomial basis of the given order
func NewPolynomial(order int, limits []r1.Interval) (*Polynomial, error) {
	return newPolynomial("newPolynomial", order, limits, false)
}

// NewChebyshev returns a polynomial basis of the given order where each
// univariate power x^n is replaced by the Chebyshev polynomial of the
// first kind T_n(x).
func NewChebyshev(order int, limits []r1.Interval) (*Polynomial, error) {
	return newPolynomial("newChebyshev", order, limits, true)
}

func newPolynomial(name string, order int, limits []r1.Interval,
	chebyshev bool) (*Polynomial, error) {
	if order < 0 {
		return nil, fmt.Errorf("%v: order must be non-negative, have %d",
			name, order)
	}
	if err := checkLimits(name, limits); err != nil {
		return nil, err
	}

	factor := power
	if chebyshev {
		factor = ChebyshevT
	}

	return &Polynomial{
		order:     order,
		limits:    copyLimits(limits),
		exponents: cartesian(order+1, len(limits)),
		factor:    factor,
		chebyshev: chebyshev,
	}, nil
}

// Project returns the dense polynomial features of state
func (p *Polynomial) Project(state mat.Vector) (*buffer.Features, error) {
	if err := checkInput("polynomial", p, state); err != nil {
		return nil, err
	}

	x := make([]float64, state.Len())
	for i := range x {
		x[i] = 2*normalise(state.AtVec(i), p.limits[i]) - 1
	}

	values := make([]float64, len(p.exponents))
	for i, exps := range p.exponents {
		v := 1.0
		for j, e := range exps {
			v *= p.factor(e, x[j])
		}
		values[i] = v
	}
	return buffer.NewDenseFeatures(values), nil
}

// Dim returns the number of features
func (p *Polynomial) Dim() int {
	return len(p.exponents)
}

// InputDim returns the dimension of states
func (p *Polynomial) InputDim() int {
	return len(p.limits)
}

// Config returns the configuration of the basis
func (p *Polynomial) Config() Config {
	if p.chebyshev {
		return ChebyshevConfig{Order: p.order, Limits: copyLimits(p.limits)}
	}
	return PolynomialConfig{Order: p.order, Limits: copyLimits(p.limits)}
}

func power(n int, x float64) float64 {
	return math.Pow(x, float64(n))
}

// ChebyshevT evaluates the Chebyshev polynomial of the first kind of
// degree n at x using the three term recurrence
//
//	T_0 = 1, T_1 = x, T_{n+1} = 2x T_n - T_{n-1}
func ChebyshevT(n int, x float64) float64 {
	if n == 0 {
		return 1
	}
	prev, cur := 1.0, x
	for k := 1; k < n; k++ {
		prev, cur = cur, 2*x*cur-prev
	}
	return cur
}

// PolynomialConfig configures a Polynomial basis
type PolynomialConfig struct {
	Order  int
	Limits []r1.Interval
}

// Create returns the Polynomial basis described by the config
func (c PolynomialConfig) Create() (Basis, error) {
	return NewPolynomial(c.Order, c.Limits)
}

// ValidType returns if the given Basis type is a valid type to be
// created with this config.
func (c PolynomialConfig) ValidType(t Type) bool {
	return t == PolynomialType
}

// ChebyshevConfig configures a Chebyshev basis
type ChebyshevConfig struct {
	Order  int
	Limits []r1.Interval
}

// Create returns the Chebyshev basis described by the config
func (c ChebyshevConfig) Create() (Basis, error) {
	return NewChebyshev(c.Order, c.Limits)
}

// ValidType returns if the given Basis type is a valid type to be
// created with this config.
func (c ChebyshevConfig) ValidType(t Type) bool {
	return t == ChebyshevType
}
