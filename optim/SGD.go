package optim

import (
	"fmt"

	"github.com/tspooner/rsrl-sub001/buffer"
	"github.com/tspooner/rsrl-sub001/param"
	"gonum.org/v1/gonum/mat"
)

// StochasticGD implements plain stochastic gradient steps,
//
//	w += α * scale * g
//
// where α is the current value of the learning rate Parameter. The
// update is exact for dense and sparse gradients alike.
type StochasticGD struct {
	rate *param.Parameter
}

// NewSGD returns an SGD optimizer with learning rate schedule rate
func NewSGD(rate *param.Parameter) *StochasticGD {
	if rate == nil {
		panic("newSGD: learning rate cannot be nil")
	}
	return &StochasticGD{rate}
}

// NewFixedSGD returns an SGD optimizer with a constant learning rate
func NewFixedSGD(rate float64) *StochasticGD {
	return NewSGD(param.NewFixed(rate))
}

// Apply performs w += α * scale * g
func (s *StochasticGD) Apply(w *mat.Dense, g buffer.Buffer,
	scale float64) error {
	if err := g.ScaledAddTo(s.rate.Value()*scale, w); err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	return nil
}

// LearningRate returns the current learning rate
func (s *StochasticGD) LearningRate() float64 {
	return s.rate.Value()
}

// Step advances the learning rate schedule
func (s *StochasticGD) Step() {
	s.rate.Step()
}

// TypedConfig returns the configuration of the optimizer, including the
// current position of its learning rate schedule
func (s *StochasticGD) TypedConfig() TypedConfig {
	return TypedConfig{SGD, SGDConfig{LearningRate: *s.rate}}
}

// SGDConfig configures an SGD optimizer
type SGDConfig struct {
	LearningRate param.Parameter
}

// Create returns a new SGD optimizer
func (c SGDConfig) Create() (Optimizer, error) {
	rate := c.LearningRate
	if rate.Kind == "" {
		rate.Kind = param.Fixed
	}
	return NewSGD(&rate), nil
}

// ValidType returns if the given Optimizer type is a valid type to be
// created with this config.
func (c SGDConfig) ValidType(t Type) bool {
	return t == SGD
}
