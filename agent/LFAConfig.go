package agent

import (
	"fmt"

	"github.com/tspooner/rsrl-sub001/basis"
	"github.com/tspooner/rsrl-sub001/fa"
	"github.com/tspooner/rsrl-sub001/optim"
	"github.com/tspooner/rsrl-sub001/utils/matutils/initializers/weights"
)

// LFAConfig describes a linear function approximator: its basis, its
// optimizer, and a constant initial value for every weight
type LFAConfig struct {
	Basis     basis.TypedConfig
	Optimizer optim.TypedConfig
	Init      float64
}

// Create returns a new LFA over states of dimension inputs with the
// given number of outputs. A basis which expects states of another
// dimension is a *basis.DimensionError. Each call creates a new
// optimizer, so LFAs never share optimizer state.
func (c LFAConfig) Create(inputs, outputs int) (*fa.LFA, error) {
	b, err := c.Basis.Create()
	if err != nil {
		return nil, fmt.Errorf("create: basis: %w", err)
	}
	if in := b.InputDim(); in != 0 && in != inputs {
		return nil, &basis.DimensionError{Basis: "create: basis", Want: inputs,
			Have: in}
	}
	opt, err := c.Optimizer.Create()
	if err != nil {
		return nil, fmt.Errorf("create: optimizer: %w", err)
	}
	return fa.NewLFA(b, outputs, opt, weights.Constant(c.Init))
}

// Validate checks that the basis and optimizer are configured
func (c LFAConfig) Validate() error {
	if c.Basis.Config == nil {
		return fmt.Errorf("no basis configured")
	}
	if c.Optimizer.Config == nil {
		return fmt.Errorf("no optimizer configured")
	}
	return nil
}
