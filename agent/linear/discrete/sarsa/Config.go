package sarsa

import (
	"fmt"

	"github.com/tspooner/rsrl-sub001/agent"
	"github.com/tspooner/rsrl-sub001/agent/linear/discrete/policy"
	"github.com/tspooner/rsrl-sub001/environment"
	"github.com/tspooner/rsrl-sub001/param"
	"github.com/tspooner/rsrl-sub001/traces"
)

func init() {
	agent.Register(agent.SARSALinear, Config{})
}

// Config represents a configuration for a SARSA agent acting
// ε-greedily. If Lambda is positive, the agent learns with SARSA(λ) using
// the trace rule named by Trace.
type Config struct {
	Q       agent.LFAConfig
	Epsilon param.Parameter
	Lambda  float64
	Trace   string
}

// CreateAgent creates the agent from the Config
func (c Config) CreateAgent(env environment.Environment,
	seed uint64) (agent.Agent, error) {
	actions, err := env.ActionSpec().NumActions()
	if err != nil {
		return nil, fmt.Errorf("createAgent: %w", err)
	}

	q, err := c.Q.Create(env.ObservationSpec().Dims(), actions)
	if err != nil {
		return nil, fmt.Errorf("createAgent: %w", err)
	}
	epsilon := c.Epsilon
	behaviour := policy.NewEGreedy(q, &epsilon, seed)

	if c.Lambda == 0 {
		return agent.New(New(q, behaviour), behaviour, behaviour, q), nil
	}

	rule, err := traces.RuleByName(c.Trace, q.LearningRate())
	if err != nil {
		return nil, fmt.Errorf("createAgent: %w", err)
	}
	learner, err := NewLambda(q, behaviour, rule, c.Lambda)
	if err != nil {
		return nil, fmt.Errorf("createAgent: %w", err)
	}
	return agent.New(learner, behaviour, behaviour, q), nil
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if err := c.Q.Validate(); err != nil {
		return err
	}
	if c.Epsilon.Value() < 0 || c.Epsilon.Value() > 1 {
		return fmt.Errorf("epsilon must be in [0, 1], have %v",
			c.Epsilon.Value())
	}
	if c.Lambda < 0 || c.Lambda > 1 {
		return fmt.Errorf("λ must be in [0, 1], have %v", c.Lambda)
	}
	return nil
}

// Type returns the type of the agent constructed by the Config
func (c Config) Type() agent.Type {
	return agent.SARSALinear
}
