package qlearning

import (
	"fmt"

	"github.com/tspooner/rsrl-sub001/agent"
	"github.com/tspooner/rsrl-sub001/agent/linear/discrete/policy"
	"github.com/tspooner/rsrl-sub001/environment"
	"github.com/tspooner/rsrl-sub001/fa"
	"github.com/tspooner/rsrl-sub001/param"
	"github.com/tspooner/rsrl-sub001/traces"
)

func init() {
	agent.Register(agent.QLearningLinear, Config{})
	agent.Register(agent.GreedyGQLinear, GreedyGQConfig{})
	agent.Register(agent.PALLinear, PALConfig{})
}

// Config represents a configuration for a Q-Learning agent acting
// ε-greedily. If Lambda is positive, the agent learns with Q(λ) using
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
	q, pi, err := behaviour(env, c.Q, c.Epsilon, seed)
	if err != nil {
		return nil, fmt.Errorf("createAgent: %w", err)
	}

	if c.Lambda == 0 {
		return agent.New(New(q), pi, pi, q), nil
	}

	rule, err := traces.RuleByName(c.Trace, q.LearningRate())
	if err != nil {
		return nil, fmt.Errorf("createAgent: %w", err)
	}
	learner, err := NewLambda(q, rule, c.Lambda)
	if err != nil {
		return nil, fmt.Errorf("createAgent: %w", err)
	}
	return agent.New(learner, pi, pi, q), nil
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if err := c.Q.Validate(); err != nil {
		return err
	}
	if err := validEpsilon(c.Epsilon); err != nil {
		return err
	}
	if c.Lambda < 0 || c.Lambda > 1 {
		return fmt.Errorf("λ must be in [0, 1], have %v", c.Lambda)
	}
	return nil
}

// Type returns the type of the agent constructed by the Config
func (c Config) Type() agent.Type {
	return agent.QLearningLinear
}

// behaviour creates the action-values q and the ε-greedy behaviour
// policy acting on them
func behaviour(env environment.Environment, qConfig agent.LFAConfig,
	epsilon param.Parameter, seed uint64) (*fa.LFA, *policy.EGreedy,
	error) {
	actions, err := env.ActionSpec().NumActions()
	if err != nil {
		return nil, nil, err
	}
	q, err := qConfig.Create(env.ObservationSpec().Dims(), actions)
	if err != nil {
		return nil, nil, err
	}
	return q, policy.NewEGreedy(q, &epsilon, seed), nil
}

func validEpsilon(e param.Parameter) error {
	if e.Value() < 0 || e.Value() > 1 {
		return fmt.Errorf("epsilon must be in [0, 1], have %v", e.Value())
	}
	return nil
}

// GreedyGQConfig represents a configuration for a Greedy-GQ agent
// acting ε-greedily. W configures the auxiliary weights and must use
// the same basis as Q.
type GreedyGQConfig struct {
	Q       agent.LFAConfig
	W       agent.LFAConfig
	Epsilon param.Parameter
}

// CreateAgent creates the agent from the Config
func (c GreedyGQConfig) CreateAgent(env environment.Environment,
	seed uint64) (agent.Agent, error) {
	q, pi, err := behaviour(env, c.Q, c.Epsilon, seed)
	if err != nil {
		return nil, fmt.Errorf("createAgent: %w", err)
	}
	w, err := c.W.Create(env.ObservationSpec().Dims(), q.Outputs())
	if err != nil {
		return nil, fmt.Errorf("createAgent: auxiliary: %w", err)
	}
	learner, err := NewGreedyGQ(q, w)
	if err != nil {
		return nil, fmt.Errorf("createAgent: %w", err)
	}
	return agent.New(learner, pi, pi, q, w), nil
}

// Validate ensures that the Config is valid
func (c GreedyGQConfig) Validate() error {
	if err := c.Q.Validate(); err != nil {
		return err
	}
	if err := c.W.Validate(); err != nil {
		return fmt.Errorf("auxiliary: %v", err)
	}
	return validEpsilon(c.Epsilon)
}

// Type returns the type of the agent constructed by the Config
func (c GreedyGQConfig) Type() agent.Type {
	return agent.GreedyGQLinear
}

// PALConfig represents a configuration for a persistent advantage
// learning agent acting ε-greedily
type PALConfig struct {
	Q       agent.LFAConfig
	Epsilon param.Parameter
	Alpha   float64 // advantage coefficient
}

// CreateAgent creates the agent from the Config
func (c PALConfig) CreateAgent(env environment.Environment,
	seed uint64) (agent.Agent, error) {
	q, pi, err := behaviour(env, c.Q, c.Epsilon, seed)
	if err != nil {
		return nil, fmt.Errorf("createAgent: %w", err)
	}
	learner, err := NewPAL(q, c.Alpha)
	if err != nil {
		return nil, fmt.Errorf("createAgent: %w", err)
	}
	return agent.New(learner, pi, pi, q), nil
}

// Validate ensures that the Config is valid
func (c PALConfig) Validate() error {
	if err := c.Q.Validate(); err != nil {
		return err
	}
	if c.Alpha < 0 || c.Alpha > 1 {
		return fmt.Errorf("advantage coefficient must be in [0, 1], have %v",
			c.Alpha)
	}
	return validEpsilon(c.Epsilon)
}

// Type returns the type of the agent constructed by the Config
func (c PALConfig) Type() agent.Type {
	return agent.PALLinear
}
