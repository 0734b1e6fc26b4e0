package actorcritic

import (
	"fmt"

	"github.com/tspooner/rsrl-sub001/agent"
	"github.com/tspooner/rsrl-sub001/agent/linear/continuous/policy"
	"github.com/tspooner/rsrl-sub001/environment"
	"github.com/tspooner/rsrl-sub001/fa"
)

func init() {
	agent.Register(agent.TDACLinear, TDACConfig{})
	agent.Register(agent.NACLinear, NACConfig{})
}

// GaussianConfig describes a Gaussian policy by the approximators of
// its mean and standard deviation
type GaussianConfig struct {
	Mean   agent.LFAConfig
	StdDev agent.LFAConfig
}

// create returns the policy described by the config for states of
// dimension inputs and actions of dimension dims
func (g GaussianConfig) create(inputs, dims int,
	seed uint64) (*policy.Gaussian, error) {
	mean, err := g.Mean.Create(inputs, dims)
	if err != nil {
		return nil, fmt.Errorf("mean: %w", err)
	}
	stddev, err := g.StdDev.Create(inputs, dims)
	if err != nil {
		return nil, fmt.Errorf("standard deviation: %w", err)
	}
	return policy.NewGaussian(mean, stddev, seed)
}

func (g GaussianConfig) validate() error {
	if err := g.Mean.Validate(); err != nil {
		return fmt.Errorf("mean: %w", err)
	}
	if err := g.StdDev.Validate(); err != nil {
		return fmt.Errorf("standard deviation: %w", err)
	}
	return nil
}

// actorCritic creates the shared actor and critic of both configs
func actorCritic(env environment.Environment, actor GaussianConfig,
	critic agent.LFAConfig, seed uint64) (*policy.Gaussian, *fa.LFA, error) {
	inputs := env.ObservationSpec().Dims()
	pi, err := actor.create(inputs, env.ActionSpec().Dims(), seed)
	if err != nil {
		return nil, nil, fmt.Errorf("createAgent: actor: %w", err)
	}
	v, err := critic.Create(inputs, 1)
	if err != nil {
		return nil, nil, fmt.Errorf("createAgent: critic: %w", err)
	}
	return pi, v, nil
}

// TDACConfig represents a configuration for a TD actor-critic agent
type TDACConfig struct {
	Actor  GaussianConfig
	Critic agent.LFAConfig
}

// CreateAgent creates the agent from the Config
func (c TDACConfig) CreateAgent(env environment.Environment,
	seed uint64) (agent.Agent, error) {
	pi, v, err := actorCritic(env, c.Actor, c.Critic, seed)
	if err != nil {
		return nil, err
	}
	learner, err := NewTDAC(v, pi)
	if err != nil {
		return nil, fmt.Errorf("createAgent: %w", err)
	}
	return agent.New(learner, pi, pi, v), nil
}

// Validate ensures that the Config is valid
func (c TDACConfig) Validate() error {
	if err := c.Actor.validate(); err != nil {
		return err
	}
	return c.Critic.Validate()
}

// Type returns the type of the agent constructed by the Config
func (c TDACConfig) Type() agent.Type {
	return agent.TDACLinear
}

// NACConfig represents a configuration for a natural actor-critic
// agent. Alpha is the step size of the policy mean and Beta that of the
// compatible critic.
type NACConfig struct {
	Actor       GaussianConfig
	Critic      agent.LFAConfig
	Alpha, Beta float64
}

// CreateAgent creates the agent from the Config
func (c NACConfig) CreateAgent(env environment.Environment,
	seed uint64) (agent.Agent, error) {
	pi, v, err := actorCritic(env, c.Actor, c.Critic, seed)
	if err != nil {
		return nil, err
	}
	learner, err := NewNAC(v, pi, c.Alpha, c.Beta)
	if err != nil {
		return nil, fmt.Errorf("createAgent: %w", err)
	}
	return agent.New(learner, pi, pi, v), nil
}

// Validate ensures that the Config is valid
func (c NACConfig) Validate() error {
	if err := c.Actor.validate(); err != nil {
		return err
	}
	if err := c.Critic.Validate(); err != nil {
		return err
	}
	if c.Alpha <= 0 || c.Beta <= 0 {
		return fmt.Errorf("step sizes must be positive, have α = %v and "+
			"β = %v", c.Alpha, c.Beta)
	}
	return nil
}

// Type returns the type of the agent constructed by the Config
func (c NACConfig) Type() agent.Type {
	return agent.NACLinear
}
