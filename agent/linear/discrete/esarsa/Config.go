package esarsa

import (
	"fmt"

	"github.com/tspooner/rsrl-sub001/agent"
	"github.com/tspooner/rsrl-sub001/agent/linear/discrete/policy"
	"github.com/tspooner/rsrl-sub001/environment"
	"github.com/tspooner/rsrl-sub001/param"
)

func init() {
	agent.Register(agent.ESARSALinear, Config{})
}

// Config represents a configuration for the ESarsa agent. The target
// policy is softmax with temperature TargetTau if its initial value is
// positive, and ε-greedy with TargetE otherwise.
type Config struct {
	Q          agent.LFAConfig
	BehaviourE param.Parameter // epsilon for behaviour policy
	TargetE    param.Parameter // epsilon for target policy
	TargetTau  param.Parameter
}

// CreateAgent creates the agent from the Config. Both the ε-greedy
// behaviour and target policies act on the learned action-values.
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

	behaviourE := c.BehaviourE
	behaviour := policy.NewEGreedy(q, &behaviourE, seed)

	var target interface {
		agent.DiscretePolicy
		agent.Stepper
	}
	if c.TargetTau.Init > 0 {
		tau := c.TargetTau
		target, err = policy.NewSoftmax(q, &tau, seed)
		if err != nil {
			return nil, fmt.Errorf("createAgent: %w", err)
		}
	} else {
		targetE := c.TargetE
		target = policy.NewEGreedy(q, &targetE, seed)
	}

	return agent.New(New(q, target), behaviour, behaviour, target, q), nil
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if err := c.Q.Validate(); err != nil {
		return err
	}
	for _, e := range []float64{c.BehaviourE.Value(), c.TargetE.Value()} {
		if e < 0 || e > 1 {
			return fmt.Errorf("epsilon must be in [0, 1], have %v", e)
		}
	}
	return nil
}

// Type returns the type of the agent constructed by the Config
func (c Config) Type() agent.Type {
	return agent.ESARSALinear
}
