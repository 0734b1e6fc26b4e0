// Package envconfig provides configuration structs for configuring
// environments with default physical parameters and tasks. Environment
// configurations in this package are JSON serializable.
package envconfig

import (
	"fmt"

	env "github.com/tspooner/rsrl-sub001/environment"
	"github.com/tspooner/rsrl-sub001/environment/classiccontrol/mountaincar"
	ts "github.com/tspooner/rsrl-sub001/timestep"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	MountainCar EnvName = "MountainCar"
)

// TaskName stores the tasks that can be configured with this package
type TaskName string

// Tasks available for configuration
const (
	Goal TaskName = "Goal"
)

// Config implements a specific configuration of a specific environment
// and specific task
type Config struct {
	Environment       EnvName
	Task              TaskName
	ContinuousActions bool
	EpisodeCutoff     uint
	Discount          float64
}

// Validate ensures that the Config describes an environment that can
// be created
func (c Config) Validate() error {
	if c.Environment != MountainCar {
		return fmt.Errorf("validate: no such environment %q", c.Environment)
	}
	if c.Task != Goal {
		return fmt.Errorf("validate: %v has no task %q", c.Environment,
			c.Task)
	}
	if c.EpisodeCutoff == 0 {
		return fmt.Errorf("validate: episode cutoff must be positive")
	}
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("validate: discount must be in [0, 1], have %v",
			c.Discount)
	}
	return nil
}

// Create returns the environment described by the Config as well as
// the first timestep of the environment.
func (c Config) Create(seed uint64) (env.Environment, ts.TimeStep, error) {
	if err := c.Validate(); err != nil {
		return nil, ts.TimeStep{}, err
	}
	return CreateMountainCar(c.ContinuousActions, int(c.EpisodeCutoff), seed,
		c.Discount)
}

// CreateMountainCar is a factory for creating the MountainCar
// environment with default physical parameters and the Goal task
func CreateMountainCar(continuousActions bool, cutoff int, seed uint64,
	discount float64) (env.Environment, ts.TimeStep, error) {
	task := mountaincar.NewDefaultGoal(cutoff, seed)

	if continuousActions {
		return mountaincar.NewContinuous(task, discount)
	}
	return mountaincar.NewDiscrete(task, discount)
}
