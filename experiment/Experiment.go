// Package experiment implements functionality for running an experiment
package experiment

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tspooner/rsrl-sub001/agent"
	"github.com/tspooner/rsrl-sub001/environment/envconfig"
	"github.com/tspooner/rsrl-sub001/experiment/checkpointer"
	"github.com/tspooner/rsrl-sub001/experiment/trackers"
	"github.com/tspooner/rsrl-sub001/utils/progressbar"
)

// Files written to the output directory of an experiment
const (
	ReturnFile     = "return.bin"
	LengthFile     = "length.bin"
	CheckpointName = "values-"
	CheckpointExt  = ".bin"
)

// Config represents a configuration of an experiment
type Config struct {
	Environment envconfig.Config
	Agent       agent.TypedConfig
	MaxSteps    uint
	Seed        uint64
	Output      OutputConfig
}

// OutputConfig determines where the data of an experiment is saved.
// If CheckpointEvery is positive, the value function of the agent is
// checkpointed every CheckpointEvery steps.
type OutputConfig struct {
	Dir             string
	CheckpointEvery int
	ProgressBar     bool
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if err := c.Environment.Validate(); err != nil {
		return err
	}
	if c.Agent.Config == nil {
		return fmt.Errorf("validate: no agent configured")
	}
	if c.MaxSteps == 0 {
		return fmt.Errorf("validate: max steps must be positive")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("validate: no output directory")
	}
	return nil
}

// CreateExp creates the experiment described by the Config, along with
// its environment, agent, and trackers. The output directory is
// created if it does not exist.
func (c Config) CreateExp() (*Online, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("createExp: %v", err)
	}

	env, _, err := c.Environment.Create(c.Seed)
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create environment: %v",
			err)
	}
	a, err := c.Agent.CreateAgent(env, c.Seed)
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create agent: %v", err)
	}

	if err := os.MkdirAll(c.Output.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("createExp: %v", err)
	}
	t := []trackers.Tracker{
		trackers.NewReturn(filepath.Join(c.Output.Dir, ReturnFile)),
		trackers.NewEpisodeLength(filepath.Join(c.Output.Dir, LengthFile)),
	}

	var check []checkpointer.Checkpointer
	if c.Output.CheckpointEvery > 0 {
		v, ok := a.(agent.Valued)
		if !ok || v.Values() == nil {
			return nil, fmt.Errorf("createExp: agent %v has no value "+
				"function to checkpoint", c.Agent.Type)
		}
		n, err := checkpointer.NewNStep(c.Output.CheckpointEvery, v.Values(),
			checkpointer.FilenameEnumerator(0, filepath.Join(c.Output.Dir,
				CheckpointName), CheckpointExt))
		if err != nil {
			return nil, fmt.Errorf("createExp: %v", err)
		}
		check = append(check, n)
	}

	o := NewOnline(env, a, c.MaxSteps, t, check)
	if c.Output.ProgressBar {
		o.ShowProgress(os.Stderr)
	}
	return o, nil
}

// newBar returns the progress bar shown while running experiments
func newBar(out io.Writer, steps uint) *progressbar.ManualProgressBar {
	return progressbar.NewManualProgressBar(out, 50, int(steps))
}
