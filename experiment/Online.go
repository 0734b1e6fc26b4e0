package experiment

import (
	"fmt"
	"io"
	"log"

	"github.com/tspooner/rsrl-sub001/agent"
	env "github.com/tspooner/rsrl-sub001/environment"
	"github.com/tspooner/rsrl-sub001/experiment/checkpointer"
	"github.com/tspooner/rsrl-sub001/experiment/trackers"
	ts "github.com/tspooner/rsrl-sub001/timestep"
	"github.com/tspooner/rsrl-sub001/utils/progressbar"
)

// Online is an Experiment that runs an agent online only. No offline
// evaluation is performed.
//
// Each step of the environment is turned into a Transition which the
// agent learns from before selecting its next action. When an episode
// ends, the schedules of the agent are advanced.
type Online struct {
	env           env.Environment
	agent         agent.Agent
	maxSteps      uint
	currentSteps  uint
	episodes      int
	trackers      []trackers.Tracker
	checkpointers []checkpointer.Checkpointer
	bar           *progressbar.ManualProgressBar
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent. The steps parameter determines how
// many timesteps the experiment is run for.
func NewOnline(e env.Environment, a agent.Agent, steps uint,
	t []trackers.Tracker, c []checkpointer.Checkpointer) *Online {
	return &Online{
		env:           e,
		agent:         a,
		maxSteps:      steps,
		trackers:      t,
		checkpointers: c,
	}
}

// ShowProgress displays a progress bar on out while the experiment runs
func (o *Online) ShowProgress(out io.Writer) {
	o.bar = newBar(out, o.maxSteps)
}

// Register registers a Tracker with the experiment so that data
// generated during the experiment can be tracked and saved
func (o *Online) Register(t trackers.Tracker) {
	o.trackers = append(o.trackers, t)
}

// RunEpisode runs a single episode of the experiment, returning whether
// the step limit of the experiment has been reached
func (o *Online) RunEpisode() (bool, error) {
	step := o.env.Reset()
	if err := o.track(step); err != nil {
		return false, err
	}

	for !step.Last() && o.currentSteps < o.maxSteps {
		o.currentSteps++

		action, err := o.agent.SelectAction(step.Observation)
		if err != nil {
			return false, fmt.Errorf("runEpisode: step %d: %w",
				o.currentSteps, err)
		}
		next, _ := o.env.Step(action)

		tr := ts.NewTransition(step, action, next)
		if err := o.agent.Handle(tr); err != nil {
			return false, fmt.Errorf("runEpisode: step %d: %w",
				o.currentSteps, err)
		}

		if err := o.track(next); err != nil {
			return false, err
		}
		if o.bar != nil {
			o.bar.Increment()
			if o.currentSteps%100 == 0 {
				o.bar.Display()
			}
		}
		step = next
	}

	if step.Last() {
		o.episodes++
		o.agent.EndEpisode()
	}
	return o.currentSteps >= o.maxSteps, nil
}

// Run runs the entire experiment for all timesteps. The experiment
// stops at the first error.
func (o *Online) Run() error {
	if o.bar != nil {
		defer o.bar.Close()
	}

	for {
		ended, err := o.RunEpisode()
		if err != nil {
			log.Printf("run: stopping after %d steps and %d episodes: %v",
				o.currentSteps, o.episodes, err)
			return err
		}
		if ended {
			return nil
		}
	}
}

// Save saves all the data cached by the Trackers to disk
func (o *Online) Save() error {
	for _, t := range o.trackers {
		if err := t.Save(); err != nil {
			return err
		}
	}
	return nil
}

// Steps returns the number of steps taken so far
func (o *Online) Steps() uint {
	return o.currentSteps
}

// Episodes returns the number of episodes finished so far
func (o *Online) Episodes() int {
	return o.episodes
}

// Agent returns the agent of the experiment
func (o *Online) Agent() agent.Agent {
	return o.agent
}

// Environment returns the environment of the experiment
func (o *Online) Environment() env.Environment {
	return o.env
}

// Trackers returns the Trackers registered with the experiment
func (o *Online) Trackers() []trackers.Tracker {
	return o.trackers
}

// track sends the timestep to each Tracker and Checkpointer
func (o *Online) track(t ts.TimeStep) error {
	for _, tracker := range o.trackers {
		tracker.Track(t)
	}
	for _, c := range o.checkpointers {
		if err := c.Checkpoint(t); err != nil {
			return fmt.Errorf("track: checkpoint: %v", err)
		}
	}
	return nil
}
