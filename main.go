// Command rsrl-sub001 runs a linear reinforcement learning agent on
// Mountain Car as described by a JSON experiment configuration, then
// writes a report of the run to the output directory.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/tspooner/rsrl-sub001/agent/linear/continuous/actorcritic"
	_ "github.com/tspooner/rsrl-sub001/agent/linear/discrete/esarsa"
	_ "github.com/tspooner/rsrl-sub001/agent/linear/discrete/qlearning"
	_ "github.com/tspooner/rsrl-sub001/agent/linear/discrete/sarsa"

	"github.com/tspooner/rsrl-sub001/agent"
	"github.com/tspooner/rsrl-sub001/environment/classiccontrol/mountaincar"
	"github.com/tspooner/rsrl-sub001/experiment"
	"github.com/tspooner/rsrl-sub001/experiment/report"
	"github.com/tspooner/rsrl-sub001/experiment/trackers"
	"gonum.org/v1/gonum/spatial/r1"
)

const (
	curveFile   = "learning-curve.html"
	heatmapFile = "values.png"
	lastN       = 20
)

func main() {
	configFile := flag.String("config", "config.json", "experiment "+
		"configuration file")
	window := flag.Int("window", 10, "moving average window of the "+
		"learning curve")
	flag.Parse()

	data, err := os.ReadFile(*configFile)
	if err != nil {
		log.Fatalf("could not read config: %v", err)
	}
	var config experiment.Config
	if err := json.Unmarshal(data, &config); err != nil {
		log.Fatalf("could not parse config: %v", err)
	}

	e, err := config.CreateExp()
	if err != nil {
		log.Fatalf("could not create experiment: %v", err)
	}

	log.Printf("running %v for %d steps", config.Agent.Type, config.MaxSteps)
	failures := 0
	if err := e.Run(); err != nil {
		failures++
	}
	if err := e.Save(); err != nil {
		log.Fatalf("could not save data: %v", err)
	}

	returns, lengths := e.Trackers()[0], e.Trackers()[1]
	report.Summary{
		Agent:    string(config.Agent.Type),
		Steps:    e.Steps(),
		Returns:  returns.Data(),
		Lengths:  lengths.Data(),
		LastN:    lastN,
		Failures: failures,
	}.Print(os.Stdout)

	if err := writeReport(config.Output.Dir, *window, e, returns,
		lengths); err != nil {
		log.Fatalf("could not write report: %v", err)
	}
	if failures > 0 {
		os.Exit(1)
	}
}

// writeReport writes the learning curve and, if the agent learns a
// value function, its heatmap over the state space
func writeReport(dir string, window int, e *experiment.Online, returns,
	lengths trackers.Tracker) error {
	curve, err := os.Create(filepath.Join(dir, curveFile))
	if err != nil {
		return err
	}
	defer curve.Close()

	err = report.LearningCurve(curve, "Mountain Car", window,
		report.Series{Name: "return", Data: returns.Data()},
		report.Series{Name: "episode length", Data: lengths.Data()})
	if err != nil {
		return err
	}

	v, ok := e.Agent().(agent.Valued)
	if !ok || v.Values() == nil {
		return nil
	}
	bounds := e.Environment().ObservationSpec().Bounds()
	if len(bounds) != mountaincar.ObservationDims {
		return fmt.Errorf("writeReport: cannot draw a %d-dimensional state "+
			"space", len(bounds))
	}

	heatmap, err := os.Create(filepath.Join(dir, heatmapFile))
	if err != nil {
		return err
	}
	defer heatmap.Close()
	return report.Heatmap(heatmap, report.MaxValue(v.Values()),
		[2]r1.Interval{bounds[0], bounds[1]}, 50, 8)
}
