package environment

import (
	"github.com/tspooner/rsrl-sub001/timestep"
	"gonum.org/v1/gonum/spatial/r1"
)

// IntervalLimit implements the Ender interface to end episodes
// whenever a single dimension of the observation leaves some interval
type IntervalLimit struct {
	intervals []r1.Interval
	indices   []int
	endType   timestep.EndType
}

// NewIntervalLimit creates and returns a new interval limit. The
// endType argument determines what the episode end should be
// considered as.
func NewIntervalLimit(limits []r1.Interval, obsIndices []int,
	endType timestep.EndType) *IntervalLimit {
	if len(limits) != len(obsIndices) {
		panic("newIntervalLimit: limits should have same length as " +
			"observation indices")
	}

	return &IntervalLimit{limits, obsIndices, endType}
}

// End ends the episode if any tracked dimension of the observation is
// outside its interval
func (i *IntervalLimit) End(t *timestep.TimeStep) bool {
	for index, feature := range i.indices {
		interval := i.intervals[index]
		v := t.Observation.AtVec(feature)

		if v > interval.Max || v < interval.Min {
			t.SetEnd(i.endType)
			return true
		}
	}
	return false
}
