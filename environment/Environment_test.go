package environment

import (
	"testing"

	"github.com/tspooner/rsrl-sub001/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

func TestStepLimit(t *testing.T) {
	limit := NewStepLimit(3)
	step := timestep.New(timestep.Mid, -1, 1, mat.NewVecDense(1, nil), 2)
	if limit.End(&step) || step.Last() {
		t.Error("end: episode ended before the limit")
	}

	step.Number = 3
	if !limit.End(&step) || step.EndType() != timestep.Timeout {
		t.Errorf("end: want timeout, have %v", step.EndType())
	}
}

func TestIntervalLimit(t *testing.T) {
	limit := NewIntervalLimit([]r1.Interval{{Min: -1, Max: 0.5}}, []int{1},
		timestep.TerminalStateReached)

	step := timestep.New(timestep.Mid, 0, 1,
		mat.NewVecDense(2, []float64{10, 0.2}), 1)
	if limit.End(&step) {
		t.Error("end: ended inside the interval")
	}

	step.Observation = mat.NewVecDense(2, []float64{0, 0.6})
	if !limit.End(&step) || step.EndType() != timestep.TerminalStateReached {
		t.Errorf("end: want terminal end, have %v", step.EndType())
	}
}

func TestUniformStarter(t *testing.T) {
	bounds := []r1.Interval{{Min: -0.6, Max: -0.4}, {Min: 0, Max: 0}}
	a, b := NewUniformStarter(bounds, 3), NewUniformStarter(bounds, 3)

	for i := 0; i < 10; i++ {
		s := a.Start()
		if !mat.Equal(s, b.Start()) {
			t.Fatal("start: same seed gave different states")
		}
		if s.AtVec(0) < -0.6 || s.AtVec(0) > -0.4 || s.AtVec(1) != 0 {
			t.Errorf("start: state %v outside bounds", mat.Formatted(s.T()))
		}
	}
}

func TestSpec(t *testing.T) {
	spec := NewSpec(mat.NewVecDense(1, nil), Action,
		mat.NewVecDense(1, []float64{0}), mat.NewVecDense(1, []float64{2}),
		Discrete)
	n, err := spec.NumActions()
	if err != nil || n != 3 {
		t.Errorf("numActions: want 3 have %v (%v)", n, err)
	}

	spec.Cardinality = Continuous
	if _, err := spec.NumActions(); err == nil {
		t.Error("numActions: expected error for continuous spec")
	}
}
