package timestep

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNewTransition(t *testing.T) {
	s := mat.NewVecDense(2, []float64{0, 1})
	sNext := mat.NewVecDense(2, []float64{1, 2})
	a := mat.NewVecDense(1, []float64{2})

	first := New(First, 0, 0.9, s, 0)
	mid := New(Mid, -1, 0.9, sNext, 1)

	tr := NewTransition(first, a, mid)
	if tr.Terminal() || tr.Last {
		t.Error("newTransition: mid step transition marked as ending")
	}
	if tr.Bootstrap() != 0.9 || tr.Reward != -1 || tr.DiscreteAction() != 2 {
		t.Errorf("newTransition: unexpected transition %v", tr)
	}

	terminal := New(Mid, 0, 0.9, sNext, 2)
	terminal.SetEnd(TerminalStateReached)
	tr = NewTransition(mid, a, terminal)
	if !tr.Terminal() || !tr.Last || tr.Bootstrap() != 0 {
		t.Errorf("newTransition: want terminal transition, have %v", tr)
	}

	timeout := New(Mid, -1, 0.9, sNext, 3)
	timeout.SetEnd(Timeout)
	tr = NewTransition(mid, a, timeout)
	if tr.Terminal() || !tr.Last || tr.Bootstrap() != 0.9 {
		t.Errorf("newTransition: timeout should bootstrap, have %v", tr)
	}
}

func TestEndType(t *testing.T) {
	step := New(Last, 0, 1, nil, 5)
	if step.EndType() != TerminalStateReached {
		t.Errorf("endType: want %v have %v", TerminalStateReached,
			step.EndType())
	}

	step = New(Mid, 0, 1, nil, 5)
	if step.EndType() != NotEnded || step.Last() {
		t.Errorf("endType: mid step has end type %v", step.EndType())
	}
}

func TestDiscreteActionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("discreteAction: expected panic for fractional action")
		}
	}()
	Transition{Action: mat.NewVecDense(1, []float64{0.5})}.DiscreteAction()
}
