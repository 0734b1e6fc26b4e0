package checkpointer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tspooner/rsrl-sub001/basis"
	"github.com/tspooner/rsrl-sub001/fa"
	"github.com/tspooner/rsrl-sub001/optim"
	ts "github.com/tspooner/rsrl-sub001/timestep"
	"gonum.org/v1/gonum/mat"
)

func TestNStep(t *testing.T) {
	b, err := basis.NewRaw(2)
	if err != nil {
		t.Fatal(err)
	}
	v, err := fa.NewScalar(b, optim.NewFixedSGD(0.1), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := v.SetWeights(mat.NewDense(2, 1, []float64{0.5, -1})); err != nil {
		t.Fatal(err)
	}

	prefix := filepath.Join(t.TempDir(), "v")
	c, err := NewNStep(2, v, FilenameEnumerator(0, prefix, ".bin"))
	if err != nil {
		t.Fatal(err)
	}

	obs := mat.NewVecDense(2, nil)
	steps := []ts.TimeStep{
		ts.New(ts.First, 0, 1, obs, 0),
		ts.New(ts.Mid, -1, 1, obs, 1),
		ts.New(ts.Last, -1, 1, obs, 2),
		ts.New(ts.First, 0, 1, obs, 0),
		ts.New(ts.Mid, -1, 1, obs, 1),
	}
	for _, step := range steps {
		if err := c.Checkpoint(step); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := os.Stat(prefix + "2.bin"); !os.IsNotExist(err) {
		t.Errorf("expected one checkpoint after 3 steps, stat: %v", err)
	}

	var loaded fa.LFA
	if err := Load(prefix+"1.bin", &loaded); err != nil {
		t.Fatal(err)
	}
	if !mat.Equal(loaded.Weights(), v.Weights()) {
		t.Errorf("loaded weights %v, want %v",
			loaded.Weights().RawMatrix().Data, v.Weights().RawMatrix().Data)
	}
}

func TestNewNStepInvalid(t *testing.T) {
	if _, err := NewNStep(0, nil, nil); err == nil {
		t.Error("expected an error for a zero interval")
	}
}
