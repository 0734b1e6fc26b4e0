package trackers

import (
	"math"
	"path/filepath"
	"testing"

	ts "github.com/tspooner/rsrl-sub001/timestep"
	"gonum.org/v1/gonum/mat"
)

// episode returns the timesteps of an episode of n steps with reward r
// on every step after the first
func episode(n int, r float64) []ts.TimeStep {
	obs := mat.NewVecDense(1, nil)
	steps := []ts.TimeStep{ts.New(ts.First, 0, 1, obs, 0)}
	for i := 1; i <= n; i++ {
		kind := ts.Mid
		if i == n {
			kind = ts.Last
		}
		steps = append(steps, ts.New(kind, r, 1, obs, i))
	}
	return steps
}

func TestTrackers(t *testing.T) {
	dir := t.TempDir()
	ret := NewReturn(filepath.Join(dir, "return.bin"))
	length := NewEpisodeLength(filepath.Join(dir, "length.bin"))

	for _, ep := range [][]ts.TimeStep{episode(3, -1), episode(5, -2)} {
		for _, step := range ep {
			ret.Track(step)
			length.Track(step)
		}
	}

	// an unfinished episode is not recorded
	for _, step := range episode(4, -1)[:2] {
		ret.Track(step)
		length.Track(step)
	}

	tests := []struct {
		name    string
		tracker Tracker
		want    []float64
		mean    float64
	}{
		{"return", ret, []float64{-3, -10}, -10},
		{"length", length, []float64{3, 5}, 5},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			data := test.tracker.Data()
			if !equal(data, test.want) {
				t.Errorf("data %v, want %v", data, test.want)
			}
			if m := Mean(test.tracker, 1); m != test.mean {
				t.Errorf("mean of last episode %v, want %v", m, test.mean)
			}

			if err := test.tracker.Save(); err != nil {
				t.Fatal(err)
			}
			filename := filepath.Join(dir, test.name+".bin")
			loaded, err := LoadData(filename)
			if err != nil {
				t.Fatal(err)
			}
			if !equal(loaded, test.want) {
				t.Errorf("loaded %v, want %v", loaded, test.want)
			}
		})
	}
}

func TestMeanNoEpisodes(t *testing.T) {
	if m := Mean(NewReturn(""), 10); !math.IsNaN(m) {
		t.Errorf("mean %v, want NaN", m)
	}
}

func TestReturnPanicsOnSkippedStep(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic")
		}
	}()
	r := NewReturn("")
	steps := episode(3, 1)
	r.Track(steps[0])
	r.Track(steps[2])
}

func equal(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
