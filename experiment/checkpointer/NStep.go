package checkpointer

import (
	"fmt"

	ts "github.com/tspooner/rsrl-sub001/timestep"
)

// nStep implements checkpointing every N steps of an experiment
type nStep struct {
	interval int
	steps    int
	object   Serializable

	// filename returns the filename of the file to save the object in.
	// To save each checkpoint in its own file (file1.bin, file2.bin,
	// ...), use FilenameEnumerator:
	//
	//	n, err := NewNStep(10, object, FilenameEnumerator(0, "file", ".bin"))
	filename func() string
}

// NewNStep returns a checkpointer that checkpoints every n steps.
// Steps are counted over all episodes, so the first timestep of each
// episode, which follows no action, is not counted.
func NewNStep(n int, object Serializable,
	filename func() string) (Checkpointer, error) {
	if n < 1 {
		return nil, fmt.Errorf("newNStep: interval must be positive, "+
			"have %d", n)
	}
	if object == nil {
		return nil, fmt.Errorf("newNStep: no object to checkpoint")
	}
	return &nStep{
		interval: n,
		object:   object,
		filename: filename,
	}, nil
}

// Checkpoint saves the tracked object if the interval has elapsed
func (n *nStep) Checkpoint(t ts.TimeStep) error {
	if t.First() {
		return nil
	}

	n.steps++
	if n.steps%n.interval == 0 {
		return Save(n.filename(), n.object)
	}
	return nil
}
