// Package checkpointer implements periodic saving of serializable
// objects, such as function approximators, during an experiment
package checkpointer

import (
	"encoding/gob"
	"fmt"
	"os"

	ts "github.com/tspooner/rsrl-sub001/timestep"
)

// Serializable is an object that can be saved/serialized
type Serializable interface {
	gob.GobEncoder
	gob.GobDecoder
}

// Checkpointer checkpoints/saves serializable objects based on
// timestep.TimeSteps
type Checkpointer interface {
	Checkpoint(ts.TimeStep) error
}

// Save gob encodes object into filename
func Save(filename string, object Serializable) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: %v", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(object); err != nil {
		return fmt.Errorf("save: could not encode %T: %v", object, err)
	}
	return nil
}

// Load decodes the object saved in filename into object
func Load(filename string, object Serializable) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("load: %v", err)
	}
	defer file.Close()

	if err := gob.NewDecoder(file).Decode(object); err != nil {
		return fmt.Errorf("load: could not decode %T: %v", object, err)
	}
	return nil
}
