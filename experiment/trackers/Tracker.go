// Package trackers implements Trackers, which track and save data in
// an experiment
package trackers

import (
	"encoding/gob"
	"fmt"
	"os"

	ts "github.com/tspooner/rsrl-sub001/timestep"
	"gonum.org/v1/gonum/stat"
)

// Tracker keeps track of experiment data and saves the data after the
// experiment has finished
type Tracker interface {
	Track(t ts.TimeStep)

	// Data returns one value per finished episode
	Data() []float64
	Save() error
}

// Mean returns the mean of the data of a Tracker over the last n
// episodes, or over all episodes if fewer than n have finished. NaN is
// returned if no episodes have finished.
func Mean(t Tracker, n int) float64 {
	data := t.Data()
	if n > 0 && len(data) > n {
		data = data[len(data)-n:]
	}
	return stat.Mean(data, nil)
}

// save gob encodes data into filename
func save(filename string, data interface{}) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: could not open save file: %v", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(data); err != nil {
		return fmt.Errorf("save: could not encode data: %v", err)
	}
	return nil
}

// LoadData loads and returns the data saved by a Tracker
func LoadData(filename string) ([]float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loadData: could not open data file: %v", err)
	}
	defer file.Close()

	var data []float64
	if err := gob.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("loadData: could not decode data: %v", err)
	}
	return data, nil
}
