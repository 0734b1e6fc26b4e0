package fa

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"

	"github.com/tspooner/rsrl-sub001/basis"
	"github.com/tspooner/rsrl-sub001/optim"
	"gonum.org/v1/gonum/mat"
)

// lfaData is the serialized form of an LFA. The basis and optimizer are
// stored as their JSON typed configurations, so internal optimizer
// state is not saved.
type lfaData struct {
	Rows, Cols int
	Weights    []float64
	Basis      []byte
	Optimizer  []byte
}

// GobEncode implements the gob.GobEncoder interface
func (l *LFA) GobEncode() ([]byte, error) {
	basisConfig, err := json.Marshal(basis.NewTypedConfig(l.basis.Config()))
	if err != nil {
		return nil, fmt.Errorf("gobEncode: could not encode basis: %v", err)
	}
	optConfig, err := json.Marshal(l.opt.TypedConfig())
	if err != nil {
		return nil, fmt.Errorf("gobEncode: could not encode optimizer: %v",
			err)
	}

	r, c := l.weights.Dims()
	data := lfaData{
		Rows:      r,
		Cols:      c,
		Weights:   mat.DenseCopyOf(l.weights).RawMatrix().Data,
		Basis:     basisConfig,
		Optimizer: optConfig,
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(data); err != nil {
		return nil, fmt.Errorf("gobEncode: %v", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface. The receiver is
// only modified if decoding succeeds.
func (l *LFA) GobDecode(in []byte) error {
	var data lfaData
	if err := gob.NewDecoder(bytes.NewReader(in)).Decode(&data); err != nil {
		return fmt.Errorf("gobDecode: %v", err)
	}

	var basisConfig basis.TypedConfig
	if err := json.Unmarshal(data.Basis, &basisConfig); err != nil {
		return fmt.Errorf("gobDecode: could not decode basis: %v", err)
	}
	b, err := basisConfig.Create()
	if err != nil {
		return fmt.Errorf("gobDecode: %v", err)
	}

	var optConfig optim.TypedConfig
	if err := json.Unmarshal(data.Optimizer, &optConfig); err != nil {
		return fmt.Errorf("gobDecode: could not decode optimizer: %v", err)
	}
	opt, err := optConfig.Create()
	if err != nil {
		return fmt.Errorf("gobDecode: %v", err)
	}

	if data.Cols < 1 || b.Dim() != data.Rows || len(data.Weights) != data.Rows*data.Cols {
		return fmt.Errorf("gobDecode: weights of size (%d x %d) do not "+
			"match basis of dimension %d", data.Rows, data.Cols, b.Dim())
	}

	l.weights = mat.NewDense(data.Rows, data.Cols, data.Weights)
	l.basis = b
	l.opt = opt
	return nil
}
