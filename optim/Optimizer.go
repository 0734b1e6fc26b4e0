// Package optim implements optimizers which apply gradient updates to
// the weights of linear function approximators.
//
// SGD applies updates exactly: w += α * scale * g for plain gradient
// ascent on the error signal. Solver wraps Gorgonia's solvers (Vanilla,
// Adam, RMSProp) so that adaptive step sizes may be used on linear
// weights as well. All optimizers are JSON serializable through
// TypedConfig.
package optim

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/tspooner/rsrl-sub001/buffer"
	"gonum.org/v1/gonum/mat"
)

// Type describes different types of optimizers that are available
type Type string

// Available optimizer types
const (
	SGD     Type = "SGD"
	Vanilla Type = "Vanilla"
	Adam    Type = "Adam"
	RMSProp Type = "RMSProp"
)

// configTypes maps each optimizer type to its concrete Config type
var configTypes = map[string]reflect.Type{
	string(SGD):     reflect.TypeOf(SGDConfig{}),
	string(Vanilla): reflect.TypeOf(VanillaConfig{}),
	string(Adam):    reflect.TypeOf(AdamConfig{}),
	string(RMSProp): reflect.TypeOf(RMSPropConfig{}),
}

// Optimizer applies gradient steps to a weight matrix
type Optimizer interface {
	// Apply moves w in the direction of scale * g. If Apply returns an
	// error, w is unchanged.
	Apply(w *mat.Dense, g buffer.Buffer, scale float64) error

	// LearningRate returns the current learning rate
	LearningRate() float64

	// Step advances any learning rate schedule by one step, it should
	// be called once per terminal transition
	Step()

	// TypedConfig returns a configuration which creates an equivalent
	// Optimizer. Internal optimizer state, such as Adam's moment
	// estimates, is not included.
	TypedConfig() TypedConfig
}

// Config describes an Optimizer and can be used to create the
// Optimizer it describes
type Config interface {
	Create() (Optimizer, error)

	// ValidType returns whether a specific Optimizer type can be
	// created with the Config
	ValidType(Type) bool
}

// TypedConfig wraps a Config together with its Type so that it can be
// JSON marshalled and unmarshalled.
type TypedConfig struct {
	Type
	Config
}

// Create returns the Optimizer described by the config
func (t TypedConfig) Create() (Optimizer, error) {
	if t.Config == nil {
		return nil, fmt.Errorf("create: no config for optimizer type %v",
			t.Type)
	}
	if !t.Config.ValidType(t.Type) {
		return nil, fmt.Errorf("create: invalid optimizer type %v for "+
			"configuration %T", t.Type, t.Config)
	}
	return t.Config.Create()
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (t *TypedConfig) UnmarshalJSON(data []byte) error {
	config, typeName, err := unmarshalConfig(data, "Type", "Config",
		configTypes)
	if err != nil {
		return err
	}

	t.Type = typeName
	t.Config = config
	return nil
}

// unmarshalConfig uses reflection to unmarshal a Config into its
// concrete type. Both the Config and its Type are returned.
func unmarshalConfig(data []byte, typeJSONField, valueJSONField string,
	customTypes map[string]reflect.Type) (Config, Type, error) {
	m := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, "", err
	}

	var typeName string
	if err := json.Unmarshal(m[typeJSONField], &typeName); err != nil {
		return nil, "", fmt.Errorf("unmarshalConfig: could not read "+
			"optimizer type: %v", err)
	}

	ty, found := customTypes[typeName]
	if !found {
		return nil, "", fmt.Errorf("unmarshalConfig: unknown optimizer "+
			"type %q", typeName)
	}
	value := reflect.New(ty).Interface()

	if err := json.Unmarshal(m[valueJSONField], value); err != nil {
		return nil, "", err
	}
	return reflect.ValueOf(value).Elem().Interface().(Config), Type(typeName),
		nil
}
