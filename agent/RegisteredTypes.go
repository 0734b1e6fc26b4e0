package agent

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/tspooner/rsrl-sub001/environment"
)

// Type represents a specific type of an agent Config.
// Config's with this type can create Agents of the corresponding type.
type Type string

const (
	QLearningLinear Type = "QLearning-Linear"
	GreedyGQLinear  Type = "GreedyGQ-Linear"
	PALLinear       Type = "PAL-Linear"
	SARSALinear     Type = "SARSA-Linear"
	ESARSALinear    Type = "ESARSA-Linear"
	TDACLinear      Type = "TDActorCritic-Linear"
	NACLinear       Type = "NaturalActorCritic-Linear"
)

// Config represents a configuration for creating an agent
type Config interface {
	// CreateAgent creates the agent that the config describes
	CreateAgent(env environment.Environment, seed uint64) (Agent, error)

	// Validate returns an error describing whether or not the
	// configuration is valid or not.
	Validate() error

	// Type returns the type of agent the Config creates
	Type() Type
}

// Registered types with the package. Once a Type has been registered
// with this map, a TypedConfig with that type can be unmarshalled.
//
// No Type's are registered with this package upon initialization.
// Each algorithm package registers its own Config in init to avoid
// circular imports.
var registeredTypes = make(map[Type]reflect.Type)

// Register registers an agent's Type with a concrete Config type so
// that upon deserialization of a TypedConfig, Configs of type
// agentType are deserialized into the concrete type.
func Register(agentType Type, config Config) {
	registeredTypes[agentType] = reflect.TypeOf(config)
}

// TypedConfig explicitly stores the Type of a Config so that when
// deserializing the Config, we can deserialize it into its concrete
// type without knowing it beforehand.
type TypedConfig struct {
	Type
	Config
}

// NewTypedConfig types the argument Config
func NewTypedConfig(c Config) TypedConfig {
	return TypedConfig{Type: c.Type(), Config: c}
}

// CreateAgent validates the Config and creates the agent it describes
func (t TypedConfig) CreateAgent(env environment.Environment,
	seed uint64) (Agent, error) {
	if t.Config == nil {
		return nil, fmt.Errorf("createAgent: no config for agent type %v",
			t.Type)
	}
	if err := t.Config.Validate(); err != nil {
		return nil, fmt.Errorf("createAgent: invalid %v config: %v", t.Type,
			err)
	}
	return t.Config.CreateAgent(env, seed)
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (t *TypedConfig) UnmarshalJSON(data []byte) error {
	config, typeName, err := unmarshalConfig(data, "Type", "Config")
	if err != nil {
		return err
	}

	t.Type = typeName
	t.Config = config
	return nil
}

// unmarshalConfig uses reflection to unmarshal a Config into its
// concrete type. Both the Config and its Type are returned.
func unmarshalConfig(data []byte, typeJSONField,
	valueJSONField string) (Config, Type, error) {
	m := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, "", err
	}

	var typeName Type
	if err := json.Unmarshal(m[typeJSONField], &typeName); err != nil {
		return nil, "", fmt.Errorf("unmarshalConfig: could not read agent "+
			"type: %v", err)
	}

	ty, found := registeredTypes[typeName]
	if !found {
		return nil, "", fmt.Errorf("unmarshalConfig: agent type %q is not "+
			"registered", typeName)
	}
	value := reflect.New(ty).Interface()

	if err := json.Unmarshal(m[valueJSONField], value); err != nil {
		return nil, "", err
	}
	return reflect.ValueOf(value).Elem().Interface().(Config), typeName, nil
}
