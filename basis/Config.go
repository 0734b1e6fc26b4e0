package basis

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Type describes the different types of bases that can be configured
type Type string

// Available basis types
const (
	FourierType     Type = "Fourier"
	PolynomialType  Type = "Polynomial"
	ChebyshevType   Type = "Chebyshev"
	TileCodingType  Type = "TileCoding"
	UniformGridType Type = "UniformGrid"
	HashedTilesType Type = "HashedTiles"
	RBFType         Type = "RBF"
	StackType       Type = "Stack"
	SumType         Type = "Sum"
	BiasType        Type = "Bias"
	NormaliseType   Type = "Normalise"
	RawType         Type = "Raw"
)

// configTypes maps each basis type to its concrete Config type
var configTypes = map[string]reflect.Type{
	string(FourierType):     reflect.TypeOf(FourierConfig{}),
	string(PolynomialType):  reflect.TypeOf(PolynomialConfig{}),
	string(ChebyshevType):   reflect.TypeOf(ChebyshevConfig{}),
	string(TileCodingType):  reflect.TypeOf(TileCodingConfig{}),
	string(UniformGridType): reflect.TypeOf(UniformGridConfig{}),
	string(HashedTilesType): reflect.TypeOf(HashedTilesConfig{}),
	string(RBFType):         reflect.TypeOf(RBFConfig{}),
	string(StackType):       reflect.TypeOf(StackConfig{}),
	string(SumType):         reflect.TypeOf(SumConfig{}),
	string(BiasType):        reflect.TypeOf(BiasConfig{}),
	string(NormaliseType):   reflect.TypeOf(NormaliseConfig{}),
	string(RawType):         reflect.TypeOf(RawConfig{}),
}

// Config describes a Basis and can be used to create the Basis it
// describes
type Config interface {
	Create() (Basis, error)

	// ValidType returns whether a specific Basis type can be created
	// with the Config
	ValidType(Type) bool
}

// TypedConfig wraps a Config together with its Type so that it can be
// JSON marshalled and unmarshalled without knowing the concrete Config
// type.
type TypedConfig struct {
	Type
	Config
}

// NewTypedConfig returns c wrapped with its Type. NewTypedConfig
// panics if c is not a Config of this package.
func NewTypedConfig(c Config) TypedConfig {
	for name := range configTypes {
		if c.ValidType(Type(name)) {
			return TypedConfig{Type(name), c}
		}
	}
	panic(fmt.Sprintf("newTypedConfig: unknown config type %T", c))
}

// Create returns the Basis described by the Config
func (t TypedConfig) Create() (Basis, error) {
	if t.Config == nil {
		return nil, fmt.Errorf("create: no config for basis type %v", t.Type)
	}
	if !t.Config.ValidType(t.Type) {
		return nil, fmt.Errorf("create: invalid basis type %v for "+
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
		return nil, "", fmt.Errorf("unmarshalConfig: could not read basis "+
			"type: %v", err)
	}

	ty, found := customTypes[typeName]
	if !found {
		return nil, "", fmt.Errorf("unmarshalConfig: unknown basis type %q",
			typeName)
	}
	value := reflect.New(ty).Interface().(Config)

	if err := json.Unmarshal(m[valueJSONField], value); err != nil {
		return nil, "", err
	}

	// Store the Config by value so that it compares equal to configs
	// returned by Basis.Config
	return reflect.ValueOf(value).Elem().Interface().(Config), Type(typeName),
		nil
}
