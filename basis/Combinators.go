package basis

import (
	"fmt"

	"github.com/tspooner/rsrl-sub001/buffer"
	"gonum.org/v1/gonum/mat"
)

// commonInputDim returns the input dimension shared by bases, where 0
// means any dimension is accepted
func commonInputDim(name string, bases ...Basis) (int, error) {
	dim := 0
	for _, b := range bases {
		in := b.InputDim()
		if in == 0 {
			continue
		}
		if dim != 0 && in != dim {
			return 0, &DimensionError{Basis: name, Want: dim, Have: in}
		}
		dim = in
	}
	return dim, nil
}

func typedConfigs(bases []Basis) []TypedConfig {
	configs := make([]TypedConfig, len(bases))
	for i, b := range bases {
		configs[i] = NewTypedConfig(b.Config())
	}
	return configs
}

func createAll(configs []TypedConfig) ([]Basis, error) {
	bases := make([]Basis, len(configs))
	for i, c := range configs {
		b, err := c.Create()
		if err != nil {
			return nil, err
		}
		bases[i] = b
	}
	return bases, nil
}

// Stacked concatenates the features of several bases. Its dimension is
// the sum of their dimensions.
type Stacked struct {
	bases    []Basis
	inputDim int
}

// Stack returns the concatenation of bases. All bases must accept the
// same state dimension.
func Stack(bases ...Basis) (*Stacked, error) {
	if len(bases) == 0 {
		return nil, fmt.Errorf("stack: no bases given")
	}
	in, err := commonInputDim("stack", bases...)
	if err != nil {
		return nil, err
	}
	return &Stacked{append([]Basis(nil), bases...), in}, nil
}

// Project returns the concatenated features of state. The result is
// sparse only if every stacked basis produces sparse features.
func (s *Stacked) Project(state mat.Vector) (*buffer.Features, error) {
	if err := checkInput("stack", s, state); err != nil {
		return nil, err
	}

	features := make([]*buffer.Features, len(s.bases))
	for i, b := range s.bases {
		f, err := b.Project(state)
		if err != nil {
			return nil, err
		}
		features[i] = f
	}
	return buffer.Concat(features...), nil
}

// Dim returns the sum of the stacked dimensions
func (s *Stacked) Dim() int {
	dim := 0
	for _, b := range s.bases {
		dim += b.Dim()
	}
	return dim
}

// InputDim returns the dimension of states
func (s *Stacked) InputDim() int {
	return s.inputDim
}

// Config returns the configuration of the basis
func (s *Stacked) Config() Config {
	return StackConfig{Bases: typedConfigs(s.bases)}
}

// StackConfig configures a Stacked basis
type StackConfig struct {
	Bases []TypedConfig
}

// Create returns the Stacked basis described by the config
func (c StackConfig) Create() (Basis, error) {
	bases, err := createAll(c.Bases)
	if err != nil {
		return nil, err
	}
	return Stack(bases...)
}

// ValidType returns if the given Basis type is a valid type to be
// created with this config.
func (c StackConfig) ValidType(t Type) bool {
	return t == StackType
}

// Summed adds the features of two bases of equal dimension
type Summed struct {
	a, b     Basis
	inputDim int
}

// Sum returns a basis whose features are the elementwise sum of the
// features of a and b
func Sum(a, b Basis) (*Summed, error) {
	if a.Dim() != b.Dim() {
		return nil, &DimensionError{Basis: "sum", Want: a.Dim(),
			Have: b.Dim()}
	}
	in, err := commonInputDim("sum", a, b)
	if err != nil {
		return nil, err
	}
	return &Summed{a, b, in}, nil
}

// Project returns the summed features of state
func (s *Summed) Project(state mat.Vector) (*buffer.Features, error) {
	if err := checkInput("sum", s, state); err != nil {
		return nil, err
	}

	fa, err := s.a.Project(state)
	if err != nil {
		return nil, err
	}
	fb, err := s.b.Project(state)
	if err != nil {
		return nil, err
	}
	return buffer.CombineFeatures(fa, fb, func(x, y float64) float64 {
		return x + y
	})
}

// Dim returns the number of features
func (s *Summed) Dim() int {
	return s.a.Dim()
}

// InputDim returns the dimension of states
func (s *Summed) InputDim() int {
	return s.inputDim
}

// Config returns the configuration of the basis
func (s *Summed) Config() Config {
	return SumConfig{A: NewTypedConfig(s.a.Config()),
		B: NewTypedConfig(s.b.Config())}
}

// SumConfig configures a Summed basis
type SumConfig struct {
	A, B TypedConfig
}

// Create returns the Summed basis described by the config
func (c SumConfig) Create() (Basis, error) {
	bases, err := createAll([]TypedConfig{c.A, c.B})
	if err != nil {
		return nil, err
	}
	return Sum(bases[0], bases[1])
}

// ValidType returns if the given Basis type is a valid type to be
// created with this config.
func (c SumConfig) ValidType(t Type) bool {
	return t == SumType
}

// Biased appends a constant feature of 1.0 to the features of a basis
type Biased struct {
	Basis
}

// Bias returns b with a constant bias feature appended
func Bias(b Basis) *Biased {
	return &Biased{b}
}

// Project returns the features of state followed by the bias feature
func (b *Biased) Project(state mat.Vector) (*buffer.Features, error) {
	f, err := b.Basis.Project(state)
	if err != nil {
		return nil, err
	}

	var bias *buffer.Features
	if f.IsDense() {
		bias = buffer.NewDenseFeatures([]float64{1.0})
	} else {
		bias = buffer.NewSparseFeatures(1, []int{0})
	}
	return buffer.Concat(f, bias), nil
}

// Dim returns the number of features including the bias
func (b *Biased) Dim() int {
	return b.Basis.Dim() + 1
}

// Config returns the configuration of the basis
func (b *Biased) Config() Config {
	return BiasConfig{Basis: NewTypedConfig(b.Basis.Config())}
}

// BiasConfig configures a Biased basis
type BiasConfig struct {
	Basis TypedConfig
}

// Create returns the Biased basis described by the config
func (c BiasConfig) Create() (Basis, error) {
	b, err := c.Basis.Create()
	if err != nil {
		return nil, err
	}
	return Bias(b), nil
}

// ValidType returns if the given Basis type is a valid type to be
// created with this config.
func (c BiasConfig) ValidType(t Type) bool {
	return t == BiasType
}

// Normalised rescales the features of a basis to unit L1 norm. Features
// which are all zero are returned unchanged.
type Normalised struct {
	Basis
}

// Normalise returns b with its features rescaled to unit L1 norm
func Normalise(b Basis) *Normalised {
	return &Normalised{b}
}

// Project returns the normalised features of state
func (n *Normalised) Project(state mat.Vector) (*buffer.Features, error) {
	f, err := n.Basis.Project(state)
	if err != nil {
		return nil, err
	}
	if norm := f.L1(); norm > 0 {
		f.Scale(1 / norm)
	}
	return f, nil
}

// Config returns the configuration of the basis
func (n *Normalised) Config() Config {
	return NormaliseConfig{Basis: NewTypedConfig(n.Basis.Config())}
}

// NormaliseConfig configures a Normalised basis
type NormaliseConfig struct {
	Basis TypedConfig
}

// Create returns the Normalised basis described by the config
func (c NormaliseConfig) Create() (Basis, error) {
	b, err := c.Basis.Create()
	if err != nil {
		return nil, err
	}
	return Normalise(b), nil
}

// ValidType returns if the given Basis type is a valid type to be
// created with this config.
func (c NormaliseConfig) ValidType(t Type) bool {
	return t == NormaliseType
}
