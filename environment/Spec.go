package environment

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

// SpecType determines what kind of specification a Spec is. A Spec can
// specify the layout of an action, an observation, a discount, or a
// reward
type SpecType int

const (
	Action SpecType = iota
	Observation
	Discount
	Reward
)

func (s SpecType) String() string {
	switch s {
	case Action:
		return "Action"
	case Observation:
		return "Observation"
	case Discount:
		return "Discount"
	default:
		return "Reward"
	}
}

// Cardinality determines the cardinality of a number (discrete or
// continuous)
type Cardinality string

const (
	Continuous Cardinality = "Continuous"
	Discrete   Cardinality = "Discrete"
)

// Spec implements an environment specification, which tells the type,
// shape, and bounds of an action, observation, discount, or reward in
// an environment
type Spec struct {
	Shape      mat.Vector
	Type       SpecType
	LowerBound mat.Vector
	UpperBound mat.Vector
	Cardinality
}

// NewSpec constructs a new environment specification.
// The shape argument outlines the shape of the data described by the
// specification. The argument t outlines what the specification is
// describing (e.g. actions, observations, etc.). The cardinality
// arguments describes whether the values that the spec describes are
// continuous or discrete.
func NewSpec(shape mat.Vector, t SpecType, lowerBound,
	upperBound mat.Vector, cardinality Cardinality) Spec {
	if shape.Len() != lowerBound.Len() {
		panic(fmt.Sprintf("newSpec: shape length %v must match lower bounds "+
			"length %v", shape.Len(), lowerBound.Len()))
	}
	if shape.Len() != upperBound.Len() {
		panic(fmt.Sprintf("newSpec: shape length %v must match upper bounds "+
			"length %v", shape.Len(), upperBound.Len()))
	}
	return Spec{shape, t, lowerBound, upperBound, cardinality}
}

// Dims returns the number of dimensions the Spec describes
func (s Spec) Dims() int {
	return s.Shape.Len()
}

// Bounds returns the lower and upper bound of each dimension as an
// interval
func (s Spec) Bounds() []r1.Interval {
	bounds := make([]r1.Interval, s.Dims())
	for i := range bounds {
		bounds[i] = r1.Interval{Min: s.LowerBound.AtVec(i),
			Max: s.UpperBound.AtVec(i)}
	}
	return bounds
}

// NumActions returns the number of discrete actions a 1-dimensional
// Discrete action Spec describes. Actions are assumed to be the
// integers between the bounds inclusive.
func (s Spec) NumActions() (int, error) {
	if s.Cardinality != Discrete || s.Dims() != 1 {
		return 0, fmt.Errorf("numActions: spec is not a 1-dimensional "+
			"discrete spec, have %d-dimensional %v spec", s.Dims(),
			s.Cardinality)
	}
	return int(s.UpperBound.AtVec(0)-s.LowerBound.AtVec(0)) + 1, nil
}

func (s Spec) String() string {
	return fmt.Sprintf("%v Spec | %v | Dims: %d | Bounds: %v", s.Type,
		s.Cardinality, s.Dims(), s.Bounds())
}
