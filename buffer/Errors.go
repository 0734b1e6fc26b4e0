package buffer

import "fmt"

// ShapeMismatch is returned when two Buffers, or a Buffer and a weight
// matrix, disagree on their shape. Operations returning a ShapeMismatch
// never partially mutate their operands.
type ShapeMismatch struct {
	Op   string
	Want Shape
	Have Shape
}

func (s *ShapeMismatch) Error() string {
	return fmt.Sprintf("%v: shape mismatch \n\twant: %v \n\thave: %v", s.Op,
		s.Want, s.Have)
}
