package policy

import (
	"github.com/tspooner/rsrl-sub001/fa"
	"github.com/tspooner/rsrl-sub001/param"
)

// NewGreedy creates a new greedy policy, which is an ε-greedy policy
// with ε = 0
func NewGreedy(q *fa.LFA, seed uint64) *EGreedy {
	return NewEGreedy(q, param.NewFixed(0), seed)
}
