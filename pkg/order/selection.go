package order

import (
	"github.com/vhavlena/refute/pkg/clause"
)

// SelectionPolicy chooses which literals of a clause become eligible
// premises for generating inferences.
type SelectionPolicy string

const (
	// SelectAll marks every literal selected. Complete for the
	// background calculus, so the ordering aftercheck may prune.
	SelectAll SelectionPolicy = "all"
	// SelectNegative selects all negative literals when the clause has
	// any, otherwise all maximal literals.
	SelectNegative SelectionPolicy = "negative"
	// SelectMaximal selects the literals maximal in the simplification
	// ordering.
	SelectMaximal SelectionPolicy = "maximal"
)

// Selector applies a selection policy using the simplification ordering.
type Selector struct {
	ord    *KBO
	policy SelectionPolicy
}

// NewSelector creates a selector with the given policy.
func NewSelector(ord *KBO, policy SelectionPolicy) *Selector {
	return &Selector{ord: ord, policy: policy}
}

// BGComplete reports whether the policy keeps the calculus complete, the
// precondition for the literal-maximality aftercheck.
func (s *Selector) BGComplete() bool {
	return s.policy == SelectAll
}

// Select marks the selected literals of a clause, reordering them to the
// front and setting the selected count.
func (s *Selector) Select(c *clause.Clause) {
	if c.Len() == 0 {
		return
	}
	switch s.policy {
	case SelectAll:
		c.SelectAll()
	case SelectNegative:
		var neg []int
		for i := 0; i < c.Len(); i++ {
			if c.Lit(i).Negative() {
				neg = append(neg, i)
			}
		}
		if len(neg) > 0 {
			c.Reorder(neg)
			return
		}
		c.Reorder(s.maximal(c))
	case SelectMaximal:
		c.Reorder(s.maximal(c))
	default:
		c.SelectAll()
	}
}

// maximal returns the indices of literals not strictly dominated by any
// other literal of the clause.
func (s *Selector) maximal(c *clause.Clause) []int {
	var out []int
	for i := 0; i < c.Len(); i++ {
		dominated := false
		for j := 0; j < c.Len(); j++ {
			if i == j {
				continue
			}
			if s.ord.CompareLiterals(c.Lit(j), c.Lit(i)) == Greater {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, i)
		}
	}
	return out
}
