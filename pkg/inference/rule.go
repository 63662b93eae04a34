// Package inference implements the generating and simplifying rules of the
// calculus: equality resolution, induction axiom generation, Gaussian
// variable elimination, distinct-equality simplification and interpreted
// evaluation, plus the binary resolution helper and the equality proxy
// axiomatizer.
package inference

import (
	"github.com/vhavlena/refute/pkg/clause"
)

// ClauseIterator is the pull-based sequence of clauses a generating rule
// produces. Sequences are always finite and possibly empty.
type ClauseIterator interface {
	// Next returns the next conclusion clause, or false when exhausted.
	Next() (*clause.Clause, bool)
}

// GeneratingRule consumes one premise clause and produces a lazy sequence
// of conclusion clauses.
type GeneratingRule interface {
	Name() string
	Generate(premise *clause.Clause) ClauseIterator
}

// SimplifyingRule consumes one clause and returns either the same clause
// (no change applied), a simplified clause, or nil when the clause is
// redundant and must be discarded. Simplifying rules never weaken a clause
// silently.
type SimplifyingRule interface {
	Name() string
	Simplify(c *clause.Clause) *clause.Clause
}

// sliceIterator drains a pre-computed slice of clauses.
type sliceIterator struct {
	clauses []*clause.Clause
	i       int
}

// NewSliceIterator wraps clauses in a ClauseIterator.
func NewSliceIterator(clauses []*clause.Clause) ClauseIterator {
	return &sliceIterator{clauses: clauses}
}

func (it *sliceIterator) Next() (*clause.Clause, bool) {
	if it.i >= len(it.clauses) {
		return nil, false
	}
	c := it.clauses[it.i]
	it.i++
	return c, true
}

// EmptyIterator is the empty clause sequence.
func EmptyIterator() ClauseIterator {
	return &sliceIterator{}
}

// Drain exhausts an iterator into a slice, mostly for tests and the
// pipeline driver.
func Drain(it ClauseIterator) []*clause.Clause {
	var out []*clause.Clause
	for c, ok := it.Next(); ok; c, ok = it.Next() {
		out = append(out, c)
	}
	return out
}
