package inference

import (
	"github.com/vhavlena/refute/pkg/clause"
	"github.com/vhavlena/refute/pkg/env"
	"github.com/vhavlena/refute/pkg/term"
)

// DistinctEqualitySimplifier removes literals decided by distinct-group
// declarations: an equality of two constants known distinct is false and
// dropped; a disequality of such constants makes the whole clause a
// tautology.
type DistinctEqualitySimplifier struct {
	env *env.Environment
}

// NewDistinctEqualitySimplifier creates the rule.
func NewDistinctEqualitySimplifier(e *env.Environment) *DistinctEqualitySimplifier {
	return &DistinctEqualitySimplifier{env: e}
}

// Name returns the rule name.
func (r *DistinctEqualitySimplifier) Name() string { return "distinct_equality_removal" }

// mustBeDistinct reports whether two terms are constants sharing a
// distinct group.
func (r *DistinctEqualitySimplifier) mustBeDistinct(t1, t2 *term.Term) (int, bool) {
	if t1.IsVar() || t2.IsVar() || t1.NArgs() != 0 || t2.NArgs() != 0 {
		return 0, false
	}
	s1 := r.env.Sig.Function(t1.Fn())
	s2 := r.env.Sig.Function(t2.Fn())
	return s1.SharedGroup(s2)
}

// canSimplify reports whether any equality of the clause is decided by a
// distinct group.
func (r *DistinctEqualitySimplifier) canSimplify(c *clause.Clause) bool {
	for _, lit := range c.Literals() {
		if !lit.IsEquality() {
			continue
		}
		if _, ok := r.mustBeDistinct(lit.Arg(0), lit.Arg(1)); ok {
			return true
		}
	}
	return false
}

// Simplify removes equalities refuted by distinct groups, or discards the
// clause entirely when a disequality is implied by them. Premise units of
// the groups actually consulted join the parents of the result.
func (r *DistinctEqualitySimplifier) Simplify(c *clause.Clause) *clause.Clause {
	if !r.canSimplify(c) {
		return c
	}
	var lits []*term.Literal
	parents := []*clause.Clause{c}
	for _, lit := range c.Literals() {
		if lit.IsEquality() {
			if grp, ok := r.mustBeDistinct(lit.Arg(0), lit.Arg(1)); ok {
				if lit.Negative() {
					// The clause is implied by the distinctness
					// constraint.
					return nil
				}
				if prem, found := r.env.DistinctGroupPremise(grp); found {
					parents = append(parents, prem)
				}
				// A false literal: equality of two distinct constants.
				continue
			}
		}
		lits = append(lits, lit)
	}
	r.env.Stats.DistinctEqualityRemovals++
	return clause.FromParents(lits, clause.Derived(clause.RuleDistinctEqualityRemoval, parents...))
}
