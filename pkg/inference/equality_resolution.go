package inference

import (
	"github.com/vhavlena/refute/pkg/clause"
	"github.com/vhavlena/refute/pkg/env"
	"github.com/vhavlena/refute/pkg/order"
	"github.com/vhavlena/refute/pkg/subst"
	"github.com/vhavlena/refute/pkg/term"
)

// EqualityResolution resolves a selected negative equality s != t of a
// clause against itself: if s and t unify with most general unifier
// sigma, the rule produces (C - {s != t})sigma. Under unification with
// abstraction the child additionally carries one disequality per emitted
// constraint.
type EqualityResolution struct {
	env        *env.Environment
	ord        *order.KBO
	bgComplete bool
}

// NewEqualityResolution creates the rule. bgComplete reports whether the
// active literal selection keeps the calculus complete; the literal
// maximality aftercheck only fires when it does.
func NewEqualityResolution(e *env.Environment, ord *order.KBO, bgComplete bool) *EqualityResolution {
	return &EqualityResolution{env: e, ord: ord, bgComplete: bgComplete}
}

// Name returns the rule name.
func (r *EqualityResolution) Name() string { return "equality_resolution" }

// Generate returns the lazy sequence of equality resolution conclusions of
// the premise's selected literals.
func (r *EqualityResolution) Generate(premise *clause.Clause) ClauseIterator {
	if premise.IsEmpty() {
		return EmptyIterator()
	}
	return &eqResIterator{rule: r, premise: premise}
}

type eqResIterator struct {
	rule    *EqualityResolution
	premise *clause.Clause
	i       int
}

func (it *eqResIterator) Next() (*clause.Clause, bool) {
	for it.i < it.premise.Selected() {
		idx := it.i
		it.i++
		lit := it.premise.Lit(idx)
		if !lit.IsEquality() || !lit.Negative() {
			continue
		}
		if c := it.rule.resolve(it.premise, idx); c != nil {
			return c, true
		}
	}
	return nil, false
}

// TryResolveEquality attempts to resolve the given negative equality of the
// clause, ignoring selection. It returns nil when the literal is not
// resolvable.
func (r *EqualityResolution) TryResolveEquality(c *clause.Clause, lit *term.Literal) *clause.Clause {
	for i := 0; i < c.Len(); i++ {
		if c.Lit(i) == lit {
			return r.resolve(c, i)
		}
	}
	return nil
}

// resolve performs the inference on the literal at index idx of the
// premise, returning nil when the inference does not apply.
func (r *EqualityResolution) resolve(premise *clause.Clause, idx int) *clause.Clause {
	lit := premise.Lit(idx)
	opts := r.env.Options
	bank := r.env.Bank

	s := subst.New(bank)
	policy := opts.UnificationWithAbstraction
	useHandler := policy != subst.AbstractionOff

	// Abstraction only covers a clash at the top: when both sides share
	// their top symbol, plain unification is used and a clash between
	// their arguments fails.
	a0, a1 := lit.Arg(0), lit.Arg(1)
	if useHandler && !a0.IsVar() && !a1.IsVar() && a0.Fn() == a1.Fn() {
		useHandler = false
	}

	var constraints []subst.Constraint
	if useHandler {
		if !s.UnifyWithAbstraction(a0, 0, a1, 0, policy, &constraints) {
			return nil
		}
	} else if !s.Unify(a0, 0, a1, 0) {
		return nil
	}

	var litAfter *term.Literal
	if opts.LiteralMaximalityAftercheck && r.bgComplete && premise.Selected() > 1 {
		litAfter = s.ApplyLiteral(lit, 0)
	}

	lits := make([]*term.Literal, 0, premise.Len()-1+len(constraints))
	for i := 0; i < premise.Len(); i++ {
		if i == idx {
			continue
		}
		after := s.ApplyLiteral(premise.Lit(i), 0)
		if litAfter != nil && i < premise.Selected() &&
			r.ord.CompareLiterals(after, litAfter) == order.Greater {
			// A non-resolved selected literal dominates the resolved
			// one after the unifier: the inference is redundant.
			r.env.Stats.InferencesBlockedByAftercheck++
			return nil
		}
		lits = append(lits, after)
	}

	for _, con := range constraints {
		qt := s.Apply(con.L.Term, con.L.Bank)
		rt := s.Apply(con.R.Term, con.R.Bank)
		sort := rt.Sort()
		if sort == term.SortNone {
			sort = qt.Sort()
		}
		constraint := bank.Equality(sort, false, qt, rt)

		if policy == subst.AbstractionGround && !constraint.Ground() &&
			!bank.IsTheoryTerm(qt) && !bank.IsTheoryTerm(rt) {
			// The deferred unification stayed between two non-ground
			// uninterpreted terms; reject the inference.
			return nil
		}
		lits = append(lits, constraint)
	}

	r.env.Stats.EqualityResolutions++
	return clause.FromParents(lits, clause.Derived(clause.RuleEqualityResolution, premise))
}
