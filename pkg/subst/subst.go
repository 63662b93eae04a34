// Package subst implements the backtrackable substitution used by the
// inference rules: first-order unification, one-sided matching, and
// unification with abstraction.
package subst

import (
	"github.com/vhavlena/refute/pkg/term"
)

// VarSpec is a variable paired with the bank it belongs to. Banks keep the
// variable namespaces of different premises disjoint during unification.
type VarSpec struct {
	Var  int
	Bank int
}

// TermSpec is a term paired with the bank its variables are read in.
type TermSpec struct {
	Term *term.Term
	Bank int
}

// Mark is a position in the bind trail, used to rewind.
type Mark int

// Substitution is a finite partial mapping from banked variables to banked
// terms. It records a bind trail and supports restore-to-mark, which gives
// the stack discipline every top-level unification attempt relies on. A
// substitution is owned by one rule invocation at a time.
type Substitution struct {
	bank     *term.Bank
	bindings map[VarSpec]TermSpec
	trail    []VarSpec

	outVars map[VarSpec]int
	nextVar int
}

// New creates an empty substitution over the given bank.
func New(bank *term.Bank) *Substitution {
	return &Substitution{
		bank:     bank,
		bindings: make(map[VarSpec]TermSpec),
		outVars:  make(map[VarSpec]int),
	}
}

// Reset clears all bindings and the output variable normalisation.
func (s *Substitution) Reset() {
	s.bindings = make(map[VarSpec]TermSpec)
	s.trail = s.trail[:0]
	s.outVars = make(map[VarSpec]int)
	s.nextVar = 0
}

// Mark returns the current trail position.
func (s *Substitution) Mark() Mark {
	return Mark(len(s.trail))
}

// Restore rewinds the substitution to a previous mark, removing every
// binding recorded after it.
func (s *Substitution) Restore(m Mark) {
	for len(s.trail) > int(m) {
		v := s.trail[len(s.trail)-1]
		s.trail = s.trail[:len(s.trail)-1]
		delete(s.bindings, v)
	}
}

// Lookup returns the binding of a banked variable, if any.
func (s *Substitution) Lookup(v VarSpec) (TermSpec, bool) {
	t, ok := s.bindings[v]
	return t, ok
}

// deref follows variable bindings until reaching an unbound variable or a
// non-variable term.
func (s *Substitution) deref(t TermSpec) TermSpec {
	for t.Term.IsVar() {
		next, ok := s.bindings[VarSpec{t.Term.Var(), t.Bank}]
		if !ok {
			return t
		}
		t = next
	}
	return t
}

// occurs reports whether v occurs in t under the current bindings.
func (s *Substitution) occurs(v VarSpec, t TermSpec) bool {
	t = s.deref(t)
	if t.Term.IsVar() {
		return VarSpec{t.Term.Var(), t.Bank} == v
	}
	for _, a := range t.Term.Args() {
		if s.occurs(v, TermSpec{a, t.Bank}) {
			return true
		}
	}
	return false
}

// Bind extends the substitution with v -> t. It fails when t contains v
// after walking the current bindings (occurs check); on failure the
// substitution is unchanged.
//
// Returns:
//
//	bool: False on occurs-check failure.
func (s *Substitution) Bind(v VarSpec, t TermSpec) bool {
	if s.occurs(v, t) {
		return false
	}
	s.bindings[v] = t
	s.trail = append(s.trail, v)
	return true
}

// outVar maps an unbound banked variable to its index in the neutral output
// namespace. Distinct (variable, bank) pairs get distinct output indices.
func (s *Substitution) outVar(v VarSpec) int {
	if i, ok := s.outVars[v]; ok {
		return i
	}
	i := s.nextVar
	s.nextVar++
	s.outVars[v] = i
	return i
}

// Apply performs a full walk-and-rebuild of t under the substitution,
// returning a term of the neutral bank (no bank annotations remain).
func (s *Substitution) Apply(t *term.Term, bank int) *term.Term {
	return s.applySpec(TermSpec{t, bank})
}

func (s *Substitution) applySpec(t TermSpec) *term.Term {
	t = s.deref(t)
	if t.Term.IsVar() {
		return s.bank.Var(s.outVar(VarSpec{t.Term.Var(), t.Bank}))
	}
	if t.Term.Ground() {
		return t.Term
	}
	args := make([]*term.Term, t.Term.NArgs())
	for i, a := range t.Term.Args() {
		args[i] = s.applySpec(TermSpec{a, t.Bank})
	}
	return s.bank.App(t.Term.Fn(), args)
}

// ApplyLiteral rebuilds a literal through the substitution, preserving
// polarity and equality sort.
func (s *Substitution) ApplyLiteral(l *term.Literal, bank int) *term.Literal {
	if l.Ground() {
		return l
	}
	if l.IsEquality() {
		return s.bank.Equality(l.EqSort(), l.Positive(),
			s.Apply(l.Arg(0), bank), s.Apply(l.Arg(1), bank))
	}
	args := make([]*term.Term, l.NArgs())
	for i, a := range l.Args() {
		args[i] = s.Apply(a, bank)
	}
	return s.bank.Literal(l.Pred(), l.Positive(), args)
}
