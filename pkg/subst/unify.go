package subst

import (
	"github.com/vhavlena/refute/pkg/term"
)

// AbstractionPolicy selects how unification treats clashes it cannot solve.
type AbstractionPolicy string

const (
	// AbstractionOff is classical Robinson unification.
	AbstractionOff AbstractionPolicy = "off"
	// AbstractionGround abstracts a clash only when both sides are
	// non-ground and neither has an interpreted top symbol.
	AbstractionGround AbstractionPolicy = "ground"
	// AbstractionFull abstracts any clash between terms of equal sort.
	AbstractionFull AbstractionPolicy = "full"
)

// Constraint is a deferred unification problem emitted by unification with
// abstraction. The produced clause receives the literal l != r per
// constraint.
type Constraint struct {
	L TermSpec
	R TermSpec
}

// Unify attempts classical unification of s@bs with t@bt. On failure the
// substitution is restored to its state before the call. A sort clash
// surfaces as failure, not as an error.
//
// Returns:
//
//	bool: True if the terms were unified.
func (s *Substitution) Unify(t1 *term.Term, b1 int, t2 *term.Term, b2 int) bool {
	m := s.Mark()
	if !s.unify(TermSpec{t1, b1}, TermSpec{t2, b2}, AbstractionOff, nil) {
		s.Restore(m)
		return false
	}
	return true
}

// UnifyWithAbstraction attempts unification under the given policy. On
// subterm disagreement the policy admits, a constraint pair is pushed onto
// constraints and unification proceeds as if the two sides had unified. On
// failure the substitution is restored and constraints is left as the
// caller passed it (the caller owns truncation).
func (s *Substitution) UnifyWithAbstraction(t1 *term.Term, b1 int, t2 *term.Term, b2 int,
	policy AbstractionPolicy, constraints *[]Constraint) bool {
	if policy == AbstractionOff || constraints == nil {
		return s.Unify(t1, b1, t2, b2)
	}
	m := s.Mark()
	n := len(*constraints)
	if !s.unify(TermSpec{t1, b1}, TermSpec{t2, b2}, policy, constraints) {
		s.Restore(m)
		*constraints = (*constraints)[:n]
		return false
	}
	return true
}

func (s *Substitution) unify(t1, t2 TermSpec, policy AbstractionPolicy, constraints *[]Constraint) bool {
	t1 = s.deref(t1)
	t2 = s.deref(t2)

	if t1.Term.IsVar() {
		if t2.Term.IsVar() && t1 == t2 {
			return true
		}
		return s.Bind(VarSpec{t1.Term.Var(), t1.Bank}, t2)
	}
	if t2.Term.IsVar() {
		return s.Bind(VarSpec{t2.Term.Var(), t2.Bank}, t1)
	}

	// Both compound. A sort clash can never be abstracted away.
	if t1.Term.Sort() != t2.Term.Sort() {
		return false
	}
	if t1.Term.Fn() != t2.Term.Fn() {
		if s.canAbstract(t1, t2, policy) {
			*constraints = append(*constraints, Constraint{t1, t2})
			return true
		}
		return false
	}
	for i := range t1.Term.Args() {
		if !s.unify(TermSpec{t1.Term.Arg(i), t1.Bank}, TermSpec{t2.Term.Arg(i), t2.Bank}, policy, constraints) {
			return false
		}
	}
	return true
}

// canAbstract decides whether a clash between two same-sort compounds may be
// deferred as a constraint under the policy.
func (s *Substitution) canAbstract(t1, t2 TermSpec, policy AbstractionPolicy) bool {
	switch policy {
	case AbstractionFull:
		return true
	case AbstractionGround:
		theory1 := s.bank.IsTheoryTerm(t1.Term)
		theory2 := s.bank.IsTheoryTerm(t2.Term)
		return !t1.Term.Ground() && !t2.Term.Ground() && !theory1 && !theory2
	}
	return false
}

// Match attempts one-sided unification: variables of the pattern may be
// bound, variables of the subject may not. On failure the substitution is
// restored to its state before the call.
//
// Parameters:
//
//	pattern *term.Term: The more general term.
//	bp int: The pattern's bank.
//	subject *term.Term: The instance candidate.
//	bs int: The subject's bank.
//
// Returns:
//
//	bool: True if pattern matches subject under the extended bindings.
func (s *Substitution) Match(pattern *term.Term, bp int, subject *term.Term, bs int) bool {
	m := s.Mark()
	if !s.match(TermSpec{pattern, bp}, TermSpec{subject, bs}) {
		s.Restore(m)
		return false
	}
	return true
}

func (s *Substitution) match(pattern, subject TermSpec) bool {
	if pattern.Term.IsVar() {
		v := VarSpec{pattern.Term.Var(), pattern.Bank}
		if bound, ok := s.bindings[v]; ok {
			return bound == subject
		}
		s.bindings[v] = subject
		s.trail = append(s.trail, v)
		return true
	}
	if subject.Term.IsVar() {
		return false
	}
	if pattern.Term.Fn() != subject.Term.Fn() || pattern.Term.Sort() != subject.Term.Sort() {
		return false
	}
	for i := range pattern.Term.Args() {
		if !s.match(TermSpec{pattern.Term.Arg(i), pattern.Bank}, TermSpec{subject.Term.Arg(i), subject.Bank}) {
			return false
		}
	}
	return true
}

// MatchLiterals matches every argument of pattern against subject, assuming
// HeadersMatch already holds. When reversed is true the arguments of the
// subject are taken in swapped order (commutative predicates only).
func (s *Substitution) MatchLiterals(pattern *term.Literal, bp int, subject *term.Literal, bs int, reversed bool) bool {
	m := s.Mark()
	ok := true
	for i := 0; i < pattern.NArgs(); i++ {
		j := i
		if reversed {
			j = pattern.NArgs() - 1 - i
		}
		if !s.match(TermSpec{pattern.Arg(i), bp}, TermSpec{subject.Arg(j), bs}) {
			ok = false
			break
		}
	}
	if !ok {
		s.Restore(m)
	}
	return ok
}
