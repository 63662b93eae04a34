// Package order implements the simplification ordering on terms and
// literals and the literal selection used by generating rules.
package order

import (
	"github.com/vhavlena/refute/pkg/term"
)

// Result is the outcome of an ordering comparison.
type Result int

const (
	Incomparable Result = iota
	Equal
	Greater
	Less
)

// KBO is a Knuth-Bendix ordering: terms are compared first by weight with
// variable-occurrence balance, then by symbol precedence (registration
// order), then lexicographically on arguments. It is well-founded and
// stable under substitution.
type KBO struct {
	sig *term.Signature
}

// NewKBO creates the ordering over a signature.
func NewKBO(sig *term.Signature) *KBO {
	return &KBO{sig: sig}
}

// varBalance counts variable occurrences of s minus those of t.
func varBalance(s, t *term.Term) map[int]int {
	bal := make(map[int]int)
	for _, v := range s.CollectVars(nil) {
		bal[v]++
	}
	for _, v := range t.CollectVars(nil) {
		bal[v]--
	}
	return bal
}

// Compare orders two terms of the same bank.
//
// Returns:
//
//	Result: Greater if s dominates t, Less for the converse, Equal for
//	identical terms, Incomparable otherwise.
func (o *KBO) Compare(s, t *term.Term) Result {
	if s == t {
		return Equal
	}
	bal := varBalance(s, t)
	sDominates, tDominates := true, true
	for _, d := range bal {
		if d < 0 {
			sDominates = false
		}
		if d > 0 {
			tDominates = false
		}
	}
	switch {
	case s.Weight() > t.Weight():
		if sDominates {
			return Greater
		}
		return Incomparable
	case s.Weight() < t.Weight():
		if tDominates {
			return Less
		}
		return Incomparable
	}
	// Equal weight: precedence on head symbols, then lexicographic.
	if s.IsVar() || t.IsVar() {
		// Distinct terms, one a variable: x < f(x) is the only
		// comparable shape, and weight equality rules it out here.
		return Incomparable
	}
	if s.Fn() != t.Fn() {
		var r Result
		if s.Fn() > t.Fn() {
			r = Greater
		} else {
			r = Less
		}
		if r == Greater && sDominates || r == Less && tDominates {
			return r
		}
		return Incomparable
	}
	for i := range s.Args() {
		switch o.Compare(s.Arg(i), t.Arg(i)) {
		case Greater:
			if sDominates {
				return Greater
			}
			return Incomparable
		case Less:
			if tDominates {
				return Less
			}
			return Incomparable
		case Incomparable:
			return Incomparable
		}
	}
	return Equal
}

// CompareLiterals orders two literals: predicate headers first (weight,
// then precedence, with negative dominating positive on the same atom),
// then the argument tuples lexicographically.
func (o *KBO) CompareLiterals(a, b *term.Literal) Result {
	if a == b {
		return Equal
	}
	switch {
	case a.Weight() > b.Weight():
		return o.checkLitDominance(a, b, Greater)
	case a.Weight() < b.Weight():
		return o.checkLitDominance(a, b, Less)
	}
	if a.Pred() != b.Pred() {
		if a.Pred() > b.Pred() {
			return o.checkLitDominance(a, b, Greater)
		}
		return o.checkLitDominance(a, b, Less)
	}
	if a.Positive() != b.Positive() {
		// The negative literal dominates its complement.
		if a.Negative() {
			return Greater
		}
		return Less
	}
	for i := range a.Args() {
		switch o.Compare(a.Arg(i), b.Arg(i)) {
		case Greater:
			return o.checkLitDominance(a, b, Greater)
		case Less:
			return o.checkLitDominance(a, b, Less)
		case Incomparable:
			return Incomparable
		}
	}
	return Equal
}

// checkLitDominance refines a tentative comparison with the variable
// condition required for stability under substitution.
func (o *KBO) checkLitDominance(a, b *term.Literal, r Result) Result {
	bal := make(map[int]int)
	for _, v := range a.CollectVars(nil) {
		bal[v]++
	}
	for _, v := range b.CollectVars(nil) {
		bal[v]--
	}
	for _, d := range bal {
		if r == Greater && d < 0 || r == Less && d > 0 {
			return Incomparable
		}
	}
	return r
}
