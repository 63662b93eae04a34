package inference

import (
	"math/bits"

	"github.com/vhavlena/refute/pkg/clause"
	"github.com/vhavlena/refute/pkg/term"
)

// maxTrackedOccurrences bounds the number of occurrences enumerated by
// occurrence generalisation; beyond it every occurrence is replaced at
// once.
const maxTrackedOccurrences = 63

// subsetReplacement enumerates the nonempty occurrence subsets of a term
// inside a literal, replacing each chosen occurrence with a placeholder.
// Subsets are visited in increasing bit-pattern order; subsets larger than
// the configured bound are skipped, except for the full subset, which is
// always produced last.
type subsetReplacement struct {
	bank *term.Bank
	lit  *term.Literal
	orig *term.Term
	repl *term.Term

	occurrences   int
	maxSubsetSize int
	iteration     uint64
	maxIterations uint64
	matchCount    int
}

func newSubsetReplacement(bank *term.Bank, lit *term.Literal, orig, repl *term.Term, maxSubsetSize int) *subsetReplacement {
	occ := countOccurrences(lit, orig)
	iters := uint64(1) << 63
	if occ <= maxTrackedOccurrences {
		iters = uint64(1) << uint(occ)
	}
	return &subsetReplacement{
		bank:          bank,
		lit:           lit,
		orig:          orig,
		repl:          repl,
		occurrences:   occ,
		maxSubsetSize: maxSubsetSize,
		maxIterations: iters,
	}
}

// countOccurrences counts how many times orig occurs as a subterm of the
// literal. Identity comparison suffices within one bank.
func countOccurrences(lit *term.Literal, orig *term.Term) int {
	n := 0
	it := lit.Subterms()
	for t, ok := it.Next(); ok; t, ok = it.Next() {
		if t == orig {
			n++
		}
	}
	return n
}

// next returns the literal for the next occurrence subset, recording in
// rule whether the subset was proper (generalized induction) or full. It
// returns nil when all combinations were produced.
func (s *subsetReplacement) next(rule *clause.Rule) *term.Literal {
	s.iteration++
	setBits := bits.OnesCount64(s.iteration)
	for s.iteration <= s.maxIterations &&
		s.maxSubsetSize > 0 && setBits < s.occurrences && setBits > s.maxSubsetSize {
		s.iteration++
		setBits = bits.OnesCount64(s.iteration)
	}
	if s.iteration >= s.maxIterations ||
		(s.occurrences > maxTrackedOccurrences && s.iteration > 1) {
		return nil
	}
	if setBits == s.occurrences {
		*rule = clause.RuleInductionAxiom
	} else {
		*rule = clause.RuleGenInductionAxiom
	}
	s.matchCount = 0
	return s.transform()
}

// transform replaces the occurrences of orig selected by the current
// iteration's bit pattern, numbering occurrences depth-first
// left-to-right.
func (s *subsetReplacement) transform() *term.Literal {
	args := make([]*term.Term, s.lit.NArgs())
	changed := false
	for i, a := range s.lit.Args() {
		args[i] = s.transformTerm(a)
		if args[i] != a {
			changed = true
		}
	}
	if !changed {
		return s.lit
	}
	if s.lit.IsEquality() {
		return s.bank.Equality(s.lit.EqSort(), s.lit.Positive(), args[0], args[1])
	}
	return s.bank.Literal(s.lit.Pred(), s.lit.Positive(), args)
}

func (s *subsetReplacement) transformTerm(t *term.Term) *term.Term {
	if t == s.orig {
		take := s.occurrences > maxTrackedOccurrences || s.iteration>>uint(s.matchCount)&1 == 1
		s.matchCount++
		if take {
			return s.repl
		}
		return t
	}
	if t.IsVar() || t.NArgs() == 0 {
		return t
	}
	args := make([]*term.Term, t.NArgs())
	changed := false
	for i, a := range t.Args() {
		args[i] = s.transformTerm(a)
		if args[i] != a {
			changed = true
		}
	}
	if !changed {
		return t
	}
	return s.bank.App(t.Fn(), args)
}
