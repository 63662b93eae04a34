package inference

import (
	"github.com/vhavlena/refute/pkg/clause"
	"github.com/vhavlena/refute/pkg/subst"
	"github.com/vhavlena/refute/pkg/term"
)

// Resolve performs one binary resolution step: left without leftLit joined
// with right without rightLit, both rebuilt through the given substitution
// with the clauses read in separate banks. The caller guarantees that
// leftLit and rightLit are complementary under the substitution; the
// inference record is supplied by the caller because the users of this
// helper (induction) stamp their own rule and depth.
//
// Parameters:
//
//	left *clause.Clause: First premise, read in leftBank.
//	leftLit *term.Literal: Literal of left being resolved away.
//	right *clause.Clause: Second premise, read in rightBank.
//	rightLit *term.Literal: Literal of right being resolved away.
//	s *subst.Substitution: Result substitution applied to both sides.
//	inf clause.Inference: Provenance of the resolvent.
//
// Returns:
//
//	*clause.Clause: The resolvent.
func Resolve(left *clause.Clause, leftLit *term.Literal, leftBank int,
	right *clause.Clause, rightLit *term.Literal, rightBank int,
	s *subst.Substitution, inf clause.Inference) *clause.Clause {

	lits := make([]*term.Literal, 0, left.Len()+right.Len()-2)
	lits = appendResolved(lits, left, leftLit, leftBank, s)
	lits = appendResolved(lits, right, rightLit, rightBank, s)
	return clause.FromParents(lits, inf)
}

// appendResolved applies the substitution to every literal of c except one
// occurrence of skip.
func appendResolved(dst []*term.Literal, c *clause.Clause, skip *term.Literal, bank int, s *subst.Substitution) []*term.Literal {
	skipped := false
	for _, lit := range c.Literals() {
		if !skipped && lit == skip {
			skipped = true
			continue
		}
		dst = append(dst, s.ApplyLiteral(lit, bank))
	}
	return dst
}
