package inference

import (
	"github.com/vhavlena/refute/pkg/clause"
	"github.com/vhavlena/refute/pkg/env"
	"github.com/vhavlena/refute/pkg/term"
)

// GaussianVariableElimination eliminates a variable that a negative
// equality of the clause can be solved for: from x != u with x not in u,
// every other literal is rewritten with x replaced by u and the
// disequality is dropped. At most one elimination is performed per call;
// the enclosing pipeline re-invokes to a fixed point.
type GaussianVariableElimination struct {
	env *env.Environment
}

// NewGaussianVariableElimination creates the rule.
func NewGaussianVariableElimination(e *env.Environment) *GaussianVariableElimination {
	return &GaussianVariableElimination{env: e}
}

// Name returns the rule name.
func (r *GaussianVariableElimination) Name() string { return "gaussian_variable_elimination" }

// Simplify scans negative equalities left-to-right and applies the first
// rebalancing that solves one for a variable not occurring in the rest of
// the rebalanced side. Returns the input unchanged when no rebalancing
// fires.
func (r *GaussianVariableElimination) Simplify(c *clause.Clause) *clause.Clause {
	bank := r.env.Bank
	for i := 0; i < c.Len(); i++ {
		lit := c.Lit(i)
		if !lit.IsEquality() || !lit.Negative() {
			continue
		}
		for _, reb := range NewBalancer(bank, lit).All() {
			if reb.Rhs.ContainsSubterm(reb.Lhs) {
				continue
			}
			if r.env.Options.TraceGauss {
				r.env.Log.WithFields(map[string]interface{}{
					"clause": c.Number(),
					"var":    r.env.Sig.TermString(reb.Lhs, nil),
					"rhs":    r.env.Sig.TermString(reb.Rhs, nil),
				}).Info("gaussian elimination")
			}
			r.env.Stats.GaussianEliminations++
			return r.rewrite(c, i, reb)
		}
	}
	return c
}

// rewrite drops the literal at index skip and substitutes the solved
// variable throughout the remaining literals.
func (r *GaussianVariableElimination) rewrite(c *clause.Clause, skip int, reb Rebalancing) *clause.Clause {
	bank := r.env.Bank
	rewritten := make([]*term.Literal, 0, c.Len()-1)
	for i := 0; i < c.Len(); i++ {
		if i == skip {
			continue
		}
		rewritten = append(rewritten, bank.ReplaceInLiteral(c.Lit(i), reb.Lhs, reb.Rhs))
	}
	return clause.FromParents(rewritten, clause.Derived(clause.RuleGaussianVariableElimination, c))
}
