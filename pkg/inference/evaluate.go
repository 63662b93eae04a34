package inference

import (
	"math/big"

	"github.com/vhavlena/refute/pkg/clause"
	"github.com/vhavlena/refute/pkg/env"
	"github.com/vhavlena/refute/pkg/term"
)

// InterpretedEvaluation folds interpreted operators applied to interpreted
// constants, bottom-up through every literal. A literal that evaluates to
// true makes the clause a tautology; a literal that evaluates to false is
// dropped. Division by zero is a non-failure: the redex is left intact.
// Equality is left to other rules.
type InterpretedEvaluation struct {
	env *env.Environment
}

// NewInterpretedEvaluation creates the rule.
func NewInterpretedEvaluation(e *env.Environment) *InterpretedEvaluation {
	return &InterpretedEvaluation{env: e}
}

// Name returns the rule name.
func (r *InterpretedEvaluation) Name() string { return "interpreted_evaluation" }

// Simplify evaluates every literal. Returns nil when the clause became a
// tautology, the same clause when nothing changed, and the rebuilt clause
// otherwise.
func (r *InterpretedEvaluation) Simplify(c *clause.Clause) *clause.Clause {
	changed := false
	lits := make([]*term.Literal, 0, c.Len())
	for _, lit := range c.Literals() {
		folded := r.evalLiteral(lit)
		if truth, decided := r.literalTruth(folded); decided {
			if truth {
				return nil
			}
			changed = true
			continue
		}
		if folded != lit {
			changed = true
		}
		lits = append(lits, folded)
	}
	if !changed {
		return c
	}
	r.env.Stats.EvaluationSimplifications++
	return clause.FromParents(lits, clause.Derived(clause.RuleInterpretedEvaluation, c))
}

// evalLiteral rebuilds a literal with every argument evaluated bottom-up.
func (r *InterpretedEvaluation) evalLiteral(lit *term.Literal) *term.Literal {
	bank := r.env.Bank
	changed := false
	args := make([]*term.Term, lit.NArgs())
	for i, a := range lit.Args() {
		args[i] = r.evalTerm(a)
		if args[i] != a {
			changed = true
		}
	}
	if !changed {
		return lit
	}
	if lit.IsEquality() {
		return bank.Equality(lit.EqSort(), lit.Positive(), args[0], args[1])
	}
	return bank.Literal(lit.Pred(), lit.Positive(), args)
}

// evalTerm folds interpreted redexes bottom-up.
func (r *InterpretedEvaluation) evalTerm(t *term.Term) *term.Term {
	if t.IsVar() || t.Ground() && t.NArgs() == 0 {
		return t
	}
	bank := r.env.Bank
	changed := false
	args := make([]*term.Term, t.NArgs())
	for i, a := range t.Args() {
		args[i] = r.evalTerm(a)
		if args[i] != a {
			changed = true
		}
	}
	cur := t
	if changed {
		cur = bank.App(t.Fn(), args)
	}
	sym := r.env.Sig.Function(cur.Fn())
	if sym.Interp == term.Uninterpreted {
		return cur
	}
	vals, ok := r.numeralArgs(cur.Args(), sym.Interp.OperationSort())
	if !ok {
		return cur
	}
	res, ok := evalFunc(sym.Interp, vals)
	if !ok {
		return cur
	}
	return bank.NumeralOf(sym.Result, res)
}

// literalTruth decides a literal whose predicate is interpreted and whose
// arguments are constants of the operation sort, flipping by polarity.
func (r *InterpretedEvaluation) literalTruth(lit *term.Literal) (bool, bool) {
	if lit.IsEquality() {
		return false, false
	}
	sym := r.env.Sig.Predicate(lit.Pred())
	if sym.Interp == term.Uninterpreted {
		return false, false
	}
	vals, ok := r.numeralArgs(lit.Args(), sym.Interp.OperationSort())
	if !ok {
		return false, false
	}
	res, ok := evalPred(sym.Interp, vals)
	if !ok {
		return false, false
	}
	if lit.Negative() {
		res = !res
	}
	return res, true
}

// numeralArgs extracts the exact values of interpreted constants of the
// given sort.
func (r *InterpretedEvaluation) numeralArgs(args []*term.Term, sort term.Sort) ([]*big.Rat, bool) {
	vals := make([]*big.Rat, len(args))
	for i, a := range args {
		if a.IsVar() || a.Sort() != sort {
			return nil, false
		}
		v, ok := r.env.Bank.TryNumeral(a)
		if !ok {
			return nil, false
		}
		vals[i] = v
	}
	return vals, true
}

// evalFunc is the per-sort evaluator table for interpreted functions.
// Integer operands are exact big integers carried in rationals; fractional
// sorts evaluate over exact rationals.
func evalFunc(op term.Interpretation, v []*big.Rat) (*big.Rat, bool) {
	switch op {
	case term.IntUnaryMinus, term.RatUnaryMinus, term.RealUnaryMinus:
		return new(big.Rat).Neg(v[0]), true
	case term.IntSuccessor:
		return new(big.Rat).Add(v[0], big.NewRat(1, 1)), true
	case term.IntPlus, term.RatPlus, term.RealPlus:
		return new(big.Rat).Add(v[0], v[1]), true
	case term.IntMinus, term.RatMinus, term.RealMinus:
		return new(big.Rat).Sub(v[0], v[1]), true
	case term.IntMul, term.RatMul, term.RealMul:
		return new(big.Rat).Mul(v[0], v[1]), true
	case term.RatDiv, term.RealDiv:
		if v[1].Sign() == 0 {
			return nil, false
		}
		return new(big.Rat).Quo(v[0], v[1]), true
	case term.IntDiv:
		q, _, ok := euclid(v[0], v[1])
		return q, ok
	case term.IntMod:
		_, m, ok := euclid(v[0], v[1])
		return m, ok
	}
	return nil, false
}

// evalPred is the per-sort evaluator table for interpreted predicates.
func evalPred(op term.Interpretation, v []*big.Rat) (bool, bool) {
	switch op {
	case term.IntLess, term.RatLess, term.RealLess:
		return v[0].Cmp(v[1]) < 0, true
	case term.IntLessEq, term.RatLessEq, term.RealLessEq:
		return v[0].Cmp(v[1]) <= 0, true
	case term.IntGreater, term.RatGreater, term.RealGreater:
		return v[0].Cmp(v[1]) > 0, true
	case term.IntGreaterEq, term.RatGreaterEq, term.RealGreaterEq:
		return v[0].Cmp(v[1]) >= 0, true
	case term.IntDivides:
		if v[0].Sign() == 0 {
			return false, false
		}
		_, m, ok := euclid(v[1], v[0])
		if !ok {
			return false, false
		}
		return m.Sign() == 0, true
	case term.RatIsInt, term.RealIsInt:
		return v[0].IsInt(), true
	case term.RealIsRat:
		// Reals are represented as exact rationals.
		return true, true
	}
	return false, false
}

// euclid computes Euclidean quotient and remainder of two integer-valued
// rationals; fails on a zero divisor.
func euclid(a, b *big.Rat) (*big.Rat, *big.Rat, bool) {
	if b.Sign() == 0 || !a.IsInt() || !b.IsInt() {
		return nil, nil, false
	}
	q, m := new(big.Int), new(big.Int)
	q.DivMod(a.Num(), b.Num(), m)
	return new(big.Rat).SetInt(q), new(big.Rat).SetInt(m), true
}
