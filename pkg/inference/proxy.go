package inference

import (
	"github.com/vhavlena/refute/pkg/clause"
	"github.com/vhavlena/refute/pkg/env"
	"github.com/vhavlena/refute/pkg/term"
)

// EqualityProxy emits the equality axioms selected by the equality-proxy
// mode: reflexivity (R), symmetry and transitivity (RST), and per-symbol
// congruence (RSTC), for the equality sorts actually used by a clause set.
type EqualityProxy struct {
	env *env.Environment
}

// NewEqualityProxy creates the axiomatizer.
func NewEqualityProxy(e *env.Environment) *EqualityProxy {
	return &EqualityProxy{env: e}
}

// Apply scans the clauses for equality literals and the symbols they use,
// and returns the input extended with the selected axioms. With the mode
// off the input is returned unchanged.
func (p *EqualityProxy) Apply(clauses []*clause.Clause) []*clause.Clause {
	mode := p.env.Options.EqualityProxy
	if mode == env.EqualityProxyOff {
		return clauses
	}

	eqSorts := make(map[term.Sort]bool)
	funcs := make(map[term.FunctionID]bool)
	preds := make(map[term.PredicateID]bool)
	var sortOrder []term.Sort
	var funcOrder []term.FunctionID
	var predOrder []term.PredicateID

	for _, c := range clauses {
		for _, lit := range c.Literals() {
			if lit.IsEquality() {
				if !eqSorts[lit.EqSort()] {
					eqSorts[lit.EqSort()] = true
					sortOrder = append(sortOrder, lit.EqSort())
				}
			} else if lit.NArgs() > 0 && !preds[lit.Pred()] {
				preds[lit.Pred()] = true
				predOrder = append(predOrder, lit.Pred())
			}
			it := lit.Subterms()
			for t, ok := it.Next(); ok; t, ok = it.Next() {
				if t.NArgs() > 0 && !funcs[t.Fn()] {
					funcs[t.Fn()] = true
					funcOrder = append(funcOrder, t.Fn())
				}
			}
		}
	}

	out := clauses
	for _, srt := range sortOrder {
		out = append(out, p.reflexivity(srt))
		if mode == env.EqualityProxyRST || mode == env.EqualityProxyRSTC {
			out = append(out, p.symmetry(srt), p.transitivity(srt))
		}
	}
	if mode == env.EqualityProxyRSTC {
		for _, f := range funcOrder {
			if c := p.funcCongruence(f); c != nil {
				out = append(out, c)
			}
		}
		for _, pr := range predOrder {
			if c := p.predCongruence(pr); c != nil {
				out = append(out, c)
			}
		}
	}
	return out
}

func (p *EqualityProxy) emit(lits []*term.Literal) *clause.Clause {
	p.env.Stats.EqualityProxyAxioms++
	return clause.New(lits, clause.Axiom, clause.Inference{Rule: clause.RuleEqualityProxy})
}

// reflexivity emits x = x.
func (p *EqualityProxy) reflexivity(srt term.Sort) *clause.Clause {
	bank := p.env.Bank
	x := bank.Var(0)
	return p.emit([]*term.Literal{bank.Equality(srt, true, x, x)})
}

// symmetry emits x != y | y = x.
func (p *EqualityProxy) symmetry(srt term.Sort) *clause.Clause {
	bank := p.env.Bank
	x, y := bank.Var(0), bank.Var(1)
	return p.emit([]*term.Literal{
		bank.Equality(srt, false, x, y),
		bank.Equality(srt, true, y, x),
	})
}

// transitivity emits x != y | y != z | x = z.
func (p *EqualityProxy) transitivity(srt term.Sort) *clause.Clause {
	bank := p.env.Bank
	x, y, z := bank.Var(0), bank.Var(1), bank.Var(2)
	return p.emit([]*term.Literal{
		bank.Equality(srt, false, x, y),
		bank.Equality(srt, false, y, z),
		bank.Equality(srt, true, x, z),
	})
}

// funcCongruence emits x1 != y1 | ... | xn != yn | f(x) = f(y).
func (p *EqualityProxy) funcCongruence(f term.FunctionID) *clause.Clause {
	bank := p.env.Bank
	sym := p.env.Sig.Function(f)
	if sym.Arity == 0 {
		return nil
	}
	lits, xs, ys := p.argPairs(sym)
	lits = append(lits, bank.Equality(sym.Result, true, bank.App(f, xs), bank.App(f, ys)))
	return p.emit(lits)
}

// predCongruence emits x1 != y1 | ... | xn != yn | ~p(x) | p(y).
func (p *EqualityProxy) predCongruence(pr term.PredicateID) *clause.Clause {
	bank := p.env.Bank
	sym := p.env.Sig.Predicate(pr)
	if sym.Arity == 0 {
		return nil
	}
	lits, xs, ys := p.argPairs(sym)
	lits = append(lits, bank.Literal(pr, false, xs), bank.Literal(pr, true, ys))
	return p.emit(lits)
}

// argPairs builds the disequality guards x_i != y_i over fresh variable
// tuples for a symbol's argument sorts.
func (p *EqualityProxy) argPairs(sym *term.Symbol) ([]*term.Literal, []*term.Term, []*term.Term) {
	bank := p.env.Bank
	lits := make([]*term.Literal, 0, sym.Arity)
	xs := make([]*term.Term, sym.Arity)
	ys := make([]*term.Term, sym.Arity)
	for i := 0; i < sym.Arity; i++ {
		xs[i] = bank.Var(i)
		ys[i] = bank.Var(sym.Arity + i)
		lits = append(lits, bank.Equality(sym.ArgSorts[i], false, xs[i], ys[i]))
	}
	return lits, xs, ys
}
