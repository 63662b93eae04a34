package formula

import (
	"github.com/vhavlena/refute/pkg/clause"
	"github.com/vhavlena/refute/pkg/term"
)

// Clausifier turns formulas into clauses: derived connectives are expanded,
// the formula is brought to negation normal form, existentials are
// skolemized, and disjunctions are distributed over conjunctions. Formulas
// produced by the induction rule are small, so naive distribution is
// deliberate.
type Clausifier struct {
	bank     *term.Bank
	varSorts map[int]term.Sort
}

// NewClausifier creates a clausifier over a bank. varSorts assigns sorts to
// the variables occurring in the input; unmapped variables default to the
// individual sort.
func NewClausifier(bank *term.Bank, varSorts map[int]term.Sort) *Clausifier {
	if varSorts == nil {
		varSorts = make(map[int]term.Sort)
	}
	return &Clausifier{bank: bank, varSorts: varSorts}
}

func (c *Clausifier) sortOf(v int) term.Sort {
	if s, ok := c.varSorts[v]; ok {
		return s
	}
	return term.SortIndividual
}

// Clausify converts a formula into clauses carrying the given input type
// and inference record.
//
// Parameters:
//
//	f *Formula: The formula, interpreted as universally closed.
//	input clause.InputType: Input classification of the products.
//	inf clause.Inference: Provenance shared by all products.
//
// Returns:
//
//	[]*clause.Clause: The clausal form; empty for valid formulas.
func (c *Clausifier) Clausify(f *Formula, input clause.InputType, inf clause.Inference) []*clause.Clause {
	nnf := c.nnf(f, false)
	sk := c.skolemize(nnf, nil)
	matrix := c.distribute(sk)
	out := make([]*clause.Clause, 0, len(matrix))
	for _, lits := range matrix {
		lits = dedup(lits)
		if c.tautology(lits) {
			continue
		}
		out = append(out, clause.New(lits, input, inf))
	}
	return out
}

// tautology reports whether the literal set contains a complementary pair.
func (c *Clausifier) tautology(lits []*term.Literal) bool {
	seen := make(map[*term.Literal]bool, len(lits))
	for _, l := range lits {
		if seen[c.bank.Complementary(l)] {
			return true
		}
		seen[l] = true
	}
	return false
}

// dedup removes duplicate literal pointers while preserving order.
func dedup(lits []*term.Literal) []*term.Literal {
	seen := make(map[*term.Literal]bool, len(lits))
	out := lits[:0]
	for _, l := range lits {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	return out
}

// nnf expands derived connectives and pushes negation down to atoms.
// neg tracks whether the node occurs under an odd number of negations.
func (c *Clausifier) nnf(f *Formula, neg bool) *Formula {
	switch f.kind {
	case KindAtom:
		if neg {
			return NewAtom(c.bank.Complementary(f.lit))
		}
		return f
	case KindTrue:
		if neg {
			return NewFalse()
		}
		return f
	case KindFalse:
		if neg {
			return NewTrue()
		}
		return f
	case KindNot:
		return c.nnf(f.sub[0], !neg)
	case KindJunction:
		conn := f.conn
		if neg {
			conn = 1 - conn
		}
		sub := make([]*Formula, len(f.sub))
		for i, g := range f.sub {
			sub[i] = c.nnf(g, neg)
		}
		return NewJunction(conn, sub...)
	case KindBinary:
		l, r := f.sub[0], f.sub[1]
		switch f.bconn {
		case Implies:
			return c.nnf(NewJunction(Or, NewNot(l), r), neg)
		case Iff:
			both := NewJunction(And, NewBinary(Implies, l, r), NewBinary(Implies, r, l))
			return c.nnf(both, neg)
		case Xor:
			return c.nnf(NewBinary(Iff, l, r), !neg)
		}
	case KindQuantified:
		q := f.quant
		if neg {
			q = 1 - q
		}
		return NewQuantified(q, f.vars, c.nnf(f.sub[0], neg))
	case KindConditional:
		cond, thn, els := f.sub[0], f.sub[1], f.sub[2]
		expanded := NewJunction(And,
			NewBinary(Implies, cond, thn),
			NewBinary(Implies, NewNot(cond), els))
		return c.nnf(expanded, neg)
	}
	return f
}

// skolemize replaces existential variables with applications of fresh
// skolem functions. univ is the stack of universal variables in scope; the
// skolem term depends only on those that occur free in the existential
// body.
func (c *Clausifier) skolemize(f *Formula, univ []int) *Formula {
	switch f.kind {
	case KindJunction:
		sub := make([]*Formula, len(f.sub))
		for i, g := range f.sub {
			sub[i] = c.skolemize(g, univ)
		}
		return NewJunction(f.conn, sub...)
	case KindQuantified:
		if f.quant == Forall {
			scope := make([]int, 0, len(univ)+len(f.vars))
			scope = append(append(scope, univ...), f.vars...)
			return NewQuantified(Forall, f.vars, c.skolemize(f.sub[0], scope))
		}
		body := f.sub[0]
		free := body.FreeVars()
		inScope := make([]int, 0, len(univ))
		for _, u := range univ {
			for _, v := range free {
				if u == v {
					inScope = append(inScope, u)
					break
				}
			}
		}
		for _, ev := range f.vars {
			argSorts := make([]term.Sort, len(inScope))
			args := make([]*term.Term, len(inScope))
			for i, u := range inScope {
				argSorts[i] = c.sortOf(u)
				args[i] = c.bank.Var(u)
			}
			sk := c.bank.Signature().AddSkolemFunction(argSorts, c.sortOf(ev))
			body = substituteVar(c.bank, body, ev, c.bank.App(sk, args))
		}
		return c.skolemize(body, univ)
	}
	return f
}

// substituteVar replaces a variable by a term throughout the atoms of an
// NNF formula.
func substituteVar(bank *term.Bank, f *Formula, v int, t *term.Term) *Formula {
	switch f.kind {
	case KindAtom:
		return NewAtom(bank.ReplaceVarInLiteral(f.lit, v, t))
	case KindQuantified:
		for _, x := range f.vars {
			if x == v {
				return f
			}
		}
		return NewQuantified(f.quant, f.vars, substituteVar(bank, f.sub[0], v, t))
	default:
		if len(f.sub) == 0 {
			return f
		}
		sub := make([]*Formula, len(f.sub))
		for i, g := range f.sub {
			sub[i] = substituteVar(bank, g, v, t)
		}
		g := *f
		g.sub = sub
		return &g
	}
}

// distribute converts a skolemized NNF formula into a literal matrix by
// distributing disjunction over conjunction. Universal quantifiers are
// dropped: clause variables are implicitly universal.
func (c *Clausifier) distribute(f *Formula) [][]*term.Literal {
	switch f.kind {
	case KindAtom:
		return [][]*term.Literal{{f.lit}}
	case KindTrue:
		return nil
	case KindFalse:
		return [][]*term.Literal{{}}
	case KindQuantified:
		return c.distribute(f.sub[0])
	case KindJunction:
		if f.conn == And {
			var out [][]*term.Literal
			for _, g := range f.sub {
				out = append(out, c.distribute(g)...)
			}
			return out
		}
		out := [][]*term.Literal{{}}
		for _, g := range f.sub {
			part := c.distribute(g)
			if part == nil {
				// A true disjunct makes the whole disjunction valid.
				return nil
			}
			next := make([][]*term.Literal, 0, len(out)*len(part))
			for _, a := range out {
				for _, b := range part {
					merged := make([]*term.Literal, 0, len(a)+len(b))
					merged = append(merged, a...)
					merged = append(merged, b...)
					next = append(next, merged)
				}
			}
			out = next
		}
		return out
	}
	return nil
}
