package term

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Bank owns the sharing tables for terms and literals. Every construction
// goes through an identity-preserving lookup, which gives the guarantee that
// structural equality coincides with pointer equality for expressions built
// through the same bank. The tables are appendable-only and live for the
// whole run.
type Bank struct {
	sig    *Signature
	nextID int
	vars   map[int]*Term
	terms  map[string]*Term
	lits   map[string]*Literal
}

// NewBank creates an empty bank over a signature.
func NewBank(sig *Signature) *Bank {
	return &Bank{
		sig:   sig,
		vars:  make(map[int]*Term),
		terms: make(map[string]*Term),
		lits:  make(map[string]*Literal),
	}
}

// Signature returns the signature the bank constructs terms over.
func (b *Bank) Signature() *Signature { return b.sig }

// Var returns the shared term for variable index i.
func (b *Bank) Var(i int) *Term {
	if t, ok := b.vars[i]; ok {
		return t
	}
	b.nextID++
	t := &Term{id: b.nextID, varIdx: i, isVar: true, sort: SortNone, weight: 1}
	b.vars[i] = t
	return t
}

func appKey(f FunctionID, args []*Term) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(int(f)))
	for _, a := range args {
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(a.id))
	}
	return sb.String()
}

// App returns the shared term f(args...). The first construction computes
// sort, ground flag and weight; argument sorts are checked against the
// symbol's declared sorts and a mismatch panics, since it indicates a
// programming error upstream of the bank.
func (b *Bank) App(f FunctionID, args []*Term) *Term {
	sym := b.sig.Function(f)
	if len(args) != sym.Arity {
		panic(fmt.Sprintf("term: %s applied to %d arguments, arity %d", sym.Name, len(args), sym.Arity))
	}
	key := appKey(f, args)
	if t, ok := b.terms[key]; ok {
		return t
	}
	ground := true
	weight := sym.Weight
	for i, a := range args {
		if a.isVar {
			ground = false
		} else if a.sort != sym.ArgSorts[i] {
			panic(fmt.Sprintf("term: argument %d of %s has sort %s, want %s",
				i, sym.Name, b.sig.SortName(a.sort), b.sig.SortName(sym.ArgSorts[i])))
		}
		if !a.ground {
			ground = false
		}
		weight += a.weight
	}
	b.nextID++
	t := &Term{id: b.nextID, fn: f, sort: sym.Result, ground: ground, weight: weight, args: args}
	b.terms[key] = t
	return t
}

// Const returns the shared constant term for a nullary function symbol.
func (b *Bank) Const(f FunctionID) *Term {
	return b.App(f, nil)
}

// IntegerNumeral returns the shared term for an integer constant.
func (b *Bank) IntegerNumeral(v *big.Int) *Term {
	return b.Const(b.sig.Numeral(SortInteger, new(big.Rat).SetInt(v)))
}

// Int returns the shared term for a small integer constant.
func (b *Bank) Int(v int64) *Term {
	return b.IntegerNumeral(big.NewInt(v))
}

// RationalNumeral returns the shared term for a rational constant.
func (b *Bank) RationalNumeral(v *big.Rat) *Term {
	return b.Const(b.sig.Numeral(SortRational, v))
}

// RealNumeral returns the shared term for a real constant. Reals are
// represented exactly as rationals.
func (b *Bank) RealNumeral(v *big.Rat) *Term {
	return b.Const(b.sig.Numeral(SortReal, v))
}

// NumeralOf returns the shared numeral term of the given arithmetic sort.
func (b *Bank) NumeralOf(sort Sort, v *big.Rat) *Term {
	return b.Const(b.sig.Numeral(sort, v))
}

func litKey(p PredicateID, positive bool, eqSort Sort, args []*Term) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(int(p)))
	if positive {
		sb.WriteString("+")
	} else {
		sb.WriteString("-")
	}
	sb.WriteString(strconv.Itoa(int(eqSort)))
	for _, a := range args {
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(a.id))
	}
	return sb.String()
}

func (b *Bank) internLiteral(p PredicateID, positive bool, eqSort Sort, args []*Term) *Literal {
	key := litKey(p, positive, eqSort, args)
	if l, ok := b.lits[key]; ok {
		return l
	}
	ground := true
	weight := b.sig.Predicate(p).Weight
	for _, a := range args {
		if !a.ground {
			ground = false
		}
		weight += a.weight
	}
	b.nextID++
	l := &Literal{id: b.nextID, pred: p, positive: positive, eqSort: eqSort, ground: ground, weight: weight, args: args}
	b.lits[key] = l
	return l
}

// Literal returns the shared literal p(args...) with the given polarity.
// Equality must be constructed through Equality so the argument sort is
// recorded.
func (b *Bank) Literal(p PredicateID, positive bool, args []*Term) *Literal {
	if p == EqualityPredicate {
		panic("term: equality literals must be built via Bank.Equality")
	}
	sym := b.sig.Predicate(p)
	if len(args) != sym.Arity {
		panic(fmt.Sprintf("term: %s applied to %d arguments, arity %d", sym.Name, len(args), sym.Arity))
	}
	for i, a := range args {
		if !a.isVar && a.sort != sym.ArgSorts[i] {
			panic(fmt.Sprintf("term: argument %d of %s has sort %s, want %s",
				i, sym.Name, b.sig.SortName(a.sort), b.sig.SortName(sym.ArgSorts[i])))
		}
	}
	return b.internLiteral(p, positive, SortNone, args)
}

// Equality returns the shared (dis)equality literal l = r (or l != r) at
// the given argument sort. Argument order is preserved.
func (b *Bank) Equality(sort Sort, positive bool, l, r *Term) *Literal {
	for _, a := range []*Term{l, r} {
		if !a.isVar && a.sort != sort {
			panic(fmt.Sprintf("term: equality argument has sort %s, want %s",
				b.sig.SortName(a.sort), b.sig.SortName(sort)))
		}
	}
	return b.internLiteral(EqualityPredicate, positive, sort, []*Term{l, r})
}

// CanonicalEquality returns the equality literal with its arguments in a
// fixed orientation (by term identity), so that the two argument orders
// intern to the same literal.
func (b *Bank) CanonicalEquality(sort Sort, positive bool, l, r *Term) *Literal {
	if r.id < l.id {
		l, r = r, l
	}
	return b.Equality(sort, positive, l, r)
}

// Complementary returns the shared literal with the opposite polarity.
func (b *Bank) Complementary(l *Literal) *Literal {
	return b.internLiteral(l.pred, !l.positive, l.eqSort, l.args)
}

// WithPolarity returns the shared literal with the given polarity.
func (b *Bank) WithPolarity(l *Literal, positive bool) *Literal {
	if l.positive == positive {
		return l
	}
	return b.Complementary(l)
}

// ReplaceTerm returns t with every occurrence of from replaced by to,
// rebuilt through the bank so sharing is preserved.
func (b *Bank) ReplaceTerm(t, from, to *Term) *Term {
	if t == from {
		return to
	}
	if t.isVar || len(t.args) == 0 {
		return t
	}
	changed := false
	args := make([]*Term, len(t.args))
	for i, a := range t.args {
		args[i] = b.ReplaceTerm(a, from, to)
		if args[i] != a {
			changed = true
		}
	}
	if !changed {
		return t
	}
	return b.App(t.fn, args)
}

// ReplaceVar returns t with every occurrence of variable v replaced by to.
func (b *Bank) ReplaceVar(t *Term, v int, to *Term) *Term {
	return b.ReplaceTerm(t, b.Var(v), to)
}

// ReplaceInLiteral returns l with every occurrence of from replaced by to.
func (b *Bank) ReplaceInLiteral(l *Literal, from, to *Term) *Literal {
	changed := false
	args := make([]*Term, len(l.args))
	for i, a := range l.args {
		args[i] = b.ReplaceTerm(a, from, to)
		if args[i] != a {
			changed = true
		}
	}
	if !changed {
		return l
	}
	return b.internLiteral(l.pred, l.positive, l.eqSort, args)
}

// ReplaceVarInLiteral returns l with every occurrence of variable v
// replaced by to.
func (b *Bank) ReplaceVarInLiteral(l *Literal, v int, to *Term) *Literal {
	return b.ReplaceInLiteral(l, b.Var(v), to)
}

// TryNumeral extracts the exact value of an interpreted numeric constant.
//
// Returns:
//
//	*big.Rat: The constant's value.
//	bool: False if the term is not a numeral.
func (b *Bank) TryNumeral(t *Term) (*big.Rat, bool) {
	if t.isVar || len(t.args) != 0 {
		return nil, false
	}
	sym := b.sig.Function(t.fn)
	if sym.Numeral == nil {
		return nil, false
	}
	return sym.Numeral, true
}

// IsTheoryTerm reports whether the top symbol of t is interpreted (a theory
// operator or a numeral).
func (b *Bank) IsTheoryTerm(t *Term) bool {
	if t.isVar {
		return false
	}
	return b.sig.IsInterpretedFunction(t.fn)
}
