package inference

import (
	"math/big"

	"github.com/vhavlena/refute/pkg/term"
)

// Rebalancing is one way of solving a (dis)equality for a variable: the
// literal rewritten to the shape lhs != rhs with lhs a variable and rhs
// built from the remaining material using interpreted inverses.
type Rebalancing struct {
	Lhs *term.Term
	Rhs *term.Term
}

// Balancer enumerates the rebalancings of an equality literal. For example
// the literal x * 7 = y + 1 yields x = (y + 1) / 7 and y = (x * 7) - 1.
type Balancer struct {
	bank *term.Bank
	lit  *term.Literal
}

// NewBalancer creates a balancer over an equality literal.
func NewBalancer(bank *term.Bank, lit *term.Literal) *Balancer {
	return &Balancer{bank: bank, lit: lit}
}

// All returns every rebalancing of the literal, enumerating variable
// positions of both sides depth-first left-to-right.
func (b *Balancer) All() []Rebalancing {
	var out []Rebalancing
	for side := 0; side < 2; side++ {
		b.walk(b.lit.Arg(side), b.lit.Arg(1-side), &out)
	}
	return out
}

// walk descends into t, wrapping rhs with the inverse of every inverted
// operator, and records a rebalancing at each reachable variable.
func (b *Balancer) walk(t, rhs *term.Term, out *[]Rebalancing) {
	if t.IsVar() {
		*out = append(*out, Rebalancing{Lhs: t, Rhs: rhs})
		return
	}
	for i := 0; i < t.NArgs(); i++ {
		if inv, ok := b.invert(t, i, rhs); ok {
			b.walk(t.Arg(i), inv, out)
		}
	}
}

// invert solves t = toWrap for t's i-th argument, if the top operator of t
// admits inversion at that position. Inversion rules per sort:
//
//   - a + b inverts to target - b (always);
//   - a - b inverts to target + b, and the subtrahend side to a - target;
//   - unary minus inverts to -target;
//   - a * b over rationals and reals inverts to target / b when b is a
//     non-zero interpreted constant;
//   - a * b over integers inverts only when b is 1 or -1.
func (b *Balancer) invert(t *term.Term, idx int, toWrap *term.Term) (*term.Term, bool) {
	sig := b.bank.Signature()
	sym := sig.Function(t.Fn())
	sort := sym.Result

	switch sym.Interp {
	case term.IntPlus, term.RatPlus, term.RealPlus:
		other := t.Arg(1 - idx)
		return b.bank.App(sig.InterpretedFunction(differenceOf(sort)), []*term.Term{toWrap, other}), true

	case term.IntMinus, term.RatMinus, term.RealMinus:
		other := t.Arg(1 - idx)
		if idx == 0 {
			return b.bank.App(sig.InterpretedFunction(plusOf(sort)), []*term.Term{toWrap, other}), true
		}
		return b.bank.App(sig.InterpretedFunction(differenceOf(sort)), []*term.Term{other, toWrap}), true

	case term.IntUnaryMinus, term.RatUnaryMinus, term.RealUnaryMinus:
		return b.bank.App(sig.InterpretedFunction(uminusOf(sort)), []*term.Term{toWrap}), true

	case term.IntMul:
		other := t.Arg(1 - idx)
		v, ok := b.bank.TryNumeral(other)
		if !ok {
			return nil, false
		}
		switch {
		case v.Cmp(big.NewRat(1, 1)) == 0:
			return toWrap, true
		case v.Cmp(big.NewRat(-1, 1)) == 0:
			return b.bank.App(sig.InterpretedFunction(term.IntMul), []*term.Term{other, toWrap}), true
		}
		return nil, false

	case term.RatMul, term.RealMul:
		other := t.Arg(1 - idx)
		v, ok := b.bank.TryNumeral(other)
		if !ok || v.Sign() == 0 {
			return nil, false
		}
		return b.bank.App(sig.InterpretedFunction(quotientOf(sort)), []*term.Term{toWrap, other}), true
	}
	return nil, false
}

func plusOf(s term.Sort) term.Interpretation {
	switch s {
	case term.SortRational:
		return term.RatPlus
	case term.SortReal:
		return term.RealPlus
	}
	return term.IntPlus
}

func differenceOf(s term.Sort) term.Interpretation {
	switch s {
	case term.SortRational:
		return term.RatMinus
	case term.SortReal:
		return term.RealMinus
	}
	return term.IntMinus
}

func uminusOf(s term.Sort) term.Interpretation {
	switch s {
	case term.SortRational:
		return term.RatUnaryMinus
	case term.SortReal:
		return term.RealUnaryMinus
	}
	return term.IntUnaryMinus
}

func quotientOf(s term.Sort) term.Interpretation {
	if s == term.SortReal {
		return term.RealDiv
	}
	return term.RatDiv
}
