// Package formula implements the first-order formula layer above clauses:
// a formula AST, a validated builder for clients that construct problems
// programmatically, and clausification (negation normal form, skolemization
// and CNF) used by the induction rule and by input processing.
package formula

import (
	"github.com/vhavlena/refute/pkg/term"
)

// Kind discriminates formula nodes.
type Kind int

const (
	KindAtom Kind = iota
	KindTrue
	KindFalse
	KindNot
	KindJunction
	KindBinary
	KindQuantified
	KindConditional
)

// Connective is a flat junction connective.
type Connective int

const (
	And Connective = iota
	Or
)

// BinaryConn is a non-associative binary connective.
type BinaryConn int

const (
	Implies BinaryConn = iota
	Iff
	Xor
)

// Quantifier distinguishes universal from existential quantification.
type Quantifier int

const (
	Forall Quantifier = iota
	Exists
)

// Formula is a node of the formula AST. Formulas are immutable after
// construction.
type Formula struct {
	kind  Kind
	lit   *term.Literal
	sub   []*Formula
	conn  Connective
	bconn BinaryConn
	quant Quantifier
	vars  []int
	owner *Builder
}

// Kind returns the node discriminator.
func (f *Formula) Kind() Kind { return f.kind }

// Literal returns the literal of an atom node.
func (f *Formula) Literal() *term.Literal { return f.lit }

// Sub returns the subformulas.
func (f *Formula) Sub() []*Formula { return f.sub }

// Vars returns the variables bound by a quantified node.
func (f *Formula) Vars() []int { return f.vars }

// NewAtom creates an atomic formula from a literal.
func NewAtom(l *term.Literal) *Formula {
	return &Formula{kind: KindAtom, lit: l}
}

// NewTrue creates the true constant.
func NewTrue() *Formula { return &Formula{kind: KindTrue} }

// NewFalse creates the false constant.
func NewFalse() *Formula { return &Formula{kind: KindFalse} }

// NewNot creates a negation.
func NewNot(f *Formula) *Formula {
	return &Formula{kind: KindNot, sub: []*Formula{f}}
}

// NewJunction creates a conjunction or disjunction. A junction of a single
// formula is that formula; an empty junction is the connective's unit.
func NewJunction(conn Connective, fs ...*Formula) *Formula {
	switch len(fs) {
	case 0:
		if conn == And {
			return NewTrue()
		}
		return NewFalse()
	case 1:
		return fs[0]
	}
	return &Formula{kind: KindJunction, conn: conn, sub: fs}
}

// NewBinary creates an implication, equivalence or exclusive disjunction.
func NewBinary(conn BinaryConn, l, r *Formula) *Formula {
	return &Formula{kind: KindBinary, bconn: conn, sub: []*Formula{l, r}}
}

// NewQuantified binds variables over a formula. Binding no variables
// returns the formula unchanged.
func NewQuantified(q Quantifier, vars []int, f *Formula) *Formula {
	if len(vars) == 0 {
		return f
	}
	return &Formula{kind: KindQuantified, quant: q, vars: vars, sub: []*Formula{f}}
}

// NewConditional creates if cond then thn else els.
func NewConditional(cond, thn, els *Formula) *Formula {
	return &Formula{kind: KindConditional, sub: []*Formula{cond, thn, els}}
}

// FreeVars returns the free variable indices of the formula in first
// occurrence order.
func (f *Formula) FreeVars() []int {
	seen := make(map[int]bool)
	var out []int
	f.freeVars(make(map[int]bool), seen, &out)
	return out
}

func (f *Formula) freeVars(bound, seen map[int]bool, out *[]int) {
	switch f.kind {
	case KindAtom:
		for _, v := range f.lit.CollectVars(nil) {
			if !bound[v] && !seen[v] {
				seen[v] = true
				*out = append(*out, v)
			}
		}
	case KindQuantified:
		inner := make(map[int]bool, len(bound)+len(f.vars))
		for v := range bound {
			inner[v] = true
		}
		for _, v := range f.vars {
			inner[v] = true
		}
		f.sub[0].freeVars(inner, seen, out)
	default:
		for _, g := range f.sub {
			g.freeVars(bound, seen, out)
		}
	}
}

// BindsVar reports whether the formula contains a quantifier over v.
func (f *Formula) BindsVar(v int) bool {
	if f.kind == KindQuantified {
		for _, x := range f.vars {
			if x == v {
				return true
			}
		}
	}
	for _, g := range f.sub {
		if g.BindsVar(v) {
			return true
		}
	}
	return false
}

// Quantify universally closes the formula over its free variables.
func Quantify(f *Formula) *Formula {
	return NewQuantified(Forall, f.FreeVars(), f)
}
