// Package clause implements the clause model: multisets of literals with
// provenance records.
package clause

import (
	"strings"

	"github.com/vhavlena/refute/pkg/subst"
	"github.com/vhavlena/refute/pkg/term"
)

// InputType classifies where a clause ultimately comes from.
type InputType int

const (
	Axiom InputType = iota
	Assumption
	Lemma
	Conjecture
)

// CombineInput merges the input types of two parents; the type closer to
// the conjecture dominates.
func CombineInput(a, b InputType) InputType {
	if b > a {
		return b
	}
	return a
}

// counter numbers clauses for the lifetime of the process. The core is
// single-threaded by contract, so a plain counter suffices.
var counter int

func nextNumber() int {
	counter++
	return counter
}

// Clause is an ordered sequence of literals interpreted as a multiset
// disjunction, universally closed. A clause of length 0 denotes false.
type Clause struct {
	num      int
	lits     []*term.Literal
	input    InputType
	inf      Inference
	age      int
	weight   int
	selected int
}

// New creates a clause from literals and a provenance record. The literal
// slice is owned by the clause afterwards. Deduplication is the caller's
// choice.
func New(lits []*term.Literal, input InputType, inf Inference) *Clause {
	w := 0
	for _, l := range lits {
		w += l.Weight()
	}
	return &Clause{
		num:    nextNumber(),
		lits:   lits,
		input:  input,
		inf:    inf,
		weight: w,
	}
}

// FromParents creates a clause whose input type is combined from the parent
// clauses in the inference record; the induction depth is the one the
// record already carries.
func FromParents(lits []*term.Literal, inf Inference) *Clause {
	input := Axiom
	for _, p := range inf.Parents {
		input = CombineInput(input, p.input)
	}
	return New(lits, input, inf)
}

// Number returns the process-wide clause id.
func (c *Clause) Number() int { return c.num }

// Len returns the number of literals.
func (c *Clause) Len() int { return len(c.lits) }

// IsEmpty reports whether the clause denotes false.
func (c *Clause) IsEmpty() bool { return len(c.lits) == 0 }

// Lit returns the i-th literal.
func (c *Clause) Lit(i int) *term.Literal { return c.lits[i] }

// Literals returns the literal slice. The slice must not be modified.
func (c *Clause) Literals() []*term.Literal { return c.lits }

// Input returns the clause's input type.
func (c *Clause) Input() InputType { return c.input }

// Inference returns the provenance record.
func (c *Clause) Inference() Inference { return c.inf }

// Age returns the generation counter assigned by the saturation loop.
func (c *Clause) Age() int { return c.age }

// SetAge records the generation counter.
func (c *Clause) SetAge(a int) { c.age = a }

// Weight returns the cached symbol count.
func (c *Clause) Weight() int { return c.weight }

// Selected returns how many leading literals are selected for generating
// inferences.
func (c *Clause) Selected() int { return c.selected }

// Reorder permutes the literals so that the given indices come first and
// marks them selected. The permutation must mention every index at most
// once.
func (c *Clause) Reorder(selected []int) {
	chosen := make(map[int]bool, len(selected))
	ordered := make([]*term.Literal, 0, len(c.lits))
	for _, i := range selected {
		ordered = append(ordered, c.lits[i])
		chosen[i] = true
	}
	for i, l := range c.lits {
		if !chosen[i] {
			ordered = append(ordered, l)
		}
	}
	c.lits = ordered
	c.selected = len(selected)
}

// SelectAll marks every literal selected without reordering.
func (c *Clause) SelectAll() { c.selected = len(c.lits) }

// Contains reports whether the clause contains the literal. Identity
// comparison is sufficient within one bank.
func (c *Clause) Contains(l *term.Literal) bool {
	for _, x := range c.lits {
		if x == l {
			return true
		}
	}
	return false
}

// DerivedFromGoal reports whether the clause descends from the conjecture.
func (c *Clause) DerivedFromGoal() bool {
	return c.input == Conjecture
}

// Apply rebuilds every literal through the substitution, preserving literal
// order and length, and attaches the given inference record.
//
// Parameters:
//
//	s *subst.Substitution: The substitution to apply.
//	bank int: The bank the clause's variables are read in.
//	inf Inference: Provenance for the new clause.
//
// Returns:
//
//	*Clause: The rebuilt clause.
func (c *Clause) Apply(s *subst.Substitution, bank int, inf Inference) *Clause {
	lits := make([]*term.Literal, len(c.lits))
	for i, l := range c.lits {
		lits[i] = s.ApplyLiteral(l, bank)
	}
	return FromParents(lits, inf)
}

// WithInference returns a copy of the clause holding the same literals but
// a new provenance record.
func (c *Clause) WithInference(inf Inference) *Clause {
	return New(c.lits, c.input, inf)
}

// Color computes the clause's color from its symbols.
//
// Parameters:
//
//	sig *term.Signature: The signature the symbols live in.
//
// Returns:
//
//	term.Color: The combined color.
//	bool: False if the clause mixes both opaque colors.
func (c *Clause) Color(sig *term.Signature) (term.Color, bool) {
	col := term.ColorTransparent
	ok := true
	for _, l := range c.lits {
		col, ok = col.Combine(sig.Predicate(l.Pred()).Color)
		if !ok {
			return col, false
		}
		it := l.Subterms()
		for t, more := it.Next(); more; t, more = it.Next() {
			col, ok = col.Combine(sig.Function(t.Fn()).Color)
			if !ok {
				return col, false
			}
		}
	}
	return col, true
}

// String renders the clause for diagnostics: literals joined by " | ", the
// empty clause as $false.
func (c *Clause) String(sig *term.Signature) string {
	if len(c.lits) == 0 {
		return "$false"
	}
	parts := make([]string, len(c.lits))
	for i, l := range c.lits {
		parts[i] = sig.LiteralString(l, nil)
	}
	return strings.Join(parts, " | ")
}
