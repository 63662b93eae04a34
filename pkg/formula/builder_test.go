package formula

import (
	"errors"
	"testing"

	"github.com/vhavlena/refute/pkg/clause"
	verr "github.com/vhavlena/refute/pkg/err"
	"github.com/vhavlena/refute/pkg/term"
)

func setup() (*term.Signature, *term.Bank) {
	sig := term.NewSignature()
	return sig, term.NewBank(sig)
}

func TestNameValidation(t *testing.T) {
	_, bank := setup()
	b := NewBuilder(bank, true)

	if _, err := b.Predicate("Pred"); !errors.Is(err, verr.ErrInvalidName) {
		t.Errorf("uppercase predicate accepted: %v", err)
	}
	if _, err := b.Function("F", term.SortIndividual); !errors.Is(err, verr.ErrInvalidName) {
		t.Errorf("uppercase function accepted: %v", err)
	}
	if _, err := b.Predicate("p"); err != nil {
		t.Errorf("lowercase predicate rejected: %v", err)
	}

	// Checks are off when not requested.
	loose := NewBuilder(bank, false)
	if _, err := loose.Predicate("Q"); err != nil {
		t.Errorf("unchecked builder rejected name: %v", err)
	}
}

func TestQuantifierRebinding(t *testing.T) {
	_, bank := setup()
	b := NewBuilder(bank, true)
	p, _ := b.Predicate("p", term.SortIndividual)
	x := b.Var("X")

	atom, err := b.Atom(p, true, b.VarTerm(x))
	if err != nil {
		t.Fatalf("atom: %v", err)
	}
	inner, err := b.ForallVars(atom, x)
	if err != nil {
		t.Fatalf("forall: %v", err)
	}
	if _, err := b.ForallVars(inner, x); !errors.Is(err, verr.ErrVariableRebound) {
		t.Errorf("rebinding not detected: %v", err)
	}
}

func TestForeignFormulaRejected(t *testing.T) {
	_, bank := setup()
	b1 := NewBuilder(bank, true)
	b2 := NewBuilder(bank, true)
	p, _ := b1.Predicate("p", term.SortIndividual)

	f1, _ := b1.Atom(p, true, b1.VarTerm(b1.Var("X")))
	f2 := b2.TrueFormula()
	if _, err := b1.And(f1, f2); !errors.Is(err, verr.ErrForeignFormula) {
		t.Errorf("foreign formula accepted: %v", err)
	}
}

func TestArityChecked(t *testing.T) {
	_, bank := setup()
	b := NewBuilder(bank, true)
	p, _ := b.Predicate("p", term.SortIndividual)
	if _, err := b.Atom(p, true); !errors.Is(err, verr.ErrArityMismatch) {
		t.Errorf("missing argument accepted: %v", err)
	}
}

func TestConjectureNegatedAndClosed(t *testing.T) {
	_, bank := setup()
	b := NewBuilder(bank, true)
	p, _ := b.Predicate("p", term.SortIndividual)
	x := b.Var("X")
	atom, _ := b.Atom(p, true, b.VarTerm(x))

	u, err := b.Annotated(atom, clause.Conjecture, "goal")
	if err != nil {
		t.Fatalf("annotate: %v", err)
	}
	cls := b.Clausify(u)
	if len(cls) != 1 || cls[0].Len() != 1 {
		t.Fatalf("unexpected clausal form: %d clauses", len(cls))
	}
	lit := cls[0].Lit(0)
	if lit.Positive() {
		t.Errorf("conjecture not negated")
	}
	if !lit.Ground() {
		t.Errorf("universal closure not skolemized: %v", lit)
	}
	if cls[0].Input() != clause.Conjecture {
		t.Errorf("input type lost")
	}
}

func TestConnectives(t *testing.T) {
	_, bank := setup()
	b := NewBuilder(bank, true)
	p, _ := b.Predicate("p", term.SortIndividual)
	q, _ := b.Predicate("q", term.SortIndividual)
	a, _ := b.Function("a", term.SortIndividual)
	ta, _ := b.Term(a)

	pa, _ := b.Atom(p, true, ta)
	qa, _ := b.Atom(q, true, ta)

	iff, err := b.Iff(pa, qa)
	if err != nil {
		t.Fatalf("iff: %v", err)
	}
	u, _ := b.Annotated(iff, clause.Axiom, "")
	cls := b.Clausify(u)
	if len(cls) != 2 {
		t.Fatalf("iff should clausify to 2 clauses, got %d", len(cls))
	}

	ite, err := b.Ite(pa, qa, pa)
	if err != nil {
		t.Fatalf("ite: %v", err)
	}
	u2, _ := b.Annotated(ite, clause.Axiom, "")
	if got := b.Clausify(u2); len(got) != 2 {
		t.Fatalf("ite should clausify to 2 clauses, got %d", len(got))
	}
}
