package order

import (
	"testing"

	"github.com/vhavlena/refute/pkg/clause"
	"github.com/vhavlena/refute/pkg/term"
)

func setup() (*term.Signature, *term.Bank) {
	sig := term.NewSignature()
	return sig, term.NewBank(sig)
}

func TestCompareByWeight(t *testing.T) {
	sig, bank := setup()
	f, _ := sig.AddFunction("f", []term.Sort{term.SortIndividual}, term.SortIndividual)
	a, _ := sig.AddFunction("a", nil, term.SortIndividual)

	ord := NewKBO(sig)
	ta := bank.Const(a)
	fa := bank.App(f, []*term.Term{ta})
	if ord.Compare(fa, ta) != Greater {
		t.Errorf("f(a) should dominate a")
	}
	if ord.Compare(ta, fa) != Less {
		t.Errorf("a should be below f(a)")
	}
	if ord.Compare(fa, fa) != Equal {
		t.Errorf("identity should compare equal")
	}
}

func TestVariableCondition(t *testing.T) {
	sig, bank := setup()
	f, _ := sig.AddFunction("f", []term.Sort{term.SortIndividual}, term.SortIndividual)
	g, _ := sig.AddFunction("g", []term.Sort{term.SortIndividual}, term.SortIndividual)

	ord := NewKBO(sig)
	fx := bank.App(f, []*term.Term{bank.Var(0)})
	gy := bank.App(g, []*term.Term{bank.Var(1)})
	// Distinct variables make the terms incomparable regardless of
	// precedence: no substitution-stable order exists.
	if got := ord.Compare(fx, gy); got != Incomparable {
		t.Errorf("f(x) vs g(y) = %v, want incomparable", got)
	}
}

func TestStabilityUnderGrounding(t *testing.T) {
	sig, bank := setup()
	f, _ := sig.AddFunction("f", []term.Sort{term.SortIndividual}, term.SortIndividual)

	ord := NewKBO(sig)
	x := bank.Var(0)
	fx := bank.App(f, []*term.Term{x})
	ffx := bank.App(f, []*term.Term{fx})
	if ord.Compare(ffx, fx) != Greater {
		t.Errorf("f(f(x)) should dominate f(x)")
	}
}

func TestLiteralComparison(t *testing.T) {
	sig, bank := setup()
	p, _ := sig.AddPredicate("p", []term.Sort{term.SortIndividual})
	a, _ := sig.AddFunction("a", nil, term.SortIndividual)
	f, _ := sig.AddFunction("f", []term.Sort{term.SortIndividual}, term.SortIndividual)

	ord := NewKBO(sig)
	ta := bank.Const(a)
	small := bank.Literal(p, true, []*term.Term{ta})
	large := bank.Literal(p, true, []*term.Term{bank.App(f, []*term.Term{ta})})
	if ord.CompareLiterals(large, small) != Greater {
		t.Errorf("heavier literal should dominate")
	}
	neg := bank.Complementary(small)
	if ord.CompareLiterals(neg, small) != Greater {
		t.Errorf("negative literal should dominate its complement")
	}
}

func TestSelection(t *testing.T) {
	sig, bank := setup()
	p, _ := sig.AddPredicate("p", nil)
	q, _ := sig.AddPredicate("q", nil)

	ord := NewKBO(sig)
	lp := bank.Literal(p, true, nil)
	nq := bank.Literal(q, false, nil)

	c := clause.New([]*term.Literal{lp, nq}, clause.Axiom, clause.InputInference())
	sel := NewSelector(ord, SelectNegative)
	sel.Select(c)
	if c.Selected() != 1 || c.Lit(0) != nq {
		t.Fatalf("negative selection picked wrong literals")
	}
	if sel.BGComplete() {
		t.Errorf("negative selection is not background complete")
	}

	all := NewSelector(ord, SelectAll)
	c2 := clause.New([]*term.Literal{lp, nq}, clause.Axiom, clause.InputInference())
	all.Select(c2)
	if c2.Selected() != 2 {
		t.Fatalf("select-all should select everything")
	}
	if !all.BGComplete() {
		t.Errorf("select-all is background complete")
	}
}
