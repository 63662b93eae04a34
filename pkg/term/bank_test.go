package term

import (
	"math/big"
	"testing"
)

func testSig() (*Signature, *Bank) {
	sig := NewSignature()
	return sig, NewBank(sig)
}

func TestHashConsingIdentity(t *testing.T) {
	sig, bank := testSig()
	f, _ := sig.AddFunction("f", []Sort{SortIndividual, SortIndividual}, SortIndividual)
	a, _ := sig.AddFunction("a", nil, SortIndividual)

	x := bank.Var(0)
	if bank.Var(0) != x {
		t.Fatalf("variables are not shared")
	}

	t1 := bank.App(f, []*Term{x, bank.Const(a)})
	t2 := bank.App(f, []*Term{bank.Var(0), bank.Const(a)})
	if t1 != t2 {
		t.Fatalf("structurally equal terms are not identical")
	}

	// Rebuilding a term from its own arguments must return the same
	// representation.
	if bank.App(t1.Fn(), t1.Args()) != t1 {
		t.Fatalf("mk_app(f, args(t)) != t")
	}
}

func TestTermAttributes(t *testing.T) {
	sig, bank := testSig()
	f, _ := sig.AddFunction("f", []Sort{SortIndividual}, SortIndividual)
	a, _ := sig.AddFunction("a", nil, SortIndividual)

	ground := bank.App(f, []*Term{bank.Const(a)})
	if !ground.Ground() {
		t.Errorf("expected ground term")
	}
	if ground.Weight() != 2 {
		t.Errorf("weight = %d, want 2", ground.Weight())
	}
	open := bank.App(f, []*Term{bank.Var(3)})
	if open.Ground() {
		t.Errorf("expected non-ground term")
	}
	if open.Sort() != SortIndividual {
		t.Errorf("sort = %v", open.Sort())
	}
}

func TestSubtermOrder(t *testing.T) {
	sig, bank := testSig()
	g, _ := sig.AddFunction("g", []Sort{SortIndividual, SortIndividual}, SortIndividual)
	h, _ := sig.AddFunction("h", []Sort{SortIndividual}, SortIndividual)
	a, _ := sig.AddFunction("a", nil, SortIndividual)
	b, _ := sig.AddFunction("b", nil, SortIndividual)

	// g(h(a), b): DFS left-to-right is g(h(a),b), h(a), a, b.
	trm := bank.App(g, []*Term{bank.App(h, []*Term{bank.Const(a)}), bank.Const(b)})
	want := []*Term{trm, trm.Arg(0), trm.Arg(0).Arg(0), trm.Arg(1)}

	it := trm.Subterms()
	var got []*Term
	for s, ok := it.Next(); ok; s, ok = it.Next() {
		got = append(got, s)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d subterms, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("subterm %d mismatch", i)
		}
	}
}

func TestEqualityLiterals(t *testing.T) {
	sig, bank := testSig()
	a, _ := sig.AddFunction("a", nil, SortIndividual)
	b, _ := sig.AddFunction("b", nil, SortIndividual)
	ta, tb := bank.Const(a), bank.Const(b)

	eq1 := bank.Equality(SortIndividual, true, ta, tb)
	eq2 := bank.Equality(SortIndividual, true, ta, tb)
	if eq1 != eq2 {
		t.Fatalf("equal literals are not identical")
	}
	// By default argument order is preserved.
	if bank.Equality(SortIndividual, true, tb, ta) == eq1 {
		t.Errorf("orientation should distinguish literals")
	}
	// The canonical constructor ignores orientation.
	if bank.CanonicalEquality(SortIndividual, true, tb, ta) != bank.CanonicalEquality(SortIndividual, true, ta, tb) {
		t.Errorf("canonical equality should be orientation independent")
	}

	neg := bank.Complementary(eq1)
	if neg.Positive() || neg == eq1 {
		t.Errorf("complement is wrong")
	}
	if bank.Complementary(neg) != eq1 {
		t.Errorf("double complement is not the identity")
	}
	if _, sigEq := sig.Predicate(eq1.Pred()), eq1.IsEquality(); !sigEq {
		t.Errorf("equality literal not recognised")
	}
}

func TestNumerals(t *testing.T) {
	sig, bank := testSig()
	three := bank.Int(3)
	if bank.IntegerNumeral(big.NewInt(3)) != three {
		t.Fatalf("numerals are not shared")
	}
	v, ok := bank.TryNumeral(three)
	if !ok || v.Cmp(big.NewRat(3, 1)) != 0 {
		t.Fatalf("numeral value lost")
	}
	if !bank.IsTheoryTerm(three) {
		t.Errorf("numerals are theory terms")
	}
	if three.Sort() != SortInteger {
		t.Errorf("sort = %v", three.Sort())
	}
	_ = sig
}

func TestReplaceInLiteral(t *testing.T) {
	sig, bank := testSig()
	f, _ := sig.AddFunction("f", []Sort{SortIndividual}, SortIndividual)
	a, _ := sig.AddFunction("a", nil, SortIndividual)
	b, _ := sig.AddFunction("b", nil, SortIndividual)
	p, _ := sig.AddPredicate("p", []Sort{SortIndividual})

	ta, tb := bank.Const(a), bank.Const(b)
	lit := bank.Literal(p, true, []*Term{bank.App(f, []*Term{ta})})
	got := bank.ReplaceInLiteral(lit, ta, tb)
	want := bank.Literal(p, true, []*Term{bank.App(f, []*Term{tb})})
	if got != want {
		t.Fatalf("replacement produced %p, want %p", got, want)
	}
	if bank.ReplaceInLiteral(lit, tb, ta) != lit {
		t.Fatalf("vacuous replacement should be the identity")
	}
}

func TestPrinting(t *testing.T) {
	sig, bank := testSig()
	sum := sig.InterpretedFunction(IntPlus)
	less := sig.InterpretedPredicate(IntLess)

	x := bank.Var(0)
	expr := bank.App(sum, []*Term{x, bank.Int(1)})
	if got := sig.TermString(expr, nil); got != "(u0 + 1)" {
		t.Errorf("term string = %q", got)
	}
	lit := bank.Literal(less, false, []*Term{expr, bank.Int(4)})
	if got := sig.LiteralString(lit, nil); got != "~((u0 + 1) < 4)" {
		t.Errorf("literal string = %q", got)
	}
	eq := bank.Equality(SortInteger, false, x, bank.Int(2))
	if got := sig.LiteralString(eq, nil); got != "u0 != 2" {
		t.Errorf("equality string = %q", got)
	}
	named := func(v int) (string, bool) {
		if v == 0 {
			return "X", true
		}
		return "", false
	}
	if got := sig.TermString(x, named); got != "X" {
		t.Errorf("named variable = %q", got)
	}
}

func TestDistinctGroups(t *testing.T) {
	sig, _ := testSig()
	a, _ := sig.AddFunction("a", nil, SortIndividual)
	b, _ := sig.AddFunction("b", nil, SortIndividual)
	c, _ := sig.AddFunction("c", nil, SortIndividual)

	g := sig.AddDistinctGroup()
	sig.AddToDistinctGroup(a, g)
	sig.AddToDistinctGroup(b, g)

	if _, ok := sig.Function(a).SharedGroup(sig.Function(b)); !ok {
		t.Errorf("a and b should share a group")
	}
	if _, ok := sig.Function(a).SharedGroup(sig.Function(c)); ok {
		t.Errorf("a and c should not share a group")
	}
}
