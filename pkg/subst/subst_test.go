package subst

import (
	"testing"

	"github.com/vhavlena/refute/pkg/term"
)

func setup() (*term.Signature, *term.Bank) {
	sig := term.NewSignature()
	return sig, term.NewBank(sig)
}

func TestUnifyBasic(t *testing.T) {
	sig, bank := setup()
	f, _ := sig.AddFunction("f", []term.Sort{term.SortIndividual}, term.SortIndividual)
	a, _ := sig.AddFunction("a", nil, term.SortIndividual)

	s := New(bank)
	// f(x) with f(a): x binds to a.
	fx := bank.App(f, []*term.Term{bank.Var(0)})
	fa := bank.App(f, []*term.Term{bank.Const(a)})
	if !s.Unify(fx, 0, fa, 0) {
		t.Fatalf("unification failed")
	}
	if got := s.Apply(fx, 0); got != fa {
		t.Fatalf("apply produced %v", sig.TermString(got, nil))
	}
}

func TestUnifyOccursCheck(t *testing.T) {
	sig, bank := setup()
	f, _ := sig.AddFunction("f", []term.Sort{term.SortIndividual}, term.SortIndividual)

	s := New(bank)
	x := bank.Var(0)
	fx := bank.App(f, []*term.Term{x})
	if s.Unify(x, 0, fx, 0) {
		t.Fatalf("occurs check missed x = f(x)")
	}
	if _, bound := s.Lookup(VarSpec{0, 0}); bound {
		t.Fatalf("failed unification left bindings behind")
	}
}

func TestUnifySortClash(t *testing.T) {
	sig, bank := setup()
	a, _ := sig.AddFunction("a", nil, term.SortIndividual)
	s := New(bank)
	// Individual constant against an integer numeral: type clash is a
	// plain failure.
	if s.Unify(bank.Const(a), 0, bank.Int(1), 0) {
		t.Fatalf("sort clash not detected")
	}
}

func TestBanksKeepNamespacesApart(t *testing.T) {
	sig, bank := setup()
	f, _ := sig.AddFunction("f", []term.Sort{term.SortIndividual, term.SortIndividual}, term.SortIndividual)

	s := New(bank)
	x0 := bank.Var(0)
	// f(x, x)@0 against f(x, y)@1: the two x variables are distinct.
	left := bank.App(f, []*term.Term{x0, x0})
	right := bank.App(f, []*term.Term{x0, bank.Var(1)})
	if !s.Unify(left, 0, right, 1) {
		t.Fatalf("banked unification failed")
	}
	la := s.Apply(left, 0)
	ra := s.Apply(right, 1)
	if la != ra {
		t.Fatalf("apply disagrees: %s vs %s", sig.TermString(la, nil), sig.TermString(ra, nil))
	}
}

func TestMarkRestore(t *testing.T) {
	_, bank := setup()
	s := New(bank)
	m := s.Mark()
	if !s.Bind(VarSpec{0, 0}, TermSpec{bank.Var(1), 0}) {
		t.Fatalf("bind failed")
	}
	s.Restore(m)
	if _, ok := s.Lookup(VarSpec{0, 0}); ok {
		t.Fatalf("restore did not rewind the trail")
	}
}

func TestMatchOneSided(t *testing.T) {
	sig, bank := setup()
	f, _ := sig.AddFunction("f", []term.Sort{term.SortIndividual}, term.SortIndividual)
	a, _ := sig.AddFunction("a", nil, term.SortIndividual)

	s := New(bank)
	fx := bank.App(f, []*term.Term{bank.Var(0)})
	fa := bank.App(f, []*term.Term{bank.Const(a)})
	if !s.Match(fx, 0, fa, 1) {
		t.Fatalf("match failed")
	}
	s.Reset()
	// Matching must not bind subject variables.
	if s.Match(fa, 0, fx, 1) {
		t.Fatalf("match bound a subject variable")
	}
}

func TestApplyRenamesPerBank(t *testing.T) {
	_, bank := setup()
	s := New(bank)
	x := bank.Var(7)
	a0 := s.Apply(x, 0)
	a1 := s.Apply(x, 1)
	if a0 == a1 {
		t.Fatalf("the same variable in different banks collapsed")
	}
	if s.Apply(x, 0) != a0 {
		t.Fatalf("output renaming is not stable")
	}
}

func TestAbstractionEmitsConstraint(t *testing.T) {
	sig, bank := setup()
	sum := sig.InterpretedFunction(term.IntPlus)
	c, _ := sig.AddFunction("c", nil, term.SortInteger)
	d, _ := sig.AddFunction("d", nil, term.SortInteger)

	s := New(bank)
	// c + 1 against d: different top symbols of the same sort.
	left := bank.App(sum, []*term.Term{bank.Const(c), bank.Int(1)})
	right := bank.Const(d)

	if s.Unify(left, 0, right, 0) {
		t.Fatalf("classical unification should fail")
	}
	var constraints []Constraint
	if !s.UnifyWithAbstraction(left, 0, right, 0, AbstractionFull, &constraints) {
		t.Fatalf("full abstraction should succeed")
	}
	if len(constraints) != 1 {
		t.Fatalf("got %d constraints, want 1", len(constraints))
	}
}

func TestGroundPolicyRefusesTheoryClash(t *testing.T) {
	sig, bank := setup()
	sum := sig.InterpretedFunction(term.IntPlus)
	g, _ := sig.AddFunction("g", []term.Sort{term.SortInteger}, term.SortInteger)
	h, _ := sig.AddFunction("h", []term.Sort{term.SortInteger}, term.SortInteger)

	s := New(bank)
	x := bank.Var(0)
	theory := bank.App(sum, []*term.Term{x, bank.Int(1)})
	plain := bank.App(g, []*term.Term{x})

	var constraints []Constraint
	// Ground policy does not abstract clashes involving a theory side.
	if s.UnifyWithAbstraction(theory, 0, plain, 0, AbstractionGround, &constraints) {
		t.Fatalf("ground policy abstracted a theory clash")
	}
	if len(constraints) != 0 {
		t.Fatalf("constraints leaked: %d", len(constraints))
	}
	// Two non-ground uninterpreted terms are abstracted.
	other := bank.App(h, []*term.Term{x})
	if !s.UnifyWithAbstraction(plain, 0, other, 0, AbstractionGround, &constraints) {
		t.Fatalf("ground policy should abstract uninterpreted non-ground clash")
	}
	if len(constraints) != 1 {
		t.Fatalf("got %d constraints, want 1", len(constraints))
	}
}
