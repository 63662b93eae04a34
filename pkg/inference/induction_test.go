package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vhavlena/refute/pkg/clause"
	"github.com/vhavlena/refute/pkg/env"
	"github.com/vhavlena/refute/pkg/term"
)

// listFixture declares a list-like term algebra with constructors nil and
// cons(individual, list), a predicate p over lists, and a goal constant c0.
type listFixture struct {
	e        *env.Environment
	listSort term.Sort
	nilFn    term.FunctionID
	consFn   term.FunctionID
	p        term.PredicateID
	c0       term.FunctionID
}

func newListFixture(t *testing.T, opts *env.Options) *listFixture {
	t.Helper()
	e := env.New(opts)
	sig := e.Sig
	listSort := sig.AddSort("list")

	nilFn, _ := sig.AddFunction("nil", nil, listSort)
	consFn, _ := sig.AddFunction("cons", []term.Sort{term.SortIndividual, listSort}, listSort)
	headFn, _ := sig.AddFunction("head", []term.Sort{listSort}, term.SortIndividual)
	tailFn, _ := sig.AddFunction("tail", []term.Sort{listSort}, listSort)

	sig.DeclareTermAlgebra(listSort, []*term.Constructor{
		{Fn: nilFn},
		{Fn: consFn, Destructors: []term.FunctionID{headFn, tailFn}},
	})

	p, _ := sig.AddPredicate("p", []term.Sort{listSort})
	c0, _ := sig.AddFunction("c0", nil, listSort)
	return &listFixture{e: e, listSort: listSort, nilFn: nilFn, consFn: consFn, p: p, c0: c0}
}

func structuralOptions() *env.Options {
	opts := env.DefaultOptions()
	opts.Induction = env.InductionStructural
	opts.StructInduction = env.SchemeOne
	return opts
}

func (fx *listFixture) goalClause() *clause.Clause {
	bank := fx.e.Bank
	lit := bank.Literal(fx.p, false, []*term.Term{bank.Const(fx.c0)})
	return clause.New([]*term.Literal{lit}, clause.Conjecture, clause.InputInference())
}

func TestStructuralInductionSchemeOne(t *testing.T) {
	fx := newListFixture(t, structuralOptions())
	bank := fx.e.Bank
	premise := fx.goalClause()

	rule := NewInduction(fx.e)
	out := Drain(rule.Generate(premise))
	require.Len(t, out, 2, "scheme one on a two-constructor algebra yields two clauses")

	// The hypothesis (p(nil) & (p(t) -> p(cons(h,t)))) -> forall y p(y),
	// clausified and resolved against ~p(c0), leaves the step hypothesis
	// at the skolem tail ~p(nil) | p(sk) and the failing step conclusion
	// ~p(nil) | ~p(cons(sk_h, sk_t)).
	nilLit := bank.Literal(fx.p, false, []*term.Term{bank.Const(fx.nilFn)})

	var sawStep, sawWitness bool
	for _, c := range out {
		assert.Equal(t, clause.RuleInductionAxiom, c.Inference().Rule)
		assert.Equal(t, 1, c.Inference().InductionDepth,
			"induction depth must be incremented")
		require.Equal(t, 2, c.Len())
		assert.True(t, c.Contains(nilLit), "both products carry ~p(nil): %s", c.String(fx.e.Sig))
		for _, lit := range c.Literals() {
			if lit == nilLit {
				continue
			}
			require.Equal(t, fx.p, lit.Pred())
			arg := lit.Arg(0)
			if lit.Positive() {
				// The skolemized witness of the failing step case.
				assert.Equal(t, 0, arg.NArgs())
				assert.True(t, fx.e.Sig.Function(arg.Fn()).Skolem)
				sawWitness = true
			} else {
				// ~p(cons(sk_h, sk_t)).
				assert.Equal(t, fx.consFn, arg.Fn())
				sawStep = true
			}
		}
	}
	assert.True(t, sawWitness, "missing witness clause")
	assert.True(t, sawStep, "missing step clause")
	assert.Equal(t, 1, fx.e.Stats.InductionApplications)
}

func TestInductionRedundancyMemo(t *testing.T) {
	fx := newListFixture(t, structuralOptions())
	rule := NewInduction(fx.e)

	first := Drain(rule.Generate(fx.goalClause()))
	require.NotEmpty(t, first)
	// The same (literal, term) obligation is skipped on re-processing.
	second := Drain(rule.Generate(fx.goalClause()))
	assert.Empty(t, second)
}

func TestInductionGates(t *testing.T) {
	opts := structuralOptions()
	opts.InductionUnitOnly = true
	fx := newListFixture(t, opts)
	bank := fx.e.Bank
	r, _ := fx.e.Sig.AddPredicate("r", nil)

	// A two-literal clause is rejected under unit-only.
	lit := bank.Literal(fx.p, false, []*term.Term{bank.Const(fx.c0)})
	wide := clause.New([]*term.Literal{lit, bank.Literal(r, true, nil)},
		clause.Conjecture, clause.InputInference())
	rule := NewInduction(fx.e)
	assert.Empty(t, Drain(rule.Generate(wide)))

	// Non-ground literals never induct.
	fx2 := newListFixture(t, structuralOptions())
	open := clause.New([]*term.Literal{
		fx2.e.Bank.Literal(fx2.p, false, []*term.Term{fx2.e.Bank.Var(0)}),
	}, clause.Conjecture, clause.InputInference())
	assert.Empty(t, Drain(NewInduction(fx2.e).Generate(open)))
}

func TestInductionDepthGate(t *testing.T) {
	opts := structuralOptions()
	opts.MaxInductionDepth = 1
	fx := newListFixture(t, opts)
	bank := fx.e.Bank

	deep := clause.New([]*term.Literal{
		bank.Literal(fx.p, false, []*term.Term{bank.Const(fx.c0)}),
	}, clause.Conjecture, clause.Inference{Rule: clause.RuleInductionAxiom, InductionDepth: 1})

	rule := NewInduction(fx.e)
	assert.Empty(t, Drain(rule.Generate(deep)))
}

func TestInductionGoalGate(t *testing.T) {
	opts := structuralOptions()
	opts.InductionChoice = env.InductionChoiceGoal
	fx := newListFixture(t, opts)
	bank := fx.e.Bank

	axiom := clause.New([]*term.Literal{
		bank.Literal(fx.p, false, []*term.Term{bank.Const(fx.c0)}),
	}, clause.Axiom, clause.InputInference())
	rule := NewInduction(fx.e)
	assert.Empty(t, Drain(rule.Generate(axiom)),
		"goal-only induction must skip non-goal clauses")

	// Goal gating also requires the symbol flag on the target term.
	goal := fx.goalClause()
	assert.Empty(t, Drain(rule.Generate(goal)))

	fx.e.Sig.Function(fx.c0).InGoal = true
	out := Drain(rule.Generate(goal))
	assert.NotEmpty(t, out)
}

func TestNegOnlyGate(t *testing.T) {
	opts := structuralOptions()
	opts.InductionNegOnly = true
	fx := newListFixture(t, opts)
	bank := fx.e.Bank

	pos := clause.New([]*term.Literal{
		bank.Literal(fx.p, true, []*term.Term{bank.Const(fx.c0)}),
	}, clause.Conjecture, clause.InputInference())
	rule := NewInduction(fx.e)
	assert.Empty(t, Drain(rule.Generate(pos)))
}

func TestMathematicalInductionSchemeOne(t *testing.T) {
	opts := env.DefaultOptions()
	opts.Induction = env.InductionMathematical
	opts.MathInduction = env.SchemeOne
	e := env.New(opts)
	sig, bank := e.Sig, e.Bank

	q, _ := sig.AddPredicate("q", []term.Sort{term.SortInteger})
	c, _ := sig.AddFunction("c", nil, term.SortInteger)

	premise := clause.New([]*term.Literal{
		bank.Literal(q, false, []*term.Term{bank.Const(c)}),
	}, clause.Conjecture, clause.InputInference())

	rule := NewInduction(e)
	out := Drain(rule.Generate(premise))
	// Upward and downward hypotheses clausify to three clauses each,
	// every one resolved with the premise.
	require.Len(t, out, 6)

	zero := bank.Int(0)
	notQZero := bank.Literal(q, false, []*term.Term{zero})
	less := sig.InterpretedPredicate(term.IntLess)
	cLtZero := bank.Literal(less, true, []*term.Term{bank.Const(c), zero})
	zeroLtC := bank.Literal(less, true, []*term.Term{zero, bank.Const(c)})

	upward, downward := 0, 0
	for _, cl := range out {
		assert.Equal(t, clause.RuleInductionAxiom, cl.Inference().Rule)
		assert.Equal(t, 1, cl.Inference().InductionDepth)
		assert.True(t, cl.Contains(notQZero), "every product carries ~q(0)")
		if cl.Contains(cLtZero) {
			upward++
		}
		if cl.Contains(zeroLtC) {
			downward++
		}
	}
	assert.Equal(t, 3, upward, "upward hypothesis instantiates Y at c with guard c < 0")
	assert.Equal(t, 3, downward, "downward hypothesis instantiates Y at c with guard 0 < c")
}

func TestMathematicalInductionSkipsNumerals(t *testing.T) {
	opts := env.DefaultOptions()
	opts.Induction = env.InductionMathematical
	e := env.New(opts)
	sig, bank := e.Sig, e.Bank
	q, _ := sig.AddPredicate("q", []term.Sort{term.SortInteger})

	premise := clause.New([]*term.Literal{
		bank.Literal(q, false, []*term.Term{bank.Int(5)}),
	}, clause.Conjecture, clause.InputInference())
	rule := NewInduction(e)
	assert.Empty(t, Drain(rule.Generate(premise)), "interpreted constants are not induction targets")
}

func TestStructuralInductionSchemeTwoUsesDestructors(t *testing.T) {
	opts := env.DefaultOptions()
	opts.Induction = env.InductionStructural
	opts.StructInduction = env.SchemeTwo
	fx := newListFixture(t, opts)

	rule := NewInduction(fx.e)
	out := Drain(rule.Generate(fx.goalClause()))
	require.NotEmpty(t, out)
	for _, c := range out {
		assert.Equal(t, clause.RuleInductionAxiom, c.Inference().Rule)
		assert.Equal(t, 1, c.Inference().InductionDepth)
	}
}

func TestStructuralInductionSchemeThreeAddsOrderingPredicate(t *testing.T) {
	opts := env.DefaultOptions()
	opts.Induction = env.InductionStructural
	opts.StructInduction = env.SchemeThree
	fx := newListFixture(t, opts)

	before := fx.e.Sig.NumPredicates()
	rule := NewInduction(fx.e)
	out := Drain(rule.Generate(fx.goalClause()))
	require.NotEmpty(t, out)
	assert.Greater(t, fx.e.Sig.NumPredicates(), before,
		"scheme three introduces the fresh ordering predicate")
}

func TestOccurrenceGeneralisation(t *testing.T) {
	opts := structuralOptions()
	opts.InductionGen = true
	opts.MaxInductionGenSubsetSize = 0
	fx := newListFixture(t, opts)
	bank := fx.e.Bank
	sig := fx.e.Sig

	// p2(c0, c0): two occurrences enumerate the subsets {1}, {2} and
	// {1,2}; the proper subsets record the generalized rule.
	p2, _ := sig.AddPredicate("p2", []term.Sort{fx.listSort, fx.listSort})
	lit := bank.Literal(p2, false, []*term.Term{bank.Const(fx.c0), bank.Const(fx.c0)})
	premise := clause.New([]*term.Literal{lit}, clause.Conjecture, clause.InputInference())

	rule := NewInduction(fx.e)
	out := Drain(rule.Generate(premise))
	require.NotEmpty(t, out)

	gen, full := 0, 0
	for _, c := range out {
		switch c.Inference().Rule {
		case clause.RuleGenInductionAxiom:
			gen++
		case clause.RuleInductionAxiom:
			full++
		default:
			t.Fatalf("unexpected rule %v", c.Inference().Rule)
		}
	}
	assert.NotZero(t, gen, "proper subsets must be generalized")
	assert.NotZero(t, full, "the full subset must close the enumeration")
	assert.NotZero(t, fx.e.Stats.GeneralizedInduction)
}

func TestSubsetBoundSkipsLargeSubsets(t *testing.T) {
	fx := newListFixture(t, structuralOptions())
	bank := fx.e.Bank
	sig := fx.e.Sig

	p3, _ := sig.AddPredicate("p3", []term.Sort{fx.listSort, fx.listSort, fx.listSort})
	c0 := bank.Const(fx.c0)
	lit := bank.Literal(p3, false, []*term.Term{c0, c0, c0})
	repl := bank.Const(sig.AddFreshFunction("placeholder", nil, fx.listSort))

	sr := newSubsetReplacement(bank, lit, c0, repl, 1)
	var rules []clause.Rule
	var count int
	var r clause.Rule
	for l := sr.next(&r); l != nil; l = sr.next(&r) {
		rules = append(rules, r)
		count++
		occ := countOccurrences(l, repl)
		if r == clause.RuleGenInductionAxiom {
			assert.Equal(t, 1, occ, "bound 1 admits only singleton proper subsets")
		} else {
			assert.Equal(t, 3, occ, "the full subset replaces everything")
		}
	}
	// Three singletons plus the full subset.
	assert.Equal(t, 4, count)
	assert.Equal(t, clause.RuleInductionAxiom, rules[len(rules)-1])
}
