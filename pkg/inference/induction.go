package inference

import (
	"github.com/vhavlena/refute/pkg/clause"
	"github.com/vhavlena/refute/pkg/env"
	"github.com/vhavlena/refute/pkg/formula"
	"github.com/vhavlena/refute/pkg/subst"
	"github.com/vhavlena/refute/pkg/term"
)

// Induction generates induction hypotheses for ground literals of eligible
// clauses: structural induction over term-algebra sorts (three schemes) and
// mathematical induction over the integers (upward and downward). Each
// hypothesis is clausified; the clause containing the instantiated
// conclusion is resolved against the originating clause, the remaining
// clausification products are emitted as-is.
type Induction struct {
	env *env.Environment

	// done memoizes processed (literal, term) pairs keyed by the literal
	// with the term replaced by a per-sort blank constant.
	done         map[*term.Literal]bool
	blanks       map[term.Sort]*term.Term
	placeholders map[term.Sort]*term.Term
}

// NewInduction creates the rule with an empty per-run memo.
func NewInduction(e *env.Environment) *Induction {
	return &Induction{
		env:          e,
		done:         make(map[*term.Literal]bool),
		blanks:       make(map[term.Sort]*term.Term),
		placeholders: make(map[term.Sort]*term.Term),
	}
}

// Name returns the rule name.
func (r *Induction) Name() string { return "induction" }

// Generate produces the induction conclusions of the premise. The gates
// are conjunctive: induction depth below the bound, unit clause if
// unit-only is set, and goal-derivedness per the induction choice.
func (r *Induction) Generate(premise *clause.Clause) ClauseIterator {
	opts := r.env.Options
	if opts.Induction == env.InductionNone {
		return EmptyIterator()
	}
	choice := opts.InductionChoice
	all := choice == env.InductionChoiceAll
	goalish := choice == env.InductionChoiceGoal || choice == env.InductionChoiceGoalPlus
	maxD := opts.MaxInductionDepth

	if opts.InductionUnitOnly && premise.Len() != 1 {
		return EmptyIterator()
	}
	if !all && !(goalish && premise.DerivedFromGoal()) {
		return EmptyIterator()
	}
	if maxD != 0 && premise.Inference().InductionDepth >= maxD {
		return EmptyIterator()
	}

	var out []*clause.Clause
	for _, lit := range premise.Literals() {
		r.process(premise, lit, &out)
	}
	return NewSliceIterator(out)
}

// process collects the eligible induction terms of one literal and applies
// the enabled schemes to each.
func (r *Induction) process(premise *clause.Clause, lit *term.Literal, out *[]*clause.Clause) {
	opts := r.env.Options
	sig := r.env.Sig

	if opts.TraceInduction {
		r.env.Log.WithField("literal", sig.LiteralString(lit, nil)).Info("induction: process")
	}

	interpIneq := sig.IsInterpretedPredicate(lit.Pred()) &&
		sig.Predicate(lit.Pred()).Interp.IsInequality()
	if opts.InductionNegOnly && !lit.Negative() && !interpIneq {
		return
	}
	if !lit.Ground() {
		return
	}

	choice := opts.InductionChoice
	all := choice == env.InductionChoiceAll
	goalPlus := choice == env.InductionChoiceGoalPlus

	var taTerms, intTerms []*term.Term
	seen := make(map[*term.Term]bool)
	it := lit.Subterms()
	for t, ok := it.Next(); ok; t, ok = it.Next() {
		if seen[t] {
			continue
		}
		seen[t] = true
		sym := sig.Function(t.Fn())
		if !opts.InductionOnComplexTerms && sym.Arity != 0 {
			continue
		}
		if !(all || sym.InGoal || (goalPlus && sym.InductionSkolem)) {
			continue
		}
		if opts.StructuralEnabled() && sig.IsTermAlgebraSort(sym.Result) &&
			((opts.InductionOnComplexTerms && sym.Arity != 0) || !sym.TermAlgebraCons) {
			taTerms = append(taTerms, t)
		}
		if opts.MathematicalEnabled() && sym.Result == term.SortInteger && sym.Numeral == nil {
			intTerms = append(intTerms, t)
		}
	}

	for _, t := range intTerms {
		if !r.notDone(lit, t) {
			continue
		}
		r.runSchemes(premise, lit, t, opts.MathInduction.Has(env.SchemeOne), false, false, out, r.mathSchemes)
	}
	for _, t := range taTerms {
		if !r.notDone(lit, t) {
			continue
		}
		one := opts.StructInduction.Has(env.SchemeOne)
		two := opts.StructInduction.Has(env.SchemeTwo)
		three := opts.StructInduction.Has(env.SchemeThree)
		r.runSchemes(premise, lit, t, one, two, three, out, r.structSchemes)
	}
}

// schemeRunner applies the selected schemes of one family to a single
// (possibly generalized) literal.
type schemeRunner func(premise *clause.Clause, origLit, ilit *term.Literal, t *term.Term,
	one, two, three bool, rule clause.Rule, out *[]*clause.Clause)

// runSchemes drives the occurrence generalisation loop around a family's
// schemes. Without generalisation the original literal is used once.
func (r *Induction) runSchemes(premise *clause.Clause, lit *term.Literal, t *term.Term,
	one, two, three bool, out *[]*clause.Clause, run schemeRunner) {

	opts := r.env.Options
	rule := clause.RuleInductionAxiom
	if !opts.InductionGen {
		run(premise, lit, lit, t, one, two, three, rule, out)
		return
	}
	placeholder := r.placeholderFor(t)
	sr := newSubsetReplacement(r.env.Bank, lit, t, placeholder, opts.MaxInductionGenSubsetSize)
	for ilit := sr.next(&rule); ilit != nil; ilit = sr.next(&rule) {
		run(premise, lit, ilit, placeholder, one, two, three, rule, out)
	}
}

// mathSchemes applies mathematical induction; only scheme one (with its
// upward and downward hypotheses) produces clauses.
func (r *Induction) mathSchemes(premise *clause.Clause, origLit, ilit *term.Literal, t *term.Term,
	one, _, _ bool, rule clause.Rule, out *[]*clause.Clause) {
	if one {
		r.mathInductionOne(premise, origLit, ilit, t, rule, out)
	}
}

// structSchemes applies the selected structural induction schemes.
func (r *Induction) structSchemes(premise *clause.Clause, origLit, ilit *term.Literal, t *term.Term,
	one, two, three bool, rule clause.Rule, out *[]*clause.Clause) {
	if one {
		r.structInductionOne(premise, origLit, ilit, t, rule, out)
	}
	if two {
		r.structInductionTwo(premise, origLit, ilit, t, rule, out)
	}
	if three {
		r.structInductionThree(premise, origLit, ilit, t, rule, out)
	}
}

// notDone checks and updates the redundancy memo: the literal with t
// replaced by a sort-indexed blank constant identifies the induction
// obligation.
func (r *Induction) notDone(lit *term.Literal, t *term.Term) bool {
	srt := r.env.Sig.Function(t.Fn()).Result
	blank, ok := r.blanks[srt]
	if !ok {
		id := r.env.Sig.AddFreshFunction("blank", nil, srt)
		blank = r.env.Bank.Const(id)
		r.blanks[srt] = blank
	}
	rep := r.env.Bank.ReplaceInLiteral(lit, t, blank)
	if r.done[rep] {
		return false
	}
	r.done[rep] = true
	return true
}

// placeholderFor returns the per-sort placeholder constant substituted for
// generalized occurrences.
func (r *Induction) placeholderFor(t *term.Term) *term.Term {
	srt := r.env.Sig.Function(t.Fn()).Result
	if p, ok := r.placeholders[srt]; ok {
		return p
	}
	id := r.env.Sig.AddFreshFunction("placeholder", nil, srt)
	p := r.env.Bank.Const(id)
	r.placeholders[srt] = p
	return p
}

// produceClauses clausifies a hypothesis and resolves every product that
// contains the instantiated conclusion against the originating clause on
// origLit; the remaining products (CNF definitions) are emitted as-is.
// Every emitted clause records the induction rule and the incremented
// induction depth.
func (r *Induction) produceClauses(premise *clause.Clause, origLit *term.Literal,
	hypothesis *formula.Formula, conclusion *term.Literal, rule clause.Rule,
	s *subst.Substitution, varSorts map[int]term.Sort, out *[]*clause.Clause) {

	inf := clause.Inference{
		Rule:           rule,
		Parents:        []*clause.Clause{premise},
		InductionDepth: premise.Inference().InductionDepth + 1,
	}
	products := formula.NewClausifier(r.env.Bank, varSorts).Clausify(hypothesis, clause.Axiom, inf)
	for _, c := range products {
		if c.Contains(conclusion) {
			resInf := clause.Inference{
				Rule:           rule,
				Parents:        []*clause.Clause{c, premise},
				InductionDepth: inf.InductionDepth,
			}
			*out = append(*out, Resolve(c, conclusion, 1, premise, origLit, 0, s, resInf))
		} else {
			*out = append(*out, c)
		}
	}
	r.env.Stats.InductionApplications++
	if rule == clause.RuleGenInductionAxiom {
		r.env.Stats.GeneralizedInduction++
	}
}

// mathInductionOne emits the two integer induction hypotheses for ~L[a]:
//
//	(L[0] & (![X]: (X >= 0 & L[X]) -> L[X+1])) -> (![Y]: Y >= 0 -> L[Y])
//	(L[0] & (![X]: (X <= 0 & L[X]) -> L[X-1])) -> (![Y]: Y <= 0 -> L[Y])
func (r *Induction) mathInductionOne(premise *clause.Clause, origLit, lit *term.Literal,
	t *term.Term, rule clause.Rule, out *[]*clause.Clause) {

	bank := r.env.Bank
	sig := r.env.Sig

	zero := bank.Int(0)
	one := bank.Int(1)
	mone := bank.Int(-1)

	x := bank.Var(0)
	y := bank.Var(1)
	varSorts := map[int]term.Sort{0: term.SortInteger, 1: term.SortInteger}

	clit := bank.Complementary(lit)
	rep := func(to *term.Term) *term.Literal { return bank.ReplaceInLiteral(clit, t, to) }

	lZero := formula.NewAtom(rep(zero))
	lX := formula.NewAtom(rep(x))
	lyLit := rep(y)
	lY := formula.NewAtom(lyLit)

	sum := sig.InterpretedFunction(term.IntPlus)
	lXpo := formula.NewAtom(rep(bank.App(sum, []*term.Term{x, one})))
	lXmo := formula.NewAtom(rep(bank.App(sum, []*term.Term{x, mone})))

	less := sig.InterpretedPredicate(term.IntLess)
	// X >= 0 is ~(X < 0); X <= 0 is ~(0 < X).
	xGeZ := formula.NewAtom(bank.Literal(less, false, []*term.Term{x, zero}))
	yGeZ := formula.NewAtom(bank.Literal(less, false, []*term.Term{y, zero}))
	xLeZ := formula.NewAtom(bank.Literal(less, false, []*term.Term{zero, x}))
	yLeZ := formula.NewAtom(bank.Literal(less, false, []*term.Term{zero, y}))

	hyp1 := formula.NewBinary(formula.Implies,
		formula.NewJunction(formula.And, lZero,
			formula.Quantify(formula.NewBinary(formula.Implies,
				formula.NewJunction(formula.And, xGeZ, lX), lXpo))),
		formula.Quantify(formula.NewBinary(formula.Implies, yGeZ, lY)))

	hyp2 := formula.NewBinary(formula.Implies,
		formula.NewJunction(formula.And, lZero,
			formula.Quantify(formula.NewBinary(formula.Implies,
				formula.NewJunction(formula.And, xLeZ, lX), lXmo))),
		formula.Quantify(formula.NewBinary(formula.Implies, yLeZ, lY)))

	// The conclusion variable is unified with the induction term, so the
	// resolvent instantiates Y at the term the literal talks about.
	s := subst.New(bank)
	s.Unify(t, 0, y, 1)
	r.produceClauses(premise, lit, hyp1, lyLit, rule, s, varSorts, out)
	r.produceClauses(premise, lit, hyp2, lyLit, rule, s, varSorts, out)
}

// structInductionOne emits the conventional structural induction
// hypothesis: the conjunction over constructors of the step formulas
// implies the universally quantified conclusion.
func (r *Induction) structInductionOne(premise *clause.Clause, origLit, lit *term.Literal,
	t *term.Term, rule clause.Rule, out *[]*clause.Clause) {

	bank := r.env.Bank
	sig := r.env.Sig
	taSort := sig.Function(t.Fn()).Result
	ta, ok := sig.TermAlgebraOf(taSort)
	if !ok {
		return
	}

	clit := bank.Complementary(lit)
	rep := func(to *term.Term) *term.Literal { return bank.ReplaceInLiteral(clit, t, to) }

	varSorts := make(map[int]term.Sort)
	nextVar := 0
	freshVar := func(s term.Sort) *term.Term {
		v := bank.Var(nextVar)
		varSorts[nextVar] = s
		nextVar++
		return v
	}

	var steps []*formula.Formula
	for i, con := range ta.Constructors {
		sym := sig.Function(con.Fn)
		args := make([]*term.Term, sym.Arity)
		var taVars []*term.Term
		for j := 0; j < sym.Arity; j++ {
			args[j] = freshVar(sym.ArgSorts[j])
			if sym.ArgSorts[j] == taSort {
				taVars = append(taVars, args[j])
			}
		}
		right := formula.NewAtom(rep(bank.App(con.Fn, args)))
		if !ta.Recursive(sig, i) {
			steps = append(steps, right)
			continue
		}
		var antecedents []*formula.Formula
		for _, v := range taVars {
			antecedents = append(antecedents, formula.NewAtom(rep(v)))
		}
		steps = append(steps, formula.NewBinary(formula.Implies,
			formula.NewJunction(formula.And, antecedents...), right))
	}

	indPremise := formula.NewJunction(formula.And, steps...)
	conclusion := rep(freshVar(taSort))
	hypothesis := formula.NewBinary(formula.Implies,
		formula.Quantify(indPremise),
		formula.Quantify(formula.NewAtom(conclusion)))

	identity := subst.New(bank)
	r.produceClauses(premise, origLit, hypothesis, conclusion, rule, identity, varSorts, out)
}

// structInductionTwo emits the least-counterexample hypothesis: either the
// conclusion holds everywhere, or some witness satisfies the literal while
// all its destructor images refute it.
func (r *Induction) structInductionTwo(premise *clause.Clause, origLit, lit *term.Literal,
	t *term.Term, rule clause.Rule, out *[]*clause.Clause) {

	bank := r.env.Bank
	sig := r.env.Sig
	taSort := sig.Function(t.Fn()).Result
	ta, ok := sig.TermAlgebraOf(taSort)
	if !ok {
		return
	}

	clit := bank.Complementary(lit)
	repC := func(to *term.Term) *term.Literal { return bank.ReplaceInLiteral(clit, t, to) }
	repL := func(to *term.Term) *term.Literal { return bank.ReplaceInLiteral(lit, t, to) }

	y := bank.Var(0)
	varSorts := map[int]term.Sort{0: taSort, 1: taSort}
	lY := formula.NewAtom(repL(y))

	var parts []*formula.Formula
	for _, con := range ta.Constructors {
		sym := sig.Function(con.Fn)
		if !mentionsSort(sym, taSort) {
			continue
		}
		args := make([]*term.Term, sym.Arity)
		var taTerms []*term.Term
		for j := 0; j < sym.Arity; j++ {
			djy := bank.App(con.Destructors[j], []*term.Term{y})
			args[j] = djy
			if sym.ArgSorts[j] == taSort {
				taTerms = append(taTerms, djy)
			}
		}
		kneq := formula.NewAtom(bank.Equality(taSort, true, y, bank.App(con.Fn, args)))
		var smaller []*formula.Formula
		for _, djy := range taTerms {
			smaller = append(smaller, formula.NewAtom(repC(djy)))
		}
		parts = append(parts, formula.NewBinary(formula.Implies,
			kneq, formula.NewJunction(formula.And, smaller...)))
	}

	witness := formula.NewQuantified(formula.Exists, []int{0},
		formula.NewJunction(formula.And, append([]*formula.Formula{lY}, parts...)...))

	conclusion := repC(bank.Var(1))
	hypothesis := formula.NewJunction(formula.Or,
		witness, formula.Quantify(formula.NewAtom(conclusion)))

	identity := subst.New(bank)
	r.produceClauses(premise, origLit, hypothesis, conclusion, rule, identity, varSorts, out)
}

// structInductionThree emits the subterm-ordering hypothesis: a fresh
// predicate closed under destructors marks the terms below the witness,
// and everything it marks refutes the literal.
func (r *Induction) structInductionThree(premise *clause.Clause, origLit, lit *term.Literal,
	t *term.Term, rule clause.Rule, out *[]*clause.Clause) {

	bank := r.env.Bank
	sig := r.env.Sig
	taSort := sig.Function(t.Fn()).Result
	ta, ok := sig.TermAlgebraOf(taSort)
	if !ok {
		return
	}

	clit := bank.Complementary(lit)
	repC := func(to *term.Term) *term.Literal { return bank.ReplaceInLiteral(clit, t, to) }
	repL := func(to *term.Term) *term.Literal { return bank.ReplaceInLiteral(lit, t, to) }

	x := bank.Var(0)
	y := bank.Var(1)
	z := bank.Var(2)
	varSorts := map[int]term.Sort{0: taSort, 1: taSort, 2: taSort}
	nextVar := 3
	freshVar := func(s term.Sort) *term.Term {
		v := bank.Var(nextVar)
		varSorts[nextVar] = s
		nextVar++
		return v
	}

	smallerThan := sig.AddFreshPredicate("smallerThan", []term.Sort{taSort})
	smaller := func(arg *term.Term) *formula.Formula {
		return formula.NewAtom(bank.Literal(smallerThan, true, []*term.Term{arg}))
	}

	conjunction := []*formula.Formula{formula.NewAtom(repL(y))}
	for _, con := range ta.Constructors {
		sym := sig.Function(con.Fn)
		if !mentionsSort(sym, taSort) {
			continue
		}
		args := make([]*term.Term, sym.Arity)
		varArgs := make([]*term.Term, sym.Arity)
		var taTerms, taVars []*term.Term
		for j := 0; j < sym.Arity; j++ {
			djy := bank.App(con.Destructors[j], []*term.Term{y})
			args[j] = djy
			varArgs[j] = freshVar(sym.ArgSorts[j])
			if sym.ArgSorts[j] == taSort {
				taTerms = append(taTerms, djy)
				taVars = append(taVars, varArgs[j])
			}
		}
		kneq := formula.NewAtom(bank.Equality(taSort, true, y, bank.App(con.Fn, args)))

		// Closure of the ordering under destructors of the constructor.
		var varSmallers []*formula.Formula
		for _, v := range taVars {
			varSmallers = append(varSmallers, smaller(v))
		}
		closure := formula.Quantify(formula.NewBinary(formula.Implies,
			smaller(bank.App(con.Fn, varArgs)),
			formula.NewJunction(formula.And, varSmallers...)))

		var destSmallers []*formula.Formula
		for _, djy := range taTerms {
			destSmallers = append(destSmallers, smaller(djy))
		}
		step := formula.NewBinary(formula.Implies,
			kneq, formula.NewJunction(formula.And, destSmallers...))

		conjunction = append(conjunction, step, closure)
	}

	below := formula.Quantify(formula.NewBinary(formula.Implies, smaller(z),
		formula.NewAtom(repC(z))))
	conjunction = append(conjunction, below)

	witness := formula.NewQuantified(formula.Exists, []int{1},
		formula.NewJunction(formula.And, conjunction...))

	conclusion := repC(x)
	hypothesis := formula.NewJunction(formula.Or,
		witness, formula.Quantify(formula.NewAtom(conclusion)))

	identity := subst.New(bank)
	r.produceClauses(premise, origLit, hypothesis, conclusion, rule, identity, varSorts, out)
}

// mentionsSort reports whether any argument of the constructor symbol has
// the given sort.
func mentionsSort(sym *term.Symbol, s term.Sort) bool {
	for _, as := range sym.ArgSorts {
		if as == s {
			return true
		}
	}
	return false
}
